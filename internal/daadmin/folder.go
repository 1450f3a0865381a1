package daadmin

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// backupTimestampLayout renders a UTC timestamp at second precision with
// hyphens in place of the colons and the fractional-second separator, so
// the name is safe as a path segment. Always 19 characters.
const backupTimestampLayout = "2006-01-02T15-04-05"

// Folder is a backup folder location: its bare name and its path relative
// to the repo root.
type Folder struct {
	Name string
	Path string
}

// NewBackupFolder computes the backup folder for a run started at the
// given instant. The path nests under parentPath when one is set.
//
// Names collide for two runs within the same second; callers accept that
// risk.
func NewBackupFolder(parentPath string, now time.Time) Folder {
	name := "backup-" + now.UTC().Format(backupTimestampLayout)
	folder := Folder{Name: name, Path: name}
	if parentPath = strings.Trim(parentPath, "/"); parentPath != "" {
		folder.Path = parentPath + "/" + name
	}
	return folder
}

// CreateFolder creates a timestamped backup folder under
// /source/{org}/{repo}/{backupPath} and returns it. The request carries
// no body and the response body is ignored.
func (c *Client) CreateFolder(ctx context.Context, org, repo, parentPath string) (Folder, error) {
	folder := NewBackupFolder(parentPath, c.now())
	if _, err := c.do(ctx, http.MethodPost, joinPath("/source", org, repo, folder.Path), nil, ""); err != nil {
		return Folder{}, err
	}
	return folder, nil
}
