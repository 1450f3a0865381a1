package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/kebairia/dabackup/internal/daadmin"
)

// SentinelNoBackup is the backup_folder_name output when the listing is
// empty and nothing needed backing up.
const SentinelNoBackup = "no-backup-needed"

// failurePrefix marks the error_message output so downstream steps can
// spot failures without parsing logs.
const failurePrefix = "ERROR: "

// Output keys consumed by the surrounding CI workflow.
const (
	outputBackupFolder = "backup_folder_name"
	outputError        = "error_message"
)

// reservedNames are structural items that must never be relocated.
var reservedNames = map[string]struct{}{
	"tools":            {},
	"block-collection": {},
}

// Backup lists the configured location, creates a timestamped backup
// folder, and moves every eligible item into it. Terminal failures
// (validation, credentials, listing, folder creation) surface as the
// error_message output plus a failed run status; individual move failures
// only lower the moved count.
func (o *Operator) Backup(ctx context.Context) error {
	started := time.Now()
	manifest, err := o.backup(ctx)
	if err != nil {
		o.log.Error("backup failed", "error", err.Error())
		if repErr := o.rep.SetOutput(outputError, failurePrefix+err.Error()); repErr != nil {
			o.log.Warn("writing error output failed", "error", repErr.Error())
		}
		o.rep.Fail(err.Error())
		return err
	}

	manifest.StartedAt = started
	manifest.CompletedAt = time.Now()
	manifest.Duration = manifest.CompletedAt.Sub(started)
	o.writeManifest(manifest)

	if repErr := o.rep.SetOutput(outputBackupFolder, manifest.BackupFolder); repErr != nil {
		o.log.Warn("writing backup output failed", "error", repErr.Error())
	}
	return nil
}

// backup is the straight-line state machine: validate, list, create
// folder, move loop.
func (o *Operator) backup(ctx context.Context) (*Manifest, error) {
	// 1) Required inputs, before any API call
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	org, repo, path := o.cfg.Backup.Org, o.cfg.Backup.Repo, o.cfg.Backup.Path

	manifest := &Manifest{Org: org, Repo: repo, Path: path}

	// 2) A usable token is a precondition, distinct from HTTP failures
	if _, err := o.tokens.Token(ctx); err != nil {
		return nil, fmt.Errorf("acquire credentials: %w", err)
	}

	// 3) List what lives at the target location
	o.log.Info("listing sources", "org", org, "repo", repo, "path", path)
	sources, err := o.client.List(ctx, org, repo, path)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	if len(sources) == 0 {
		// Nothing to back up; don't create an empty backup folder.
		o.log.Info("no sources found, skipping backup")
		manifest.BackupFolder = SentinelNoBackup
		return manifest, nil
	}

	// 4) Backup folder, named after the run timestamp
	folder, err := o.client.CreateFolder(ctx, org, repo, path)
	if err != nil {
		return nil, fmt.Errorf("create backup folder %q: %w", path, err)
	}
	o.log.Info("created backup folder", "name", folder.Name, "path", folder.Path)
	manifest.BackupFolder = folder.Name

	// 5) Move loop, strictly one item at a time in listing order
	moved := 0
	for _, src := range sources {
		item := o.moveItem(ctx, org, repo, folder, src)
		manifest.Items = append(manifest.Items, item)
		if item.Status == itemMoved {
			moved++
		}
	}
	manifest.Moved = moved

	// 6) Summary
	o.log.Info("backup complete",
		"moved", moved,
		"listed", len(sources),
		"folder", folder.Name,
	)
	return manifest, nil
}

// moveItem relocates one listed source into the backup folder. Failures
// stay contained here: the batch always proceeds to the next item.
func (o *Operator) moveItem(ctx context.Context, org, repo string, folder daadmin.Folder, src daadmin.Source) ItemResult {
	item := ItemResult{Name: src.Name, Source: src.Path}

	if _, reserved := reservedNames[src.Name]; reserved {
		o.log.Info("skipping reserved item", "name", src.Name)
		item.Status = itemSkipped
		return item
	}
	if src.Path == "" && src.Name == "" {
		o.log.Warn("skipping malformed source record", "record", src.Extra)
		item.Status = itemSkipped
		return item
	}

	destination := fmt.Sprintf("/%s/%s/%s/%s", org, repo, folder.Path, src.FileName())
	item.Destination = destination

	if err := o.client.Move(ctx, src.Path, destination); err != nil {
		o.log.Warn("move failed, continuing",
			"source", src.Path,
			"destination", destination,
			"error", err.Error(),
		)
		item.Status = itemFailed
		item.Error = err.Error()
		return item
	}

	o.log.Info("moved item", "source", src.Path, "destination", destination)
	item.Status = itemMoved
	return item
}
