package daadmin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

// Source is one item returned by the listing endpoint: a file or folder
// living under an org/repo. Fields the API sends beyond name, path, and
// ext are preserved in Extra untouched.
type Source struct {
	Name  string         `mapstructure:"name"`
	Path  string         `mapstructure:"path"`
	Ext   string         `mapstructure:"ext"`
	Extra map[string]any `mapstructure:",remain"`
}

// FileName returns the item's on-disk style name: name.ext when ext is
// present, else just name.
func (s Source) FileName() string {
	if s.Ext != "" {
		return s.Name + "." + s.Ext
	}
	return s.Name
}

// List returns the sources at /list/{org}/{repo}/{path} in listing order.
// The API answers with either a bare array or an object wrapping the
// array under a "sources" field; both shapes normalize to []Source.
func (c *Client) List(ctx context.Context, org, repo, path string) ([]Source, error) {
	result, err := c.do(ctx, http.MethodGet, joinPath("/list", org, repo, path), nil, "")
	if err != nil {
		return nil, err
	}
	return normalizeListing(result)
}

// normalizeListing converts either listing response shape into []Source.
func normalizeListing(result any) ([]Source, error) {
	var raw []any
	switch v := result.(type) {
	case nil:
		return nil, nil
	case []any:
		raw = v
	case map[string]any:
		wrapped, ok := v["sources"].([]any)
		if !ok {
			return nil, fmt.Errorf("daadmin: listing object has no sources array")
		}
		raw = wrapped
	default:
		return nil, fmt.Errorf("daadmin: unexpected listing response type %T", result)
	}

	sources := make([]Source, 0, len(raw))
	for i, entry := range raw {
		var s Source
		if err := mapstructure.Decode(entry, &s); err != nil {
			return nil, fmt.Errorf("daadmin: decode listing entry %d: %w", i, err)
		}
		sources = append(sources, s)
	}
	return sources, nil
}
