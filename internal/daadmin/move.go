package daadmin

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// Move relocates the item at sourcePath to destination. sourcePath is the
// full remote path as returned by List; it is encoded segment by segment
// so slashes keep acting as separators. The request body is multipart
// form data with a single destination field, and the multipart writer
// owns the Content-Type header (it carries the boundary).
func (c *Client) Move(ctx context.Context, sourcePath, destination string) error {
	if !strings.HasPrefix(sourcePath, "/") {
		sourcePath = "/" + sourcePath
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("destination", destination); err != nil {
		return fmt.Errorf("daadmin: build move form: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("daadmin: build move form: %w", err)
	}

	_, err := c.do(ctx, http.MethodPost, "/move"+encodePathSegments(sourcePath), &body, form.FormDataContentType())
	return err
}
