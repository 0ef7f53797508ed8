package linkedin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// MediaKind selects the upload recipe for a registered asset.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

func (k MediaKind) recipe() string {
	return fmt.Sprintf("urn:li:digitalmediaRecipe:feedshare-%s", string(k))
}

// UploadError reports a failure after an upload slot was already registered.
// Stage names the step that failed and Asset carries the registered asset URN
// so a caller can retry that step without re-registering.
type UploadError struct {
	Stage string
	Asset string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s failed for asset %s: %v", e.Stage, e.Asset, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// RegisterUpload asks the platform for a one-time upload slot owned by the
// given author. The handle it returns must be consumed by exactly one
// PushBinary call within the same publish operation.
func (c *Client) RegisterUpload(ctx context.Context, authorURN string, kind MediaKind) (*UploadHandle, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"registerUploadRequest": map[string]any{
			"recipes": []string{kind.recipe()},
			"owner":   authorURN,
			"serviceRelationships": []map[string]any{
				{
					"relationshipType": "OWNER",
					"identifier":       "urn:li:userGeneratedContent",
				},
			},
		},
	}

	var resp struct {
		Value struct {
			Asset           string `json:"asset"`
			UploadMechanism map[string]struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"uploadMechanism"`
		} `json:"value"`
	}
	if err := c.api.JSON(ctx, http.MethodPost, "/v2/assets?action=registerUpload", payload, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to register %s upload", kind)
	}

	mechanism, ok := resp.Value.UploadMechanism["com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"]
	if !ok || mechanism.UploadURL == "" {
		return nil, fmt.Errorf("registration response missing upload URL for asset %s", resp.Value.Asset)
	}

	c.logger.Debug("upload registered", "kind", kind, "asset", resp.Value.Asset)
	return &UploadHandle{UploadURL: mechanism.UploadURL, Asset: resp.Value.Asset}, nil
}

// PushBinary PUTs raw bytes to the one-time upload URL. No retry; a failed
// push leaves the registered asset orphaned, which the returned UploadError
// reports.
func (c *Client) PushBinary(ctx context.Context, handle *UploadHandle, data []byte) error {
	if err := c.api.PutRaw(ctx, handle.UploadURL, data, "application/octet-stream"); err != nil {
		return &UploadError{Stage: "binary upload", Asset: handle.Asset, Err: err}
	}
	c.logger.Debug("binary uploaded", "asset", handle.Asset, "bytes", len(data))
	return nil
}
