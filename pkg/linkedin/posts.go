package linkedin

import (
	"context"
	"fmt"
	"net/http"
)

// ValidationError is a caller error detected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type shareMedia struct {
	status      string
	description string
	media       string
	originalURL string
	title       string
}

// sharePayload assembles a ugcPosts body. Every variant shares this shape and
// differs only in the media category and media entries.
func sharePayload(authorURN, text, visibility, category string, media []shareMedia) map[string]any {
	if visibility == "" {
		visibility = visibilityPublic
	}

	content := map[string]any{
		"shareCommentary": map[string]any{
			"text": text,
		},
		"shareMediaCategory": category,
	}
	if len(media) > 0 {
		entries := make([]map[string]any, 0, len(media))
		for _, m := range media {
			entry := map[string]any{
				"status": m.status,
				"description": map[string]any{
					"text": m.description,
				},
				"title": map[string]any{
					"text": m.title,
				},
			}
			if m.media != "" {
				entry["media"] = m.media
			}
			if m.originalURL != "" {
				entry["originalUrl"] = m.originalURL
			}
			entries = append(entries, entry)
		}
		content["media"] = entries
	}

	return map[string]any{
		"author":         authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": content,
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": visibility,
		},
	}
}

func (c *Client) createPost(ctx context.Context, payload map[string]any) (*Post, error) {
	var post Post
	if err := c.api.JSON(ctx, http.MethodPost, "/v2/ugcPosts", payload, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateTextPost publishes a commentary-only post.
func (c *Client) CreateTextPost(ctx context.Context, req *PostRequest) (*Post, error) {
	if req.Text == "" {
		return nil, validationErrorf("missing required parameter: text")
	}

	authorURN, err := c.ResolveAuthor(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	post, err := c.createPost(ctx, sharePayload(authorURN, req.Text, req.Visibility, categoryNone, nil))
	if err != nil {
		c.logger.Error("failed to create text post", "error", err)
		return nil, err
	}

	c.logger.Info("text post created", "post_id", post.ID, "author", authorURN)
	return post, nil
}

// CreateImagePost publishes an image post referencing a pre-existing external
// URL. No upload slot is registered for this variant: the media entry carries
// the URL directly.
func (c *Client) CreateImagePost(ctx context.Context, req *ImagePostRequest) (*Post, error) {
	if req.Text == "" || req.ImageURL == "" {
		return nil, validationErrorf("missing required parameters: text and imageUrl")
	}

	authorURN, err := c.ResolveAuthor(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	media := []shareMedia{{
		status:      "READY",
		description: req.ImageDescription,
		originalURL: req.ImageURL,
		title:       "Image Post",
	}}

	post, err := c.createPost(ctx, sharePayload(authorURN, req.Text, req.Visibility, categoryImage, media))
	if err != nil {
		c.logger.Error("failed to create image post", "error", err)
		return nil, err
	}

	c.logger.Info("image post created", "post_id", post.ID, "author", authorURN)
	return post, nil
}

// CreateImagePostFromBinary registers an upload slot, pushes the image bytes
// and publishes a post referencing the uploaded asset. The three steps run
// strictly in order and the asset in the final payload is the one issued by
// this invocation's registration.
func (c *Client) CreateImagePostFromBinary(ctx context.Context, req *MediaPostRequest, data []byte) (*Post, error) {
	if req.Text == "" {
		return nil, validationErrorf("missing required parameter: text")
	}
	return c.createBinaryMediaPost(ctx, &req.PostRequest, req.MediaDescription, MediaImage, categoryImage, data)
}

// CreateVideoPostFromBinary is the video counterpart of
// CreateImagePostFromBinary.
func (c *Client) CreateVideoPostFromBinary(ctx context.Context, req *VideoPostRequest, data []byte) (*Post, error) {
	if req.Text == "" {
		return nil, validationErrorf("missing required parameter: text")
	}
	return c.createBinaryMediaPost(ctx, &req.PostRequest, req.VideoDescription, MediaVideo, categoryVideo, data)
}

func (c *Client) createBinaryMediaPost(ctx context.Context, req *PostRequest, description string, kind MediaKind, category string, data []byte) (*Post, error) {
	authorURN, err := c.ResolveAuthor(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	handle, err := c.RegisterUpload(ctx, authorURN, kind)
	if err != nil {
		return nil, err
	}

	if err := c.PushBinary(ctx, handle, data); err != nil {
		c.logger.Error("failed to upload media binary", "asset", handle.Asset, "error", err)
		return nil, err
	}

	title := "Image Post"
	if kind == MediaVideo {
		title = "Video Post"
	}
	media := []shareMedia{{
		status:      "READY",
		description: description,
		media:       handle.Asset,
		title:       title,
	}}

	post, err := c.createPost(ctx, sharePayload(authorURN, req.Text, req.Visibility, category, media))
	if err != nil {
		c.logger.Error("failed to create media post", "asset", handle.Asset, "error", err)
		return nil, &UploadError{Stage: "post creation", Asset: handle.Asset, Err: err}
	}

	c.logger.Info("media post created", "post_id", post.ID, "author", authorURN, "asset", handle.Asset, "kind", kind)
	return post, nil
}

// CreateArticlePost shares an external article or link. No upload phase.
func (c *Client) CreateArticlePost(ctx context.Context, req *ArticlePostRequest) (*Post, error) {
	if req.Text == "" || req.ArticleURL == "" {
		return nil, validationErrorf("missing required parameters: text and articleUrl")
	}

	authorURN, err := c.ResolveAuthor(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	title := req.ArticleTitle
	if title == "" {
		title = "Shared Article"
	}
	media := []shareMedia{{
		status:      "READY",
		description: req.ArticleDescription,
		originalURL: req.ArticleURL,
		title:       title,
	}}

	post, err := c.createPost(ctx, sharePayload(authorURN, req.Text, req.Visibility, categoryArticle, media))
	if err != nil {
		c.logger.Error("failed to create article post", "error", err)
		return nil, err
	}

	c.logger.Info("article post created", "post_id", post.ID, "author", authorURN)
	return post, nil
}
