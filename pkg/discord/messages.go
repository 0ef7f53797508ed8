package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/pkg/errors"
)

// MessageRequest carries the message payload fields the proxy forwards.
// Embeds and components pass through undecoded.
type MessageRequest struct {
	Content    string          `json:"content,omitempty"`
	Embeds     json.RawMessage `json:"embeds,omitempty"`
	Components json.RawMessage `json:"components,omitempty"`
}

// MediaFile is one uploaded attachment relayed to the platform.
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (r *MessageRequest) payload() map[string]any {
	payload := map[string]any{}
	if r.Content != "" {
		payload["content"] = r.Content
	}
	if len(r.Embeds) > 0 {
		payload["embeds"] = r.Embeds
	}
	if len(r.Components) > 0 {
		payload["components"] = r.Components
	}
	return payload
}

func (c *Client) SendMessage(ctx context.Context, channelID string, req *MessageRequest) (map[string]any, error) {
	result, err := c.send(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID), req.payload())
	if err != nil {
		return nil, err
	}
	c.logger.Info("message sent", "channel_id", channelID)
	return result, nil
}

// SendMessageWithMedia relays attachments as a multipart request: the message
// payload travels in a payload_json part, each file in a files[i] part.
func (c *Client) SendMessageWithMedia(ctx context.Context, channelID string, req *MessageRequest, files []MediaFile) (map[string]any, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	payloadJSON, err := json.Marshal(req.payload())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message payload")
	}
	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		return nil, errors.Wrap(err, "failed to write payload part")
	}

	for i, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[%d]"; filename="%s"`, i, file.Name))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create file part")
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, errors.Wrap(err, "failed to write file part")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize multipart body")
	}

	var result map[string]any
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	if err := c.rest.Raw(ctx, http.MethodPost, path, &body, writer.FormDataContentType(), &result); err != nil {
		return nil, err
	}

	c.logger.Info("message with media sent", "channel_id", channelID, "files", len(files))
	return result, nil
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID string, req *MessageRequest) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), req.payload())
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return c.delete(ctx, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID))
}
