package discord

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/novalink/novalink-backend/pkg/config"
	"github.com/novalink/novalink-backend/pkg/platform"
)

// botAuthorizer authenticates with the bot token scheme.
type botAuthorizer struct {
	token string
}

func (a botAuthorizer) Add(req *http.Request) {
	req.Header.Set("Authorization", "Bot "+a.token)
}

// Client is a thin proxy over the Discord bot REST API. Every operation is a
// single request/response round trip with no orchestration state; responses
// are returned to the caller as the platform sent them.
type Client struct {
	rest   *platform.Client
	logger *log.Logger
}

func NewClient(cfg *config.Config, logger *log.Logger) *Client {
	return &Client{
		rest:   platform.NewClient(cfg.DiscordAPIBase, botAuthorizer{token: cfg.DiscordBotToken}, logger),
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, path string) (map[string]any, error) {
	var out map[string]any
	if err := c.rest.JSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.rest.JSON(ctx, method, path, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.rest.JSON(ctx, http.MethodDelete, path, nil, nil)
}
