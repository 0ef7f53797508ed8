package discord

import (
	"context"
	"fmt"
	"net/http"
)

// Channel, guild, role and member operations. Each forwards the caller's
// fields to the corresponding platform endpoint; partial update payloads
// only carry the fields the caller provided.

func (c *Client) CreateChannel(ctx context.Context, guildID string, payload map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/guilds/%s/channels", guildID), payload)
}

func (c *Client) GetChannel(ctx context.Context, channelID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/channels/%s", channelID))
}

func (c *Client) UpdateChannel(ctx context.Context, channelID string, payload map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/channels/%s", channelID), payload)
}

func (c *Client) DeleteChannel(ctx context.Context, channelID string) error {
	return c.delete(ctx, fmt.Sprintf("/channels/%s", channelID))
}

func (c *Client) GetGuild(ctx context.Context, guildID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/guilds/%s", guildID))
}

func (c *Client) UpdateGuild(ctx context.Context, guildID string, payload map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/guilds/%s", guildID), payload)
}

func (c *Client) GetGuildChannels(ctx context.Context, guildID string) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.rest.JSON(ctx, http.MethodGet, fmt.Sprintf("/guilds/%s/channels", guildID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRole(ctx context.Context, guildID string, payload map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/guilds/%s/roles", guildID), payload)
}

func (c *Client) UpdateRole(ctx context.Context, guildID, roleID string, payload map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/guilds/%s/roles/%s", guildID, roleID), payload)
}

func (c *Client) DeleteRole(ctx context.Context, guildID, roleID string) error {
	return c.delete(ctx, fmt.Sprintf("/guilds/%s/roles/%s", guildID, roleID))
}

func (c *Client) GetGuildMember(ctx context.Context, guildID, userID string) (map[string]any, error) {
	return c.get(ctx, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID))
}

func (c *Client) UpdateGuildMember(ctx context.Context, guildID, userID string, payload map[string]any) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), payload)
}

func (c *Client) KickMember(ctx context.Context, guildID, userID string) error {
	return c.delete(ctx, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID))
}

// BanMember optionally prunes recent messages; deleteMessageDays is ignored
// when negative.
func (c *Client) BanMember(ctx context.Context, guildID, userID string, deleteMessageDays int) error {
	payload := map[string]any{}
	if deleteMessageDays >= 0 {
		payload["delete_message_days"] = deleteMessageDays
	}
	return c.rest.JSON(ctx, http.MethodPut, fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID), payload, nil)
}

func (c *Client) UnbanMember(ctx context.Context, guildID, userID string) error {
	return c.delete(ctx, fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID))
}
