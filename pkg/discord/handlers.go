package discord

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"

	"github.com/novalink/novalink-backend/pkg/httpapi"
)

const (
	maxMediaBytes = 25 << 20
	maxMediaFiles = 10
)

type Handler struct {
	client *Client
	logger *log.Logger
}

func NewHandler(client *Client, logger *log.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.apiInfo)

	r.Post("/messages/send", h.sendMessage)
	r.Post("/messages/send-media", h.sendMessageWithMedia)
	r.Patch("/messages/{channelId}/{messageId}", h.editMessage)
	r.Delete("/messages/{channelId}/{messageId}", h.deleteMessage)

	r.Post("/channels/create", h.createChannel)
	r.Get("/channels/{channelId}", h.getChannel)
	r.Patch("/channels/{channelId}", h.updateChannel)
	r.Delete("/channels/{channelId}", h.deleteChannel)

	r.Get("/guilds/{guildId}", h.getGuild)
	r.Patch("/guilds/{guildId}", h.updateGuild)
	r.Get("/guilds/{guildId}/channels", h.getGuildChannels)
	r.Post("/guilds/{guildId}/roles", h.createRole)
	r.Patch("/guilds/{guildId}/roles/{roleId}", h.updateRole)
	r.Delete("/guilds/{guildId}/roles/{roleId}", h.deleteRole)

	r.Get("/guilds/{guildId}/members/{userId}", h.getGuildMember)
	r.Patch("/guilds/{guildId}/members/{userId}", h.updateGuildMember)
	r.Delete("/guilds/{guildId}/members/{userId}", h.kickMember)
	r.Put("/guilds/{guildId}/bans/{userId}", h.banMember)
	r.Delete("/guilds/{guildId}/bans/{userId}", h.unbanMember)

	return r
}

func (h *Handler) apiInfo(w http.ResponseWriter, r *http.Request) {
	httpapi.OK(w, "NovaLink Discord API", map[string]any{
		"version": "1.0.0",
		"endpoints": map[string]any{
			"messages": []string{
				"POST /messages/send",
				"POST /messages/send-media",
				"PATCH /messages/{channelId}/{messageId}",
				"DELETE /messages/{channelId}/{messageId}",
			},
			"channels": []string{
				"POST /channels/create",
				"GET /channels/{channelId}",
				"PATCH /channels/{channelId}",
				"DELETE /channels/{channelId}",
			},
			"guilds": []string{
				"GET /guilds/{guildId}",
				"PATCH /guilds/{guildId}",
				"GET /guilds/{guildId}/channels",
			},
			"roles": []string{
				"POST /guilds/{guildId}/roles",
				"PATCH /guilds/{guildId}/roles/{roleId}",
				"DELETE /guilds/{guildId}/roles/{roleId}",
			},
			"members": []string{
				"GET /guilds/{guildId}/members/{userId}",
				"PATCH /guilds/{guildId}/members/{userId}",
				"DELETE /guilds/{guildId}/members/{userId}",
				"PUT /guilds/{guildId}/bans/{userId}",
				"DELETE /guilds/{guildId}/bans/{userId}",
			},
		},
	})
}

func decodeBody(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// pick copies the named keys from a decoded request body, skipping absent
// ones so partial updates only carry what the caller provided.
func pick(body map[string]any, keys ...string) map[string]any {
	payload := map[string]any{}
	for _, key := range keys {
		if value, ok := body[key]; ok {
			payload[key] = value
		}
	}
	return payload
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID string `json:"channelId"`
		MessageRequest
	}
	if err := decodeBody(r, &req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.ChannelID == "" || req.Content == "" {
		httpapi.Fail(w, http.StatusBadRequest, "channelId and content are required", "")
		return
	}

	result, err := h.client.SendMessage(r.Context(), req.ChannelID, &req.MessageRequest)
	if err != nil {
		httpapi.FailFromErr(w, "Failed to send message", err)
		return
	}
	httpapi.OK(w, "Message sent successfully", result)
}

func (h *Handler) sendMessageWithMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMediaBytes); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid multipart request", err.Error())
		return
	}

	channelID := r.FormValue("channelId")
	if channelID == "" {
		httpapi.Fail(w, http.StatusBadRequest, "channelId is required", "")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		httpapi.Fail(w, http.StatusBadRequest, "At least one file is required", "")
		return
	}
	if len(fileHeaders) > maxMediaFiles {
		fileHeaders = fileHeaders[:maxMediaFiles]
	}

	files := make([]MediaFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			httpapi.Fail(w, http.StatusBadRequest, "Failed to read uploaded file", err.Error())
			return
		}
		data, err := io.ReadAll(file)
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Error("failed to close uploaded file", "error", closeErr)
		}
		if err != nil {
			httpapi.Fail(w, http.StatusBadRequest, "Failed to read uploaded file", err.Error())
			return
		}
		files = append(files, MediaFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	msg := MessageRequest{Content: r.FormValue("content")}
	if embeds := r.FormValue("embeds"); embeds != "" {
		msg.Embeds = json.RawMessage(embeds)
	}
	if components := r.FormValue("components"); components != "" {
		msg.Components = json.RawMessage(components)
	}

	result, err := h.client.SendMessageWithMedia(r.Context(), channelID, &msg, files)
	if err != nil {
		httpapi.FailFromErr(w, "Failed to send message with media", err)
		return
	}
	httpapi.OK(w, "Message with media sent successfully", result)
}

func (h *Handler) editMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := decodeBody(r, &req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.client.EditMessage(r.Context(), chi.URLParam(r, "channelId"), chi.URLParam(r, "messageId"), &req)
	if err != nil {
		httpapi.FailFromErr(w, "Failed to edit message", err)
		return
	}
	httpapi.OK(w, "Message edited successfully", result)
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteMessage(r.Context(), chi.URLParam(r, "channelId"), chi.URLParam(r, "messageId")); err != nil {
		httpapi.FailFromErr(w, "Failed to delete message", err)
		return
	}
	httpapi.OK(w, "Message deleted successfully", nil)
}

func (h *Handler) createChannel(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	guildID, _ := body["guildId"].(string)
	name, _ := body["name"].(string)
	if guildID == "" || name == "" {
		httpapi.Fail(w, http.StatusBadRequest, "guildId and name are required", "")
		return
	}

	result, err := h.client.CreateChannel(r.Context(), guildID, pick(body, "name", "type", "topic", "parent_id"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to create channel", err)
		return
	}
	httpapi.OK(w, "Channel created successfully", result)
}

func (h *Handler) getChannel(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.GetChannel(r.Context(), chi.URLParam(r, "channelId"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to get channel", err)
		return
	}
	httpapi.OK(w, "Channel retrieved successfully", result)
}

func (h *Handler) updateChannel(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.client.UpdateChannel(r.Context(), chi.URLParam(r, "channelId"), pick(body, "name", "topic", "nsfw", "parent_id"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to update channel", err)
		return
	}
	httpapi.OK(w, "Channel updated successfully", result)
}

func (h *Handler) deleteChannel(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteChannel(r.Context(), chi.URLParam(r, "channelId")); err != nil {
		httpapi.FailFromErr(w, "Failed to delete channel", err)
		return
	}
	httpapi.OK(w, "Channel deleted successfully", nil)
}

func (h *Handler) getGuild(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.GetGuild(r.Context(), chi.URLParam(r, "guildId"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to get guild", err)
		return
	}
	httpapi.OK(w, "Guild retrieved successfully", result)
}

func (h *Handler) updateGuild(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.client.UpdateGuild(r.Context(), chi.URLParam(r, "guildId"), pick(body, "name", "description", "verification_level"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to update guild", err)
		return
	}
	httpapi.OK(w, "Guild updated successfully", result)
}

func (h *Handler) getGuildChannels(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.GetGuildChannels(r.Context(), chi.URLParam(r, "guildId"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to get guild channels", err)
		return
	}
	httpapi.OK(w, "Guild channels retrieved successfully", result)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.client.CreateRole(r.Context(), chi.URLParam(r, "guildId"), pick(body, "name", "color", "permissions", "hoist", "mentionable"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to create role", err)
		return
	}
	httpapi.OK(w, "Role created successfully", result)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.client.UpdateRole(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "roleId"),
		pick(body, "name", "color", "permissions", "hoist", "mentionable"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to update role", err)
		return
	}
	httpapi.OK(w, "Role updated successfully", result)
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteRole(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "roleId")); err != nil {
		httpapi.FailFromErr(w, "Failed to delete role", err)
		return
	}
	httpapi.OK(w, "Role deleted successfully", nil)
}

func (h *Handler) getGuildMember(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.GetGuildMember(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "userId"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to get member", err)
		return
	}
	httpapi.OK(w, "Member retrieved successfully", result)
}

func (h *Handler) updateGuildMember(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.client.UpdateGuildMember(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "userId"),
		pick(body, "nick", "roles", "mute", "deaf"))
	if err != nil {
		httpapi.FailFromErr(w, "Failed to update member", err)
		return
	}
	httpapi.OK(w, "Member updated successfully", result)
}

func (h *Handler) kickMember(w http.ResponseWriter, r *http.Request) {
	if err := h.client.KickMember(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "userId")); err != nil {
		httpapi.FailFromErr(w, "Failed to kick member", err)
		return
	}
	httpapi.OK(w, "Member kicked successfully", nil)
}

func (h *Handler) banMember(w http.ResponseWriter, r *http.Request) {
	deleteMessageDays := -1
	var body struct {
		DeleteMessageDays *int `json:"deleteMessageDays"`
	}
	if err := decodeBody(r, &body); err == nil && body.DeleteMessageDays != nil {
		deleteMessageDays = *body.DeleteMessageDays
	}

	if err := h.client.BanMember(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "userId"), deleteMessageDays); err != nil {
		httpapi.FailFromErr(w, "Failed to ban member", err)
		return
	}
	httpapi.OK(w, "Member banned successfully", nil)
}

func (h *Handler) unbanMember(w http.ResponseWriter, r *http.Request) {
	if err := h.client.UnbanMember(r.Context(), chi.URLParam(r, "guildId"), chi.URLParam(r, "userId")); err != nil {
		httpapi.FailFromErr(w, "Failed to unban member", err)
		return
	}
	httpapi.OK(w, "Member unbanned successfully", nil)
}
