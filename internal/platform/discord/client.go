package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sorteios-backend/internal/common/logger"
)

const defaultAPIBase = "https://discord.com/api/v10"

// API error codes the publish protocol cares about.
const (
	codeUnknownMessage = 10008
	codeUnknownChannel = 10003
)

// Client is a minimal bot-API client covering the surface the dashboard
// needs: guild directory reads and channel message create/edit/delete.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	logger     zerolog.Logger
}

// APIError is a non-2xx response from the platform.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform API error %d (code %d): %s", e.Status, e.Code, e.Message)
}

// IsUnknownMessage reports whether the error means the referenced message no
// longer exists (or never existed in the given channel).
func IsUnknownMessage(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeUnknownMessage || apiErr.Status == http.StatusNotFound
}

// IsUnknownChannel reports whether the error means the target channel does
// not exist or is not visible to the bot.
func IsUnknownChannel(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeUnknownChannel
}

// Channel is a guild channel as returned by the platform.
type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Position int    `json:"position"`
}

// Role is a guild role as returned by the platform.
type Role struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Position int    `json:"position"`
	Managed  bool   `json:"managed"`
}

// Message identifies a channel message.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

// EmbedImage references an image by URL.
type EmbedImage struct {
	URL string `json:"url"`
}

// Embed is the rich block of the announcement message.
type Embed struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Color       int         `json:"color,omitempty"`
	Image       *EmbedImage `json:"image,omitempty"`
	Thumbnail   *EmbedImage `json:"thumbnail,omitempty"`
}

// Emoji decorates a button.
type Emoji struct {
	Name string `json:"name"`
}

// Button is an interactive message component.
type Button struct {
	Type     int    `json:"type"` // 2 = button
	Style    int    `json:"style"`
	Label    string `json:"label,omitempty"`
	Emoji    *Emoji `json:"emoji,omitempty"`
	CustomID string `json:"custom_id"`
}

// ActionRow groups buttons on a message.
type ActionRow struct {
	Type       int      `json:"type"` // 1 = action row
	Components []Button `json:"components"`
}

// MessagePayload is the body for message create and edit calls. Edits send
// the full payload so repeated syncs converge the message to the latest
// field values.
type MessagePayload struct {
	Content    string      `json:"content,omitempty"`
	Embeds     []Embed     `json:"embeds"`
	Components []ActionRow `json:"components"`
}

func NewClient(token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultAPIBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
		baseURL:    baseURL,
		logger:     logger.With("discord_client"),
	}
}

// GuildChannels lists the channels of a guild.
func (c *Client) GuildChannels(ctx context.Context, guildID string) ([]Channel, error) {
	var channels []Channel
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%s/channels", guildID), nil, &channels); err != nil {
		return nil, fmt.Errorf("failed to list guild channels: %w", err)
	}
	return channels, nil
}

// GuildRoles lists the roles of a guild.
func (c *Client) GuildRoles(ctx context.Context, guildID string) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%s/roles", guildID), nil, &roles); err != nil {
		return nil, fmt.Errorf("failed to list guild roles: %w", err)
	}
	return roles, nil
}

// CreateMessage posts a new message to a channel.
func (c *Client) CreateMessage(ctx context.Context, channelID string, payload MessagePayload) (*Message, error) {
	c.logger.Debug().Str("channel_id", channelID).Msg("creating message")

	var msg Message
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID), payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessage rewrites an existing message in place.
func (c *Client) EditMessage(ctx context.Context, channelID, messageID string, payload MessagePayload) (*Message, error) {
	c.logger.Debug().Str("channel_id", channelID).Str("message_id", messageID).Msg("editing message")

	var msg Message
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	if err := c.do(ctx, http.MethodPatch, path, payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage removes a message. Callers treat failures as best-effort.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
