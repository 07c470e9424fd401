package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/models/dto"
)

// APIError is a non-2xx answer from the backend. Message carries the
// store-side rejection verbatim when the body was a well-formed {error}
// object, and a generic transport description otherwise.
type APIError struct {
	Status  int
	Message string
	// Generic is true when the body was not a parseable {error} object and
	// Message is synthesized from the HTTP status.
	Generic bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is the typed REST client the dashboard core talks to the sorteio
// backend with. All calls are scoped to one bot/guild pair.
type Client struct {
	httpClient *http.Client
	baseURL    string
	botID      string
	guildID    string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, usually to install a
// cookie jar carrying the dashboard session.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(baseURL, botID, guildID string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		botID:      botID,
		guildID:    guildID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) scopeQuery() url.Values {
	q := url.Values{}
	q.Set("bot_id", c.botID)
	q.Set("guild_id", c.guildID)
	return q
}

// List fetches every sorteio of the guild.
func (c *Client) List(ctx context.Context) ([]*models.Sorteio, error) {
	var out dto.SorteiosResponse
	if err := c.do(ctx, http.MethodGet, "/sorteios", c.scopeQuery(), nil, &out); err != nil {
		return nil, err
	}
	return out.Sorteios, nil
}

// Get refreshes one sorteio, including its participant list.
func (c *Client) Get(ctx context.Context, id string) (*models.Sorteio, error) {
	var out dto.SorteioResponse
	if err := c.do(ctx, http.MethodGet, "/sorteios/"+id, c.scopeQuery(), nil, &out); err != nil {
		return nil, err
	}
	return out.Sorteio, nil
}

// Create persists a new sorteio and returns the stored entity with its
// assigned identifier.
func (c *Client) Create(ctx context.Context, sorteio *models.Sorteio) (*models.Sorteio, error) {
	body := dto.SorteioCreateRequest{
		BotID:             c.botID,
		GuildID:           c.guildID,
		Nome:              sorteio.Nome,
		Descricao:         sorteio.Descricao,
		Icon:              sorteio.Icon,
		Banner:            sorteio.Banner,
		ChannelID:         sorteio.ChannelID,
		DataInicio:        sorteio.DataInicio,
		DataFim:           sorteio.DataFim,
		Vencedores:        sorteio.Vencedores,
		MaxParticipantes:  sorteio.MaxParticipantes,
		Requisitos:        &sorteio.Requisitos,
		BotaoLabel:        sorteio.BotaoLabel,
		BotaoEmoji:        sorteio.BotaoEmoji,
		BotaoCor:          sorteio.BotaoCor,
		EmbedColor:        sorteio.EmbedColor,
		TipoPremiacao:     sorteio.TipoPremiacao,
		MensagemPremiacao: sorteio.MensagemPremiacao,
	}

	var out dto.SorteioResponse
	if err := c.do(ctx, http.MethodPost, "/sorteios", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Sorteio, nil
}

// Update pushes the editable fields of the draft onto the stored entity.
func (c *Client) Update(ctx context.Context, id string, sorteio *models.Sorteio) (*models.Sorteio, error) {
	body := dto.SorteioUpdateRequest{
		Nome:              &sorteio.Nome,
		Descricao:         &sorteio.Descricao,
		Icon:              &sorteio.Icon,
		Banner:            &sorteio.Banner,
		ChannelID:         &sorteio.ChannelID,
		DataInicio:        sorteio.DataInicio,
		DataFim:           sorteio.DataFim,
		Vencedores:        &sorteio.Vencedores,
		MaxParticipantes:  &sorteio.MaxParticipantes,
		Requisitos:        &sorteio.Requisitos,
		BotaoLabel:        &sorteio.BotaoLabel,
		BotaoEmoji:        &sorteio.BotaoEmoji,
		BotaoCor:          &sorteio.BotaoCor,
		EmbedColor:        &sorteio.EmbedColor,
		TipoPremiacao:     &sorteio.TipoPremiacao,
		MensagemPremiacao: &sorteio.MensagemPremiacao,
	}

	var out dto.SorteioResponse
	if err := c.do(ctx, http.MethodPatch, "/sorteios/"+id, c.scopeQuery(), body, &out); err != nil {
		return nil, err
	}
	return out.Sorteio, nil
}

// Delete removes a sorteio.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sorteios/"+id, c.scopeQuery(), nil, nil)
}

// Publicar asks the backend to create or resync the announcement message on
// the given channel.
func (c *Client) Publicar(ctx context.Context, id, channelID string) (*models.Sorteio, error) {
	body := dto.PostarRequest{
		BotID:     c.botID,
		GuildID:   c.guildID,
		ChannelID: channelID,
	}

	var out dto.SorteioResponse
	if err := c.do(ctx, http.MethodPost, "/sorteios/"+id+"/postar", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Sorteio, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
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
		var errBody dto.ErrorResponse
		if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: errBody.Error}
		}
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected response (%s)", http.StatusText(resp.StatusCode)),
			Generic: true,
		}
	}

	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
