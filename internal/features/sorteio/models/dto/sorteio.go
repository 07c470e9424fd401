package dto

import (
	"time"

	"sorteios-backend/internal/features/sorteio/models"
)

// SorteioCreateRequest is the body of POST /sorteios.
type SorteioCreateRequest struct {
	BotID   string `json:"bot_id" binding:"required"`
	GuildID string `json:"guild_id" binding:"required"`

	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao"`
	Icon      string `json:"icon"`
	Banner    string `json:"banner"`

	ChannelID  string     `json:"channelId"`
	DataInicio *time.Time `json:"dataInicio"`
	DataFim    *time.Time `json:"dataFim"`

	Vencedores       int `json:"vencedores"`
	MaxParticipantes int `json:"maxParticipantes"`

	Requisitos *models.Requisitos `json:"requisitos"`

	BotaoLabel string `json:"botaoLabel"`
	BotaoEmoji string `json:"botaoEmoji"`
	BotaoCor   string `json:"botaoCor"`
	EmbedColor string `json:"embedColor"`

	TipoPremiacao     models.TipoPremiacao `json:"tipoPremiacao"`
	MensagemPremiacao string               `json:"mensagemPremiacao"`
}

// ToModel builds the entity a create request describes. Identifier, status
// and timestamps are assigned by the service.
func (r *SorteioCreateRequest) ToModel() *models.Sorteio {
	s := models.NewDraft(r.BotID, r.GuildID)
	s.Nome = r.Nome
	s.Descricao = r.Descricao
	s.Icon = r.Icon
	s.Banner = r.Banner
	s.ChannelID = r.ChannelID
	s.DataInicio = r.DataInicio
	s.DataFim = r.DataFim
	if r.Vencedores > 0 {
		s.Vencedores = r.Vencedores
	}
	s.MaxParticipantes = r.MaxParticipantes
	if r.Requisitos != nil {
		s.Requisitos = r.Requisitos.Clone()
	}
	if r.BotaoLabel != "" {
		s.BotaoLabel = r.BotaoLabel
	}
	s.BotaoEmoji = r.BotaoEmoji
	s.BotaoCor = r.BotaoCor
	s.EmbedColor = r.EmbedColor
	if r.TipoPremiacao != "" {
		s.TipoPremiacao = r.TipoPremiacao
	}
	s.MensagemPremiacao = r.MensagemPremiacao
	return s
}

// SorteioUpdateRequest is the body of PATCH /sorteios/{id}. Nil fields are
// left untouched on the stored entity.
type SorteioUpdateRequest struct {
	Nome      *string `json:"nome,omitempty"`
	Descricao *string `json:"descricao,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	Banner    *string `json:"banner,omitempty"`

	ChannelID  *string    `json:"channelId,omitempty"`
	DataInicio *time.Time `json:"dataInicio,omitempty"`
	DataFim    *time.Time `json:"dataFim,omitempty"`

	Vencedores       *int `json:"vencedores,omitempty"`
	MaxParticipantes *int `json:"maxParticipantes,omitempty"`

	Requisitos *models.Requisitos `json:"requisitos,omitempty"`

	BotaoLabel *string `json:"botaoLabel,omitempty"`
	BotaoEmoji *string `json:"botaoEmoji,omitempty"`
	BotaoCor   *string `json:"botaoCor,omitempty"`
	EmbedColor *string `json:"embedColor,omitempty"`

	TipoPremiacao     *models.TipoPremiacao `json:"tipoPremiacao,omitempty"`
	MensagemPremiacao *string               `json:"mensagemPremiacao,omitempty"`
}

// Apply copies the non-nil fields onto the entity. Participants, winner
// bookkeeping and the message handle are never writable through updates.
func (r *SorteioUpdateRequest) Apply(s *models.Sorteio) {
	if r.Nome != nil {
		s.Nome = *r.Nome
	}
	if r.Descricao != nil {
		s.Descricao = *r.Descricao
	}
	if r.Icon != nil {
		s.Icon = *r.Icon
	}
	if r.Banner != nil {
		s.Banner = *r.Banner
	}
	if r.ChannelID != nil {
		s.ChannelID = *r.ChannelID
	}
	if r.DataInicio != nil {
		t := *r.DataInicio
		s.DataInicio = &t
	}
	if r.DataFim != nil {
		t := *r.DataFim
		s.DataFim = &t
	}
	if r.Vencedores != nil {
		s.Vencedores = *r.Vencedores
	}
	if r.MaxParticipantes != nil {
		s.MaxParticipantes = *r.MaxParticipantes
	}
	if r.Requisitos != nil {
		s.Requisitos = r.Requisitos.Clone()
	}
	if r.BotaoLabel != nil {
		s.BotaoLabel = *r.BotaoLabel
	}
	if r.BotaoEmoji != nil {
		s.BotaoEmoji = *r.BotaoEmoji
	}
	if r.BotaoCor != nil {
		s.BotaoCor = *r.BotaoCor
	}
	if r.EmbedColor != nil {
		s.EmbedColor = *r.EmbedColor
	}
	if r.TipoPremiacao != nil {
		s.TipoPremiacao = *r.TipoPremiacao
	}
	if r.MensagemPremiacao != nil {
		s.MensagemPremiacao = *r.MensagemPremiacao
	}
}

// PostarRequest is the body of POST /sorteios/{id}/postar.
type PostarRequest struct {
	BotID     string `json:"bot_id" binding:"required"`
	GuildID   string `json:"guild_id" binding:"required"`
	ChannelID string `json:"channelId"`
}

// SorteioResponse wraps a single entity.
type SorteioResponse struct {
	Sorteio *models.Sorteio `json:"sorteio"`
}

// SorteiosResponse wraps a listing.
type SorteiosResponse struct {
	Sorteios []*models.Sorteio `json:"sorteios"`
}

// ErrorResponse is the error body every endpoint may return.
type ErrorResponse struct {
	Error string `json:"error"`
}
