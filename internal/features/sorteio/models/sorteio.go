package models

import (
	"fmt"
	"sort"
	"time"

	"sorteios-backend/internal/common/validation"
)

// SorteioStatus represents the lifecycle status of a sorteio.
type SorteioStatus string

const (
	StatusRascunho   SorteioStatus = "rascunho"   // draft, not yet announced
	StatusAtivo      SorteioStatus = "ativo"      // live message published
	StatusFinalizado SorteioStatus = "finalizado" // winners drawn
	StatusCancelado  SorteioStatus = "cancelado"
)

// DraftID is the sentinel the dashboard uses for a sorteio that was never saved.
const DraftID = "new"

// TipoPremiacao selects how winners receive their prize announcement.
type TipoPremiacao string

const (
	PremiacaoManual     TipoPremiacao = "sem-automatica" // operator announces manually
	PremiacaoAutomatica TipoPremiacao = "automatica"     // bot delivers MensagemPremiacao privately
)

// ValidationError is a field-scoped validation failure raised before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s: %s", e.Field, e.Reason)
}

// Participante is one user who joined a sorteio. Entries are created by the
// bot-side join handler and never mutated afterwards.
type Participante struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	Avatar       string    `json:"avatar,omitempty"`
	ParticipouEm time.Time `json:"participouEm"`
}

// Sorteio is one prize drawing campaign.
type Sorteio struct {
	ID      string `json:"id"`
	BotID   string `json:"bot_id"`
	GuildID string `json:"guild_id"`

	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Banner    string `json:"banner,omitempty"`

	// ChannelID and MessageID together identify the live announcement
	// message. They are set and cleared as a pair; a MessageID without the
	// channel that owns it is invalid.
	ChannelID string `json:"channelId,omitempty"`
	MessageID string `json:"messageId,omitempty"`

	DataInicio *time.Time `json:"dataInicio,omitempty"`
	DataFim    *time.Time `json:"dataFim,omitempty"`

	Vencedores       int `json:"vencedores"`
	MaxParticipantes int `json:"maxParticipantes"` // 0 = unlimited

	Requisitos Requisitos `json:"requisitos"`

	BotaoLabel string `json:"botaoLabel,omitempty"`
	BotaoEmoji string `json:"botaoEmoji,omitempty"`
	BotaoCor   string `json:"botaoCor,omitempty"`
	EmbedColor string `json:"embedColor,omitempty"`

	TipoPremiacao     TipoPremiacao `json:"tipoPremiacao"`
	MensagemPremiacao string        `json:"mensagemPremiacao,omitempty"`

	Status SorteioStatus `json:"status"`

	Participantes []Participante `json:"participantes"`
	VencedoresIDs []string       `json:"vencedoresIds,omitempty"`
	SorteadoEm    *time.Time     `json:"sorteadoEm,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the fields that must be consistent on every save.
func (s *Sorteio) Validate() error {
	if err := validation.ValidateNome(s.Nome); err != nil {
		return &ValidationError{Field: "nome", Reason: err.Error()}
	}
	if err := validation.ValidateDescricao(s.Descricao); err != nil {
		return &ValidationError{Field: "descricao", Reason: err.Error()}
	}
	if s.Vencedores < 1 {
		return &ValidationError{Field: "vencedores", Reason: "deve ser no minimo 1"}
	}
	if s.MaxParticipantes < 0 {
		return &ValidationError{Field: "maxParticipantes", Reason: "nao pode ser negativo"}
	}
	if s.MaxParticipantes > 0 && s.Vencedores > s.MaxParticipantes {
		return &ValidationError{Field: "vencedores", Reason: "nao pode exceder maxParticipantes"}
	}
	if s.DataInicio != nil && s.DataFim != nil && !s.DataFim.After(*s.DataInicio) {
		return &ValidationError{Field: "dataFim", Reason: "deve ser posterior a dataInicio"}
	}
	if err := validation.ValidateHexColor(s.EmbedColor); err != nil {
		return &ValidationError{Field: "embedColor", Reason: err.Error()}
	}
	if err := validation.ValidateButtonColor(s.BotaoCor); err != nil {
		return &ValidationError{Field: "botaoCor", Reason: err.Error()}
	}
	switch s.TipoPremiacao {
	case "", PremiacaoManual, PremiacaoAutomatica:
	default:
		return &ValidationError{Field: "tipoPremiacao", Reason: "valor invalido"}
	}
	return s.Requisitos.Validate()
}

// ValidatePublish checks the preconditions for announcing the sorteio.
// These are the fields the live message cannot be built without.
func (s *Sorteio) ValidatePublish() error {
	if s.Nome == "" {
		return &ValidationError{Field: "nome", Reason: "obrigatorio antes de publicar"}
	}
	if s.DataInicio == nil {
		return &ValidationError{Field: "dataInicio", Reason: "obrigatorio antes de publicar"}
	}
	if s.DataFim == nil {
		return &ValidationError{Field: "dataFim", Reason: "obrigatorio antes de publicar"}
	}
	if s.ChannelID == "" {
		return &ValidationError{Field: "channelId", Reason: "obrigatorio antes de publicar"}
	}
	return nil
}

// HasMessage reports whether a live message was already published.
func (s *Sorteio) HasMessage() bool {
	return s.MessageID != ""
}

// SetMessage records the published message handle. Channel and message are
// always updated together.
func (s *Sorteio) SetMessage(channelID, messageID string) {
	s.ChannelID = channelID
	s.MessageID = messageID
}

// IsVencedor reports whether the given user was drawn as a winner.
func (s *Sorteio) IsVencedor(userID string) bool {
	for _, id := range s.VencedoresIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ParticipantesOrdenados returns the participants sorted by join time,
// most recent first. The receiver's slice is not modified.
func (s *Sorteio) ParticipantesOrdenados() []Participante {
	out := make([]Participante, len(s.Participantes))
	copy(out, s.Participantes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParticipouEm.After(out[j].ParticipouEm)
	})
	return out
}

// Clone returns a deep copy, used by the draft editor so form edits never
// alias the last saved entity.
func (s *Sorteio) Clone() *Sorteio {
	out := *s
	if s.DataInicio != nil {
		t := *s.DataInicio
		out.DataInicio = &t
	}
	if s.DataFim != nil {
		t := *s.DataFim
		out.DataFim = &t
	}
	if s.SorteadoEm != nil {
		t := *s.SorteadoEm
		out.SorteadoEm = &t
	}
	out.Participantes = append([]Participante(nil), s.Participantes...)
	out.VencedoresIDs = append([]string(nil), s.VencedoresIDs...)
	out.Requisitos = s.Requisitos.Clone()
	return &out
}

// NewDraft returns an unsaved sorteio with template defaults.
func NewDraft(botID, guildID string) *Sorteio {
	return &Sorteio{
		ID:            DraftID,
		BotID:         botID,
		GuildID:       guildID,
		Vencedores:    1,
		Status:        StatusRascunho,
		TipoPremiacao: PremiacaoManual,
		BotaoLabel:    "Participar",
		Requisitos:    NewRequisitos(),
		Participantes: []Participante{},
	}
}
