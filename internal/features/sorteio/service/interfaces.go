package service

import (
	"context"

	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/platform/discord"
)

// Publisher is the slice of the platform client the publish protocol uses.
type Publisher interface {
	CreateMessage(ctx context.Context, channelID string, payload discord.MessagePayload) (*discord.Message, error)
	EditMessage(ctx context.Context, channelID, messageID string, payload discord.MessagePayload) (*discord.Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// CargoValidator checks requirement role lists against the community's role
// directory.
type CargoValidator interface {
	ValidateCargos(ctx context.Context, guildID string, cargoIDs []string) error
}

// SorteioService owns the sorteio lifecycle on the store side: CRUD,
// announcement publishing and candidate evaluation.
type SorteioService interface {
	List(ctx context.Context, botID, guildID string) ([]*models.Sorteio, error)
	GetByID(ctx context.Context, botID, guildID, id string) (*models.Sorteio, error)
	Create(ctx context.Context, sorteio *models.Sorteio) (*models.Sorteio, error)
	Update(ctx context.Context, botID, guildID, id string, apply func(*models.Sorteio)) (*models.Sorteio, error)
	Delete(ctx context.Context, botID, guildID, id string) error

	// Publicar runs the create-or-edit announcement protocol. channelID may
	// be empty, in which case the entity's stored channel is used.
	Publicar(ctx context.Context, botID, guildID, id, channelID string) (*models.Sorteio, error)

	// Verificar evaluates a candidate against the stored requirements.
	Verificar(ctx context.Context, botID, guildID, id string, candidato models.Candidato) (models.Decision, error)
}
