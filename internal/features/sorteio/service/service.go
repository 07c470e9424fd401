package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "sorteios-backend/internal/common/errors"
	"sorteios-backend/internal/common/logger"
	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/repository"
)

type sorteioService struct {
	repo      repository.SorteioRepository
	publisher Publisher
	cargos    CargoValidator
	logger    zerolog.Logger
}

func NewSorteioService(repo repository.SorteioRepository, publisher Publisher, cargos CargoValidator) SorteioService {
	return &sorteioService{
		repo:      repo,
		publisher: publisher,
		cargos:    cargos,
		logger:    logger.With("sorteio_service"),
	}
}

func (s *sorteioService) List(ctx context.Context, botID, guildID string) ([]*models.Sorteio, error) {
	sorteios, err := s.repo.ListByGuild(ctx, botID, guildID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list sorteios", err)
	}
	return sorteios, nil
}

func (s *sorteioService) GetByID(ctx context.Context, botID, guildID, id string) (*models.Sorteio, error) {
	sorteio, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSorteioNotFound) {
		return nil, apperrors.NewSorteioNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get sorteio", err)
	}
	if sorteio.BotID != botID || sorteio.GuildID != guildID {
		// Ids are global but access is scoped per bot/guild pair.
		return nil, apperrors.NewSorteioNotFoundError(id)
	}
	return sorteio, nil
}

func (s *sorteioService) Create(ctx context.Context, sorteio *models.Sorteio) (*models.Sorteio, error) {
	if err := sorteio.Validate(); err != nil {
		return nil, asValidationError(err)
	}
	if err := s.cargos.ValidateCargos(ctx, sorteio.GuildID, sorteio.Requisitos.Cargos()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sorteio.ID = uuid.NewString()
	sorteio.Status = models.StatusRascunho
	sorteio.MessageID = ""
	sorteio.CreatedAt = now
	sorteio.UpdatedAt = now
	if sorteio.Participantes == nil {
		sorteio.Participantes = []models.Participante{}
	}

	if err := s.repo.Create(ctx, sorteio); err != nil {
		return nil, apperrors.NewDatabaseError("create sorteio", err)
	}

	s.logger.Info().
		Str("sorteio_id", sorteio.ID).
		Str("guild_id", sorteio.GuildID).
		Msg("sorteio created")
	return sorteio, nil
}

func (s *sorteioService) Update(ctx context.Context, botID, guildID, id string, apply func(*models.Sorteio)) (*models.Sorteio, error) {
	sorteio, err := s.GetByID(ctx, botID, guildID, id)
	if err != nil {
		return nil, err
	}

	apply(sorteio)

	if err := sorteio.Validate(); err != nil {
		return nil, asValidationError(err)
	}
	if err := s.cargos.ValidateCargos(ctx, guildID, sorteio.Requisitos.Cargos()); err != nil {
		return nil, err
	}

	sorteio.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sorteio); err != nil {
		return nil, apperrors.NewDatabaseError("update sorteio", err)
	}
	return sorteio, nil
}

// Delete removes the sorteio and, when it has a live announcement, tries to
// take the message down as well. Message removal is best effort: the row is
// already gone and a platform failure must not resurrect it.
func (s *sorteioService) Delete(ctx context.Context, botID, guildID, id string) error {
	sorteio, err := s.GetByID(ctx, botID, guildID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sorteio); err != nil {
		return apperrors.NewDatabaseError("delete sorteio", err)
	}

	if sorteio.HasMessage() {
		if err := s.publisher.DeleteMessage(ctx, sorteio.ChannelID, sorteio.MessageID); err != nil {
			s.logger.Warn().
				Err(err).
				Str("sorteio_id", id).
				Str("message_id", sorteio.MessageID).
				Msg("failed to delete announcement message")
		}
	}

	s.logger.Info().Str("sorteio_id", id).Msg("sorteio deleted")
	return nil
}

func (s *sorteioService) Verificar(ctx context.Context, botID, guildID, id string, candidato models.Candidato) (models.Decision, error) {
	sorteio, err := s.GetByID(ctx, botID, guildID, id)
	if err != nil {
		return models.Decision{}, err
	}
	return sorteio.Requisitos.Evaluate(candidato), nil
}

func asValidationError(err error) error {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return apperrors.NewValidationError(vErr.Field, vErr.Reason)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, "validation failed")
}
