package service

import (
	"context"
	"fmt"
	"time"

	"sorteios-backend/internal/common/cache"
	apperrors "sorteios-backend/internal/common/errors"
	"sorteios-backend/internal/common/logger"
	"sorteios-backend/internal/features/directory/models"
	"sorteios-backend/internal/platform/discord"
)

const (
	keyChannels = "directory:channels:%s"
	keyCargos   = "directory:cargos:%s"
)

// PlatformDirectory is the slice of the platform client the directory needs.
type PlatformDirectory interface {
	GuildChannels(ctx context.Context, guildID string) ([]discord.Channel, error)
	GuildRoles(ctx context.Context, guildID string) ([]discord.Role, error)
}

// DirectoryService is the read-only channel/role directory of a community,
// cached so selector loads and role validation do not hammer the platform.
type DirectoryService interface {
	ListChannels(ctx context.Context, guildID string) ([]models.Channel, error)
	ListCargos(ctx context.Context, guildID string) ([]models.Cargo, error)
	// ValidateCargos fails with a CARGO_NOT_FOUND error when any id does not
	// exist in the guild.
	ValidateCargos(ctx context.Context, guildID string, cargoIDs []string) error
}

type directoryService struct {
	platform PlatformDirectory
	cache    *cache.CacheService
	ttl      time.Duration
}

func NewDirectoryService(platform PlatformDirectory, cacheService *cache.CacheService, ttl time.Duration) DirectoryService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &directoryService{
		platform: platform,
		cache:    cacheService,
		ttl:      ttl,
	}
}

func (s *directoryService) ListChannels(ctx context.Context, guildID string) ([]models.Channel, error) {
	var channels []models.Channel
	err := s.cache.GetOrSet(ctx, fmt.Sprintf(keyChannels, guildID), &channels, s.ttl, func() (interface{}, error) {
		raw, err := s.platform.GuildChannels(ctx, guildID)
		if err != nil {
			return nil, apperrors.NewPlatformAPIError("guild channels", err)
		}
		out := make([]models.Channel, 0, len(raw))
		for _, ch := range raw {
			out = append(out, models.Channel{
				ID:       ch.ID,
				Nome:     ch.Name,
				Tipo:     ch.Type,
				Position: ch.Position,
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (s *directoryService) ListCargos(ctx context.Context, guildID string) ([]models.Cargo, error) {
	var cargos []models.Cargo
	err := s.cache.GetOrSet(ctx, fmt.Sprintf(keyCargos, guildID), &cargos, s.ttl, func() (interface{}, error) {
		raw, err := s.platform.GuildRoles(ctx, guildID)
		if err != nil {
			return nil, apperrors.NewPlatformAPIError("guild roles", err)
		}
		out := make([]models.Cargo, 0, len(raw))
		for _, role := range raw {
			out = append(out, models.Cargo{
				ID:       role.ID,
				Nome:     role.Name,
				Color:    role.Color,
				Position: role.Position,
				Managed:  role.Managed,
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return cargos, nil
}

func (s *directoryService) ValidateCargos(ctx context.Context, guildID string, cargoIDs []string) error {
	if len(cargoIDs) == 0 {
		return nil
	}

	cargos, err := s.ListCargos(ctx, guildID)
	if err != nil {
		// Role lists are advisory on save; a directory outage should not
		// block the operator from saving a draft.
		logger.Warn().Err(err).Str("guild_id", guildID).Msg("skipping cargo validation, directory unavailable")
		return nil
	}

	known := make(map[string]bool, len(cargos))
	for _, cargo := range cargos {
		known[cargo.ID] = true
	}
	for _, id := range cargoIDs {
		if !known[id] {
			return apperrors.NewCargoNotFoundError(id)
		}
	}
	return nil
}
