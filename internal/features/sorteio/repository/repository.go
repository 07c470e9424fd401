package repository

import (
	"context"
	"errors"

	"sorteios-backend/internal/features/sorteio/models"
)

var (
	ErrSorteioNotFound = errors.New("sorteio not found")
	// ErrLockHeld means another publish cycle currently owns the sorteio.
	ErrLockHeld = errors.New("publish lock already held")
)

// SorteioRepository persists sorteios and serializes publish cycles.
type SorteioRepository interface {
	Create(ctx context.Context, sorteio *models.Sorteio) error
	GetByID(ctx context.Context, id string) (*models.Sorteio, error)
	ListByGuild(ctx context.Context, botID, guildID string) ([]*models.Sorteio, error)
	Update(ctx context.Context, sorteio *models.Sorteio) error
	Delete(ctx context.Context, sorteio *models.Sorteio) error

	// AcquirePublishLock takes the per-sorteio publish lock. It returns
	// ErrLockHeld when a cycle is already in flight; the returned release
	// function is safe to call exactly once.
	AcquirePublishLock(ctx context.Context, id string) (func(), error)
}
