package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "sorteios-backend/internal/common/errors"
	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/repository"
	"sorteios-backend/internal/features/sorteio/service"
	"sorteios-backend/internal/platform/discord"
)

// mockRepository keeps sorteios in memory and mimics the repository's lock
// semantics.
type mockRepository struct {
	sorteios map[string]*models.Sorteio

	lockHeld    bool
	createErr   error
	updateErr   error
	deleteErr   error
	updateCalls int
}

func newMockRepository(seed ...*models.Sorteio) *mockRepository {
	repo := &mockRepository{sorteios: make(map[string]*models.Sorteio)}
	for _, s := range seed {
		repo.sorteios[s.ID] = s.Clone()
	}
	return repo
}

func (m *mockRepository) Create(ctx context.Context, sorteio *models.Sorteio) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sorteios[sorteio.ID] = sorteio.Clone()
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*models.Sorteio, error) {
	sorteio, ok := m.sorteios[id]
	if !ok {
		return nil, repository.ErrSorteioNotFound
	}
	return sorteio.Clone(), nil
}

func (m *mockRepository) ListByGuild(ctx context.Context, botID, guildID string) ([]*models.Sorteio, error) {
	var out []*models.Sorteio
	for _, s := range m.sorteios {
		if s.BotID == botID && s.GuildID == guildID {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, sorteio *models.Sorteio) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	m.sorteios[sorteio.ID] = sorteio.Clone()
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, sorteio *models.Sorteio) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.sorteios, sorteio.ID)
	return nil
}

func (m *mockRepository) AcquirePublishLock(ctx context.Context, id string) (func(), error) {
	if m.lockHeld {
		return nil, repository.ErrLockHeld
	}
	m.lockHeld = true
	return func() { m.lockHeld = false }, nil
}

// mockPublisher records platform calls and hands out sequential message ids.
type mockPublisher struct {
	createCalls []string // channel ids, in order
	editCalls   []string // "channel/message", in order
	deleteCalls []string
	lastPayload discord.MessagePayload

	nextID    int
	createErr error
	editErr   error
	deleteErr error
}

func (m *mockPublisher) CreateMessage(ctx context.Context, channelID string, payload discord.MessagePayload) (*discord.Message, error) {
	m.createCalls = append(m.createCalls, channelID)
	m.lastPayload = payload
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	return &discord.Message{ID: fmt.Sprintf("msg-%d", m.nextID), ChannelID: channelID}, nil
}

func (m *mockPublisher) EditMessage(ctx context.Context, channelID, messageID string, payload discord.MessagePayload) (*discord.Message, error) {
	m.editCalls = append(m.editCalls, channelID+"/"+messageID)
	m.lastPayload = payload
	if m.editErr != nil {
		return nil, m.editErr
	}
	return &discord.Message{ID: messageID, ChannelID: channelID}, nil
}

func (m *mockPublisher) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	m.deleteCalls = append(m.deleteCalls, channelID+"/"+messageID)
	return m.deleteErr
}

type mockCargoValidator struct {
	err   error
	calls [][]string
}

func (m *mockCargoValidator) ValidateCargos(ctx context.Context, guildID string, cargoIDs []string) error {
	m.calls = append(m.calls, cargoIDs)
	return m.err
}

func testSorteio(id string) *models.Sorteio {
	inicio := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fim := inicio.Add(48 * time.Hour)
	s := models.NewDraft("bot-1", "guild-1")
	s.ID = id
	s.Nome = "Sorteio Mensal"
	s.DataInicio = &inicio
	s.DataFim = &fim
	s.ChannelID = "123456789012345678"
	return s
}

func newService(repo *mockRepository, pub *mockPublisher, cargos *mockCargoValidator) service.SorteioService {
	return service.NewSorteioService(repo, pub, cargos)
}

func TestCreate(t *testing.T) {
	repo := newMockRepository()
	pub := &mockPublisher{}
	cargos := &mockCargoValidator{}
	svc := newService(repo, pub, cargos)

	draft := testSorteio(models.DraftID)
	draft.Status = models.StatusAtivo // clients cannot smuggle a status in
	draft.MessageID = "stale"

	created, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)

	require.NotEmpty(t, created.ID)
	require.NotEqual(t, models.DraftID, created.ID)
	require.Equal(t, models.StatusRascunho, created.Status)
	require.Empty(t, created.MessageID)
	require.False(t, created.CreatedAt.IsZero())
	require.Len(t, repo.sorteios, 1)
}

func TestCreateValidationError(t *testing.T) {
	svc := newService(newMockRepository(), &mockPublisher{}, &mockCargoValidator{})

	draft := testSorteio(models.DraftID)
	draft.Vencedores = 0

	_, err := svc.Create(context.Background(), draft)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCreateUnknownCargoRejected(t *testing.T) {
	cargos := &mockCargoValidator{err: apperrors.NewCargoNotFoundError("999")}
	svc := newService(newMockRepository(), &mockPublisher{}, cargos)

	draft := testSorteio(models.DraftID)
	draft.Requisitos.CargosObrigatorios = []string{"999"}

	_, err := svc.Create(context.Background(), draft)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.ErrCodeCargoNotFound, appErr.Code)
	require.Equal(t, [][]string{{"999"}}, cargos.calls)
}

func TestGetByIDScope(t *testing.T) {
	repo := newMockRepository(testSorteio("s1"))
	svc := newService(repo, &mockPublisher{}, &mockCargoValidator{})

	_, err := svc.GetByID(context.Background(), "bot-1", "guild-1", "s1")
	require.NoError(t, err)

	// A different guild must not see the entity, even by id.
	_, err = svc.GetByID(context.Background(), "bot-1", "guild-2", "s1")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.ErrCodeSorteioNotFound, appErr.Code)
}

func TestUpdate(t *testing.T) {
	repo := newMockRepository(testSorteio("s1"))
	svc := newService(repo, &mockPublisher{}, &mockCargoValidator{})

	updated, err := svc.Update(context.Background(), "bot-1", "guild-1", "s1", func(s *models.Sorteio) {
		s.Nome = "Sorteio Renomeado"
	})
	require.NoError(t, err)
	require.Equal(t, "Sorteio Renomeado", updated.Nome)
	require.Equal(t, "Sorteio Renomeado", repo.sorteios["s1"].Nome)
}

func TestUpdateValidationLeavesStoreUntouched(t *testing.T) {
	repo := newMockRepository(testSorteio("s1"))
	svc := newService(repo, &mockPublisher{}, &mockCargoValidator{})

	_, err := svc.Update(context.Background(), "bot-1", "guild-1", "s1", func(s *models.Sorteio) {
		s.Nome = ""
	})
	require.Error(t, err)
	require.Equal(t, "Sorteio Mensal", repo.sorteios["s1"].Nome)
	require.Zero(t, repo.updateCalls)
}

func TestDelete(t *testing.T) {
	s := testSorteio("s1")
	s.SetMessage("chan-1", "msg-1")
	repo := newMockRepository(s)
	pub := &mockPublisher{}
	svc := newService(repo, pub, &mockCargoValidator{})

	err := svc.Delete(context.Background(), "bot-1", "guild-1", "s1")
	require.NoError(t, err)
	require.Empty(t, repo.sorteios)
	require.Equal(t, []string{"chan-1/msg-1"}, pub.deleteCalls)
}

func TestDeleteMessageFailureIsBestEffort(t *testing.T) {
	s := testSorteio("s1")
	s.SetMessage("chan-1", "msg-1")
	repo := newMockRepository(s)
	pub := &mockPublisher{deleteErr: errors.New("platform down")}
	svc := newService(repo, pub, &mockCargoValidator{})

	// The row is gone; the platform failure is logged, not returned.
	err := svc.Delete(context.Background(), "bot-1", "guild-1", "s1")
	require.NoError(t, err)
	require.Empty(t, repo.sorteios)
}

func TestDeleteWithoutMessageSkipsPlatform(t *testing.T) {
	repo := newMockRepository(testSorteio("s1"))
	pub := &mockPublisher{}
	svc := newService(repo, pub, &mockCargoValidator{})

	require.NoError(t, svc.Delete(context.Background(), "bot-1", "guild-1", "s1"))
	require.Empty(t, pub.deleteCalls)
}

func TestVerificar(t *testing.T) {
	s := testSorteio("s1")
	s.Requisitos.MembroCliente = models.TriAllow
	repo := newMockRepository(s)
	svc := newService(repo, &mockPublisher{}, &mockCargoValidator{})

	decision, err := svc.Verificar(context.Background(), "bot-1", "guild-1", "s1", models.Candidato{UserID: "u1"})
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Equal(t, models.DenyMembroCliente, decision.Reason)

	decision, err = svc.Verificar(context.Background(), "bot-1", "guild-1", "s1", models.Candidato{UserID: "u1", MembroCliente: true})
	require.NoError(t, err)
	require.True(t, decision.Allowed)
}
