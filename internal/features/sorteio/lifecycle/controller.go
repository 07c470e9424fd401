package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sorteios-backend/internal/features/sorteio/models"
)

// State is the editor's position in the save/publish cycle.
type State string

const (
	StateEditing    State = "editing"
	StateSaving     State = "saving"
	StatePublishing State = "publishing"
)

var (
	// ErrEnvioEmAndamento is returned when a send is triggered while a
	// previous cycle is still in flight. Callers treat it as a no-op; the
	// form keeps its disabled trigger until the running cycle resolves.
	ErrEnvioEmAndamento = errors.New("envio ja em andamento")
	// ErrDeleteNotArmed is returned when ConfirmDelete is called without a
	// prior ArmDelete, enforcing the two-step confirmation.
	ErrDeleteNotArmed = errors.New("delete nao confirmado")
)

// PartialSendError reports a cycle where the save succeeded but the
// announcement sync did not. The field edits are persisted; the live
// message may be stale until the operator re-sends.
type PartialSendError struct {
	Saved *models.Sorteio
	Err   error
}

func (e *PartialSendError) Error() string {
	return fmt.Sprintf("sorteio salvo, mas a mensagem pode estar desatualizada: %v", e.Err)
}

func (e *PartialSendError) Unwrap() error { return e.Err }

// Store is the persistence surface the controller drives, implemented by
// the REST client.
type Store interface {
	Get(ctx context.Context, id string) (*models.Sorteio, error)
	Create(ctx context.Context, sorteio *models.Sorteio) (*models.Sorteio, error)
	Update(ctx context.Context, id string, sorteio *models.Sorteio) (*models.Sorteio, error)
	Delete(ctx context.Context, id string) error
	Publicar(ctx context.Context, id, channelID string) (*models.Sorteio, error)
}

// Controller owns the in-memory draft of the sorteio being edited and
// sequences the save→publish cycle. One controller serves one editor; all
// methods are safe for the single UI goroutine plus its completion
// callbacks.
type Controller struct {
	store Store

	mu          sync.Mutex
	state       State
	draft       *models.Sorteio
	saved       *models.Sorteio // last entity the store confirmed, nil for a new draft
	deleteArmed bool
	botID       string
	guildID     string
}

// NewController opens an editor. With a nil entity it starts a fresh draft
// from template defaults; otherwise it edits a copy of the given entity.
func NewController(store Store, botID, guildID string, entity *models.Sorteio) *Controller {
	c := &Controller{
		store:   store,
		state:   StateEditing,
		botID:   botID,
		guildID: guildID,
	}
	if entity != nil {
		c.saved = entity.Clone()
		c.draft = entity.Clone()
	} else {
		c.draft = models.NewDraft(botID, guildID)
	}
	return c
}

// State returns the current cycle position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the working draft.
func (c *Controller) Draft() *models.Sorteio {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// Edit applies a form change to the draft. Edits during an in-flight cycle
// are rejected, mirroring the disabled form.
func (c *Controller) Edit(mutate func(*models.Sorteio)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing {
		return ErrEnvioEmAndamento
	}
	mutate(c.draft)
	c.deleteArmed = false
	return nil
}

// Enviar runs one save→publish cycle: validate the publish preconditions
// locally, persist the draft (create on first save, update after), then
// sync the announcement message. The cycle is serialized; a second Enviar
// while one is in flight returns ErrEnvioEmAndamento without touching the
// network.
func (c *Controller) Enviar(ctx context.Context) (*models.Sorteio, error) {
	c.mu.Lock()
	if c.state != StateEditing {
		c.mu.Unlock()
		return nil, ErrEnvioEmAndamento
	}

	// Preconditions fail fast, before any network call.
	if err := c.draft.ValidatePublish(); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	c.state = StateSaving
	draft := c.draft.Clone()
	c.mu.Unlock()

	saved, err := c.save(ctx, draft)
	if err != nil {
		c.finish(nil)
		return nil, err
	}

	c.mu.Lock()
	c.state = StatePublishing
	c.saved = saved.Clone()
	c.draft = saved.Clone()
	c.mu.Unlock()

	published, err := c.store.Publicar(ctx, saved.ID, saved.ChannelID)
	if err != nil {
		// Save took: edits are not lost and the previous message handle is
		// untouched. Surface the stale-message condition to the operator.
		c.finish(nil)
		return nil, &PartialSendError{Saved: saved, Err: err}
	}

	c.finish(published)
	return published.Clone(), nil
}

func (c *Controller) save(ctx context.Context, draft *models.Sorteio) (*models.Sorteio, error) {
	if draft.ID == "" || draft.ID == models.DraftID {
		return c.store.Create(ctx, draft)
	}
	return c.store.Update(ctx, draft.ID, draft)
}

// finish returns the controller to Editing, adopting the given entity as
// both the saved snapshot and the draft when non-nil.
func (c *Controller) finish(entity *models.Sorteio) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entity != nil {
		c.saved = entity.Clone()
		c.draft = entity.Clone()
	}
	c.state = StateEditing
}

// Clear discards in-memory edits, restoring the last saved entity or the
// template defaults for a never-saved draft. No network call is made.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing {
		return ErrEnvioEmAndamento
	}
	if c.saved != nil {
		c.draft = c.saved.Clone()
	} else {
		c.draft = models.NewDraft(c.botID, c.guildID)
	}
	c.deleteArmed = false
	return nil
}

// RefreshParticipantes re-reads the entity and replaces the participant and
// winner bookkeeping wholesale on the local copies. Form fields being edited
// are left alone.
func (c *Controller) RefreshParticipantes(ctx context.Context) ([]models.Participante, error) {
	c.mu.Lock()
	if c.saved == nil {
		c.mu.Unlock()
		return nil, errors.New("sorteio ainda nao salvo")
	}
	id := c.saved.ID
	c.mu.Unlock()

	fresh, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.saved.Participantes = append([]models.Participante(nil), fresh.Participantes...)
	c.saved.VencedoresIDs = append([]string(nil), fresh.VencedoresIDs...)
	c.saved.SorteadoEm = fresh.SorteadoEm
	c.draft.Participantes = append([]models.Participante(nil), fresh.Participantes...)
	c.draft.VencedoresIDs = append([]string(nil), fresh.VencedoresIDs...)
	c.draft.SorteadoEm = fresh.SorteadoEm
	c.mu.Unlock()

	return fresh.ParticipantesOrdenados(), nil
}

// IsVencedor reports whether a participant was drawn as a winner, for list
// rendering.
func (c *Controller) IsVencedor(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.IsVencedor(userID)
}

// ArmDelete marks the operator's first confirmation step. Any edit or Clear
// disarms it.
func (c *Controller) ArmDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteArmed = true
}

// ConfirmDelete performs the second confirmation step and deletes the
// entity. The controller resets to a fresh draft, mirroring the closed
// editor.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateEditing {
		c.mu.Unlock()
		return ErrEnvioEmAndamento
	}
	if !c.deleteArmed {
		c.mu.Unlock()
		return ErrDeleteNotArmed
	}
	if c.saved == nil {
		// Never persisted: nothing to delete remotely.
		c.draft = models.NewDraft(c.botID, c.guildID)
		c.deleteArmed = false
		c.mu.Unlock()
		return nil
	}
	id := c.saved.ID
	c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	c.saved = nil
	c.draft = models.NewDraft(c.botID, c.guildID)
	c.deleteArmed = false
	c.mu.Unlock()
	return nil
}
