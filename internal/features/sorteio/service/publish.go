package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	apperrors "sorteios-backend/internal/common/errors"
	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/repository"
	"sorteios-backend/internal/platform/discord"
)

// Publicar creates the announcement message on first publish and edits it in
// place on every later call, so one sorteio maps to at most one live message
// no matter how often the operator re-sends the form.
//
// The per-sorteio lock serializes concurrent publish cycles; a second call
// while one is in flight fails fast with PUBLISH_IN_FLIGHT instead of racing
// toward a duplicate message.
func (s *sorteioService) Publicar(ctx context.Context, botID, guildID, id, channelID string) (*models.Sorteio, error) {
	release, err := s.repo.AcquirePublishLock(ctx, id)
	if errors.Is(err, repository.ErrLockHeld) {
		return nil, apperrors.NewPublishInFlightError(id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("acquire publish lock", err)
	}
	defer release()

	sorteio, err := s.GetByID(ctx, botID, guildID, id)
	if err != nil {
		return nil, err
	}

	if channelID == "" {
		channelID = sorteio.ChannelID
	}

	target := sorteio.Clone()
	target.ChannelID = channelID
	if err := target.ValidatePublish(); err != nil {
		return nil, asValidationError(err)
	}

	payload := renderMessage(target)

	msg, reposted, err := s.syncMessage(ctx, sorteio, channelID, payload)
	if err != nil {
		// The entity is left untouched: it keeps its previous message
		// handle, and the operator can retry the send safely.
		return nil, apperrors.NewPlatformAPIError("publish announcement", err)
	}

	// Channel and message id are recorded as a pair; the message handle is
	// only ever replaced wholesale.
	sorteio.SetMessage(msg.ChannelID, msg.ID)
	if sorteio.Status == models.StatusRascunho {
		sorteio.Status = models.StatusAtivo
	}
	sorteio.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, sorteio); err != nil {
		return nil, apperrors.NewDatabaseError("persist message handle", err)
	}

	event := s.logger.Info().
		Str("sorteio_id", sorteio.ID).
		Str("channel_id", sorteio.ChannelID).
		Str("message_id", sorteio.MessageID)
	if reposted {
		event.Msg("sorteio reposted to new channel")
	} else {
		event.Msg("sorteio announcement synced")
	}
	return sorteio, nil
}

// syncMessage converges the live message to the payload. With no recorded
// message it creates one; with a recorded message it edits in place; when
// the recorded message is gone, or lives in a different channel than the one
// requested, it falls back to creating a fresh message there (the old one is
// abandoned, not deleted).
func (s *sorteioService) syncMessage(ctx context.Context, sorteio *models.Sorteio, channelID string, payload discord.MessagePayload) (msg *discord.Message, reposted bool, err error) {
	if !sorteio.HasMessage() {
		msg, err = s.publisher.CreateMessage(ctx, channelID, payload)
		return msg, false, err
	}

	if sorteio.ChannelID == channelID {
		msg, err = s.publisher.EditMessage(ctx, channelID, sorteio.MessageID, payload)
		if err == nil {
			return msg, false, nil
		}
		if !discord.IsUnknownMessage(err) {
			return nil, false, err
		}
		// Message was deleted out from under us; recreate rather than fail.
	}

	msg, err = s.publisher.CreateMessage(ctx, channelID, payload)
	return msg, true, err
}

// Button style names as used by the dashboard forms.
var buttonStyles = map[string]int{
	"primary":   1,
	"secondary": 2,
	"success":   3,
	"danger":    4,
}

// renderMessage builds the announcement payload from the sorteio fields.
// Called with the same entity twice it produces the same payload, which is
// what makes repeated syncs converge instead of drift.
func renderMessage(sorteio *models.Sorteio) discord.MessagePayload {
	embed := discord.Embed{
		Title:       sorteio.Nome,
		Description: sorteio.Descricao,
		Color:       parseHexColor(sorteio.EmbedColor),
	}
	if sorteio.Banner != "" {
		embed.Image = &discord.EmbedImage{URL: sorteio.Banner}
	}
	if sorteio.Icon != "" {
		embed.Thumbnail = &discord.EmbedImage{URL: sorteio.Icon}
	}

	button := discord.Button{
		Type:     2,
		Style:    buttonStyles["primary"],
		Label:    sorteio.BotaoLabel,
		CustomID: "sorteio:join:" + sorteio.ID,
	}
	if button.Label == "" {
		button.Label = "Participar"
	}
	if style, ok := buttonStyles[sorteio.BotaoCor]; ok {
		button.Style = style
	}
	if sorteio.BotaoEmoji != "" {
		button.Emoji = &discord.Emoji{Name: sorteio.BotaoEmoji}
	}

	return discord.MessagePayload{
		Embeds: []discord.Embed{embed},
		Components: []discord.ActionRow{
			{Type: 1, Components: []discord.Button{button}},
		},
	}
}

func parseHexColor(color string) int {
	raw := strings.TrimPrefix(color, "#")
	if len(raw) != 6 {
		return 0
	}
	value, err := strconv.ParseInt(raw, 16, 32)
	if err != nil {
		return 0
	}
	return int(value)
}
