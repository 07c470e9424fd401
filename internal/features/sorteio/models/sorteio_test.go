package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sorteios-backend/internal/features/sorteio/models"
)

func validSorteio() *models.Sorteio {
	inicio := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fim := inicio.Add(48 * time.Hour)
	s := models.NewDraft("bot-1", "guild-1")
	s.Nome = "Sorteio de Teste"
	s.DataInicio = &inicio
	s.DataFim = &fim
	s.ChannelID = "123456789012345678"
	return s
}

func TestValidate(t *testing.T) {
	t.Run("valid draft passes", func(t *testing.T) {
		require.NoError(t, validSorteio().Validate())
	})

	t.Run("nome required", func(t *testing.T) {
		s := validSorteio()
		s.Nome = ""
		requireFieldError(t, s.Validate(), "nome")
	})

	t.Run("vencedores at least one", func(t *testing.T) {
		s := validSorteio()
		s.Vencedores = 0
		requireFieldError(t, s.Validate(), "vencedores")
	})

	t.Run("vencedores capped by maxParticipantes", func(t *testing.T) {
		s := validSorteio()
		s.MaxParticipantes = 3
		s.Vencedores = 5
		requireFieldError(t, s.Validate(), "vencedores")

		// Unlimited participants accepts any winner count.
		s.MaxParticipantes = 0
		require.NoError(t, s.Validate())
	})

	t.Run("dataFim must be after dataInicio", func(t *testing.T) {
		s := validSorteio()
		s.DataFim = s.DataInicio
		requireFieldError(t, s.Validate(), "dataFim")

		before := s.DataInicio.Add(-time.Hour)
		s.DataFim = &before
		requireFieldError(t, s.Validate(), "dataFim")
	})

	t.Run("embedColor format", func(t *testing.T) {
		s := validSorteio()
		s.EmbedColor = "#ff8800"
		require.NoError(t, s.Validate())

		s.EmbedColor = "ff8800"
		requireFieldError(t, s.Validate(), "embedColor")
	})

	t.Run("botaoCor known values only", func(t *testing.T) {
		s := validSorteio()
		s.BotaoCor = "success"
		require.NoError(t, s.Validate())

		s.BotaoCor = "purple"
		requireFieldError(t, s.Validate(), "botaoCor")
	})

	t.Run("tipoPremiacao known values only", func(t *testing.T) {
		s := validSorteio()
		s.TipoPremiacao = models.PremiacaoAutomatica
		require.NoError(t, s.Validate())

		s.TipoPremiacao = "semiautomatica"
		requireFieldError(t, s.Validate(), "tipoPremiacao")
	})
}

func TestValidatePublish(t *testing.T) {
	t.Run("complete draft passes", func(t *testing.T) {
		require.NoError(t, validSorteio().ValidatePublish())
	})

	t.Run("each precondition reported by field", func(t *testing.T) {
		for field, strip := range map[string]func(*models.Sorteio){
			"nome":       func(s *models.Sorteio) { s.Nome = "" },
			"dataInicio": func(s *models.Sorteio) { s.DataInicio = nil },
			"dataFim":    func(s *models.Sorteio) { s.DataFim = nil },
			"channelId":  func(s *models.Sorteio) { s.ChannelID = "" },
		} {
			s := validSorteio()
			strip(s)
			requireFieldError(t, s.ValidatePublish(), field)
		}
	})
}

func TestSetMessage(t *testing.T) {
	s := validSorteio()
	require.False(t, s.HasMessage())

	s.SetMessage("chan-2", "msg-1")
	require.True(t, s.HasMessage())
	require.Equal(t, "chan-2", s.ChannelID)
	require.Equal(t, "msg-1", s.MessageID)
}

func TestIsVencedor(t *testing.T) {
	s := validSorteio()
	s.VencedoresIDs = []string{"10", "20"}

	require.True(t, s.IsVencedor("20"))
	require.False(t, s.IsVencedor("30"))
}

func TestParticipantesOrdenados(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := validSorteio()
	s.Participantes = []models.Participante{
		{UserID: "a", ParticipouEm: base},
		{UserID: "b", ParticipouEm: base.Add(2 * time.Hour)},
		{UserID: "c", ParticipouEm: base.Add(time.Hour)},
		{UserID: "d", ParticipouEm: base.Add(time.Hour)}, // same instant as c
	}

	ordered := s.ParticipantesOrdenados()

	ids := make([]string, len(ordered))
	for i, p := range ordered {
		ids[i] = p.UserID
	}
	// Most recent first; ties keep their original relative order.
	require.Equal(t, []string{"b", "c", "d", "a"}, ids)

	// The receiver's slice is untouched.
	require.Equal(t, "a", s.Participantes[0].UserID)
}

func TestCloneIndependence(t *testing.T) {
	s := validSorteio()
	s.Participantes = []models.Participante{{UserID: "a"}}
	s.VencedoresIDs = []string{"a"}
	s.Requisitos.CargosObrigatorios = []string{"100"}

	clone := s.Clone()
	clone.Nome = "Outro"
	*clone.DataInicio = clone.DataInicio.Add(time.Hour)
	clone.Participantes[0].UserID = "z"
	clone.VencedoresIDs[0] = "z"
	clone.Requisitos.CargosObrigatorios[0] = "999"

	require.Equal(t, "Sorteio de Teste", s.Nome)
	require.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), *s.DataInicio)
	require.Equal(t, "a", s.Participantes[0].UserID)
	require.Equal(t, "a", s.VencedoresIDs[0])
	require.Equal(t, "100", s.Requisitos.CargosObrigatorios[0])
}

func TestNewDraftDefaults(t *testing.T) {
	s := models.NewDraft("bot-1", "guild-1")

	require.Equal(t, models.DraftID, s.ID)
	require.Equal(t, models.StatusRascunho, s.Status)
	require.Equal(t, 1, s.Vencedores)
	require.Equal(t, models.PremiacaoManual, s.TipoPremiacao)
	require.Equal(t, "Participar", s.BotaoLabel)
	require.NotNil(t, s.Participantes)
	require.False(t, s.HasMessage())
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, field, vErr.Field)
}
