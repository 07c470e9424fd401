package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sorteios-backend/internal/common/validation"
)

func TestValidateNome(t *testing.T) {
	require.NoError(t, validation.ValidateNome("Sorteio Mensal"))
	require.Error(t, validation.ValidateNome(""))
	require.Error(t, validation.ValidateNome("   "))
	require.Error(t, validation.ValidateNome(strings.Repeat("a", validation.MaxNomeLength+1)))
}

func TestValidateDescricao(t *testing.T) {
	require.NoError(t, validation.ValidateDescricao(""))
	require.NoError(t, validation.ValidateDescricao("Premio: um teclado"))
	require.Error(t, validation.ValidateDescricao(strings.Repeat("a", validation.MaxDescricaoLength+1)))
}

func TestValidateSnowflake(t *testing.T) {
	require.NoError(t, validation.ValidateSnowflake("123456789012345678", "channelId"))
	require.Error(t, validation.ValidateSnowflake("", "channelId"))
	require.Error(t, validation.ValidateSnowflake("abc", "channelId"))
	require.Error(t, validation.ValidateSnowflake("1234", "channelId"))

	require.True(t, validation.IsValidSnowflake("12345678901234567890"))
	require.False(t, validation.IsValidSnowflake("123456789012345678901"))
}

func TestValidateHexColor(t *testing.T) {
	require.NoError(t, validation.ValidateHexColor(""))
	require.NoError(t, validation.ValidateHexColor("#5865F2"))
	require.NoError(t, validation.ValidateHexColor("#ff8800"))
	require.Error(t, validation.ValidateHexColor("5865F2"))
	require.Error(t, validation.ValidateHexColor("#ff88"))
	require.Error(t, validation.ValidateHexColor("#ff880g"))
}

func TestValidateButtonColor(t *testing.T) {
	for _, color := range []string{"", "primary", "secondary", "success", "danger"} {
		require.NoError(t, validation.ValidateButtonColor(color))
	}
	require.Error(t, validation.ValidateButtonColor("purple"))
}
