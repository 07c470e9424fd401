package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MaxNomeLength      = 200
	MaxDescricaoLength = 2000
	MaxLabelLength     = 80
	MaxMensagemLength  = 2000
)

// Platform snowflake IDs are numeric strings, 17-20 digits.
var snowflakeRegex = regexp.MustCompile(`^\d{17,20}$`)

// Hex embed colors in the "#RRGGBB" form.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var validButtonColors = []string{"primary", "secondary", "success", "danger"}

// ValidateNome checks the display name of a sorteio.
func ValidateNome(nome string) error {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return fmt.Errorf("nome cannot be empty")
	}
	if len(nome) > MaxNomeLength {
		return fmt.Errorf("nome cannot exceed %d characters", MaxNomeLength)
	}
	return nil
}

// ValidateDescricao checks the optional description.
func ValidateDescricao(descricao string) error {
	if len(descricao) > MaxDescricaoLength {
		return fmt.Errorf("descricao cannot exceed %d characters", MaxDescricaoLength)
	}
	return nil
}

// ValidateSnowflake checks a platform channel/role/user identifier.
func ValidateSnowflake(id, fieldName string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if !snowflakeRegex.MatchString(id) {
		return fmt.Errorf("%s must be a numeric platform id", fieldName)
	}
	return nil
}

// IsValidSnowflake reports whether id looks like a platform identifier.
func IsValidSnowflake(id string) bool {
	return snowflakeRegex.MatchString(id)
}

// ValidateHexColor checks an embed color value such as "#5865F2".
func ValidateHexColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("color must be in #RRGGBB form, got %q", color)
	}
	return nil
}

// ValidateButtonColor checks the join-button style name.
func ValidateButtonColor(color string) error {
	if color == "" {
		return nil
	}
	for _, valid := range validButtonColors {
		if color == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid button color: %s. Valid colors: %v", color, validButtonColors)
}

// ValidatePositiveInt checks that value is strictly positive.
func ValidatePositiveInt(value int64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// ValidateNonNegativeInt checks that value is zero or positive.
func ValidateNonNegativeInt(value int64, fieldName string) error {
	if value < 0 {
		return fmt.Errorf("%s cannot be negative", fieldName)
	}
	return nil
}
