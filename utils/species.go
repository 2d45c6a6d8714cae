package utils

import (
	"fmt"
	"strings"

	"pokedex-catalog/models"
)

// GenderFromRate maps the upstream gender_rate (eighths female, -1 genderless)
func GenderFromRate(rate int) models.Gender {
	switch rate {
	case -1:
		return models.GenderUnknown
	case 0:
		return models.GenderMaleOnly
	case 8:
		return models.GenderFemaleOnly
	default:
		return models.GenderMixed
	}
}

// CleanFlavorText replaces the form feeds and line breaks the upstream
// embeds in flavor text with single spaces
func CleanFlavorText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FormatDexNumber zero-pads a sequence index to the given width, e.g. 25 -> "025"
func FormatDexNumber(index, width int) string {
	return fmt.Sprintf("#%0*d", width, index)
}
