package utils

import (
	"strings"
)

// VersionLabel maps a game version slug to its Spanish display name
// Input is normalized to lowercase before mapping
// Returns the slug unchanged when no label is known
func VersionLabel(version string) string {
	versionLower := strings.ToLower(strings.TrimSpace(version))

	versionMap := map[string]string{
		"red":             "Rojo",
		"blue":            "Azul",
		"yellow":          "Amarillo",
		"gold":            "Oro",
		"silver":          "Plata",
		"crystal":         "Cristal",
		"ruby":            "Rubí",
		"sapphire":        "Zafiro",
		"emerald":         "Esmeralda",
		"firered":         "Rojo Fuego",
		"leafgreen":       "Verde Hoja",
		"diamond":         "Diamante",
		"pearl":           "Perla",
		"platinum":        "Platino",
		"heartgold":       "Oro HeartGold",
		"soulsilver":      "Plata SoulSilver",
		"black":           "Negro",
		"white":           "Blanco",
		"black-2":         "Negro 2",
		"white-2":         "Blanco 2",
		"x":               "X",
		"y":               "Y",
		"omega-ruby":      "Rubí Omega",
		"alpha-sapphire":  "Zafiro Alfa",
		"sun":             "Sol",
		"moon":            "Luna",
		"ultra-sun":       "Ultrasol",
		"ultra-moon":      "Ultraluna",
		"lets-go-pikachu": "Let's Go Pikachu",
		"lets-go-eevee":   "Let's Go Eevee",
		"sword":           "Espada",
		"shield":          "Escudo",
		"scarlet":         "Escarlata",
		"violet":          "Púrpura",
	}

	if label, exists := versionMap[versionLower]; exists {
		return label
	}

	// If not found, return the input as is
	return version
}

// GenderLabel maps a gender classification to its Spanish display symbol
func GenderLabel(gender string) string {
	genderMap := map[string]string{
		"genderless":  "Desconocido",
		"male-only":   "♂",
		"female-only": "♀",
		"mixed":       "♂/♀",
	}

	if label, exists := genderMap[gender]; exists {
		return label
	}
	return gender
}

// SplitList splits a comma separated query value, dropping empty entries
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
