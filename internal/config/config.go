package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputPath  string
	OutputPath string

	BaseSheet string
	SKUSheet  string

	// Fuzzy acceptance thresholds. Short inputs get a stricter relative bar
	// because coincidental similarity is more likely on a few characters.
	MatchShortThreshold int
	MatchLongThreshold  int
	MatchShortLen       int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		InputPath:  getEnv("LIMPEZA_INPUT", "ObjetosTeca.xlsx"),
		OutputPath: getEnv("LIMPEZA_OUTPUT", "ObjetosTeca_Limpo.xlsx"),

		BaseSheet: getEnv("BASE_SHEET", "Base"),
		SKUSheet:  getEnv("SKU_SHEET", "SKUS"),

		MatchShortThreshold: getEnvInt("MATCH_SHORT_THRESHOLD", 75),
		MatchLongThreshold:  getEnvInt("MATCH_LONG_THRESHOLD", 80),
		MatchShortLen:       getEnvInt("MATCH_SHORT_LEN", 4),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
