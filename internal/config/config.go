package config

import (
	"github.com/joho/godotenv"
)

// DefaultEnvPath - файл с переменными окружения рядом с бинарем
const DefaultEnvPath = ".env"

// Load - загружает переменные окружения из файла.
// Пустой путь означает DefaultEnvPath
func Load(path string) error {
	if path == "" {
		path = DefaultEnvPath
	}
	return godotenv.Load(path)
}

type GameConfig interface {
	StartingCredits() int
	RollCost() int
	SymbolNames() []string
	SymbolPayouts() map[string]int
	SymbolLetters() map[string]string
	LowThreshold() int
	HighThreshold() int
	MidSuppressChance() float64
	HighSuppressChance() float64
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}
