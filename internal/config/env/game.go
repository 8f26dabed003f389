package env

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"slots_backend/internal/config"
)

// Значения по умолчанию, если в config.yaml что-то не задано
const (
	defaultStartingCredits = 10
	defaultRollCost        = 1
	defaultLowThreshold    = 40
	defaultHighThreshold   = 60
	defaultMidChance       = 0.3
	defaultHighChance      = 0.6
)

type symbolYAML struct {
	Name   string `yaml:"name"`
	Letter string `yaml:"letter"`
	Payout int    `yaml:"payout"`
}

// Поля указательные, чтобы отличать "не задано" от явного нуля:
// оператор вправе выставить mid_chance: 0 и получить именно 0, а не дефолт
type gameYAML struct {
	Game struct {
		StartingCredits *int         `yaml:"starting_credits"`
		RollCost        *int         `yaml:"roll_cost"`
		Symbols         []symbolYAML `yaml:"symbols"`
		Cheat           struct {
			LowThreshold  *int     `yaml:"low_threshold"`
			HighThreshold *int     `yaml:"high_threshold"`
			MidChance     *float64 `yaml:"mid_chance"`
			HighChance    *float64 `yaml:"high_chance"`
		} `yaml:"cheat"`
	} `yaml:"game"`
}

type gameConfig struct {
	startingCredits    int
	rollCost           int
	symbolNames        []string
	symbolPayouts      map[string]int
	symbolLetters      map[string]string
	lowThreshold       int
	highThreshold      int
	midSuppressChance  float64
	highSuppressChance float64
}

// NewGameConfigFromYAML - читает игровые параметры (символы, выплаты, пороги
// подкрутки) из YAML файла
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var raw gameYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	cfg := &gameConfig{
		startingCredits:    intOrDefault(raw.Game.StartingCredits, defaultStartingCredits),
		rollCost:           intOrDefault(raw.Game.RollCost, defaultRollCost),
		symbolPayouts:      make(map[string]int),
		symbolLetters:      make(map[string]string),
		lowThreshold:       intOrDefault(raw.Game.Cheat.LowThreshold, defaultLowThreshold),
		highThreshold:      intOrDefault(raw.Game.Cheat.HighThreshold, defaultHighThreshold),
		midSuppressChance:  floatOrDefault(raw.Game.Cheat.MidChance, defaultMidChance),
		highSuppressChance: floatOrDefault(raw.Game.Cheat.HighChance, defaultHighChance),
	}

	for _, s := range raw.Game.Symbols {
		if s.Name == "" || s.Payout <= 0 {
			return nil, fmt.Errorf("invalid symbol in game config: %+v", s)
		}
		cfg.symbolNames = append(cfg.symbolNames, s.Name)
		cfg.symbolPayouts[s.Name] = s.Payout
		cfg.symbolLetters[s.Name] = s.Letter
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func validate(cfg *gameConfig) error {
	// Для перерисовки проигрышной комбинации нужен хотя бы один другой символ
	if len(cfg.symbolNames) < 2 {
		return errors.New("game config must define at least two symbols")
	}
	if cfg.startingCredits < 0 {
		return errors.New("starting credits must not be negative")
	}
	if cfg.rollCost < 1 {
		return errors.New("roll cost must be positive")
	}
	if cfg.lowThreshold > cfg.highThreshold {
		return errors.New("low threshold must not exceed high threshold")
	}
	if cfg.midSuppressChance < 0 || cfg.midSuppressChance > 1 ||
		cfg.highSuppressChance < 0 || cfg.highSuppressChance > 1 {
		return errors.New("suppress chances must be within [0, 1]")
	}
	return nil
}

func (cfg *gameConfig) StartingCredits() int {
	return cfg.startingCredits
}

func (cfg *gameConfig) RollCost() int {
	return cfg.rollCost
}

func (cfg *gameConfig) SymbolNames() []string {
	return cfg.symbolNames
}

func (cfg *gameConfig) SymbolPayouts() map[string]int {
	return cfg.symbolPayouts
}

func (cfg *gameConfig) SymbolLetters() map[string]string {
	return cfg.symbolLetters
}

func (cfg *gameConfig) LowThreshold() int {
	return cfg.lowThreshold
}

func (cfg *gameConfig) HighThreshold() int {
	return cfg.highThreshold
}

func (cfg *gameConfig) MidSuppressChance() float64 {
	return cfg.midSuppressChance
}

func (cfg *gameConfig) HighSuppressChance() float64 {
	return cfg.highSuppressChance
}
