package engine

import (
	"github.com/BurntSushi/toml"
	"github.com/gambitchess/gambit/pkg/board"
)

// TimeControl is opaque to the core (spec.md §6): the host interprets it; the engine only
// stores and round-trips it through SaveState/LoadState.
type TimeControl struct {
	Values map[string]string `toml:"values"`
}

// Config holds the recognized configuration options (spec.md §6).
type Config struct {
	InitialBPPool       int `toml:"initial_bp_pool"`
	BPMax               int `toml:"bp_max"`
	MaxBPAllocation     int `toml:"max_bp_allocation"`
	BaseBPRegen         int `toml:"base_bp_regen"`
	BPBonusPerNewTactic int `toml:"bp_bonus_per_new_tactic"`
	BPBonusCheck        int `toml:"bp_bonus_check"`
	TimeControl         TimeControl     `toml:"time_control"`
	DrawRules           board.DrawRules `toml:"draw_rules"`
}

// DefaultConfig returns spec.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		InitialBPPool:       39,
		BPMax:               39,
		MaxBPAllocation:     10,
		BaseBPRegen:         1,
		BPBonusPerNewTactic: 1,
		BPBonusCheck:        1,
		DrawRules:           board.DefaultDrawRules(),
	}
}

// Option is an engine creation option.
type Option func(*Config)

func WithInitialBPPool(n int) Option        { return func(c *Config) { c.InitialBPPool = n } }
func WithBPMax(n int) Option                { return func(c *Config) { c.BPMax = n } }
func WithMaxBPAllocation(n int) Option      { return func(c *Config) { c.MaxBPAllocation = n } }
func WithBaseBPRegen(n int) Option          { return func(c *Config) { c.BaseBPRegen = n } }
func WithBPBonusPerNewTactic(n int) Option  { return func(c *Config) { c.BPBonusPerNewTactic = n } }
func WithBPBonusCheck(n int) Option         { return func(c *Config) { c.BPBonusCheck = n } }
func WithTimeControl(tc TimeControl) Option { return func(c *Config) { c.TimeControl = tc } }
func WithDrawRules(r board.DrawRules) Option { return func(c *Config) { c.DrawRules = r } }

// LoadConfigTOML loads a Config from a TOML file, starting from DefaultConfig for any
// field the file omits.
func LoadConfigTOML(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
