package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ventilation-voi/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load room parameters from a separate YAML (e.g. examples/rooms/*.yaml).
	// If both RoomFile and Room are provided, Room overrides RoomFile.
	RoomFile string       `yaml:"room_file"`
	Room     RoomConfig   `yaml:"room"`
	Actions  []ActionYAML `yaml:"actions"`

	SickCostPerCaseUSD float64 `yaml:"sick_cost_per_case_usd"`

	Prior    PriorConfig    `yaml:"prior"`
	Sampling SamplingConfig `yaml:"sampling"`
}

type RoomConfig struct {
	Name                   string  `yaml:"name"`
	VolumeM3               float64 `yaml:"volume_m3"`
	BreathingRateM3PerHour float64 `yaml:"breathing_rate_m3_per_hour"`
	EmissionQuantaPerHour  float64 `yaml:"emission_quanta_per_hour"`
	InfectiousDoseQuanta   float64 `yaml:"infectious_dose_quanta"`
	HorizonHours           float64 `yaml:"horizon_hours"`
	Steps                  int     `yaml:"steps"`
}

type ActionYAML struct {
	Name            string  `yaml:"name"`
	FixedCostUSD    float64 `yaml:"fixed_cost_usd"`
	LossRatePerHour float64 `yaml:"loss_rate_per_hour"`
}

// PriorConfig selects the occupancy prior.
// type: "poisson" (mean required) or "empirical" (observations_file required).
type PriorConfig struct {
	Type             string  `yaml:"type"`
	Mean             float64 `yaml:"mean"`
	ObservationsFile string  `yaml:"observations_file"`
	Room             string  `yaml:"room"` // optional room key within the observations file
}

type SamplingConfig struct {
	Samples int `yaml:"samples"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Keep configs concise: default to 1000 stratified samples.
	if c.Sampling.Samples == 0 {
		c.Sampling.Samples = 1000
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If room_file is set, load it and merge in any explicit overrides from c.Room.
	if c.RoomFile != "" {
		roomPath := c.RoomFile
		if !filepath.IsAbs(roomPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), roomPath)
			if _, err := os.Stat(cand); err == nil {
				roomPath = cand
			}
		}
		loaded, err := loadRoomFile(roomPath)
		if err != nil {
			return nil, err
		}
		c.Room = MergeRoom(loaded, c.Room)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.ToScenario(); err != nil {
		return err
	}
	switch c.Prior.Type {
	case "poisson":
		if c.Prior.Mean <= 0 {
			return errors.New("prior.mean must be > 0 for a poisson prior")
		}
	case "empirical":
		if c.Prior.ObservationsFile == "" {
			return errors.New("prior.observations_file is required for an empirical prior")
		}
	case "":
		return errors.New("prior.type is required")
	default:
		return fmt.Errorf("unsupported prior type: %q", c.Prior.Type)
	}
	if c.Sampling.Samples <= 0 {
		return errors.New("sampling.samples must be > 0")
	}
	return nil
}

// ToScenario converts the config into a validated model.Scenario.
func (c *Config) ToScenario() (model.Scenario, error) {
	actions := make([]model.VentilationAction, len(c.Actions))
	for i, a := range c.Actions {
		actions[i] = model.VentilationAction{
			Name:            a.Name,
			FixedCostUSD:    a.FixedCostUSD,
			LossRatePerHour: a.LossRatePerHour,
		}
	}
	sc := model.Scenario{
		Room:            c.Room.ToModelParams(),
		Actions:         actions,
		SickCostPerCase: c.SickCostPerCaseUSD,
	}
	if err := sc.Validate(); err != nil {
		return model.Scenario{}, fmt.Errorf("scenario config invalid: %w", err)
	}
	return sc, nil
}

func (r RoomConfig) ToModelParams() model.RoomParams {
	return model.RoomParams{
		VolumeM3:               r.VolumeM3,
		BreathingRateM3PerHour: r.BreathingRateM3PerHour,
		EmissionQuantaPerHour:  r.EmissionQuantaPerHour,
		InfectiousDoseQuanta:   r.InfectiousDoseQuanta,
		HorizonHours:           r.HorizonHours,
		Steps:                  r.Steps,
	}
}

type roomFileWrapper struct {
	Room RoomConfig `yaml:"room"`
}

func loadRoomFile(path string) (RoomConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RoomConfig{}, err
	}
	var w roomFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return RoomConfig{}, err
	}
	return w.Room, nil
}

// MergeRoom overlays non-zero fields from override onto base.
// This is used when loading a room file and then applying overrides from the request.
func MergeRoom(base, override RoomConfig) RoomConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.VolumeM3 != 0 {
		out.VolumeM3 = override.VolumeM3
	}
	if override.BreathingRateM3PerHour != 0 {
		out.BreathingRateM3PerHour = override.BreathingRateM3PerHour
	}
	if override.EmissionQuantaPerHour != 0 {
		out.EmissionQuantaPerHour = override.EmissionQuantaPerHour
	}
	if override.InfectiousDoseQuanta != 0 {
		out.InfectiousDoseQuanta = override.InfectiousDoseQuanta
	}
	if override.HorizonHours != 0 {
		out.HorizonHours = override.HorizonHours
	}
	if override.Steps != 0 {
		out.Steps = override.Steps
	}
	return out
}
