// Package app loads the shared run configuration for the heat-loss binaries:
// struct defaults, then an optional yaml/json file, then EPOCH_* environment
// overrides, all through koanf.
package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Elemental-Power-Ltd/epoch-thermal/internal/thermal"
)

const envPrefix = "EPOCH_"

type Config struct {
	LogLevel string         `koanf:"log_level"`
	Building BuildingConfig `koanf:"building"`
	Scenario ScenarioConfig `koanf:"scenario"`
}

type BuildingConfig struct {
	WallWidth  float64 `koanf:"wall_width"`
	WallHeight float64 `koanf:"wall_height"`
	WindowArea float64 `koanf:"window_area"`
	FloorArea  float64 `koanf:"floor_area"`
	RoofArea   float64 `koanf:"roof_area"`
	AirVolume  float64 `koanf:"air_volume"`

	SolarGain       float64 `koanf:"solar_gain"`
	FlowTemperature float64 `koanf:"flow_temperature"`
	RadiatorDeltaT  float64 `koanf:"radiator_delta_t"`
}

type ScenarioConfig struct {
	InternalTemperature float64 `koanf:"internal_temperature"`
	ExternalTemperature float64 `koanf:"external_temperature"`
	WindowHours         float64 `koanf:"window_hours"`
	MaxHeatPower        float64 `koanf:"max_heat_power"`
}

func defaults() Config {
	return Config{
		LogLevel: "info",
		Building: BuildingConfig{
			WallWidth:       10,
			WallHeight:      5,
			WindowArea:      1,
			FloorArea:       100,
			RoofArea:        100,
			AirVolume:       5000,
			SolarGain:       thermal.DefaultSolarGain,
			FlowTemperature: thermal.DefaultFlowTemperature,
			RadiatorDeltaT:  thermal.DefaultRadiatorDeltaT,
		},
		Scenario: ScenarioConfig{
			InternalTemperature: 21,
			ExternalTemperature: -2.3,
			WindowHours:         24,
			MaxHeatPower:        thermal.DefaultBoilerPower,
		},
	}
}

// LoadConfig layers defaults, the optional config file and environment
// overrides. An empty path means defaults plus environment only.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// EPOCH_SCENARIO_EXTERNAL_TEMPERATURE=-5 -> scenario.external_temperature
	envProvider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			for _, section := range []string{"building_", "scenario_"} {
				if rest, ok := strings.CutPrefix(key, section); ok {
					return strings.TrimSuffix(section, "_") + "." + rest, value
				}
			}
			return key, value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// Window returns the interpolation window as a duration.
func (s ScenarioConfig) Window() time.Duration {
	return time.Duration(s.WindowHours * float64(time.Hour))
}

// Network builds the configured single-zone network.
func (b BuildingConfig) Network() (*thermal.CompleteNetwork, error) {
	structured, err := thermal.InitialiseOutdoors().AddStructure(thermal.StructureParams{
		WallWidth:  b.WallWidth,
		WallHeight: b.WallHeight,
		WindowArea: b.WindowArea,
		FloorArea:  b.FloorArea,
		RoofArea:   b.RoofArea,
		AirVolume:  b.AirVolume,
		SolarGain:  b.SolarGain,
	})
	if err != nil {
		return nil, err
	}
	return structured.AddHeatingSystem(b.FlowTemperature, b.RadiatorDeltaT)
}
