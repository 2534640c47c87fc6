package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Elemental-Power-Ltd/epoch-thermal/cmd/app"
	"github.com/Elemental-Power-Ltd/epoch-thermal/internal/thermal"
)

// Report is the machine-readable output of one heat-loss run.
type Report struct {
	StaticW      float64            `json:"static_w" yaml:"static_w"`
	DynamicW     float64            `json:"dynamic_w" yaml:"dynamic_w"`
	AvgHeatingW  float64            `json:"avg_heating_w" yaml:"avg_heating_w"`
	WindowHours  float64            `json:"window_hours" yaml:"window_hours"`
	BreakdownW   map[string]float64 `json:"breakdown_w" yaml:"breakdown_w"`
	InternalTemp float64            `json:"internal_temperature" yaml:"internal_temperature"`
	ExternalTemp float64            `json:"external_temperature" yaml:"external_temperature"`
}

func main() {
	var configPath, format string
	flag.StringVar(&configPath, "config", "", "path to config file (.yaml/.yml/.json)")
	flag.StringVar(&format, "format", "json", "report format: json or yaml")
	flag.Parse()

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	report, err := run(cfg, log)
	if err != nil {
		log.Error("heat-loss run failed", "err", err)
		os.Exit(1)
	}

	var out []byte
	switch format {
	case "yaml":
		out, err = yaml.Marshal(report)
	case "json":
		out, err = json.MarshalIndent(report, "", "  ")
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		log.Error("encode report", "err", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func run(cfg app.Config, log *slog.Logger) (Report, error) {
	net, err := cfg.Building.Network()
	if err != nil {
		return Report{}, err
	}

	sc := cfg.Scenario
	log.Info("running heat-loss calculators",
		"internal", sc.InternalTemperature,
		"external", sc.ExternalTemperature,
		"window_hours", sc.WindowHours)

	static := thermal.CalculateMaximumStaticHeatLoss(net, sc.InternalTemperature, sc.ExternalTemperature)
	dynamic := thermal.CalculateMaximumDynamicHeatLoss(net, sc.InternalTemperature, sc.ExternalTemperature)
	breakdown := thermal.CalculateMaximumStaticHeatLossBreakdown(net, sc.InternalTemperature, sc.ExternalTemperature)

	window := sc.Window()
	total, err := thermal.InterpolateHeatingPower(net, sc.InternalTemperature, sc.ExternalTemperature, window, sc.MaxHeatPower)
	if err != nil {
		return Report{}, err
	}

	byElement := make(map[string]float64, len(breakdown))
	for element, energy := range breakdown {
		byElement[element.String()] = energy
	}

	return Report{
		StaticW:      static,
		DynamicW:     dynamic,
		AvgHeatingW:  total / window.Seconds(),
		WindowHours:  sc.WindowHours,
		BreakdownW:   byElement,
		InternalTemp: sc.InternalTemperature,
		ExternalTemp: sc.ExternalTemperature,
	}, nil
}
