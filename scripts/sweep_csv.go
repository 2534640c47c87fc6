package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/Elemental-Power-Ltd/epoch-thermal/internal/thermal"
)

// SweepExternalTemperature writes static, dynamic and day-averaged heating
// figures for the reference cube across a range of external temperatures.
func SweepExternalTemperature(from, to, step float64, filename string) error {
	net, err := thermal.CreateSimpleStructure(10, 5, 1, 100, 100, 5000)
	if err != nil {
		return fmt.Errorf("failed to build network: %v", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"External", "StaticW", "DynamicW", "AvgHeatingW"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	const internal = 21.0
	for external := from; external <= to; external += step {
		static := thermal.CalculateMaximumStaticHeatLoss(net, internal, external)
		dynamic := thermal.CalculateMaximumDynamicHeatLoss(net, internal, external)
		total, err := thermal.InterpolateHeatingPower(net, internal, external, 24*time.Hour, thermal.DefaultBoilerPower)
		if err != nil {
			return fmt.Errorf("failed to interpolate heating power: %v", err)
		}

		if err := writer.Write([]string{
			fmt.Sprintf("%.1f", external),
			fmt.Sprintf("%.2f", static),
			fmt.Sprintf("%.2f", dynamic),
			fmt.Sprintf("%.2f", total/(24*time.Hour).Seconds()),
		}); err != nil {
			return fmt.Errorf("failed to write CSV record: %v", err)
		}
	}

	return nil
}

func main() {
	SweepExternalTemperature(-10, 15, 0.5, "heatloss_sweep.csv")
}
