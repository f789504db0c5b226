package usage

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"
)

// ErrNoUsage is returned when there is nothing to chart.
var ErrNoUsage = errors.New("no usage data available")

// Chart renders the calculator share of a summary as a PNG pie chart.
func Chart(summary Summary) ([]byte, error) {
	if summary.Total == 0 || len(summary.Calculators) == 0 {
		return nil, ErrNoUsage
	}

	values := make([]float64, 0, len(summary.Calculators))
	labels := make([]string, 0, len(summary.Calculators))
	for _, stat := range summary.Calculators {
		values = append(values, float64(stat.Count))
		percentage := float64(stat.Count) / float64(summary.Total) * 100
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", stat.CalculatorType, percentage))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Calculator Usage (%d days)", summary.Days)),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: labels,
			Top:  charts.PositionTop,
		}),
		charts.PNGTypeOption(),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("render usage chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode usage chart: %w", err)
	}
	return buf, nil
}
