package testsupport

import "chartkit/internal/chart"

// SampleChart builds a small but representative chart for tests.
func SampleChart(title string) *chart.Chart {
	return &chart.Chart{
		Info:       &chart.Descriptor{Title: title, Artist: "Fixture"},
		Difficulty: &chart.Difficulty{OverallLevel: 4, DrainRate: 5, ApproachRate: 6, VelocityMultiplier: 1},
		Timeline: chart.NewTimeline(
			chart.ControlPoint{Time: 0, BeatLength: 500, SpeedMultiplier: 1},
		),
		Elements: []*chart.Element{
			{Start: 0, Kind: chart.KindNote, Column: 0},
			{Start: 500, Kind: chart.KindNote, Column: 1},
			{Start: 1000, Duration: 1000, Kind: chart.KindHold, Column: 2},
		},
	}
}
