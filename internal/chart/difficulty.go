package chart

// Difficulty holds the chart-wide configuration block that element defaulting
// and difficulty-affecting modifiers operate on.
type Difficulty struct {
	OverallLevel       float64 `json:"overall_level"`
	DrainRate          float64 `json:"drain_rate"`
	ApproachRate       float64 `json:"approach_rate"`
	VelocityMultiplier float64 `json:"velocity_multiplier"`
}

// DefaultDifficulty returns the midpoint settings used by empty charts.
func DefaultDifficulty() *Difficulty {
	return &Difficulty{
		OverallLevel:       5,
		DrainRate:          5,
		ApproachRate:       5,
		VelocityMultiplier: 1,
	}
}

// Clone returns an independent copy of the difficulty block.
func (d *Difficulty) Clone() *Difficulty {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}
