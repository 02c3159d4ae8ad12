package chart

import "sort"

// Default control values used when a chart carries no timeline entries.
const (
	DefaultBeatLength      = 500.0
	DefaultSpeedMultiplier = 1.0
)

// ControlPoint describes timing state taking effect at a point in time.
type ControlPoint struct {
	Time            float64 `json:"time"`
	BeatLength      float64 `json:"beat_length"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
}

// Timeline is an ordered sequence of control points. The zero value is a
// usable empty timeline that answers every query with defaults.
type Timeline struct {
	Points []ControlPoint `json:"points"`
}

// NewTimeline builds a timeline from the given points, ordered by time.
func NewTimeline(points ...ControlPoint) *Timeline {
	tl := &Timeline{Points: append([]ControlPoint(nil), points...)}
	sort.SliceStable(tl.Points, func(i, j int) bool {
		return tl.Points[i].Time < tl.Points[j].Time
	})
	return tl
}

// At returns the control state in effect at the given time: the latest point
// at or before it, with zero fields backfilled from defaults. An empty
// timeline (or a query before the first point) yields pure defaults.
func (t *Timeline) At(time float64) ControlPoint {
	cp := ControlPoint{BeatLength: DefaultBeatLength, SpeedMultiplier: DefaultSpeedMultiplier}
	if t == nil {
		return cp
	}
	for i := range t.Points {
		if t.Points[i].Time > time {
			break
		}
		if t.Points[i].BeatLength > 0 {
			cp.BeatLength = t.Points[i].BeatLength
		}
		if t.Points[i].SpeedMultiplier > 0 {
			cp.SpeedMultiplier = t.Points[i].SpeedMultiplier
		}
		cp.Time = t.Points[i].Time
	}
	return cp
}

// Clone returns an independent copy of the timeline.
func (t *Timeline) Clone() *Timeline {
	if t == nil {
		return nil
	}
	return &Timeline{Points: append([]ControlPoint(nil), t.Points...)}
}
