package resource

import (
	"chartkit/internal/chart"
	"chartkit/internal/lazy"
)

// Factories supplies the per-kind producers for a Set. Any entry may be nil,
// in which case the kind falls back to its documented default. Chart is the
// only producer whose error surfaces to callers; resource kinds swallow
// factory failures and fall back instead.
type Factories struct {
	Chart      func() (*chart.Chart, error)
	Track      func() (*Track, error)
	Background func() (*Background, error)
	Waveform   func() (*Waveform, error)
	Overlay    func() (*Overlay, error)
	Skin       func() (*Skin, error)
}

// Set owns one single-slot lazy cache per resource kind for a working unit.
type Set struct {
	info *chart.Descriptor

	trackFactory lazy.Factory[*Track]

	chart      *lazy.Cached[*chart.Chart]
	track      *lazy.Cached[*Track]
	background *lazy.Cached[*Background]
	waveform   *lazy.Cached[*Waveform]
	overlay    *lazy.Cached[*Overlay]
	skin       *lazy.Cached[*Skin]
}

// NewSet builds the caches for one working unit identified by info.
func NewSet(info *chart.Descriptor, f Factories) *Set {
	s := &Set{info: info}

	chartFactory := f.Chart
	if chartFactory == nil {
		chartFactory = func() (*chart.Chart, error) { return chart.New(), nil }
	}
	s.chart = lazy.New(chartFactory)

	s.trackFactory = func() (*Track, error) {
		if f.Track != nil {
			track, err := f.Track()
			if err == nil && track != nil {
				return track, nil
			}
		}
		return SilentTrack(s.syntheticLength()), nil
	}
	s.track = lazy.New(s.trackFactory)

	s.background = lazy.New(func() (*Background, error) {
		if f.Background == nil {
			return nil, nil
		}
		background, err := f.Background()
		if err != nil {
			return nil, nil
		}
		return background, nil
	}, lazy.WithValidity(func(b *Background) bool {
		// A nil background is a legitimate cached answer; a loaded one stays
		// valid while the lower layer still holds its data.
		return b == nil || b.Available()
	}))

	s.waveform = lazy.New(func() (*Waveform, error) {
		if f.Waveform != nil {
			waveform, err := f.Waveform()
			if err == nil && waveform != nil {
				return waveform, nil
			}
		}
		return EmptyWaveform(), nil
	})

	s.overlay = lazy.New(func() (*Overlay, error) {
		if f.Overlay != nil {
			overlay, err := f.Overlay()
			if err == nil && overlay != nil {
				return overlay, nil
			}
		}
		return &Overlay{Info: info}, nil
	})

	s.skin = lazy.New(func() (*Skin, error) {
		if f.Skin != nil {
			skin, err := f.Skin()
			if err == nil && skin != nil {
				return skin, nil
			}
		}
		return DefaultSkin(), nil
	})

	return s
}

// syntheticLength derives the silent-track duration from the chart: the last
// element's end (or start) plus the trailing margin, or the margin alone for
// a chart without elements.
func (s *Set) syntheticLength() float64 {
	c, err := s.chart.Get()
	if err != nil || c == nil {
		return TrailingMargin
	}
	return c.Length() + TrailingMargin
}

// Chart returns the primary chart, loading it on first access.
func (s *Set) Chart() (*chart.Chart, error) { return s.chart.Get() }

// ChartLoaded reports whether the chart has been loaded.
func (s *Set) ChartLoaded() bool { return s.chart.Available() }

// Track returns the audio track, computing it on first access.
func (s *Set) Track() *Track {
	track, _ := s.track.Get()
	return track
}

// TrackLoaded reports whether an audio track is currently cached.
func (s *Set) TrackLoaded() bool { return s.track.Available() }

// RecycleTrack disposes the cached track so the next access reloads it.
func (s *Set) RecycleTrack() { s.track.Recycle() }

// Background returns the background image, which may be nil.
func (s *Set) Background() *Background {
	background, _ := s.background.Get()
	return background
}

// BackgroundLoaded reports whether a still-valid background is cached.
func (s *Set) BackgroundLoaded() bool { return s.background.Available() }

// Waveform returns the track waveform.
func (s *Set) Waveform() *Waveform {
	waveform, _ := s.waveform.Get()
	return waveform
}

// WaveformLoaded reports whether the waveform is cached.
func (s *Set) WaveformLoaded() bool { return s.waveform.Available() }

// Overlay returns the visual overlay track.
func (s *Set) Overlay() *Overlay {
	overlay, _ := s.overlay.Get()
	return overlay
}

// OverlayLoaded reports whether the overlay is cached.
func (s *Set) OverlayLoaded() bool { return s.overlay.Available() }

// Skin returns the unit's skin.
func (s *Set) Skin() *Skin {
	skin, _ := s.skin.Get()
	return skin
}

// SkinLoaded reports whether the skin is cached.
func (s *Set) SkinLoaded() bool { return s.skin.Available() }

// TransferTo moves the cached audio-track slot onto other when a non-nil
// track is currently available and both descriptors report the same audio
// identity (or sameOwner asserts it). The recipient receives the same cached
// entry, not a copy; the donor's slot is reset to an empty cache. The caller
// must synchronize: the two sets are not locked across the move.
func (s *Set) TransferTo(other *Set, sameOwner bool) {
	if other == nil || !s.track.Available() {
		return
	}
	track, ok := s.track.Peek()
	if !ok || track == nil {
		return
	}
	if !sameOwner && !s.info.AudioEquals(other.info) {
		return
	}
	// The recipient may already hold a track of its own; dispose it rather
	// than leak it when the slot is replaced.
	other.track.Recycle()
	other.track = s.track
	s.track = lazy.New(s.trackFactory)
}
