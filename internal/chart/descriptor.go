package chart

import "strings"

// Descriptor carries the authoritative identity and metadata for one chart.
// It is supplied at working-unit construction and treated as immutable, with
// one exception: FormatVersion is discovered during parsing and copied back
// onto the authoritative instance by the loader.
type Descriptor struct {
	ID        int64  `json:"id"`
	SetID     int64  `json:"set_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Creator   string `json:"creator,omitempty"`
	AudioFile string `json:"audio_file,omitempty"`

	// FormatVersion records the raw source format version observed while
	// parsing. The library store does not retain it; it is populated only
	// after the chart has been loaded.
	FormatVersion int `json:"format_version,omitempty"`
}

// Clone returns an independent copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

// AudioEquals reports whether two descriptors reference the same underlying
// audio: same chart set and the same audio file name. Descriptors without an
// audio file never match.
func (d *Descriptor) AudioEquals(other *Descriptor) bool {
	if d == nil || other == nil {
		return false
	}
	return d.SetID != 0 &&
		d.SetID == other.SetID &&
		strings.TrimSpace(d.AudioFile) != "" &&
		d.AudioFile == other.AudioFile
}

// DisplayTitle renders "Artist - Title" for presentation, falling back to
// whichever half is present.
func (d *Descriptor) DisplayTitle() string {
	if d == nil {
		return ""
	}
	title := strings.TrimSpace(d.Title)
	artist := strings.TrimSpace(d.Artist)
	switch {
	case artist != "" && title != "":
		return artist + " - " + title
	case title != "":
		return title
	default:
		return artist
	}
}
