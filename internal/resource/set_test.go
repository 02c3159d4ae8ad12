package resource_test

import (
	"errors"
	"testing"

	"chartkit/internal/chart"
	"chartkit/internal/resource"
)

func chartWithElements(elements ...*chart.Element) func() (*chart.Chart, error) {
	return func() (*chart.Chart, error) {
		c := chart.New()
		c.Elements = elements
		return c, nil
	}
}

func TestSyntheticTrackDuration(t *testing.T) {
	cases := []struct {
		name     string
		elements []*chart.Element
		want     float64
	}{
		{"no elements", nil, resource.TrailingMargin},
		{"single note", []*chart.Element{{Start: 2500, Kind: chart.KindNote}}, 2500 + resource.TrailingMargin},
		{"trailing hold", []*chart.Element{
			{Start: 100, Kind: chart.KindNote},
			{Start: 2000, Duration: 1500, Kind: chart.KindHold},
		}, 3500 + resource.TrailingMargin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{
				Chart: chartWithElements(tc.elements...),
			})
			track := set.Track()
			if track == nil || !track.Synthetic {
				t.Fatalf("expected synthetic track, got %#v", track)
			}
			if track.Length != tc.want {
				t.Fatalf("length %v, want %v", track.Length, tc.want)
			}
		})
	}
}

func TestTrackFactoryErrorFallsBack(t *testing.T) {
	set := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{
		Chart: chartWithElements(),
		Track: func() (*resource.Track, error) { return nil, errors.New("decoder unavailable") },
	})
	track := set.Track()
	if track == nil || !track.Synthetic {
		t.Fatalf("expected silent fallback, got %#v", track)
	}
}

func TestRecycleTrackReloads(t *testing.T) {
	loads := 0
	set := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{
		Track: func() (*resource.Track, error) {
			loads++
			return &resource.Track{Source: "real.mp3", Length: 9000}, nil
		},
	})

	first := set.Track()
	if !set.TrackLoaded() {
		t.Fatal("expected track loaded")
	}
	set.RecycleTrack()
	if set.TrackLoaded() {
		t.Fatal("expected track recycled")
	}
	if !first.Released() {
		t.Fatal("recycle must dispose the prior track")
	}
	_ = set.Track()
	if loads != 2 {
		t.Fatalf("factory ran %d times, want 2", loads)
	}
}

func TestBackgroundValidity(t *testing.T) {
	loads := 0
	var current *resource.Background
	set := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{
		Background: func() (*resource.Background, error) {
			loads++
			current = &resource.Background{Path: "bg.jpg"}
			return current, nil
		},
	})

	first := set.Background()
	if first == nil || !set.BackgroundLoaded() {
		t.Fatal("expected background loaded")
	}

	// Lower layer releases the image; the cache must treat it as absent.
	first.Dispose()
	if set.BackgroundLoaded() {
		t.Fatal("released background must read as unavailable")
	}
	second := set.Background()
	if second == first {
		t.Fatal("expected a reloaded background")
	}
	if loads != 2 {
		t.Fatalf("factory ran %d times, want 2", loads)
	}
}

func TestNilBackgroundIsValid(t *testing.T) {
	set := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{})
	if bg := set.Background(); bg != nil {
		t.Fatalf("expected nil background, got %#v", bg)
	}
	if !set.BackgroundLoaded() {
		t.Fatal("cached nil background must still count as loaded")
	}
}

func TestDefaultResources(t *testing.T) {
	info := &chart.Descriptor{ID: 7, Title: "Unit"}
	set := resource.NewSet(info, resource.Factories{})

	if wf := set.Waveform(); wf == nil || len(wf.Peaks) != 0 {
		t.Fatalf("expected empty waveform, got %#v", wf)
	}
	if ov := set.Overlay(); ov == nil || ov.Info != info {
		t.Fatalf("expected descriptor-tagged overlay stub, got %#v", ov)
	}
	if sk := set.Skin(); sk == nil || sk.Name != "default" {
		t.Fatalf("expected default skin, got %#v", sk)
	}
}

func TestTransferRequiresMatchingAudio(t *testing.T) {
	donorInfo := &chart.Descriptor{ID: 1, SetID: 10, AudioFile: "shared.mp3"}
	siblingInfo := &chart.Descriptor{ID: 2, SetID: 10, AudioFile: "shared.mp3"}
	strangerInfo := &chart.Descriptor{ID: 3, SetID: 11, AudioFile: "other.mp3"}

	real := &resource.Track{Source: "shared.mp3", Length: 120000}
	donor := resource.NewSet(donorInfo, resource.Factories{
		Track: func() (*resource.Track, error) { return real, nil },
	})
	_ = donor.Track()

	stranger := resource.NewSet(strangerInfo, resource.Factories{})
	donor.TransferTo(stranger, false)
	if stranger.TrackLoaded() {
		t.Fatal("transfer must not occur across differing audio identity")
	}
	if !donor.TrackLoaded() {
		t.Fatal("donor must keep its track after a refused transfer")
	}

	sibling := resource.NewSet(siblingInfo, resource.Factories{})
	donor.TransferTo(sibling, false)
	if !sibling.TrackLoaded() {
		t.Fatal("transfer must occur for matching audio identity")
	}
	if got := sibling.Track(); got != real {
		t.Fatalf("sibling received %#v, want the donor's cached track", got)
	}
	if donor.TrackLoaded() {
		t.Fatal("donor slot must be empty after the move")
	}
}

func TestTransferSkipsWhenNothingCached(t *testing.T) {
	donor := resource.NewSet(&chart.Descriptor{ID: 1, SetID: 1, AudioFile: "a.mp3"}, resource.Factories{})
	sibling := resource.NewSet(&chart.Descriptor{ID: 2, SetID: 1, AudioFile: "a.mp3"}, resource.Factories{})

	donor.TransferTo(sibling, true)
	if sibling.TrackLoaded() {
		t.Fatal("nothing to transfer: sibling cache must stay empty")
	}
}

func TestTransferDisposesRecipientTrack(t *testing.T) {
	donorInfo := &chart.Descriptor{ID: 1, SetID: 10, AudioFile: "shared.mp3"}
	siblingInfo := &chart.Descriptor{ID: 2, SetID: 10, AudioFile: "shared.mp3"}

	donated := &resource.Track{Source: "shared.mp3", Length: 120000}
	donor := resource.NewSet(donorInfo, resource.Factories{
		Track: func() (*resource.Track, error) { return donated, nil },
	})
	_ = donor.Track()

	stale := &resource.Track{Source: "shared.mp3", Length: 120000}
	sibling := resource.NewSet(siblingInfo, resource.Factories{
		Track: func() (*resource.Track, error) { return stale, nil },
	})
	_ = sibling.Track()

	donor.TransferTo(sibling, false)
	if got := sibling.Track(); got != donated {
		t.Fatalf("sibling holds %#v, want the donor's cached track", got)
	}
	if !stale.Released() {
		t.Fatal("sibling's previous track must be disposed when replaced")
	}
}

func TestTransferSameOwnerBypassesAudioCheck(t *testing.T) {
	real := &resource.Track{Source: "inline-audio", Length: 5000}
	donor := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{
		Track: func() (*resource.Track, error) { return real, nil },
	})
	_ = donor.Track()

	successor := resource.NewSet(&chart.Descriptor{ID: 1}, resource.Factories{})
	donor.TransferTo(successor, true)
	if got := successor.Track(); got != real {
		t.Fatalf("successor received %#v, want the donor's cached track", got)
	}
}
