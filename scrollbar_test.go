package vlist

import "testing"

func TestScrollbarFor_ThumbProportionalToViewport(t *testing.T) {
	geo := ScrollbarFor(400, 200, 2000, 0)
	want := 400.0 * 200 / 2000
	if geo.ThumbLength != want {
		t.Errorf("ThumbLength = %v, want %v", geo.ThumbLength, want)
	}
	if geo.ThumbOffset != 0 {
		t.Errorf("ThumbOffset at scrollTop 0 = %v, want 0", geo.ThumbOffset)
	}
}

func TestScrollbarFor_OffsetAtMaxScroll(t *testing.T) {
	geo := ScrollbarFor(400, 200, 2000, 1800) // maxScroll = 2000-200 = 1800
	if geo.ThumbOffset != geo.TrackLength-geo.ThumbLength {
		t.Errorf("ThumbOffset at max scroll = %v, want %v", geo.ThumbOffset, geo.TrackLength-geo.ThumbLength)
	}
}

func TestScrollbarFor_ThumbClampedToTrack(t *testing.T) {
	// container taller than content: thumb would exceed track length.
	geo := ScrollbarFor(400, 500, 200, 0)
	if geo.ThumbLength > geo.TrackLength {
		t.Errorf("ThumbLength = %v, want <= TrackLength %v", geo.ThumbLength, geo.TrackLength)
	}
}

func TestScrollbarFor_MinimumThumbLength(t *testing.T) {
	// vast content relative to viewport: thumb must not shrink to 0.
	geo := ScrollbarFor(400, 10, 10_000_000, 0)
	if geo.ThumbLength < 1 {
		t.Errorf("ThumbLength = %v, want >= 1", geo.ThumbLength)
	}
}

func TestScrollbarFor_ZeroTrackOrContent(t *testing.T) {
	geo := ScrollbarFor(0, 200, 2000, 0)
	if geo.ThumbLength != 0 || geo.ThumbOffset != 0 {
		t.Errorf("zero track length should produce zero geometry, got %+v", geo)
	}
	geo = ScrollbarFor(400, 200, 0, 0)
	if geo.ThumbLength != 0 {
		t.Errorf("zero content height should produce zero thumb length, got %+v", geo)
	}
}

func TestScrollbarFor_ClampsOutOfRangeScrollActual(t *testing.T) {
	geo := ScrollbarFor(400, 200, 2000, -50)
	if geo.ThumbOffset != 0 {
		t.Errorf("negative scrollActual should clamp offset to 0, got %v", geo.ThumbOffset)
	}
	geoOver := ScrollbarFor(400, 200, 2000, 100_000)
	if geoOver.ThumbOffset != geoOver.TrackLength-geoOver.ThumbLength {
		t.Errorf("scrollActual beyond maxScroll should clamp offset to track end, got %v", geoOver.ThumbOffset)
	}
}
