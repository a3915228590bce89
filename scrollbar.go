package vlist

// ScrollbarGeometry describes a thumb's extent within a track, in
// host units along the track axis. Rendering the track/thumb
// themselves is a host concern; this is pure geometry so both domjs
// (a real CSS scrollbar, usually left to the browser) and termhost
// (a drawn thumb, per the teacher's renderScrollbar) can derive their
// own presentation from the same numbers.
type ScrollbarGeometry struct {
	TrackLength float64
	ThumbLength float64
	ThumbOffset float64
}

// ScrollbarFor computes thumb geometry from the actual-space scroll
// state, generalizing the teacher's row-counted renderScrollbar
// (virtuallist.go) from integer rows to continuous actual pixels:
// thumb length is the container's share of total content, thumb
// offset is the scroll fraction applied to the remaining track.
func ScrollbarFor(trackLength, containerHeight, actualTotalHeight, scrollActual float64) ScrollbarGeometry {
	if trackLength <= 0 || actualTotalHeight <= 0 {
		return ScrollbarGeometry{TrackLength: trackLength}
	}
	thumb := trackLength * containerHeight / actualTotalHeight
	if thumb < 1 {
		thumb = 1
	}
	if thumb > trackLength {
		thumb = trackLength
	}

	maxScroll := actualTotalHeight - containerHeight
	offset := 0.0
	if maxScroll > 0 {
		frac := scrollActual / maxScroll
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		offset = (trackLength - thumb) * frac
	}
	return ScrollbarGeometry{TrackLength: trackLength, ThumbLength: thumb, ThumbOffset: offset}
}
