package paging

// DefaultThreshold is the distance from the end of content, in rows, below
// which infinite scroll asks for the next page
const DefaultThreshold = 5

// DefaultTopButtonRows is the scroll offset past which a "back to top"
// shortcut is offered
const DefaultTopButtonRows = 20

// DistanceFromBottom returns how many rows of content remain below the
// viewport: total rows minus (offset + visible rows), never negative.
func DistanceFromBottom(offset, visible, total int) int {
	return max(0, total-(offset+visible))
}

// ShouldLoad applies the infinite-scroll trigger policy: the viewport is
// within threshold of the bottom, nothing is in flight, and more pages remain.
func ShouldLoad(distance, threshold int, st State) bool {
	return distance < threshold && !st.Loading && st.HasMore
}

// ShowTopButton reports whether the "back to top" shortcut should be shown
func ShowTopButton(offset, rows int) bool {
	return offset > rows
}
