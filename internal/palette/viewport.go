package palette

// ScrollRequest asks the view to bring the item at Index into view, using the
// nearest edge and no animation. Seq orders requests; only the latest counts.
type ScrollRequest struct {
	Seq   uint64
	Index int
}

// ViewportSync tracks the outstanding scroll-into-view request.
type ViewportSync struct {
	seq     uint64
	pending ScrollRequest
	has     bool
}

// Request supersedes any pending request with one targeting index.
func (v *ViewportSync) Request(index int) ScrollRequest {
	v.seq++
	v.pending = ScrollRequest{Seq: v.seq, Index: index}
	v.has = true
	return v.pending
}

// Pending returns the latest request not yet completed.
func (v *ViewportSync) Pending() (ScrollRequest, bool) {
	return v.pending, v.has
}

// Complete marks request seq as applied. It reports false, and leaves the
// pending request alone, when seq was superseded or cancelled.
func (v *ViewportSync) Complete(seq uint64) bool {
	if !v.has || v.pending.Seq != seq {
		return false
	}
	v.has = false
	return true
}

// Cancel drops the pending request. Sequence numbers keep increasing so late
// completions of cancelled requests are still rejected.
func (v *ViewportSync) Cancel() {
	v.has = false
}

// ScrollNearest returns the scroll offset that shows index within a window of
// height rows over total rows, moving the window as little as possible.
func ScrollNearest(index, offset, height, total int) int {
	if height <= 0 || total <= 0 {
		return 0
	}
	maxOffset := max(0, total-height)
	index = clamp(index, 0, total-1)
	offset = clamp(offset, 0, maxOffset)

	switch {
	case index < offset:
		offset = index
	case index >= offset+height:
		offset = index - height + 1
	}
	return clamp(offset, 0, maxOffset)
}
