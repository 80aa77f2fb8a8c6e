package raycast

// ColumnSpan is the half-open column range [Start, End) owned by one worker.
type ColumnSpan struct {
	Start, End int
}

// Len returns the number of columns in the span.
func (s ColumnSpan) Len() int { return s.End - s.Start }

// Partition splits width columns into workers contiguous spans of width/workers
// columns each; the last span also takes the width%workers remainder. Spans
// never overlap and together cover [0, width). With more workers than
// columns the leading spans are empty.
func Partition(width, workers int) []ColumnSpan {
	if workers < 1 {
		workers = 1
	}
	if width < 0 {
		width = 0
	}
	per := width / workers
	spans := make([]ColumnSpan, workers)
	for t := range spans {
		spans[t] = ColumnSpan{Start: per * t, End: per * (t + 1)}
	}
	spans[workers-1].End = width
	return spans
}
