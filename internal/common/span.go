package common

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownStr is returned by String methods for values outside their enum.
const UnknownStr = "unknown"

// Span is a half-open byte range [Start, End) into a source text.
type Span struct {
	Start int
	End   int
}

// Key returns the "start-end" form used to index generated code by span.
func (s Span) Key() string {
	return strconv.Itoa(s.Start) + "-" + strconv.Itoa(s.End)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two spans share at least one byte. An empty
// span overlaps nothing.
func (s Span) Overlaps(o Span) bool {
	return s.Len() > 0 && o.Len() > 0 && o.Start < s.End && s.Start < o.End
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Text returns the part of src covered by the span.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// String returns the span in interval notation.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// LineColumn returns the 1-based line and byte column of offset in src.
func LineColumn(src string, offset int) (line, column int) {
	offset = min(max(offset, 0), len(src))
	line = 1 + strings.Count(src[:offset], "\n")
	column = offset - strings.LastIndexByte(src[:offset], '\n')

	return line, column
}
