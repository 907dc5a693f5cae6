package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_Key(t *testing.T) {
	assert.Equal(t, "3-10", Span{Start: 3, End: 10}.Key())
	assert.Equal(t, "0-0", Span{}.Key())
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 3}, Span{3, 6}, false},
		{"nested", Span{0, 10}, Span{2, 4}, true},
		{"partial", Span{0, 5}, Span{4, 8}, true},
		{"identical", Span{2, 4}, Span{2, 4}, true},
		{"empty inside", Span{0, 5}, Span{2, 2}, false},
		{"both empty", Span{2, 2}, Span{2, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{Start: 2, End: 9}

	assert.True(t, outer.Contains(Span{Start: 2, End: 9}))
	assert.True(t, outer.Contains(Span{Start: 3, End: 5}))
	assert.False(t, outer.Contains(Span{Start: 1, End: 5}))
	assert.False(t, outer.Contains(Span{Start: 8, End: 10}))
}

func TestSpan_Text(t *testing.T) {
	src := "const r = a + b;"
	s := Span{Start: 10, End: 15}

	assert.Equal(t, "a + b", s.Text(src))
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "[10,15)", s.String())
}

func TestLineColumn(t *testing.T) {
	src := "ab\ncd\n\nx"

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{7, 4, 1},
		{100, 4, 2},
		{-1, 1, 1},
	}

	for _, tt := range tests {
		line, col := LineColumn(src, tt.offset)
		assert.Equal(t, tt.line, line, "line at %d", tt.offset)
		assert.Equal(t, tt.col, col, "column at %d", tt.offset)
	}
}
