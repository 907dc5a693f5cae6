package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

// Map is a Source Map v3 document.
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON returns the encoded map.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// String returns the encoded map, or "" if it cannot be encoded.
func (m *Map) String() string {
	data, err := m.JSON()
	if err != nil {
		return ""
	}

	return string(data)
}

// URL returns the map as a base64 data URL for inline sourceMappingURL comments.
func (m *Map) URL() string {
	data, err := m.JSON()
	if err != nil {
		return ""
	}

	return "data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(data)
}

// segment maps a generated column to an original position.
type segment struct {
	genCol  int
	srcLine int
	srcCol  int
}

// Builder accumulates output text and its mappings.
type Builder struct {
	source     string
	lineStarts []int

	out    strings.Builder
	lines  [][]segment
	genCol int
}

// NewBuilder starts a map for output derived from source.
func NewBuilder(source string) *Builder {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Builder{
		source:     source,
		lineStarts: starts,
		lines:      [][]segment{nil},
	}
}

// Copy appends source[start:end], mapping every character to itself.
func (b *Builder) Copy(start, end int) {
	if start >= end {
		return
	}

	line, col := b.position(start)

	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(b.source[i:])
		b.out.WriteString(b.source[i : i+size])
		i += size

		if r == '\n' {
			b.newLine()

			line++
			col = 0

			continue
		}

		b.add(segment{genCol: b.genCol, srcLine: line, srcCol: col})

		w := utf16Len(r)
		b.genCol += w
		col += w
	}
}

// Insert appends text that replaces the source at origin. The first column of
// each generated line in text is mapped to origin.
func (b *Builder) Insert(text string, origin int) {
	if text == "" {
		return
	}

	line, col := b.position(origin)
	b.add(segment{genCol: b.genCol, srcLine: line, srcCol: col})

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		b.out.WriteString(text[i : i+size])
		i += size

		if r == '\n' {
			b.newLine()
			b.add(segment{genCol: 0, srcLine: line, srcCol: col})

			continue
		}

		b.genCol += utf16Len(r)
	}
}

// Code returns the output accumulated so far.
func (b *Builder) Code() string {
	return b.out.String()
}

// Map encodes the mappings. sourceID names the single source and its
// content is embedded.
func (b *Builder) Map(sourceID string) *Map {
	return &Map{
		Version:        3,
		File:           sourceID,
		Sources:        []string{sourceID},
		SourcesContent: []string{b.source},
		Names:          []string{},
		Mappings:       b.encode(),
	}
}

func (b *Builder) add(s segment) {
	cur := len(b.lines) - 1
	segs := b.lines[cur]

	// Inserted text can start where a copied character was already mapped.
	if n := len(segs); n > 0 && segs[n-1].genCol == s.genCol {
		segs[n-1] = s
		return
	}

	b.lines[cur] = append(segs, s)
}

func (b *Builder) newLine() {
	b.lines = append(b.lines, nil)
	b.genCol = 0
}

// position converts a byte offset in source to a 0-based line and UTF-16 column.
func (b *Builder) position(offset int) (int, int) {
	if offset > len(b.source) {
		offset = len(b.source)
	}

	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1

	col := 0
	for _, r := range b.source[b.lineStarts[line]:offset] {
		col += utf16Len(r)
	}

	return line, col
}

func (b *Builder) encode() string {
	var sb strings.Builder

	prevLine, prevCol := 0, 0

	for i, segs := range b.lines {
		if i > 0 {
			sb.WriteByte(';')
		}

		prevGen := 0

		for j, s := range segs {
			if j > 0 {
				sb.WriteByte(',')
			}

			writeVLQ(&sb, s.genCol-prevGen)
			writeVLQ(&sb, 0) // single source
			writeVLQ(&sb, s.srcLine-prevLine)
			writeVLQ(&sb, s.srcCol-prevCol)

			prevGen, prevLine, prevCol = s.genCol, s.srcLine, s.srcCol
		}
	}

	return sb.String()
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}

	return 1
}
