// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monospace measures every rune as 6 units wide regardless of font.
func monospace(text, font string, size float64) float64 {
	return 6 * float64(utf8.RuneCountInString(text))
}

// texts returns the text of every placed line.
func texts(p Placement) []string {
	out := make([]string, len(p))
	for i, l := range p {
		out[i] = l.Text
	}
	return out
}

// testGeometry fits 13 characters per line (80 units) and 6 lines per page.
func testGeometry() Geometry {
	return Geometry{
		PageWidth:  100,
		PageHeight: 100,
		Margin:     10,
		LineHeight: 14,
		Font:       "Helvetica",
		FontSize:   12,
		Measure:    monospace,
	}
}

func TestWrapLines(t *testing.T) {
	narrow := testGeometry()
	narrow.PageWidth = 60 // 40 units: one four-letter word per line

	tests := []struct {
		name string
		text string
		g    Geometry
		want []string
	}{
		{
			name: "words that fit share a line",
			text: "hello world",
			g:    testGeometry(),
			want: []string{"hello world", ""},
		},
		{
			name: "overflow moves the word to a new line",
			text: "aaaa bbbb",
			g:    narrow,
			want: []string{"aaaa", "bbbb", ""},
		},
		{
			name: "each paragraph gets one separator",
			text: "para1\npara2",
			g:    testGeometry(),
			want: []string{"para1", "", "para2", ""},
		},
		{
			name: "empty paragraphs still get a separator",
			text: "a\n\nb",
			g:    testGeometry(),
			want: []string{"a", "", "", "b", ""},
		},
		{
			name: "oversized word is placed alone and unsplit",
			text: "supercalifragilistic",
			g:    testGeometry(),
			want: []string{"supercalifragilistic", ""},
		},
		{
			name: "oversized word between short words",
			text: "a supercalifragilistic b",
			g:    testGeometry(),
			want: []string{"a", "supercalifragilistic", "b", ""},
		},
		{
			name: "runs of whitespace collapse",
			text: "  one \t two   ",
			g:    testGeometry(),
			want: []string{"one two", ""},
		},
		{
			name: "carriage returns are whitespace",
			text: "one\r\ntwo\r\n",
			g:    testGeometry(),
			want: []string{"one", "", "two", "", ""},
		},
		{
			name: "whitespace-only text is one empty paragraph",
			text: " ",
			g:    testGeometry(),
			want: []string{""},
		},
		{
			name: "exact fit is accepted",
			text: "abcdef ghijkl",
			g:    testGeometry(),
			want: []string{"abcdef ghijkl", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapLines(tt.text, tt.g))
		})
	}
}

func TestPaginate_SinglePage(t *testing.T) {
	p := Paginate("hello world", testGeometry())

	require.Len(t, p, 2)
	assert.Equal(t, PlacedLine{Text: "hello world", Page: 0, Y: 90}, p[0])
	assert.Equal(t, PlacedLine{Text: "", Page: 0, Y: 76}, p[1])
	assert.Equal(t, 1, p.Pages())
}

func TestPaginate_EmptyText(t *testing.T) {
	p := Paginate("", testGeometry())

	assert.Empty(t, p)
	assert.Equal(t, 0, p.Pages())

	// Only the empty string is empty; whitespace is still a paragraph.
	assert.Equal(t, []string{""}, texts(Paginate(" ", testGeometry())))
}

func TestPaginate_PageBreak(t *testing.T) {
	// Seven one-word paragraphs produce fourteen lines; six fit per page.
	text := strings.Repeat("x\n", 6) + "x"
	p := Paginate(text, testGeometry())

	require.Len(t, p, 14)
	for i := 0; i < 6; i++ {
		assert.Equal(t, 0, p[i].Page, "line %d", i)
	}
	assert.Equal(t, 1, p[6].Page)
	assert.Equal(t, 90.0, p[6].Y, "cursor resets to the top margin")
	assert.Equal(t, 2, p[12].Page)
	assert.Equal(t, 3, p.Pages())
	assert.Len(t, p.OnPage(1), 6)
	assert.Len(t, p.OnPage(2), 2)
}

func TestPaginate_SecondLineOnNextPageWhenFull(t *testing.T) {
	g := testGeometry()
	g.PageHeight = 30 // top at 20: room for one line before the cursor drops below 10
	g.PageWidth = 60

	p := Paginate("aaaa bbbb", g)

	require.Len(t, p, 3)
	assert.Equal(t, []string{"aaaa", "bbbb", ""}, texts(p))
	assert.Equal(t, 0, p[0].Page)
	assert.Equal(t, 1, p[1].Page)
	assert.Equal(t, 2, p[2].Page)
}

// randomText builds paragraphs of random lowercase words, some empty and some
// containing words longer than a line.
func randomText(r *rand.Rand) string {
	var paragraphs []string
	count := 1 + r.Intn(12)
	for p := 0; p < count; p++ {
		var words []string
		n := r.Intn(20)
		for w := 0; w < n; w++ {
			size := 1 + r.Intn(18)
			b := make([]byte, size)
			for i := range b {
				b[i] = byte('a' + r.Intn(26))
			}
			words = append(words, string(b))
		}
		paragraphs = append(paragraphs, strings.Join(words, " "))
	}
	return strings.Join(paragraphs, "\n")
}

func TestPaginate_Properties(t *testing.T) {
	g := testGeometry()
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		text := randomText(r)
		p := Paginate(text, g)

		blanks := 0
		for j, line := range p {
			if line.Text == "" {
				blanks++
				continue
			}
			if w := g.Measure(line.Text, g.Font, g.FontSize); w > g.MaxWidth() {
				assert.NotContains(t, line.Text, " ", "only a single word may overflow: %q", line.Text)
			}
			if j > 0 {
				assert.GreaterOrEqual(t, line.Page, p[j-1].Page, "pages must not decrease")
			}
		}
		if text == "" {
			assert.Empty(t, p, "empty text has no lines")
		} else {
			assert.Equal(t, len(strings.Split(text, "\n")), blanks, "one separator per paragraph")
		}
		assert.Equal(t, p, Paginate(text, g), "paginate must be deterministic")
	}
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Geometry)
		wantErr string
	}{
		{name: "valid", mutate: func(*Geometry) {}},
		{name: "zero width", mutate: func(g *Geometry) { g.PageWidth = 0 }, wantErr: "page size"},
		{name: "negative margin", mutate: func(g *Geometry) { g.Margin = -1 }, wantErr: "must not be negative"},
		{name: "margins consume width", mutate: func(g *Geometry) { g.Margin = 50 }, wantErr: "horizontal room"},
		{name: "margins consume height", mutate: func(g *Geometry) { g.PageWidth = 500; g.Margin = 60 }, wantErr: "vertical room"},
		{name: "zero line height", mutate: func(g *Geometry) { g.LineHeight = 0 }, wantErr: "line height"},
		{name: "zero font size", mutate: func(g *Geometry) { g.FontSize = 0 }, wantErr: "font size"},
		{name: "missing font", mutate: func(g *Geometry) { g.Font = " " }, wantErr: "font family"},
		{name: "missing metrics", mutate: func(g *Geometry) { g.Measure = nil }, wantErr: "metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGeometry()
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry(monospace)

	require.NoError(t, g.Validate())
	assert.Equal(t, 468.0, g.MaxWidth())
	assert.Equal(t, "Helvetica", g.Font)
}
