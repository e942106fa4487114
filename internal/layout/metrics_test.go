// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreFontMetrics_Measure(t *testing.T) {
	m := NewCoreFontMetrics()

	tests := []struct {
		name string
		text string
		font string
		size float64
		want float64
	}{
		// h e l l o = 556+556+222+222+556 thousandths of an em.
		{name: "helvetica", text: "hello", font: "Helvetica", size: 12, want: 2.112 * 12},
		{name: "courier is monospaced", text: "abc", font: "Courier", size: 10, want: 18},
		{name: "empty string", text: "", font: "Helvetica", size: 12, want: 0},
		{name: "unknown family falls back to helvetica", text: "hello", font: "Comic Sans", size: 12, want: 2.112 * 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Measure(tt.text, tt.font, tt.size), 0.001)
		})
	}
	require.NoError(t, m.Check())
}

func TestCoreFontMetrics_TranslatesUTF8(t *testing.T) {
	m := NewCoreFontMetrics()

	// é and e share a glyph width in Helvetica once mapped to cp1252.
	assert.InDelta(t, m.Measure("e", "Helvetica", 12), m.Measure("é", "Helvetica", 12), 0.001)
}

func TestPaginate_WithCoreFontMetrics(t *testing.T) {
	m := NewCoreFontMetrics()
	g := DefaultGeometry(m.Measure)

	p := Paginate("The quick brown fox jumps over the lazy dog", g)

	assert.Equal(t, []string{"The quick brown fox jumps over the lazy dog", ""}, texts(p))
	assert.Equal(t, 720.0, p[0].Y)
}

func TestIsCoreFont(t *testing.T) {
	assert.True(t, IsCoreFont("helvetica"))
	assert.True(t, IsCoreFont("Times"))
	assert.False(t, IsCoreFont("Comic Sans"))
}

func TestCoreFontMetrics_CheckReportsStickyError(t *testing.T) {
	m := NewCoreFontMetrics()
	m.pdf.SetErrorf("font table unavailable")

	err := m.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measuring text: font table unavailable")
}
