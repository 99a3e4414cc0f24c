package status

import (
	"testing"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		name      string
		formatter Formatter
		count     int
		expected  string
	}{
		{name: "zero", formatter: DefaultFormatter(), count: 0, expected: "Bytes: 0 (0x00)"},
		{name: "single digit padded", formatter: DefaultFormatter(), count: 3, expected: "Bytes: 3 (0x03)"},
		{name: "two digits", formatter: DefaultFormatter(), count: 255, expected: "Bytes: 255 (0xff)"},
		{name: "grows past width", formatter: DefaultFormatter(), count: 300, expected: "Bytes: 300 (0x12c)"},
		{
			name:      "uppercase wide",
			formatter: Formatter{Label: "Size", HexWidth: 4, Uppercase: true},
			count:     171,
			expected:  "Size: 171 (0x00AB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.formatter.Format(tt.count))
		})
	}
}

func TestNewFormatter_FillsBlanks(t *testing.T) {
	f := NewFormatter(config.DisplayConfig{})
	assert.Equal(t, DefaultFormatter(), f)

	f = NewFormatter(config.DisplayConfig{Label: "Len", HexWidth: 3, Uppercase: true})
	assert.Equal(t, "Len: 10 (0x00A)", f.Format(10))
}

func TestForSelection_EmptyIsHidden(t *testing.T) {
	s := DefaultFormatter().ForSelection("")
	assert.False(t, s.Visible)
	assert.Equal(t, Hidden, s)
}

func TestForSelection_CountsText(t *testing.T) {
	s := DefaultFormatter().ForSelection("AAFF23")
	assert.True(t, s.Visible)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "0x03", s.Hex)
	assert.Equal(t, "Bytes: 3 (0x03)", s.Text)
	assert.Equal(t, Tooltip, s.Tooltip)
}

func TestForSelection_NoiseStillVisible(t *testing.T) {
	s := DefaultFormatter().ForSelection("   ")
	assert.True(t, s.Visible)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, "Bytes: 0 (0x00)", s.Text)
}
