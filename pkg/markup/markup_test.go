package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"red", Red, "red"},
		{"yellow", Yellow, "yellow"},
		{"gray resolves to first palette entry", Grey, "gray"},
		{"clear", Clear, "clear"},
		{"unnamed falls back to hex", RGBA(1, 0.5, 0, 1), "#ff8000ff"},
		{"alpha differs from named", RGBA(1, 0, 0, 0.5), "#ff000080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.color))
		})
	}
}

func TestColored(t *testing.T) {
	assert.Equal(t, "<color=red> boom </color>", Colored("boom", Red))
	assert.Equal(t, "<color=#102030ff> x </color>", Colored("x", RGBA(16.0/255, 32.0/255, 48.0/255, 1)))
}

func TestBold(t *testing.T) {
	assert.Equal(t, "<b> hi </b>", Bold("hi"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "red", want: Red},
		{in: "  Cyan ", want: Cyan},
		{in: "#ff0000", want: Red},
		{in: "#00000000", want: Clear},
		{in: "#ffeb04ff", want: Yellow},
		{in: "orange", wantErr: true},
		{in: "#ff00", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "#ff0000zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Name(tt.want), Name(got))
		})
	}
}

func TestStrip(t *testing.T) {
	s := Colored(Bold("hello"), Green) + " tail"
	assert.Equal(t, "  hello   tail", Strip(s))
}

func TestToANSI(t *testing.T) {
	s := "pre " + Colored("warn", Yellow) + " " + Bold("loud") + " " + "<color=nope>x</color>"
	out := ToANSI(s)

	assert.NotContains(t, out, "<color")
	assert.NotContains(t, out, "</b>")
	assert.True(t, strings.HasPrefix(out, "pre "))
	assert.Contains(t, out, "warn")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "x")
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "RGBA(1.000, 0.000, 0.000, 1.000)", Red.String())
}
