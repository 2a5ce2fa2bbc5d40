package debuglog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRecord(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 6*int(time.Millisecond), time.UTC)

	tests := []struct {
		name  string
		trace string
		want  string
	}{
		{
			name:  "with trace",
			trace: "Game.Player:Update ()\n",
			want: "### 03:04:05.006. LOG TYPE: Error\nboom\n" +
				"\n-----------------CODE PATH:\n" +
				"Game.Player:Update ()\n" +
				"-----------------END LOG MESSAGE!\n\n\n",
		},
		{
			name:  "trace without newline",
			trace: "Game.Player:Update ()",
			want: "### 03:04:05.006. LOG TYPE: Error\nboom\n" +
				"\n-----------------CODE PATH:\n" +
				"Game.Player:Update ()\n" +
				"-----------------END LOG MESSAGE!\n\n\n",
		},
		{
			name:  "empty trace",
			trace: "",
			want: "### 03:04:05.006. LOG TYPE: Error\nboom\n" +
				"\n-----------------CODE PATH:\n" +
				"-----------------END LOG MESSAGE!\n\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRecord(at, Error, "boom", tt.trace))
		})
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "Error", Error.String())
	assert.Equal(t, "Assert", Assert.String())
	assert.Equal(t, "Warning", Warning.String())
	assert.Equal(t, "Log", Log.String())
	assert.Equal(t, "Exception", Exception.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"error", Error},
		{"ERROR", Error},
		{"warn", Warning},
		{"Warning", Warning},
		{"info", Log},
		{"log", Log},
		{"assert", Assert},
		{" exception ", Exception},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}
