package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return NewStore(path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReadBool_MissingKeyPersistsDefault(t *testing.T) {
	for _, def := range []bool{true, false} {
		store := newTestStore(t, "")

		got, err := store.ReadBool("Verbose", def)
		require.NoError(t, err)
		assert.Equal(t, def, got)

		if def {
			assert.Equal(t, "Verbose=true\n", readFile(t, store.Path()))
		} else {
			assert.Equal(t, "Verbose=false\n", readFile(t, store.Path()))
		}
	}
}

func TestReadBool_AppendsAfterExistingLines(t *testing.T) {
	store := newTestStore(t, "# comment\nOther=false\n")

	got, err := store.ReadBool("Verbose", true)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, "# comment\nOther=false\nVerbose=true\n", readFile(t, store.Path()))
}

func TestReadBool_ValidValueDoesNotWrite(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "lower false", content: "Verbose=false\n", want: false},
		{name: "capitalized", content: "Verbose=True\n", want: true},
		{name: "padded", content: "  Verbose  =  FALSE  \n", want: false},
		{name: "crlf", content: "Verbose=false\r\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.content)
			before, err := os.Stat(store.Path())
			require.NoError(t, err)

			got, err := store.ReadBool("Verbose", !tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			after, err := os.Stat(store.Path())
			require.NoError(t, err)
			assert.Equal(t, before.ModTime(), after.ModTime())
			assert.Equal(t, tt.content, readFile(t, store.Path()))
		})
	}
}

func TestReadBool_MalformedValueKeepsLine(t *testing.T) {
	store := newTestStore(t, "Verbose=yes\n")

	got, err := store.ReadBool("Verbose", true)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, "Verbose=yes\n", readFile(t, store.Path()))

	got, err = store.ReadBool("Verbose", false)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestReadBool_EmptyValueIsRepaired(t *testing.T) {
	store := newTestStore(t, "A=true\nVerbose=\nB=false\n")

	got, err := store.ReadBool("Verbose", false)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, "A=true\nVerbose=false\nB=false\n", readFile(t, store.Path()))
}

func TestReadBool_MultiSeparatorLineIsIgnored(t *testing.T) {
	store := newTestStore(t, "Verbose=true=false\n")

	got, err := store.ReadBool("Verbose", false)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, "Verbose=true=false\nVerbose=false\n", readFile(t, store.Path()))
}

func TestReadBool_IsIdempotent(t *testing.T) {
	store := newTestStore(t, "")

	for i := 0; i < 3; i++ {
		got, err := store.ReadBool("Verbose", true)
		require.NoError(t, err)
		assert.True(t, got)
	}
	assert.Equal(t, "Verbose=true\n", readFile(t, store.Path()))
}

func TestWriteBool(t *testing.T) {
	t.Run("replaces first match and preserves order", func(t *testing.T) {
		store := newTestStore(t, "A=true\nbroken line\nVerbose=true\nVerbose=true\nB=x=y\n")

		require.NoError(t, store.WriteBool("Verbose", false))
		assert.Equal(t, "A=true\nbroken line\nVerbose=false\nVerbose=true\nB=x=y\n", readFile(t, store.Path()))
	})

	t.Run("appends when missing", func(t *testing.T) {
		store := newTestStore(t, "A=true\n")

		require.NoError(t, store.WriteBool("Verbose", true))
		assert.Equal(t, "A=true\nVerbose=true\n", readFile(t, store.Path()))
	})

	t.Run("creates file", func(t *testing.T) {
		store := newTestStore(t, "")

		require.NoError(t, store.WriteBool("Verbose", false))
		assert.Equal(t, "Verbose=false\n", readFile(t, store.Path()))
	})

	t.Run("idempotent", func(t *testing.T) {
		store := newTestStore(t, "")

		require.NoError(t, store.WriteBool("Verbose", true))
		require.NoError(t, store.WriteBool("Verbose", true))

		content := readFile(t, store.Path())
		assert.Equal(t, 1, strings.Count(content, "Verbose="))
	})

	t.Run("round trip", func(t *testing.T) {
		store := newTestStore(t, "")

		require.NoError(t, store.WriteBool("Verbose", false))
		got, err := store.ReadBool("Verbose", true)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		store := newTestStore(t, "")

		require.NoError(t, store.WriteBool("Verbose", false))
		_, err := os.Stat(store.Path() + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})
}

func TestLines(t *testing.T) {
	store := newTestStore(t, "")

	lines, err := store.Lines()
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, store.WriteBool("A", true))
	lines, err = store.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"A=true"}, lines)
}

func TestReadBool_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)
	store := NewStore(path)

	got, err := store.ReadBool("Verbose", true)
	require.NoError(t, err)
	assert.True(t, got)
	assert.FileExists(t, path)
}

func TestReadBool_UnreadableFile(t *testing.T) {
	// a directory at the settings path cannot be read as a file
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.MkdirAll(path, 0755))

	_, err := NewStore(path).ReadBool("Verbose", true)
	assert.Error(t, err)
}

func TestReadBool_OversizedLineIsKept(t *testing.T) {
	junk := strings.Repeat("x", 200*1024)
	store := newTestStore(t, junk+"\r\nActivateLogger=false\n")

	got, err := store.ReadBool(KeyActivateLogger, true)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, store.WriteBool(KeyFullTrace, true))
	assert.Equal(t, junk+"\nActivateLogger=false\nIsFullUnityLogs=true\n", readFile(t, store.Path()))
}
