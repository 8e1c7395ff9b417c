package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/log"
)

type record struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(log.Discard()),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "gbms", DefaultFileName), log.Discard()),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			in := record{ID: 1, Name: "관리자", Roles: []string{"admin"}}
			require.True(t, s.Set("rec", in))

			var out record
			require.True(t, s.Get("rec", &out))
			assert.Equal(t, in, out)

			require.True(t, s.Set("flag", true))
			assert.True(t, GetDefault(s, "flag", false))

			require.True(t, s.Set("token", "mock_token_1"))
			assert.Equal(t, "mock_token_1", GetDefault(s, "token", ""))
		})
	}
}

func TestStore_UnknownKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			out := record{Name: "untouched"}
			assert.False(t, s.Get("missing", &out))
			assert.Equal(t, "untouched", out.Name)

			assert.Equal(t, 42, GetDefault(s, "missing", 42))
		})
	}
}

func TestStore_RemoveAndClear(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.True(t, s.Set("b", 2))
			require.True(t, s.Set("a", 1))
			assert.Equal(t, []string{"a", "b"}, s.Keys())

			assert.True(t, s.Remove("a"))
			assert.True(t, s.Remove("a"))
			assert.Equal(t, []string{"b"}, s.Keys())

			assert.True(t, s.Clear())
			assert.Empty(t, s.Keys())
			assert.True(t, s.Clear())
		})
	}
}

func TestStore_UnencodableValue(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.False(t, s.Set("ch", make(chan int)))
			assert.Empty(t, s.Keys())
		})
	}
}

func TestStore_DecodeMismatch(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.True(t, s.Set("n", "not a number"))
			assert.Equal(t, 7, GetDefault(s, "n", 7))
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	first := NewFileStore(path, log.Discard())
	require.True(t, first.Set("gbms_token", "abc"))

	second := NewFileStore(path, log.Discard())
	assert.Equal(t, "abc", GetDefault(second, "gbms_token", ""))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path, log.Discard())
	assert.Equal(t, "fallback", GetDefault(s, "gbms_token", "fallback"))
	assert.False(t, s.Set("gbms_token", "x"))
	assert.Nil(t, s.Keys())

	assert.True(t, s.Clear())
	assert.True(t, s.Set("gbms_token", "x"))
}

func TestFileStore_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	s := NewFileStore(filepath.Join(blocker, DefaultFileName), log.Discard())
	assert.False(t, s.Set("k", "v"))
}
