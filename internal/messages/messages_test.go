package messages

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: \"Hello\"\nfarewell: \"Bye\"\n")},
		"nl.yaml": {Data: []byte("greeting: \"Hallo\"\n")},
	}
	b, err := LoadFS(fsys, "en")
	require.NoError(t, err)
	return b
}

func TestBundle_Message(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{"exact language", "nl", "greeting", "Hallo"},
		{"regional variant", "nl-NL", "greeting", "Hallo"},
		{"underscore locale", "nl_BE", "greeting", "Hallo"},
		{"unknown language falls back", "fr", "greeting", "Hello"},
		{"empty locale falls back", "", "greeting", "Hello"},
		{"invalid locale falls back", "!!", "greeting", "Hello"},
		{"missing key falls back to default language", "nl", "farewell", "Bye"},
		{"missing key everywhere returns key", "nl", "nope", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Message(tt.locale, tt.key))
		})
	}
}

func TestLoadFS_RequiresFallbackBundle(t *testing.T) {
	fsys := fstest.MapFS{
		"nl.yaml": {Data: []byte("greeting: \"Hallo\"\n")},
	}
	_, err := LoadFS(fsys, "en")
	assert.Error(t, err)
}

func TestLoadFS_RejectsInvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: [unterminated\n")},
	}
	_, err := LoadFS(fsys, "en")
	assert.Error(t, err)
}

func TestLoad_EmbeddedBundles(t *testing.T) {
	b, err := Load("en")
	require.NoError(t, err)

	assert.Contains(t, b.Message("en", PlaytimeTop), "<playername>")
	assert.Equal(t, "%d uur", b.Message("nl", "time.hours"))
	assert.Equal(t, "en", b.Languages()[0])
}
