package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	mt, b64, err := DecodeDataURL("data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)
	assert.Equal(t, "iVBORw0KGgo=", b64)

	// URL-safe input is re-encoded to the standard alphabet.
	mt, b64, err = DecodeDataURL("data:image/jpeg;base64,_-w=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mt)
	assert.Equal(t, "/+w=", b64)

	_, _, err = DecodeDataURL("iVBORw0KGgo=")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("data:image/png;base64")
	assert.Error(t, err)

	// Declared type survives a broken payload.
	mt, _, err = DecodeDataURL("data:image/gif;base64,!!!")
	assert.Error(t, err)
	assert.Equal(t, "image/gif", mt)
}

func TestMakeDataURL(t *testing.T) {
	s := MakeDataURL("image/png", []byte{0x89, 0x50})
	assert.True(t, strings.HasPrefix(s, "data:image/png;base64,"))
	mt, _, err := DecodeDataURL(s)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)
}

func TestSniffMimeHTTP(t *testing.T) {
	assert.Equal(t, "image/jpeg", SniffMimeHTTP([]byte{0xFF, 0xD8, 0xFF}))
	assert.Equal(t, "image/png", SniffMimeHTTP([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}))
	assert.Equal(t, "application/octet-stream", SniffMimeHTTP([]byte("hello")))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"abc"}, SplitMessage("abc", 10))

	parts := SplitMessage(strings.Repeat("a", 25), 10)
	assert.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)}, parts)

	// Prefers a newline near the boundary.
	parts = SplitMessage("line one\nline two", 10)
	require.Len(t, parts, 2)
	assert.Equal(t, "line one\n", parts[0])
	assert.Equal(t, "line two", parts[1])

	// Rune-safe splitting.
	parts = SplitMessage(strings.Repeat("あ", 12), 10)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("あ", 10), parts[0])
}
