package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	t.Parallel()

	d, err := ParseDataURL("data:image/PNG;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.MIMEType)
	assert.Equal(t, []byte("hello"), d.Data)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", d.String())
}

func TestParseDataURL_Malformed(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no prefix":    "aGVsbG8=",
		"no comma":     "data:image/png;base64",
		"not base64":   "data:image/png,hello",
		"no mime":      "data:;base64,aGVsbG8=",
		"bad payload":  "data:image/png;base64,@@@",
		"empty":        "data:image/png;base64,",
		"blank string": "   ",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDataURL(in)
			assert.ErrorIs(t, err, ErrMalformedDataURL)
		})
	}
}

func TestShoppingSearchURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://www.google.com/search?tbm=shop&hl=en&gl=us&q=mid-century+oak+chair+%26+ottoman",
		ShoppingSearchURL("mid-century oak chair & ottoman"))
}
