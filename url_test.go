package datatype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersionedURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "https://blockprotocol.org/@alice/types/data-type/length/v/1", nil},
		{"trailing slash", "https://blockprotocol.org/@alice/types/data-type/length/v/1/", ErrTrailingSlash},
		{"missing version segment", "https://blockprotocol.org/@alice/types/data-type/length", ErrInvalidVersionedURL},
		{"zero version", "https://blockprotocol.org/@alice/types/data-type/length/v/0", ErrInvalidVersionSegment},
		{"leading zero version", "https://blockprotocol.org/@alice/types/data-type/length/v/01", ErrInvalidVersionSegment},
		{"non-numeric version", "https://blockprotocol.org/@alice/types/data-type/length/v/x", ErrInvalidVersionSegment},
		{"relative base", "/@alice/types/data-type/length/v/1", ErrInvalidVersionedURL},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := ParseVersionedURL(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.input, u.String())
		})
	}
}

func TestVersionedURLEqual(t *testing.T) {
	a := MustParseVersionedURL("https://blockprotocol.org/@alice/types/data-type/length/v/1")
	b := MustParseVersionedURL("https://blockprotocol.org/@alice/types/data-type/length/v/1")
	c := MustParseVersionedURL("https://blockprotocol.org/@alice/types/data-type/length/v/2")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "https://blockprotocol.org/@alice/types/data-type/length", a.Base())
	assert.Equal(t, uint32(1), a.Version())
}

func TestVersionedURLJSONRoundTrip(t *testing.T) {
	var u VersionedURL
	raw := `"https://blockprotocol.org/@alice/types/data-type/length/v/3"`
	err := json.Unmarshal([]byte(raw), &u)
	assert.NoError(t, err)
	assert.Equal(t, uint32(3), u.Version())

	out, err := json.Marshal(u)
	assert.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
