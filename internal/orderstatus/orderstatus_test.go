package orderstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"shipped", true},
		{"SHIPPED", true},
		{"Shipped", true},
		{"  pending ", true},
		{"cancelled", true},
		{"declined", true},
		{"completed", true},
		{"archived", false},
		{"", false},
		{"Canceled", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.input))
		})
	}
}

func TestParseReturnsCanonicalStatus(t *testing.T) {
	s, err := Parse("sHiPpEd")
	require.NoError(t, err)
	assert.Equal(t, Shipped, s)
	assert.Equal(t, "Shipped", s.String())

	_, err = Parse("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStringOutsideVocabulary(t *testing.T) {
	assert.Equal(t, "This status is undefined", Status(0).String())
	assert.Equal(t, "This status is undefined", Status(42).String())
	assert.False(t, Status(42).IsValid())
}

func TestAllRoundTrips(t *testing.T) {
	for _, s := range All() {
		require.True(t, s.IsValid())
		parsed, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Len(t, All(), 5)
}
