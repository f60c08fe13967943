package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/statdash/internal/pkg/constants"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateAuthToken(&AuthTokenWrapper{Admin: "ops"}, "s3cret", time.Hour)
	require.NoError(t, err)

	parsed, err := ParseAuthToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", parsed.Admin)
}

func TestParseAuthToken_Rejects(t *testing.T) {
	t.Parallel()

	valid, err := GenerateAuthToken(&AuthTokenWrapper{Admin: "ops"}, "s3cret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: valid, secret: "other"},
		{name: "garbage", token: "not-a-jwt", secret: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAuthToken(tt.token, tt.secret)
			require.Error(t, err)
			assert.True(t, errors.Is(err, constants.ErrUnauthorized))
		})
	}
}
