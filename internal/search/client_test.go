package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{}, nil)

	require.ErrorIs(t, err, ErrMissingAPIKey)
	// The message names the env var the server config actually reads.
	assert.Contains(t, err.Error(), "SERPAPI_API_KEY")
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k"}, nil)

	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.NotNil(t, c.httpClient)
}
