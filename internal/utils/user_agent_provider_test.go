package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewUserAgentProvider tests the NewUserAgentProvider function.
func TestNewUserAgentProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{
			name:      "empty user agent falls back",
			userAgent: "",
			expected:  DefaultUserAgent,
		},
		{
			name:      "blank user agent falls back",
			userAgent: "   ",
			expected:  DefaultUserAgent,
		},
		{
			name:      "custom user agent",
			userAgent: "somegotools/1.0.0",
			expected:  "somegotools/1.0.0",
		},
		{
			name:      "surrounding spaces are trimmed",
			userAgent: " Mozilla/5.0 ",
			expected:  "Mozilla/5.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := NewUserAgentProvider(tt.userAgent)
			assert.Implements(t, (*UserAgentProvider)(nil), provider)
			assert.Equal(t, tt.expected, provider.GetUserAgent())
		})
	}
}
