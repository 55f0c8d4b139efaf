package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancellationPolicy(t *testing.T) {
	policy := CancellationPolicy{CutoffHours: 24}
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	assert.True(t, policy.Allows(start, start.Add(-48*time.Hour)))
	assert.False(t, policy.Allows(start, start.Add(-23*time.Hour)))
	assert.False(t, policy.Allows(start, start.Add(time.Hour)))
}

func TestCancellationPolicyBoundaryIsInclusive(t *testing.T) {
	policy := CancellationPolicy{CutoffHours: 24}
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// Exactly 24h before is still allowed; one second later is not.
	assert.True(t, policy.Allows(start, start.Add(-24*time.Hour)))
	assert.False(t, policy.Allows(start, start.Add(-24*time.Hour+time.Second)))
}
