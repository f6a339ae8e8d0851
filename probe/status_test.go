package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	var testData = []struct {
		status   Status
		expected string
	}{
		{StatusStarting, "starting"},
		{StatusHealthy, "healthy"},
		{StatusUnhealthy, "unhealthy"},
		{Status(934), "unknown"},
	}

	for _, record := range testData {
		assert := assert.New(t)
		assert.Equal(record.expected, record.status.String())
	}
}

func TestOutcomeString(t *testing.T) {
	var testData = []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeUnknown, "unknown"},
		{OutcomeSuccess, "success"},
		{OutcomeFailure, "failure"},
		{OutcomeTimeout, "timeout"},
		{Outcome(-17), "unknown"},
	}

	for _, record := range testData {
		assert := assert.New(t)
		assert.Equal(record.expected, record.outcome.String())
	}
}
