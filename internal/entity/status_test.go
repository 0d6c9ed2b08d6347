package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, Queued, ParseStatus(""))
	assert.Equal(t, Queued, ParseStatus("  "))
	assert.Equal(t, Sent, ParseStatus("SENT"))
	assert.Equal(t, Sent, ParseStatus(" Sent "))
	assert.Equal(t, Status("pending"), ParseStatus("pending"))
	assert.False(t, ParseStatus("pending").Known())
	assert.True(t, ParseStatus("error").Known())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from  Status
		to    Status
		force bool
		want  bool
	}{
		{Queued, Processing, false, true},
		{Error, Processing, false, true},
		{Sent, Processing, false, false},
		{Sent, Processing, true, true},
		{Processing, Processing, false, false},
		{Processing, Processing, true, true},
		{Processing, Sent, false, true},
		{Processing, Error, false, true},
		{Queued, Sent, false, false},
		{Queued, Sent, true, false},
		{Error, Sent, false, false},
		{Sent, Error, false, true},
		{Queued, Error, false, true},
		{Status("pending"), Processing, false, false},
		{Status("pending"), Processing, true, true},
		{Status("pending"), Error, false, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to, tt.force), "%s -> %s (force=%v)", tt.from, tt.to, tt.force)
	}
}
