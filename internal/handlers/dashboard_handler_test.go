package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "finished", d: 0, want: "now"},
		{name: "negative treated as finished", d: -time.Minute, want: "now"},
		{name: "minutes only", d: 45 * time.Minute, want: "45m"},
		{name: "hours and minutes", d: 2*time.Hour + 5*time.Minute, want: "2h 05m"},
		{name: "exact hours", d: 3 * time.Hour, want: "3h 00m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRemaining(tt.d))
		})
	}
}
