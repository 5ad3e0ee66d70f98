package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

func TestDestinationFor(t *testing.T) {
	tests := []struct {
		role models.Role
		want Destination
	}{
		{models.RoleDevotee, DestDashboard},
		{models.RoleCounsellor, DestCounsellorQueue},
		{models.RoleAdmin, DestAdminPanel},
		{models.Role("visitor"), DestDashboard}, // unknown role falls back
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, DestinationFor(tt.role))
		})
	}
}
