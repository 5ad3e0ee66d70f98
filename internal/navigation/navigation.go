package navigation

import (
	"github.com/vaishnava-tech/sadhana-dashboard/internal/models"
)

// Destination is a client-side route the frontend lands on after login.
type Destination string

const (
	DestDashboard       Destination = "/dashboard"
	DestCounsellorQueue Destination = "/counsellor/chats"
	DestAdminPanel      Destination = "/admin"
)

// destinations is the closed role → destination table. Dispatch happens by
// lookup, not by cascading conditionals.
var destinations = map[models.Role]Destination{
	models.RoleDevotee:    DestDashboard,
	models.RoleCounsellor: DestCounsellorQueue,
	models.RoleAdmin:      DestAdminPanel,
}

// DestinationFor resolves the landing route for a role. Unknown roles fall
// back to the devotee dashboard rather than dead-ending the client.
func DestinationFor(role models.Role) Destination {
	if dest, ok := destinations[role]; ok {
		return dest
	}
	return DestDashboard
}
