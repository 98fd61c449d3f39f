// Package roster extracts team and pair rosters from the HTML tables served by
// tournament registration sites.
package roster

// Mode selects how a document is interpreted.
type Mode string

const (
	ModeTeams Mode = "teams"
	ModePairs Mode = "pairs"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeTeams || m == ModePairs
}

// Role is a team member's special function, empty for a plain player.
type Role string

const (
	RoleNone    Role = ""
	RoleCaptain Role = "captain"
	RoleCoach   Role = "coach"
	RoleNPC     Role = "npc"
)

// Player is one roster entry.
type Player struct {
	FullName string `json:"fullName"`
	Surname  string `json:"surname"`
	WBFID    string `json:"wbfId"`
	Role     Role   `json:"role,omitempty"`
}

// Entity is a team or a pair. Both share the same shape.
type Entity struct {
	ID      string   `json:"id"`
	Event   string   `json:"event"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// minPlayers is the smallest roster emitted; pairs are cut to exactly this many.
const minPlayers = 2
