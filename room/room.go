package room

import "treathunt/game"

// Room is an isolated match: its own members, activity flag and treats.
type Room struct {
	ID       string
	HostID   string
	HostName string
	Members  []string // join order; the host is first
	Active   bool     // false = joinable lobby, true = match running
	Treats   *game.TreatSet
}

func newRoom(id, hostID, hostName string) *Room {
	return &Room{
		ID:       id,
		HostID:   hostID,
		HostName: hostName,
		Members:  []string{hostID},
		Treats:   game.NewTreatSet(nil),
	}
}

func (r *Room) hasMember(id string) bool {
	for _, m := range r.Members {
		if m == id {
			return true
		}
	}
	return false
}

func (r *Room) removeMember(id string) bool {
	for i, m := range r.Members {
		if m == id {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) members() []string {
	out := make([]string, len(r.Members))
	copy(out, r.Members)
	return out
}
