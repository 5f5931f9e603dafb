package room

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"

	"treathunt/game"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomStarted  = errors.New("room full or started")
)

// Disposition tells the caller what happened to a room after a member left.
type Disposition int

const (
	StillOpen Disposition = iota
	Closed
	ClosedByHost
)

func (d Disposition) String() string {
	switch d {
	case StillOpen:
		return "still_open"
	case Closed:
		return "closed"
	case ClosedByHost:
		return "closed_by_host"
	}
	return "unknown"
}

// RoomInfo is the lobby listing entry for a room.
type RoomInfo struct {
	HostName    string `json:"hostName"`
	MemberCount int    `json:"memberCount"`
	Active      bool   `json:"active"`
}

// Registry holds rooms by code. It keeps the roster's room back-references
// in step with membership and zeroes scores on reset.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	roster *game.Roster
}

func NewRegistry(roster *game.Roster) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		roster: roster,
	}
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateRoom generates a unique 6-char code and registers an inactive room
// with the host as its only member.
func (g *Registry) CreateRoom(hostID, hostName string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		code := generateCode(6)
		if _, exists := g.rooms[code]; exists {
			continue
		}
		g.rooms[code] = newRoom(code, hostID, hostName)
		return code
	}
}

// JoinRoom adds playerID to a lobby room. Nothing changes on failure.
func (g *Registry) JoinRoom(roomID, playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if r.Active {
		return ErrRoomStarted
	}
	if !r.hasMember(playerID) {
		r.Members = append(r.Members, playerID)
	}
	return nil
}

// StartRoom activates a lobby room and deals a fresh set of treats. Only the
// host may start it.
func (g *Registry) StartRoom(roomID, requesterID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok || r.HostID != requesterID || r.Active {
		return false
	}
	r.Active = true
	r.Treats.Initialize(game.TreatsPerRound)
	return true
}

// ResetRoom returns the room to the lobby with fresh treats and zeroed scores.
func (g *Registry) ResetRoom(roomID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return false
	}
	r.Active = false
	r.Treats.Initialize(game.TreatsPerRound)
	g.roster.ResetScores(r.Members)
	return true
}

// RemoveMember drops playerID from the room. An empty room is deleted. When
// the host leaves the room is deleted as well; the remaining members are
// returned and their room references cleared so the caller can notify them.
// A room that no longer exists reports Closed.
func (g *Registry) RemoveMember(roomID, playerID string) (Disposition, []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return Closed, nil
	}
	r.removeMember(playerID)
	if len(r.Members) == 0 {
		delete(g.rooms, roomID)
		return Closed, nil
	}
	if playerID == r.HostID {
		delete(g.rooms, roomID)
		remaining := r.members()
		for _, id := range remaining {
			g.roster.SetRoom(id, "")
		}
		return ClosedByHost, remaining
	}
	return StillOpen, r.members()
}

// ListRooms returns every room; Lobby narrows it to joinable ones.
func (g *Registry) ListRooms() map[string]RoomInfo {
	return g.list(func(*Room) bool { return true })
}

func (g *Registry) Lobby() map[string]RoomInfo {
	return g.list(func(r *Room) bool { return !r.Active })
}

func (g *Registry) list(keep func(*Room) bool) map[string]RoomInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]RoomInfo, len(g.rooms))
	for code, r := range g.rooms {
		if !keep(r) {
			continue
		}
		out[code] = RoomInfo{HostName: r.HostName, MemberCount: len(r.Members), Active: r.Active}
	}
	return out
}

func (g *Registry) Exists(roomID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.rooms[roomID]
	return ok
}

func (g *Registry) Members(roomID string) ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return nil, false
	}
	return r.members(), true
}

func (g *Registry) IsActive(roomID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[roomID]
	return ok && r.Active
}

// Collect claims a treat in a running room. done reports whether that claim
// emptied the board.
func (g *Registry) Collect(roomID string, index int) (ok, done bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, exists := g.rooms[roomID]
	if !exists || !r.Active {
		return false, false
	}
	if !r.Treats.Collect(index) {
		return false, false
	}
	return true, r.Treats.AllCollected()
}

// Grow tops up a room's treats and returns the resulting set. A running
// match whose board is already cleared has ended and is left untouched.
func (g *Registry) Grow(roomID string, by int) ([]game.Treat, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok || (r.Active && r.Treats.AllCollected()) {
		return nil, false
	}
	r.Treats.Grow(by)
	return r.Treats.Snapshot(), true
}

func (g *Registry) Treats(roomID string) ([]game.Treat, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return nil, false
	}
	return r.Treats.Snapshot(), true
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Clear drops every room.
func (g *Registry) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rooms = make(map[string]*Room)
}

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
