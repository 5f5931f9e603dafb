package game

import (
	"math"
	"sync"
)

// Player is a connected participant. RoomID is a back-reference into the
// room registry; the registry owns membership.
type Player struct {
	ID     string
	Name   string
	X, Y   float64
	Score  int
	RoomID string
}

// Roster maps connection ids to players. All reads return copies taken under
// a single lock so snapshots never show a partial update.
type Roster struct {
	mu      sync.RWMutex
	players map[string]*Player
}

func NewRoster() *Roster {
	return &Roster{players: make(map[string]*Player)}
}

// Join places the player at the spawn point with a zero score, replacing any
// previous entry. Room membership of an existing entry survives the rejoin.
func (r *Roster) Join(id, name string) Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &Player{ID: id, Name: name, X: SpawnX, Y: SpawnY}
	if old, ok := r.players[id]; ok {
		p.RoomID = old.RoomID
	}
	r.players[id] = p
	return *p
}

// Move refuses unknown ids and non-finite coordinates.
func (r *Roster) Move(id string, x, y float64) bool {
	if !finite(x) || !finite(y) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.X, p.Y = x, y
	return true
}

func (r *Roster) IncrementScore(id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return 0, false
	}
	p.Score++
	return p.Score, true
}

// Remove deletes the player and returns the room it belonged to so the
// caller can repair membership.
func (r *Roster) Remove(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return "", false
	}
	delete(r.players, id)
	return p.RoomID, true
}

func (r *Roster) SetRoom(id, roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.RoomID = roomID
	return true
}

func (r *Roster) ResetScores(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			p.Score = 0
		}
	}
}

func (r *Roster) Get(id string) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

func (r *Roster) Snapshot() map[string]Player {
	return r.filter(func(*Player) bool { return true })
}

// SnapshotOf copies only the listed players; unknown ids are skipped.
func (r *Roster) SnapshotOf(ids []string) map[string]Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Player, len(ids))
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			out[id] = *p
		}
	}
	return out
}

// Lobby copies the players that are not in any room.
func (r *Roster) Lobby() map[string]Player {
	return r.filter(func(p *Player) bool { return p.RoomID == "" })
}

func (r *Roster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = make(map[string]*Player)
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

func (r *Roster) filter(keep func(*Player) bool) map[string]Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Player, len(r.players))
	for id, p := range r.players {
		if keep(p) {
			out[id] = *p
		}
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
