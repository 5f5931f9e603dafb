package protocol

import (
	"fmt"
	"math"
)

//input structs coming in from the client.

type PlayerJoin struct {
	Username string  `json:"username" msgpack:"username"`
	Score    int     `json:"score" msgpack:"score"` // advisory; the server keeps its own score
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
}

type PlayerMove struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

func (p PlayerJoin) validate() error { return finite(p.X, p.Y) }

func (p PlayerMove) validate() error { return finite(p.X, p.Y) }

// finite rejects NaN and infinities, which JSON cannot carry back out.
func finite(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: non-finite position (%v, %v)", ErrInvalidPayload, x, y)
	}
	return nil
}

type CollectTreat struct {
	Index int `json:"index" msgpack:"index"`
}

type CreateRoom struct {
	Username string `json:"username" msgpack:"username"`
}

type JoinRoom struct {
	RoomID   string `json:"roomId" msgpack:"roomId"`
	Username string `json:"username" msgpack:"username"`
}

// StartGame is sent by the host and echoed to the room once the match runs.
type StartGame struct {
	RoomID string `json:"roomId" msgpack:"roomId"`
}

// ResetGame without a room id from a lobby connection wipes everything.
type ResetGame struct {
	RoomID string `json:"roomId,omitempty" msgpack:"roomId,omitempty"`
}
