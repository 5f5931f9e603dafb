package protocol

type Welcome struct {
	PlayerID string `json:"playerId" msgpack:"playerId"`
}

type TreatSnapshot struct {
	Index     int     `json:"index" msgpack:"index"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Collected bool    `json:"collected" msgpack:"collected"`
}

type TreatsData struct {
	Collectibles []TreatSnapshot `json:"collectibles" msgpack:"collectibles"`
}

type PlayerSnapshot struct {
	Username string  `json:"username" msgpack:"username"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	Score    int     `json:"score" msgpack:"score"`
}

// Players is the updatePlayers payload, keyed by connection id.
type Players map[string]PlayerSnapshot

type UpdateTreats struct {
	Index     int  `json:"index" msgpack:"index"`
	Collected bool `json:"collected" msgpack:"collected"`
}

type RoomCreated struct {
	RoomID string `json:"roomId" msgpack:"roomId"`
}

type RoomSummary struct {
	HostName    string `json:"hostName" msgpack:"hostName"`
	MemberCount int    `json:"memberCount" msgpack:"memberCount"`
	Active      bool   `json:"active" msgpack:"active"`
}

// RoomList is the updateRoomList payload, keyed by room id.
type RoomList map[string]RoomSummary

type PlayerJoined struct {
	Username string `json:"username" msgpack:"username"`
	RoomID   string `json:"roomId" msgpack:"roomId"`
}

type Winner struct {
	ID       string `json:"id" msgpack:"id"`
	Username string `json:"username" msgpack:"username"`
	Score    int    `json:"score" msgpack:"score"`
}

type GameOver struct {
	Winners []Winner `json:"winners" msgpack:"winners"`
}

type RoomJoinFailed struct {
	Reason string `json:"reason" msgpack:"reason"`
}

type HostDisconnected struct{}
