package protocol

// Inbound events (client -> server).
const (
	MsgPlayerJoin   = "playerJoin"
	MsgPlayerMove   = "playerMove"
	MsgCollectTreat = "collectTreat"
	MsgCreateRoom   = "createRoom"
	MsgJoinRoom     = "joinRoom"
)

// Events that travel in both directions.
const (
	MsgStartGame = "startGame"
	MsgResetGame = "resetGame"
)

// Outbound events (server -> client, room or everyone).
const (
	MsgWelcome          = "welcome"
	MsgTreatsData       = "treatsData"
	MsgUpdatePlayers    = "updatePlayers"
	MsgUpdateTreats     = "updateTreats"
	MsgRoomCreated      = "roomCreated"
	MsgUpdateRoomList   = "updateRoomList"
	MsgPlayerJoined     = "playerJoined"
	MsgGameOver         = "gameOver"
	MsgRoomJoinFailed   = "roomJoinFailed"
	MsgHostDisconnected = "hostDisconnected"
)

// Envelope is a decoded frame: event name plus the still-encoded payload.
type Envelope struct {
	T string
	P []byte
}
