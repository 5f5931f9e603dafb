package session

import (
	"treathunt/game"
	"treathunt/protocol"
	"treathunt/room"
)

type handler func(c *Coordinator, id string, payload any) []Outbound

var dispatchTable = map[string]handler{
	protocol.MsgCreateRoom:   (*Coordinator).createRoom,
	protocol.MsgJoinRoom:     (*Coordinator).joinRoom,
	protocol.MsgStartGame:    (*Coordinator).startGame,
	protocol.MsgPlayerJoin:   (*Coordinator).playerJoin,
	protocol.MsgPlayerMove:   (*Coordinator).playerMove,
	protocol.MsgCollectTreat: (*Coordinator).collectTreat,
	protocol.MsgResetGame:    (*Coordinator).resetGame,
}

func (c *Coordinator) connect(m Connect) []Outbound {
	c.conns[m.ID] = m.Conn
	c.log.Info("connection registered", "conn", m.ID)
	to := []string{m.ID}
	return []Outbound{
		{To: to, Event: protocol.MsgWelcome, Payload: protocol.Welcome{PlayerID: m.ID}},
		{To: to, Event: protocol.MsgUpdateRoomList, Payload: roomList(c.rooms.Lobby())},
		{To: to, Event: protocol.MsgUpdatePlayers, Payload: players(c.roster.Lobby())},
	}
}

func (c *Coordinator) createRoom(id string, payload any) []Outbound {
	p, ok := payload.(protocol.CreateRoom)
	if !ok {
		return nil
	}
	out := c.leaveRoom(id)
	name := displayName(p.Username, id)
	c.roster.Join(id, name)
	code := c.rooms.CreateRoom(id, name)
	c.roster.SetRoom(id, code)
	c.log.Info("room created", "room", code, "host", id)

	return append(out,
		Outbound{To: []string{id}, Event: protocol.MsgRoomCreated, Payload: protocol.RoomCreated{RoomID: code}},
		c.roomPlayers([]string{id}),
		c.lobbyRoomList(),
	)
}

func (c *Coordinator) joinRoom(id string, payload any) []Outbound {
	p, ok := payload.(protocol.JoinRoom)
	if !ok {
		return nil
	}
	prev := c.roomOf(id)
	if err := c.rooms.JoinRoom(p.RoomID, id); err != nil {
		c.log.Info("join rejected", "room", p.RoomID, "conn", id, "err", err)
		return []Outbound{{To: []string{id}, Event: protocol.MsgRoomJoinFailed, Payload: protocol.RoomJoinFailed{Reason: err.Error()}}}
	}

	var out []Outbound
	if prev != "" && prev != p.RoomID {
		out = c.leaveRoom(id)
	}
	name := displayName(p.Username, id)
	c.roster.Join(id, name)
	c.roster.SetRoom(id, p.RoomID)
	members, _ := c.rooms.Members(p.RoomID)
	c.log.Info("player joined room", "room", p.RoomID, "conn", id)

	return append(out,
		Outbound{To: members, Event: protocol.MsgPlayerJoined, Payload: protocol.PlayerJoined{Username: name, RoomID: p.RoomID}},
		c.roomPlayers(members),
		c.lobbyRoomList(),
	)
}

func (c *Coordinator) startGame(id string, payload any) []Outbound {
	p, ok := payload.(protocol.StartGame)
	if !ok {
		return nil
	}
	roomID := p.RoomID
	if roomID == "" {
		roomID = c.roomOf(id)
	}
	if !c.rooms.StartRoom(roomID, id) {
		return nil
	}
	members, _ := c.rooms.Members(roomID)
	c.log.Info("match started", "room", roomID)

	return []Outbound{
		{To: members, Event: protocol.MsgStartGame, Payload: protocol.StartGame{RoomID: roomID}},
		c.roomTreats(roomID, members),
		c.lobbyRoomList(),
	}
}

func (c *Coordinator) playerJoin(id string, payload any) []Outbound {
	p, ok := payload.(protocol.PlayerJoin)
	if !ok {
		return nil
	}
	c.roster.Join(id, displayName(p.Username, id))
	if p.X != 0 || p.Y != 0 {
		c.roster.Move(id, p.X, p.Y)
	}

	roomID := c.roomOf(id)
	if roomID == "" {
		return []Outbound{c.lobbyPlayers()}
	}
	c.rooms.Grow(roomID, game.TreatsPerJoin)
	members, _ := c.rooms.Members(roomID)
	return []Outbound{
		c.roomTreats(roomID, members),
		c.roomPlayers(members),
	}
}

func (c *Coordinator) playerMove(id string, payload any) []Outbound {
	p, ok := payload.(protocol.PlayerMove)
	if !ok {
		return nil
	}
	if !c.roster.Move(id, p.X, p.Y) {
		return nil
	}
	return []Outbound{c.scopePlayers(id)}
}

func (c *Coordinator) collectTreat(id string, payload any) []Outbound {
	p, ok := payload.(protocol.CollectTreat)
	if !ok {
		return nil
	}
	roomID := c.roomOf(id)
	if roomID == "" {
		return nil
	}
	collected, done := c.rooms.Collect(roomID, p.Index)
	if !collected {
		return nil
	}
	c.roster.IncrementScore(id)
	members, _ := c.rooms.Members(roomID)

	out := []Outbound{
		{To: members, Event: protocol.MsgUpdateTreats, Payload: protocol.UpdateTreats{Index: p.Index, Collected: true}},
		c.roomPlayers(members),
	}
	if done {
		out = append(out, c.gameOver(roomID, members))
	}
	return out
}

func (c *Coordinator) gameOver(roomID string, members []string) Outbound {
	snap := c.roster.SnapshotOf(members)
	ps := make([]game.Player, 0, len(snap))
	for _, p := range snap {
		ps = append(ps, p)
	}
	over := protocol.GameOver{Winners: []protocol.Winner{}}
	for _, w := range game.Winners(ps) {
		over.Winners = append(over.Winners, protocol.Winner{ID: w.ID, Username: w.Name, Score: w.Score})
	}
	c.log.Info("match over", "room", roomID, "winners", len(over.Winners))
	return Outbound{To: members, Event: protocol.MsgGameOver, Payload: over}
}

func (c *Coordinator) resetGame(id string, payload any) []Outbound {
	p, ok := payload.(protocol.ResetGame)
	if !ok {
		return nil
	}
	roomID := c.roomOf(id)
	if p.RoomID != "" && p.RoomID != roomID {
		return nil
	}
	if roomID == "" {
		return c.wipe()
	}

	c.rooms.ResetRoom(roomID)
	members, _ := c.rooms.Members(roomID)
	c.log.Info("room reset", "room", roomID, "by", id)
	return []Outbound{
		{To: members, Event: protocol.MsgResetGame, Payload: protocol.ResetGame{}},
		c.roomTreats(roomID, members),
		c.roomPlayers(members),
		c.lobbyRoomList(),
	}
}

// wipe clears every room and player; connections stay open.
func (c *Coordinator) wipe() []Outbound {
	c.rooms.Clear()
	c.roster.Clear()
	c.log.Warn("full state reset")
	all := c.allConns()
	return []Outbound{
		{To: all, Event: protocol.MsgResetGame, Payload: protocol.ResetGame{}},
		{To: all, Event: protocol.MsgUpdateRoomList, Payload: protocol.RoomList{}},
	}
}

func (c *Coordinator) disconnect(id string) []Outbound {
	if _, ok := c.conns[id]; !ok {
		return nil
	}
	delete(c.conns, id)
	c.log.Info("connection closed", "conn", id)

	var out []Outbound
	if roomID, ok := c.roster.Remove(id); ok && roomID != "" {
		out = c.repairRoom(roomID, id)
	}
	return append(out, c.lobbyRoomList(), c.lobbyPlayers())
}

// leaveRoom takes a still-connected player out of their current room.
func (c *Coordinator) leaveRoom(id string) []Outbound {
	roomID := c.roomOf(id)
	if roomID == "" {
		return nil
	}
	c.roster.SetRoom(id, "")
	return c.repairRoom(roomID, id)
}

func (c *Coordinator) repairRoom(roomID, id string) []Outbound {
	disp, remaining := c.rooms.RemoveMember(roomID, id)
	c.log.Info("member left room", "room", roomID, "conn", id, "disposition", disp.String())
	switch disp {
	case room.ClosedByHost:
		return []Outbound{{To: remaining, Event: protocol.MsgHostDisconnected, Payload: protocol.HostDisconnected{}}}
	case room.StillOpen:
		return []Outbound{c.roomPlayers(remaining)}
	}
	return nil
}

// maxNameLen matches the account username limit.
const maxNameLen = 20

func displayName(name, id string) string {
	if name != "" {
		if r := []rune(name); len(r) > maxNameLen {
			name = string(r[:maxNameLen])
		}
		return name
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return "Player " + id
}
