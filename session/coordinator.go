package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"treathunt/game"
	"treathunt/protocol"
	"treathunt/room"
)

// Coordinator is the only writer of roster, registry and treat state. Run
// drains Inbox one command at a time, so every event is applied as a single
// read-modify-write and no two events interleave.
type Coordinator struct {
	Inbox    chan any
	quit     chan struct{}
	stopOnce sync.Once

	conns  map[string]Conn
	roster *game.Roster
	rooms  *room.Registry
	log    *slog.Logger
}

func New(roster *game.Roster, rooms *room.Registry, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		Inbox:  make(chan any, 256),
		quit:   make(chan struct{}),
		conns:  make(map[string]Conn),
		roster: roster,
		rooms:  rooms,
		log:    logger,
	}
}

func (c *Coordinator) Run() {
	for {
		select {
		case <-c.quit:
			c.closeAll()
			return
		case cmd := <-c.Inbox:
			c.deliver(c.Handle(cmd))
		}
	}
}

func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.quit) })
}

// Submit queues a command for the loop. It reports false once the
// coordinator has stopped.
func (c *Coordinator) Submit(cmd any) bool {
	select {
	case <-c.quit:
		return false
	default:
	}
	select {
	case c.Inbox <- cmd:
		return true
	case <-c.quit:
		return false
	}
}

// Handle applies one command and returns what must be sent. A panicking
// handler is logged and dropped so other connections keep being served.
func (c *Coordinator) Handle(cmd any) (out []Outbound) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("handler panic", "command", fmt.Sprintf("%T", cmd), "panic", r)
			out = nil
		}
	}()
	switch m := cmd.(type) {
	case Connect:
		return c.connect(m)
	case Inbound:
		return c.dispatch(m)
	case Disconnect:
		return c.disconnect(m.ID)
	}
	c.log.Warn("unknown command", "command", fmt.Sprintf("%T", cmd))
	return nil
}

func (c *Coordinator) dispatch(m Inbound) []Outbound {
	if _, ok := c.conns[m.ID]; !ok {
		return nil
	}
	h, ok := dispatchTable[m.Event]
	if !ok {
		c.log.Debug("ignoring event", "conn", m.ID, "event", m.Event)
		return nil
	}
	return h(c, m.ID, m.Payload)
}

func (c *Coordinator) deliver(outs []Outbound) {
	for _, o := range outs {
		for _, id := range o.To {
			conn, ok := c.conns[id]
			if !ok || conn == nil {
				continue
			}
			if err := conn.Send(o.Event, o.Payload); err != nil {
				c.log.Debug("send dropped", "conn", id, "event", o.Event, "err", err)
			}
		}
	}
}

func (c *Coordinator) closeAll() {
	for id, conn := range c.conns {
		if conn != nil {
			_ = conn.Close()
		}
		delete(c.conns, id)
	}
}

// roomOf returns the player's room, clearing a reference to a room that no
// longer exists.
func (c *Coordinator) roomOf(id string) string {
	p, ok := c.roster.Get(id)
	if !ok || p.RoomID == "" {
		return ""
	}
	if !c.rooms.Exists(p.RoomID) {
		c.roster.SetRoom(id, "")
		return ""
	}
	return p.RoomID
}

// lobbyConns lists connections that are not in a room, in a stable order.
func (c *Coordinator) lobbyConns() []string {
	out := make([]string, 0, len(c.conns))
	for id := range c.conns {
		if p, ok := c.roster.Get(id); ok && p.RoomID != "" {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Coordinator) allConns() []string {
	out := make([]string, 0, len(c.conns))
	for id := range c.conns {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Coordinator) lobbyRoomList() Outbound {
	return Outbound{To: c.lobbyConns(), Event: protocol.MsgUpdateRoomList, Payload: roomList(c.rooms.Lobby())}
}

func (c *Coordinator) lobbyPlayers() Outbound {
	return Outbound{To: c.lobbyConns(), Event: protocol.MsgUpdatePlayers, Payload: players(c.roster.Lobby())}
}

func (c *Coordinator) roomPlayers(members []string) Outbound {
	return Outbound{To: members, Event: protocol.MsgUpdatePlayers, Payload: players(c.roster.SnapshotOf(members))}
}

func (c *Coordinator) roomTreats(roomID string, members []string) Outbound {
	treats, _ := c.rooms.Treats(roomID)
	return Outbound{To: members, Event: protocol.MsgTreatsData, Payload: treatsData(treats)}
}

// scopePlayers is the roster update for whoever shares a scope with id.
func (c *Coordinator) scopePlayers(id string) Outbound {
	if roomID := c.roomOf(id); roomID != "" {
		members, _ := c.rooms.Members(roomID)
		return c.roomPlayers(members)
	}
	return c.lobbyPlayers()
}

func players(ps map[string]game.Player) protocol.Players {
	out := make(protocol.Players, len(ps))
	for id, p := range ps {
		out[id] = protocol.PlayerSnapshot{Username: p.Name, X: p.X, Y: p.Y, Score: p.Score}
	}
	return out
}

func treatsData(ts []game.Treat) protocol.TreatsData {
	out := protocol.TreatsData{Collectibles: make([]protocol.TreatSnapshot, 0, len(ts))}
	for _, t := range ts {
		out.Collectibles = append(out.Collectibles, protocol.TreatSnapshot{
			Index:     t.Index,
			X:         t.X,
			Y:         t.Y,
			Collected: t.Collected,
		})
	}
	return out
}

func roomList(rs map[string]room.RoomInfo) protocol.RoomList {
	out := make(protocol.RoomList, len(rs))
	for code, r := range rs {
		out[code] = protocol.RoomSummary{HostName: r.HostName, MemberCount: r.MemberCount, Active: r.Active}
	}
	return out
}
