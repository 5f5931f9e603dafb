package session

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"treathunt/game"
	"treathunt/protocol"
	"treathunt/room"
)

type harness struct {
	c      *Coordinator
	roster *game.Roster
	rooms  *room.Registry
}

func newHarness() *harness {
	roster := game.NewRoster()
	rooms := room.NewRegistry(roster)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &harness{c: New(roster, rooms, logger), roster: roster, rooms: rooms}
}

func (h *harness) connect(ids ...string) {
	for _, id := range ids {
		h.c.Handle(Connect{ID: id, Conn: &fakeConn{sendCh: make(chan sentEvent, 1)}})
	}
}

func (h *harness) send(id, event string, payload any) []Outbound {
	return h.c.Handle(Inbound{ID: id, Event: event, Payload: payload})
}

// createRoom connects host, has it create a room and returns the room code.
func (h *harness) createRoom(t *testing.T, host string) string {
	t.Helper()
	outs := h.send(host, protocol.MsgCreateRoom, protocol.CreateRoom{Username: host})
	got := payloadsFor(outs, host, protocol.MsgRoomCreated)
	if len(got) != 1 {
		t.Fatalf("host got %d roomCreated events, want 1", len(got))
	}
	return got[0].(protocol.RoomCreated).RoomID
}

func (h *harness) join(t *testing.T, id, code string) {
	t.Helper()
	outs := h.send(id, protocol.MsgJoinRoom, protocol.JoinRoom{RoomID: code, Username: id})
	if n := len(payloadsFor(outs, id, protocol.MsgRoomJoinFailed)); n != 0 {
		t.Fatalf("%s could not join %s", id, code)
	}
}

func payloadsFor(outs []Outbound, id, event string) []any {
	var got []any
	for _, o := range outs {
		if o.Event != event {
			continue
		}
		for _, to := range o.To {
			if to == id {
				got = append(got, o.Payload)
			}
		}
	}
	return got
}

func score(t *testing.T, r *game.Roster, id string) int {
	t.Helper()
	p, ok := r.Get(id)
	if !ok {
		t.Fatalf("player %s missing from roster", id)
	}
	return p.Score
}

func TestConnectWelcomesWithLobbyState(t *testing.T) {
	h := newHarness()
	h.connect("host")
	code := h.createRoom(t, "host")

	outs := h.c.Handle(Connect{ID: "new", Conn: &fakeConn{sendCh: make(chan sentEvent, 1)}})
	welcome := payloadsFor(outs, "new", protocol.MsgWelcome)
	if len(welcome) != 1 || welcome[0].(protocol.Welcome).PlayerID != "new" {
		t.Fatalf("welcome = %v", welcome)
	}
	lists := payloadsFor(outs, "new", protocol.MsgUpdateRoomList)
	if len(lists) != 1 {
		t.Fatalf("got %d room lists, want 1", len(lists))
	}
	if _, ok := lists[0].(protocol.RoomList)[code]; !ok {
		t.Fatalf("room %s missing from lobby list %v", code, lists[0])
	}
	for _, o := range outs {
		if len(o.To) != 1 || o.To[0] != "new" {
			t.Fatalf("connect leaked %s to %v", o.Event, o.To)
		}
	}
}

func TestCreateRoomBroadcastsListToLobbyOnly(t *testing.T) {
	h := newHarness()
	h.connect("a", "b", "lobby")
	code := h.createRoom(t, "a")
	h.join(t, "b", code)

	outs := h.send("lobby", protocol.MsgCreateRoom, protocol.CreateRoom{Username: "l"})
	if n := len(payloadsFor(outs, "a", protocol.MsgUpdateRoomList)); n != 0 {
		t.Fatalf("in-room connection got a lobby room list")
	}
	if n := len(payloadsFor(outs, "lobby", protocol.MsgRoomCreated)); n != 1 {
		t.Fatalf("creator got %d roomCreated", n)
	}
}

func TestMatchScenario(t *testing.T) {
	h := newHarness()
	h.connect("H", "P", "X")
	code := h.createRoom(t, "H")

	outs := h.send("P", protocol.MsgJoinRoom, protocol.JoinRoom{RoomID: code, Username: "P"})
	joined := payloadsFor(outs, "H", protocol.MsgPlayerJoined)
	if len(joined) != 1 || joined[0].(protocol.PlayerJoined).Username != "P" {
		t.Fatalf("host playerJoined = %v", joined)
	}

	outs = h.send("H", protocol.MsgStartGame, protocol.StartGame{RoomID: code})
	if !h.rooms.IsActive(code) {
		t.Fatalf("room not active after host start")
	}
	for _, id := range []string{"H", "P"} {
		if n := len(payloadsFor(outs, id, protocol.MsgStartGame)); n != 1 {
			t.Fatalf("%s got %d startGame", id, n)
		}
		data := payloadsFor(outs, id, protocol.MsgTreatsData)
		if len(data) != 1 || len(data[0].(protocol.TreatsData).Collectibles) != game.TreatsPerRound {
			t.Fatalf("%s treatsData = %v", id, data)
		}
	}
	lists := payloadsFor(outs, "X", protocol.MsgUpdateRoomList)
	if len(lists) != 1 {
		t.Fatalf("lobby connection got %d room lists", len(lists))
	}
	if _, ok := lists[0].(protocol.RoomList)[code]; ok {
		t.Fatalf("started room still advertised")
	}

	outs = h.send("X", protocol.MsgJoinRoom, protocol.JoinRoom{RoomID: code, Username: "X"})
	failed := payloadsFor(outs, "X", protocol.MsgRoomJoinFailed)
	if len(failed) != 1 || failed[0].(protocol.RoomJoinFailed).Reason != "room full or started" {
		t.Fatalf("third join = %v", failed)
	}
	if len(outs) != 1 {
		t.Fatalf("failed join produced %d outbounds, want only the notice", len(outs))
	}
	if members, _ := h.rooms.Members(code); len(members) != 2 {
		t.Fatalf("failed join changed members: %v", members)
	}

	h.send("H", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 0})
	h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 1})
	if score(t, h.roster, "H") != 1 || score(t, h.roster, "P") != 1 {
		t.Fatalf("scores not counted before reset")
	}

	outs = h.send("P", protocol.MsgResetGame, protocol.ResetGame{RoomID: code})
	if h.rooms.IsActive(code) {
		t.Fatalf("room active after reset")
	}
	for _, id := range []string{"H", "P"} {
		if score(t, h.roster, id) != 0 {
			t.Fatalf("%s score not reset", id)
		}
		if n := len(payloadsFor(outs, id, protocol.MsgResetGame)); n != 1 {
			t.Fatalf("%s got %d resetGame", id, n)
		}
	}
	treats, _ := h.rooms.Treats(code)
	if len(treats) != game.TreatsPerRound {
		t.Fatalf("treats after reset = %d", len(treats))
	}
	for _, tr := range treats {
		if tr.Collected {
			t.Fatalf("treat %d collected after reset", tr.Index)
		}
	}
	if _, ok := payloadsFor(outs, "X", protocol.MsgUpdateRoomList)[0].(protocol.RoomList)[code]; !ok {
		t.Fatalf("reset room not advertised again")
	}
}

func TestStartByNonHostIgnored(t *testing.T) {
	h := newHarness()
	h.connect("H", "P")
	code := h.createRoom(t, "H")
	h.join(t, "P", code)

	if outs := h.send("P", protocol.MsgStartGame, protocol.StartGame{RoomID: code}); len(outs) != 0 {
		t.Fatalf("non-host start produced %d outbounds", len(outs))
	}
	if h.rooms.IsActive(code) {
		t.Fatalf("non-host started the room")
	}
}

func startedRoom(t *testing.T, h *harness, host string, others ...string) string {
	t.Helper()
	h.connect(append([]string{host}, others...)...)
	code := h.createRoom(t, host)
	for _, id := range others {
		h.join(t, id, code)
	}
	h.send(host, protocol.MsgStartGame, protocol.StartGame{RoomID: code})
	if !h.rooms.IsActive(code) {
		t.Fatalf("room did not start")
	}
	return code
}

func TestCollectResentNeverScoresTwice(t *testing.T) {
	h := newHarness()
	startedRoom(t, h, "H", "P")

	outs := h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 3})
	delta := payloadsFor(outs, "H", protocol.MsgUpdateTreats)
	if len(delta) != 1 || delta[0].(protocol.UpdateTreats) != (protocol.UpdateTreats{Index: 3, Collected: true}) {
		t.Fatalf("delta = %v", delta)
	}
	for i := 0; i < 3; i++ {
		if outs := h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 3}); len(outs) != 0 {
			t.Fatalf("resent collect produced %d outbounds", len(outs))
		}
		if outs := h.send("H", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 3}); len(outs) != 0 {
			t.Fatalf("collect by another player of a claimed treat produced outbounds")
		}
	}
	if score(t, h.roster, "P") != 1 || score(t, h.roster, "H") != 0 {
		t.Fatalf("scores P=%d H=%d, want 1 and 0", score(t, h.roster, "P"), score(t, h.roster, "H"))
	}
	if outs := h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 99}); len(outs) != 0 {
		t.Fatalf("out-of-range collect produced outbounds")
	}
}

func TestGameOverTieDeclaredOnce(t *testing.T) {
	h := newHarness()
	startedRoom(t, h, "H", "P")

	var overs []any
	for i := 0; i < game.TreatsPerRound; i++ {
		who := "H"
		if i%2 == 1 {
			who = "P"
		}
		outs := h.send(who, protocol.MsgCollectTreat, protocol.CollectTreat{Index: i})
		overs = append(overs, payloadsFor(outs, "H", protocol.MsgGameOver)...)
		if i < game.TreatsPerRound-1 && len(overs) != 0 {
			t.Fatalf("game over declared after %d collects", i+1)
		}
	}
	if len(overs) != 1 {
		t.Fatalf("got %d gameOver, want 1", len(overs))
	}
	winners := overs[0].(protocol.GameOver).Winners
	if len(winners) != 2 || winners[0].ID != "H" || winners[1].ID != "P" || winners[0].Score != 5 {
		t.Fatalf("winners = %+v, want H and P with 5", winners)
	}
	if outs := h.send("H", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 0}); len(outs) != 0 {
		t.Fatalf("collect after game over produced outbounds")
	}
}

func TestGameOverSingleWinner(t *testing.T) {
	h := newHarness()
	startedRoom(t, h, "H", "P")

	var over protocol.GameOver
	for i := 0; i < game.TreatsPerRound; i++ {
		who := "H"
		if i == 0 {
			who = "P"
		}
		outs := h.send(who, protocol.MsgCollectTreat, protocol.CollectTreat{Index: i})
		if got := payloadsFor(outs, "P", protocol.MsgGameOver); len(got) == 1 {
			over = got[0].(protocol.GameOver)
		}
	}
	if len(over.Winners) != 1 || over.Winners[0].ID != "H" || over.Winners[0].Score != game.TreatsPerRound-1 {
		t.Fatalf("winners = %+v", over.Winners)
	}
}

func TestCollectOutsideRunningRoomIgnored(t *testing.T) {
	h := newHarness()
	h.connect("H", "L")
	h.createRoom(t, "H")
	h.send("H", protocol.MsgPlayerJoin, protocol.PlayerJoin{Username: "H"})

	if outs := h.send("H", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 0}); len(outs) != 0 {
		t.Fatalf("collect in a lobby room produced outbounds")
	}
	if outs := h.send("L", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 0}); len(outs) != 0 {
		t.Fatalf("collect without a room produced outbounds")
	}
}

func TestCollectAfterResetIgnored(t *testing.T) {
	h := newHarness()
	code := startedRoom(t, h, "H", "P")

	h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 0})
	h.send("H", protocol.MsgResetGame, protocol.ResetGame{})
	if outs := h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 1}); len(outs) != 0 {
		t.Fatalf("collect after reset produced outbounds")
	}
	if score(t, h.roster, "P") != 0 {
		t.Fatalf("score survived reset")
	}
	treats, _ := h.rooms.Treats(code)
	for _, tr := range treats {
		if tr.Collected {
			t.Fatalf("treat %d collected after reset", tr.Index)
		}
	}

	h.send("H", protocol.MsgStartGame, protocol.StartGame{RoomID: code})
	if outs := h.send("P", protocol.MsgCollectTreat, protocol.CollectTreat{Index: 1}); len(outs) == 0 {
		t.Fatalf("collect after restart ignored")
	}
}

func TestResetNamingOtherRoomIgnored(t *testing.T) {
	h := newHarness()
	code := startedRoom(t, h, "H")
	h.connect("Q")
	other := h.createRoom(t, "Q")

	if outs := h.send("Q", protocol.MsgResetGame, protocol.ResetGame{RoomID: code}); len(outs) != 0 {
		t.Fatalf("reset of a foreign room produced outbounds")
	}
	if !h.rooms.IsActive(code) || !h.rooms.Exists(other) {
		t.Fatalf("foreign reset changed state")
	}
}

func TestLobbyResetWipesEverything(t *testing.T) {
	h := newHarness()
	startedRoom(t, h, "H", "P")
	h.connect("L")

	outs := h.send("L", protocol.MsgResetGame, protocol.ResetGame{})
	for _, id := range []string{"H", "P", "L"} {
		if n := len(payloadsFor(outs, id, protocol.MsgResetGame)); n != 1 {
			t.Fatalf("%s got %d resetGame", id, n)
		}
	}
	if h.rooms.Len() != 0 || h.roster.Len() != 0 {
		t.Fatalf("wipe left %d rooms and %d players", h.rooms.Len(), h.roster.Len())
	}
}

func TestHostDisconnectNotifiesMembersOnce(t *testing.T) {
	h := newHarness()
	h.connect("H", "A", "B", "L")
	code := h.createRoom(t, "H")
	h.join(t, "A", code)
	h.join(t, "B", code)

	outs := h.c.Handle(Disconnect{ID: "H"})
	for _, id := range []string{"A", "B"} {
		if n := len(payloadsFor(outs, id, protocol.MsgHostDisconnected)); n != 1 {
			t.Fatalf("%s got %d hostDisconnected, want 1", id, n)
		}
		if p, _ := h.roster.Get(id); p.RoomID != "" {
			t.Fatalf("%s still references %q", id, p.RoomID)
		}
	}
	if h.rooms.Exists(code) {
		t.Fatalf("room survived host disconnect")
	}
	for _, id := range []string{"A", "B", "L"} {
		lists := payloadsFor(outs, id, protocol.MsgUpdateRoomList)
		if len(lists) != 1 {
			t.Fatalf("%s got %d room lists", id, len(lists))
		}
		if _, ok := lists[0].(protocol.RoomList)[code]; ok {
			t.Fatalf("closed room %s still listed", code)
		}
	}
	if n := len(payloadsFor(outs, "L", protocol.MsgHostDisconnected)); n != 0 {
		t.Fatalf("lobby connection notified of host disconnect")
	}

	outs = h.send("A", protocol.MsgJoinRoom, protocol.JoinRoom{RoomID: code, Username: "A"})
	if len(payloadsFor(outs, "A", protocol.MsgRoomJoinFailed)) != 1 {
		t.Fatalf("join of closed room did not fail")
	}
}

func TestLoneHostDisconnectIsSilent(t *testing.T) {
	h := newHarness()
	h.connect("H")
	code := h.createRoom(t, "H")

	for _, o := range h.c.Handle(Disconnect{ID: "H"}) {
		if o.Event == protocol.MsgHostDisconnected {
			t.Fatalf("lone host disconnect sent hostDisconnected to %v", o.To)
		}
	}
	if h.rooms.Exists(code) {
		t.Fatalf("empty room not deleted")
	}
}

func TestMemberDisconnectKeepsRoom(t *testing.T) {
	h := newHarness()
	h.connect("H", "P")
	code := h.createRoom(t, "H")
	h.join(t, "P", code)

	outs := h.c.Handle(Disconnect{ID: "P"})
	if !h.rooms.Exists(code) {
		t.Fatalf("room closed when a member left")
	}
	updates := payloadsFor(outs, "H", protocol.MsgUpdatePlayers)
	if len(updates) != 1 {
		t.Fatalf("host got %d roster updates", len(updates))
	}
	if _, ok := updates[0].(protocol.Players)["P"]; ok {
		t.Fatalf("departed player still in room roster")
	}
	if outs := h.c.Handle(Disconnect{ID: "P"}); len(outs) != 0 {
		t.Fatalf("second disconnect produced outbounds")
	}
}

func TestJoiningAnotherRoomLeavesThePrevious(t *testing.T) {
	h := newHarness()
	h.connect("H1", "H2", "P")
	first := h.createRoom(t, "H1")
	second := h.createRoom(t, "H2")
	h.join(t, "P", first)
	h.join(t, "P", second)

	if members, _ := h.rooms.Members(first); len(members) != 1 {
		t.Fatalf("first room members = %v", members)
	}
	if p, _ := h.roster.Get("P"); p.RoomID != second {
		t.Fatalf("P room = %q, want %q", p.RoomID, second)
	}

	// A host creating a new room dissolves the old one.
	outs := h.send("H1", protocol.MsgCreateRoom, protocol.CreateRoom{Username: "H1"})
	if h.rooms.Exists(first) {
		t.Fatalf("old room kept after its host created another")
	}
	if len(payloadsFor(outs, "H1", protocol.MsgRoomCreated)) != 1 {
		t.Fatalf("no roomCreated for the new room")
	}
}

func TestPlayerJoinInRoomGrowsTreats(t *testing.T) {
	h := newHarness()
	code := startedRoom(t, h, "H", "P")

	outs := h.send("P", protocol.MsgPlayerJoin, protocol.PlayerJoin{Username: "P2", Score: 50, X: 200, Y: 300})
	data := payloadsFor(outs, "H", protocol.MsgTreatsData)
	want := game.TreatsPerRound + game.TreatsPerJoin
	if len(data) != 1 || len(data[0].(protocol.TreatsData).Collectibles) != want {
		t.Fatalf("treatsData = %v, want %d collectibles", data, want)
	}
	players := payloadsFor(outs, "H", protocol.MsgUpdatePlayers)[0].(protocol.Players)
	got := players["P"]
	if got.Username != "P2" || got.X != 200 || got.Y != 300 || got.Score != 0 {
		t.Fatalf("P snapshot = %+v", got)
	}
	if p, _ := h.roster.Get("P"); p.RoomID != code {
		t.Fatalf("playerJoin dropped room membership")
	}
}

func TestPlayerMoveScopedToRoom(t *testing.T) {
	h := newHarness()
	h.connect("H", "P", "L")
	code := h.createRoom(t, "H")
	h.join(t, "P", code)
	h.send("L", protocol.MsgPlayerJoin, protocol.PlayerJoin{Username: "L"})

	outs := h.send("P", protocol.MsgPlayerMove, protocol.PlayerMove{X: 10, Y: 20})
	if n := len(payloadsFor(outs, "L", protocol.MsgUpdatePlayers)); n != 0 {
		t.Fatalf("lobby saw room movement")
	}
	ps := payloadsFor(outs, "H", protocol.MsgUpdatePlayers)[0].(protocol.Players)
	if ps["P"].X != 10 || ps["P"].Y != 20 {
		t.Fatalf("moved snapshot = %+v", ps["P"])
	}
	if _, ok := ps["L"]; ok {
		t.Fatalf("room roster leaked a lobby player")
	}

	outs = h.send("L", protocol.MsgPlayerMove, protocol.PlayerMove{X: 1, Y: 1})
	if n := len(payloadsFor(outs, "H", protocol.MsgUpdatePlayers)); n != 0 {
		t.Fatalf("room saw lobby movement")
	}
}

func TestUnknownSendersAndPayloadsIgnored(t *testing.T) {
	h := newHarness()
	h.connect("A")

	if outs := h.send("ghost", protocol.MsgCreateRoom, protocol.CreateRoom{Username: "g"}); len(outs) != 0 {
		t.Fatalf("event from unknown connection handled")
	}
	if outs := h.send("A", protocol.MsgPlayerMove, protocol.PlayerMove{X: 1}); len(outs) != 0 {
		t.Fatalf("move before join produced outbounds")
	}
	if outs := h.send("A", protocol.MsgJoinRoom, protocol.PlayerMove{}); len(outs) != 0 {
		t.Fatalf("mistyped payload handled")
	}
	if outs := h.send("A", "teleport", nil); len(outs) != 0 {
		t.Fatalf("unknown event handled")
	}
	if h.roster.Len() != 0 || h.rooms.Len() != 0 {
		t.Fatalf("ignored events mutated state")
	}
}

func TestHandlerPanicIsContained(t *testing.T) {
	c := New(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if outs := c.Handle(Connect{ID: "a", Conn: &fakeConn{sendCh: make(chan sentEvent, 1)}}); outs != nil {
		t.Fatalf("panicking handler returned %v", outs)
	}
}

func TestNonFiniteMoveKeepsSnapshotsEncodable(t *testing.T) {
	h := newHarness()
	h.connect("H", "P")
	code := h.createRoom(t, "H")
	h.join(t, "P", code)

	frame, err := protocol.MsgPack.Encode(protocol.MsgPlayerMove, protocol.PlayerMove{X: math.NaN(), Y: math.Inf(1)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, _, err := protocol.DecodeInbound(protocol.MsgPack, frame); err == nil {
		t.Fatalf("non-finite move decoded")
	}
	// A payload that skipped the codec is refused by the roster.
	if outs := h.send("P", protocol.MsgPlayerMove, protocol.PlayerMove{X: math.NaN(), Y: math.Inf(1)}); len(outs) != 0 {
		t.Fatalf("non-finite move produced %d outbounds", len(outs))
	}
	h.send("P", protocol.MsgPlayerJoin, protocol.PlayerJoin{Username: "P", X: math.Inf(-1), Y: 3})

	outs := h.send("H", protocol.MsgPlayerMove, protocol.PlayerMove{X: 10, Y: 10})
	ps := payloadsFor(outs, "H", protocol.MsgUpdatePlayers)
	if len(ps) != 1 {
		t.Fatalf("host got %d updatePlayers", len(ps))
	}
	if _, err := protocol.JSON.Encode(protocol.MsgUpdatePlayers, ps[0]); err != nil {
		t.Fatalf("room snapshot not encodable: %v", err)
	}
}

func TestPlayerJoinAfterGameOverDoesNotReopenBoard(t *testing.T) {
	h := newHarness()
	startedRoom(t, h, "H")

	overs := 0
	for i := 0; i < game.TreatsPerRound; i++ {
		outs := h.send("H", protocol.MsgCollectTreat, protocol.CollectTreat{Index: i})
		overs += len(payloadsFor(outs, "H", protocol.MsgGameOver))
	}
	if overs != 1 {
		t.Fatalf("gameOver sent %d times, want 1", overs)
	}

	outs := h.send("H", protocol.MsgPlayerJoin, protocol.PlayerJoin{Username: "H"})
	data := payloadsFor(outs, "H", protocol.MsgTreatsData)
	if len(data) != 1 || len(data[0].(protocol.TreatsData).Collectibles) != game.TreatsPerRound {
		t.Fatalf("treatsData after finish = %v", data)
	}
	for i := game.TreatsPerRound; i < game.TreatsPerRound+game.TreatsPerJoin; i++ {
		if outs := h.send("H", protocol.MsgCollectTreat, protocol.CollectTreat{Index: i}); len(outs) != 0 {
			t.Fatalf("collect %d on a finished board produced outbounds", i)
		}
	}
}

func TestLongUsernameTruncated(t *testing.T) {
	h := newHarness()
	h.connect("A")
	long := strings.Repeat("x", 5000)
	h.send("A", protocol.MsgPlayerJoin, protocol.PlayerJoin{Username: long})
	if p, _ := h.roster.Get("A"); p.Name != long[:20] {
		t.Fatalf("name length = %d, want 20", len(p.Name))
	}
	if got := displayName("ñandú-ñandú-ñandú-ñandú", "A"); len([]rune(got)) != 20 {
		t.Fatalf("rune-truncated name = %q", got)
	}
}
