package session

// Conn is one client's outbound side. Send must not block the coordinator;
// transports queue or drop.
type Conn interface {
	Send(event string, payload any) error
	Close() error
}

// Connect: issued once the transport has accepted a connection.
type Connect struct {
	ID   string
	Conn Conn
}

// Inbound: one decoded client event.
type Inbound struct {
	ID      string
	Event   string
	Payload any
}

// Disconnect: issued when the transport sees the connection go away.
type Disconnect struct {
	ID string
}

// Outbound is one event addressed to a set of connections.
type Outbound struct {
	To      []string
	Event   string
	Payload any
}
