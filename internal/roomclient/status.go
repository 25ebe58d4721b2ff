package roomclient

// Status is the connection lifecycle state. Exactly one value holds at any
// time and only the client itself moves between them.
type Status string

const (
	// StatusConnecting means a handshake is in progress (initial state).
	StatusConnecting Status = "connecting"

	// StatusConnected means the duplex connection is open.
	StatusConnected Status = "connected"

	// StatusReconnecting means the connection closed unexpectedly and a
	// retry is pending.
	StatusReconnecting Status = "reconnecting"

	// StatusDisconnected is terminal for the session: either a fatal
	// server error arrived or the session was explicitly closed.
	StatusDisconnected Status = "disconnected"
)
