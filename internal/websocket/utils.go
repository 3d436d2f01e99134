package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// The verification stream is server-push: the client only ever sends pings,
// so the read deadline doubles as an idle bound on the connection.
const (
	writeWait = 10 * time.Second
	idleWait  = 5 * time.Minute
)

// WriteTyped sends one typed event payload, bounding how long a stalled
// client can block the verdict stream.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the stream.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads and decodes the next client message, refreshing the idle
// deadline. A client that neither pings nor disconnects is dropped when the
// deadline lapses.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(idleWait))
	return conn.ReadJSON(v)
}
