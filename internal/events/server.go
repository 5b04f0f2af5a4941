package events

import (
	"log"
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
)

var (
	// Server is the global Socket.IO server instance
	Server *socketio.Server
)

// InitServer initializes the Socket.IO server for the admin live feed.
// Connected dashboard clients receive request:created and request:updated
// broadcasts so new orders show up without polling.
func InitServer() error {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		// JWT authentication happens in the handshake middleware; a
		// connection reaching here is an authenticated admin.
		log.Printf("[Events] Admin client connected: %s", s.ID())
		s.Emit("connected", map[string]interface{}{
			"ok": true,
		})
		return nil
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Printf("[Events] Admin client disconnected: %s, reason: %s", s.ID(), reason)
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.Printf("[Events] Error for client %s: %v", s.ID(), e)
	})

	go func() {
		if err := server.Serve(); err != nil {
			log.Fatalf("[Events] Socket.IO server error: %v", err)
		}
	}()

	Server = server
	log.Println("[Events] Socket.IO server initialized")
	return nil
}

// Close shuts down the Socket.IO server
func Close() error {
	if Server != nil {
		return Server.Close()
	}
	return nil
}

// broadcastToAll broadcasts a message to all connected admin clients
func broadcastToAll(event string, data interface{}) {
	if Server != nil {
		Server.BroadcastToNamespace("/", event, data)
	}
}
