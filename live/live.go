// Package live pushes availability-change notifications to websocket
// subscribers so booking calendars can refresh without polling. The
// payload is only a hint; clients re-fetch slots from the HTTP API,
// which stays authoritative.
package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"rezerv/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

type message struct {
	Type       string `json:"type"`
	ResourceID string `json:"resourceId"`
}

// HandleWS subscribes a client to one resource's availability updates.
// Browsers cannot set headers on a websocket handshake, so the token
// may also arrive as a "token" query parameter.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resourceID := ps.ByName("id")

	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		if q := r.URL.Query().Get("token"); q != "" {
			tokenString = "Bearer " + q
		}
	}
	if _, err := middleware.ValidateJWT(tokenString); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[resourceID] = append(subscribers[resourceID], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[resourceID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[resourceID] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastUpdate tells every subscriber of a resource that its
// availability changed.
func BroadcastUpdate(resourceID string) {
	data, _ := json.Marshal(message{Type: "update", ResourceID: resourceID})

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[resourceID]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[resourceID] = newList
}
