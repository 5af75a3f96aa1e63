package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"roulette-table-backend/internal/models"
	"roulette-table-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	router *services.Router
}

func NewWebSocketHandler(router *services.Router) *WebSocketHandler {
	return &WebSocketHandler{router: router}
}

// HandleWebSocket runs one client connection: a write pump draining the
// player's outbound channel and a read loop feeding decoded requests to the
// router. A malformed frame gets an Error response and the connection stays
// up; only a transport error ends the session.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	out := services.NewOutbound()
	session := services.NewClientSession(out)

	go writePump(conn, out)

	defer func() {
		h.router.Disconnect(session)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		var req models.Request
		if err := json.Unmarshal(data, &req); err != nil {
			out.Send(models.NewErrorResponse("Malformed request"))
			continue
		}

		h.router.Dispatch(session, &req)
	}
}

func writePump(conn *websocket.Conn, out *services.Outbound) {
	for {
		select {
		case msg := <-out.Messages():
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("Failed to write to WebSocket: %v", err)
				out.Close()
				return
			}
		case <-out.Done():
			return
		}
	}
}
