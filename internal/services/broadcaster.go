package services

import (
	"github.com/google/uuid"

	"roulette-table-backend/internal/models"
)

// Broadcaster pushes a table-wide notification to every seated player.
type Broadcaster interface {
	Broadcast(msg models.Response, exclude map[uuid.UUID]struct{})
}

// broadcastToPlayers delivers msg to every player with an open connection,
// skipping ids in exclude. Delivery to a closed connection is a silent no-op.
// Callers hold the table mutex, so a slow consumer with a full buffer
// backpressures this table only, never the registry or other tables.
func broadcastToPlayers(players map[uuid.UUID]*PlayerSession, exclude map[uuid.UUID]struct{}, msg models.Response) {
	for id, player := range players {
		if _, skip := exclude[id]; skip {
			continue
		}
		player.out.Send(msg)
	}
}
