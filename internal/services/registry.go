package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"roulette-table-backend/internal/models"
)

// Registry is the process-wide table map. Tables are created lazily on first
// join and never removed. The registry lock is held only long enough to
// resolve a table handle; table locks are always taken after it, never the
// other way around, and never two tables at once.
type Registry struct {
	mu         sync.Mutex
	tables     map[string]*Table
	spinWindow time.Duration
	history    *HistoryService
}

func NewRegistry(spinWindow time.Duration, history *HistoryService) *Registry {
	return &Registry{
		tables:     make(map[string]*Table),
		spinWindow: spinWindow,
		history:    history,
	}
}

func (r *Registry) getOrCreateTable(tableID string) *Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.tables[tableID]
	if !ok {
		table = NewTable(tableID, r.spinWindow, r.history)
		r.tables[tableID] = table
	}
	return table
}

// Lookup resolves an existing table.
func (r *Registry) Lookup(tableID string) (*Table, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.tables[tableID]
	return table, ok
}

// JoinTable seats a player at a table, creating the table on first contact.
// A known playerID rebinds the existing session (reconnect); otherwise a
// fresh id is minted. The joiner learns their id first, then the rest of the
// table hears about the join, identified only by the opaque hash.
func (r *Registry) JoinTable(tableID string, playerID *uuid.UUID, name string, out *Outbound) uuid.UUID {
	id := uuid.New()
	if playerID != nil {
		id = *playerID
	}

	table := r.getOrCreateTable(tableID)
	displayName, totalBet := table.Join(id, name, out)

	out.Send(models.NewJoinTableResponse(id.String()))

	exclude := map[uuid.UUID]struct{}{id: {}}
	table.Broadcast(models.NewPlayerJoinedResponse(models.HashPlayerID(id), displayName, totalBet), exclude)

	return id
}

// Disconnect reacts to a closed transport. The session and its bets survive
// for a later reconnect; only the departure notice goes out.
func (r *Registry) Disconnect(tableID string, playerID uuid.UUID, out *Outbound) {
	table, ok := r.Lookup(tableID)
	if !ok {
		return
	}
	table.Disconnect(playerID, out)
}
