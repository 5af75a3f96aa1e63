package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"roulette-table-backend/internal/models"
)

var (
	errPlayerNotFound   = errors.New("player not found at this table")
	errSpinPending      = errors.New("a spin has already been requested")
	errNoBets           = errors.New("cannot request a spin without any bets")
	errAlreadyRequested = errors.New("spin already requested")
)

// Table is one independent betting pool. All player-map and spin-request
// state is guarded by mu; the countdown lives in the coordinator goroutine
// and is reachable only through its message channel. A table never exists
// without a running coordinator.
type Table struct {
	mu           sync.Mutex
	players      map[uuid.UUID]*PlayerSession
	spinRequests map[uuid.UUID]struct{}
	coordinator  *SpinCoordinator
}

func NewTable(id string, spinWindow time.Duration, history *HistoryService) *Table {
	t := &Table{
		players:      make(map[uuid.UUID]*PlayerSession),
		spinRequests: make(map[uuid.UUID]struct{}),
	}
	t.coordinator = newSpinCoordinator(id, t, spinWindow, history)
	go t.coordinator.run()
	return t
}

// Coordinator exposes the table's spin coordinator, mainly so tests can shut
// it down.
func (t *Table) Coordinator() *SpinCoordinator {
	return t.coordinator
}

// Join seats a new player or rebinds an existing session's connection.
// Returns the resolved display name and current total wager for the join
// announcement; a reconnect keeps its old name unless a new one is given.
func (t *Table) Join(playerID uuid.UUID, name string, out *Outbound) (string, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if player, ok := t.players[playerID]; ok {
		player.out = out
		if name != "" {
			player.name = name
		}
		return player.name, player.TotalBet()
	}

	t.players[playerID] = NewPlayerSession(out, name)
	return name, 0
}

// Disconnect handles a transport close. The session stays seated so the
// player can reconnect; only the rest of the table is told. A reconnect may
// already have rebound the channel, in which case the stale close is ignored.
func (t *Table) Disconnect(playerID uuid.UUID, out *Outbound) {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, ok := t.players[playerID]
	if !ok || player.out != out {
		return
	}

	exclude := map[uuid.UUID]struct{}{playerID: {}}
	broadcastToPlayers(t.players, exclude, models.NewPlayerLeftResponse(models.HashPlayerID(playerID)))
}

// Broadcast delivers msg to every seated player except ids in exclude.
func (t *Table) Broadcast(msg models.Response, exclude map[uuid.UUID]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	broadcastToPlayers(t.players, exclude, msg)
}

func (t *Table) Status(playerID uuid.UUID) (models.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, ok := t.players[playerID]
	if !ok {
		return nil, errPlayerNotFound
	}

	_, spinRequested := t.spinRequests[playerID]
	bets := make([]models.Bet, len(player.bets))
	copy(bets, player.bets)

	return models.NewStatusResponse(bets, player.balance, spinRequested), nil
}

// AddBet appends a wager. Rejected once the player has asked for a spin.
// A bet that would push the total wager past the balance is dropped without
// a response; the client's next status read shows nothing changed.
func (t *Table) AddBet(playerID uuid.UUID, bet models.Bet) (models.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, requested := t.spinRequests[playerID]; requested {
		return nil, errSpinPending
	}

	player, ok := t.players[playerID]
	if !ok {
		return nil, errPlayerNotFound
	}

	if err := bet.Validate(); err != nil {
		return nil, err
	}

	if player.TotalBet()+bet.Amount > player.balance {
		return nil, nil
	}

	player.bets = append(player.bets, bet)
	return models.NewAddBetResponse(bet, player.balance, player.TotalBet()), nil
}

func (t *Table) ClearBets(playerID uuid.UUID) (models.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, requested := t.spinRequests[playerID]; requested {
		return nil, errSpinPending
	}

	player, ok := t.players[playerID]
	if !ok {
		return nil, errPlayerNotFound
	}

	player.bets = nil
	return models.NewClearBetsResponse(), nil
}

func (t *Table) ListPlayers(playerID uuid.UUID) (models.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, requested := t.spinRequests[playerID]; requested {
		return nil, errSpinPending
	}

	if _, ok := t.players[playerID]; !ok {
		return nil, errPlayerNotFound
	}

	players := make([]models.PlayerSummary, 0, len(t.players))
	for id, player := range t.players {
		players = append(players, models.PlayerSummary{
			Name:      player.name,
			IDHash:    models.HashPlayerID(id),
			BetAmount: player.TotalBet(),
		})
	}

	return models.NewListPlayersResponse(players), nil
}

// RequestSpin registers a player's readiness to resolve the round. When this
// request would make every connected player ready, the round resolves
// immediately; otherwise the first request arms the countdown and later ones
// join it without extending the clock.
func (t *Table) RequestSpin(playerID uuid.UUID) (models.Response, error) {
	t.mu.Lock()

	player, ok := t.players[playerID]
	if !ok {
		t.mu.Unlock()
		return nil, errPlayerNotFound
	}
	if len(player.bets) == 0 {
		t.mu.Unlock()
		return nil, errNoBets
	}
	if _, requested := t.spinRequests[playerID]; requested {
		t.mu.Unlock()
		return nil, errAlreadyRequested
	}

	activeCount := 0
	for _, p := range t.players {
		if p.out.Open() {
			activeCount++
		}
	}

	if activeCount == len(t.spinRequests)+1 {
		// Quorum: this request is the last one missing, so recording it
		// is moot. The coordinator send happens outside the lock; it may
		// block if the coordinator is mid-resolution on this table.
		t.mu.Unlock()
		t.coordinator.Sudo()
		return nil, nil
	}

	t.spinRequests[playerID] = struct{}{}
	t.mu.Unlock()

	t.coordinator.NewRequest(time.Now().UnixMilli())
	return nil, nil
}

// clearSpinRequestsLocked resets the ready set. Called by the coordinator
// with mu held, before any queued request can be processed.
func (t *Table) clearSpinRequestsLocked() {
	t.spinRequests = make(map[uuid.UUID]struct{})
}
