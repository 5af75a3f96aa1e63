package services

import (
	"log"
	"math/rand"
	"time"

	"roulette-table-backend/internal/models"
)

// WheelSize is the number of pockets: 0 through 36.
const WheelSize = 37

// DefaultSpinWindow is how long a round stays open after the first spin
// request before it resolves on its own.
const DefaultSpinWindow = 60 * time.Second

type coordinatorMessageKind int

const (
	newRequestMessage coordinatorMessageKind = iota
	sudoRequestMessage
)

type coordinatorMessage struct {
	kind  coordinatorMessageKind
	start int64
}

// SpinCoordinator owns one table's countdown. It is the only goroutine that
// reads or writes the armed timestamp and the only place round resolution
// runs, so coordinator state needs no lock: messages are processed strictly
// in arrival order.
//
// The first request of a round arms the timer; later requests join the round
// without restarting the clock, so a late joiner can never push resolution
// out indefinitely. A quorum (Sudo) resolves immediately whatever the timer
// says.
type SpinCoordinator struct {
	tableID string
	table   *Table
	msgs    chan coordinatorMessage
	window  time.Duration
	history *HistoryService
	stop    chan struct{}
}

func newSpinCoordinator(tableID string, table *Table, window time.Duration, history *HistoryService) *SpinCoordinator {
	if window <= 0 {
		window = DefaultSpinWindow
	}
	return &SpinCoordinator{
		tableID: tableID,
		table:   table,
		msgs:    make(chan coordinatorMessage, 10),
		window:  window,
		history: history,
		stop:    make(chan struct{}),
	}
}

// NewRequest tells the coordinator another player asked for a spin at the
// given timestamp (unix millis).
func (c *SpinCoordinator) NewRequest(start int64) {
	select {
	case c.msgs <- coordinatorMessage{kind: newRequestMessage, start: start}:
	case <-c.stop:
	}
}

// Sudo forces immediate resolution, used when every connected player is ready.
func (c *SpinCoordinator) Sudo() {
	select {
	case c.msgs <- coordinatorMessage{kind: sudoRequestMessage}:
	case <-c.stop:
	}
}

// Stop shuts the coordinator down. Tables live for the whole process, so
// this only matters in tests.
func (c *SpinCoordinator) Stop() {
	close(c.stop)
}

func (c *SpinCoordinator) run() {
	timer := time.NewTimer(c.window)
	stopTimer(timer)
	defer timer.Stop()

	var armedSince *int64

	for {
		select {
		case <-timer.C:
			if armedSince == nil {
				continue
			}
			armedSince = nil
			c.resolve()

		case msg := <-c.msgs:
			switch msg.kind {
			case newRequestMessage:
				if armedSince != nil {
					// First requester wins the clock.
					continue
				}
				start := msg.start
				armedSince = &start
				timer.Reset(c.window)
				c.table.Broadcast(models.NewBeginSpinTimerResponse(start), nil)

			case sudoRequestMessage:
				armedSince = nil
				stopTimer(timer)
				c.resolve()
			}

		case <-c.stop:
			return
		}
	}
}

// resolve spins the wheel and settles every connected player: net winnings
// are credited, losses debited, and a player whose balance drops below what
// they just wagered has their bets cleared so they cannot sit on wagers they
// can no longer cover. The ready set is cleared unconditionally, timeout or
// quorum alike.
func (c *SpinCoordinator) resolve() {
	winningNumber := rand.Intn(WheelSize)

	var outcomes []RoundOutcome

	c.table.mu.Lock()
	for id, player := range c.table.players {
		if !player.out.Open() {
			continue
		}

		judgement := JudgeBets(player.bets, winningNumber)
		player.balance += judgement.WinningAmount - judgement.BetAmount
		betsCleared := player.balance < judgement.BetAmount
		if betsCleared {
			player.bets = nil
		}

		player.out.Send(models.NewSpinResponse(winningNumber, judgement.WinningAmount, player.balance, betsCleared))

		outcomes = append(outcomes, RoundOutcome{
			PlayerHash:    models.HashPlayerID(id),
			WinningAmount: judgement.WinningAmount,
			BetAmount:     judgement.BetAmount,
			Balance:       player.balance,
		})
	}
	c.table.clearSpinRequestsLocked()
	c.table.mu.Unlock()

	if c.history != nil {
		if err := c.history.RecordRound(c.tableID, winningNumber, outcomes); err != nil {
			log.Printf("Failed to record round for table %s: %v", c.tableID, err)
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
