package services

import (
	"sync"

	"roulette-table-backend/internal/models"
)

const (
	// DefaultBalance is every new player's bankroll.
	DefaultBalance = 2500

	outboundBuffer = 10
)

// Outbound is a player's capacity-bounded response channel. The write pump
// drains it; everything else pushes through Send, which degrades to a no-op
// once the connection is gone instead of panicking on a closed channel.
type Outbound struct {
	ch        chan models.Response
	done      chan struct{}
	closeOnce sync.Once
}

func NewOutbound() *Outbound {
	return &Outbound{
		ch:   make(chan models.Response, outboundBuffer),
		done: make(chan struct{}),
	}
}

// Send queues a response for delivery. A full buffer blocks the sender until
// the write pump catches up or the connection closes; a closed connection
// returns false. Never an error: an offline player is a normal condition.
func (o *Outbound) Send(msg models.Response) bool {
	select {
	case <-o.done:
		return false
	default:
	}

	select {
	case o.ch <- msg:
		return true
	case <-o.done:
		return false
	}
}

// Close marks the connection gone. Safe to call more than once; the message
// channel itself is never closed so late senders cannot panic.
func (o *Outbound) Close() {
	o.closeOnce.Do(func() {
		close(o.done)
	})
}

func (o *Outbound) Open() bool {
	select {
	case <-o.done:
		return false
	default:
		return true
	}
}

func (o *Outbound) Messages() <-chan models.Response { return o.ch }

func (o *Outbound) Done() <-chan struct{} { return o.done }

// PlayerSession is one player's seat at a table: their bet ledger, balance
// and the channel of their current connection. Guarded by the table mutex.
// A session outlives its connection; reconnecting rebinds the outbound
// channel without touching bets or balance.
type PlayerSession struct {
	out     *Outbound
	name    string
	bets    []models.Bet
	balance int
}

func NewPlayerSession(out *Outbound, name string) *PlayerSession {
	return &PlayerSession{
		out:     out,
		name:    name,
		balance: DefaultBalance,
	}
}

// TotalBet is the sum of all pending wagers.
func (p *PlayerSession) TotalBet() int {
	total := 0
	for _, bet := range p.bets {
		total += bet.Amount
	}
	return total
}
