package services

import (
	"github.com/google/uuid"

	"roulette-table-backend/internal/models"
)

const msgNoTableJoined = "No table has been joined"

// ClientSession is one connection's binding to a (table, player) pair. It is
// owned by that connection's read loop and never shared, so it needs no lock.
type ClientSession struct {
	out      *Outbound
	playerID uuid.UUID
	tableID  string
	joined   bool
}

func NewClientSession(out *Outbound) *ClientSession {
	return &ClientSession{out: out}
}

func (cs *ClientSession) Out() *Outbound { return cs.out }

// Router dispatches decoded requests to the right table operation. Thin by
// design, but it is where the session-binding rule lives: everything except
// JoinTable needs a prior successful join on the same connection.
type Router struct {
	registry *Registry
}

func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// Dispatch runs one request and pushes whatever responses it produces onto
// the session's outbound channel. Malformed or rejected requests produce an
// Error response; nothing here can take down the table or the process.
func (r *Router) Dispatch(cs *ClientSession, req *models.Request) {
	switch req.Type {
	case models.RequestJoinTable:
		r.joinTable(cs, req)
		return
	case models.RequestAddBet, models.RequestClearBets, models.RequestRequestSpin,
		models.RequestGetStatus, models.RequestListPlayers:
	default:
		cs.out.Send(models.NewErrorResponse("Unknown request type: " + req.Type))
		return
	}

	if !cs.joined {
		cs.out.Send(models.NewErrorResponse(msgNoTableJoined))
		return
	}

	table, ok := r.registry.Lookup(cs.tableID)
	if !ok {
		cs.out.Send(models.NewErrorResponse(msgNoTableJoined))
		return
	}

	var resp models.Response
	var err error

	switch req.Type {
	case models.RequestAddBet:
		bet := models.Bet{
			Label:         req.Label,
			Placement:     req.Placement,
			LocalPosition: req.LocalPosition,
			Amount:        req.Amount,
		}
		resp, err = table.AddBet(cs.playerID, bet)
	case models.RequestClearBets:
		resp, err = table.ClearBets(cs.playerID)
	case models.RequestRequestSpin:
		resp, err = table.RequestSpin(cs.playerID)
	case models.RequestGetStatus:
		resp, err = table.Status(cs.playerID)
	case models.RequestListPlayers:
		resp, err = table.ListPlayers(cs.playerID)
	}

	if err != nil {
		cs.out.Send(models.NewErrorResponse(err.Error()))
		return
	}
	if resp != nil {
		cs.out.Send(resp)
	}
}

func (r *Router) joinTable(cs *ClientSession, req *models.Request) {
	if req.TableID == "" {
		cs.out.Send(models.NewErrorResponse("table_id is required"))
		return
	}

	var playerID *uuid.UUID
	if req.PlayerID != "" {
		id, err := models.ParsePlayerID(req.PlayerID)
		if err != nil {
			cs.out.Send(models.NewErrorResponse("Invalid player id"))
			return
		}
		playerID = &id
	}

	id := r.registry.JoinTable(req.TableID, playerID, req.Name, cs.out)
	cs.playerID = id
	cs.tableID = req.TableID
	cs.joined = true
}

// Disconnect tears down the transport side of a session. Safe to call for a
// connection that never joined.
func (r *Router) Disconnect(cs *ClientSession) {
	cs.out.Close()
	if !cs.joined {
		return
	}
	r.registry.Disconnect(cs.tableID, cs.playerID, cs.out)
}
