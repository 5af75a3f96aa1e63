package models

// Request kinds accepted over the wire.
const (
	RequestJoinTable   = "JOIN_TABLE"
	RequestAddBet      = "ADD_BET"
	RequestClearBets   = "CLEAR_BETS"
	RequestRequestSpin = "REQUEST_SPIN"
	RequestGetStatus   = "GET_STATUS"
	RequestListPlayers = "LIST_PLAYERS"
)

// Request is the decoded client envelope. Fields beyond Type are only
// meaningful for the request kinds that use them.
type Request struct {
	Type string `json:"type"`

	TableID  string `json:"table_id,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`

	Label         string    `json:"label,omitempty"`
	Placement     Placement `json:"placement,omitempty"`
	LocalPosition Position  `json:"local_position"`
	Amount        int       `json:"amount,omitempty"`
}

// Response kinds pushed to clients.
const (
	ResponseJoinTable      = "JOIN_TABLE"
	ResponseStatus         = "STATUS"
	ResponseAddBet         = "ADD_BET"
	ResponseClearBets      = "CLEAR_BETS"
	ResponseSpin           = "SPIN"
	ResponseBeginSpinTimer = "BEGIN_SPIN_TIMER"
	ResponsePlayerJoined   = "SOME_PLAYER_JOINED"
	ResponsePlayerLeft     = "SOME_PLAYER_LEFT"
	ResponseListPlayers    = "LIST_PLAYERS"
	ResponseError          = "ERROR"
)

// Response is the closed set of messages a player can receive. Adding a
// kind means adding a struct here and a case to every exhaustive switch
// over it.
type Response interface {
	ResponseType() string
}

type JoinTableResponse struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

type StatusResponse struct {
	Type          string `json:"type"`
	Bets          []Bet  `json:"bets"`
	Balance       int    `json:"balance"`
	SpinRequested bool   `json:"spin_requested"`
}

type AddBetResponse struct {
	Type     string `json:"type"`
	Bet      Bet    `json:"bet"`
	Balance  int    `json:"balance"`
	TotalBet int    `json:"total_bet"`
}

type ClearBetsResponse struct {
	Type string `json:"type"`
}

type SpinResponse struct {
	Type          string `json:"type"`
	WinningNumber int    `json:"winning_number"`
	WinningAmount int    `json:"winning_amount"`
	Balance       int    `json:"balance"`
	BetsCleared   bool   `json:"bets_cleared"`
}

type BeginSpinTimerResponse struct {
	Type  string `json:"type"`
	Start int64  `json:"start"`
}

type PlayerJoinedResponse struct {
	Type      string `json:"type"`
	IDHash    string `json:"id_hash"`
	Name      string `json:"name"`
	BetAmount int    `json:"bet_amount"`
}

type PlayerLeftResponse struct {
	Type   string `json:"type"`
	IDHash string `json:"id_hash"`
}

// PlayerSummary is what one player is allowed to learn about another:
// an opaque hash instead of the raw id, and never the balance.
type PlayerSummary struct {
	Name      string `json:"name"`
	IDHash    string `json:"id_hash"`
	BetAmount int    `json:"bet_amount"`
}

type ListPlayersResponse struct {
	Type    string          `json:"type"`
	Players []PlayerSummary `json:"players"`
}

type ErrorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func (r JoinTableResponse) ResponseType() string      { return r.Type }
func (r StatusResponse) ResponseType() string         { return r.Type }
func (r AddBetResponse) ResponseType() string         { return r.Type }
func (r ClearBetsResponse) ResponseType() string      { return r.Type }
func (r SpinResponse) ResponseType() string           { return r.Type }
func (r BeginSpinTimerResponse) ResponseType() string { return r.Type }
func (r PlayerJoinedResponse) ResponseType() string   { return r.Type }
func (r PlayerLeftResponse) ResponseType() string     { return r.Type }
func (r ListPlayersResponse) ResponseType() string    { return r.Type }
func (r ErrorResponse) ResponseType() string          { return r.Type }

func NewJoinTableResponse(playerID string) JoinTableResponse {
	return JoinTableResponse{Type: ResponseJoinTable, PlayerID: playerID}
}

func NewStatusResponse(bets []Bet, balance int, spinRequested bool) StatusResponse {
	if bets == nil {
		bets = []Bet{}
	}
	return StatusResponse{Type: ResponseStatus, Bets: bets, Balance: balance, SpinRequested: spinRequested}
}

func NewAddBetResponse(bet Bet, balance, totalBet int) AddBetResponse {
	return AddBetResponse{Type: ResponseAddBet, Bet: bet, Balance: balance, TotalBet: totalBet}
}

func NewClearBetsResponse() ClearBetsResponse {
	return ClearBetsResponse{Type: ResponseClearBets}
}

func NewSpinResponse(winningNumber, winningAmount, balance int, betsCleared bool) SpinResponse {
	return SpinResponse{
		Type:          ResponseSpin,
		WinningNumber: winningNumber,
		WinningAmount: winningAmount,
		Balance:       balance,
		BetsCleared:   betsCleared,
	}
}

func NewBeginSpinTimerResponse(start int64) BeginSpinTimerResponse {
	return BeginSpinTimerResponse{Type: ResponseBeginSpinTimer, Start: start}
}

func NewPlayerJoinedResponse(idHash, name string, betAmount int) PlayerJoinedResponse {
	return PlayerJoinedResponse{Type: ResponsePlayerJoined, IDHash: idHash, Name: name, BetAmount: betAmount}
}

func NewPlayerLeftResponse(idHash string) PlayerLeftResponse {
	return PlayerLeftResponse{Type: ResponsePlayerLeft, IDHash: idHash}
}

func NewListPlayersResponse(players []PlayerSummary) ListPlayersResponse {
	if players == nil {
		players = []PlayerSummary{}
	}
	return ListPlayersResponse{Type: ResponseListPlayers, Players: players}
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Type: ResponseError, Msg: msg}
}
