package models

import "fmt"

// Placement is the edge or corner of a board cell a chip was dropped on.
// The values match the cell-relative positions the board client sends.
type Placement string

const (
	PlacementTopLeft     Placement = "topleft"
	PlacementTopRight    Placement = "topright"
	PlacementBottomLeft  Placement = "bottomleft"
	PlacementBottomRight Placement = "bottomright"
	PlacementLeft        Placement = "left"
	PlacementRight       Placement = "right"
	PlacementTop         Placement = "top"
	PlacementBottom      Placement = "bottom"
	PlacementCenter      Placement = "center"
)

func (p Placement) Valid() bool {
	switch p {
	case PlacementTopLeft, PlacementTopRight, PlacementBottomLeft, PlacementBottomRight,
		PlacementLeft, PlacementRight, PlacementTop, PlacementBottom, PlacementCenter:
		return true
	}
	return false
}

// Position is a chip's coordinate local to the cell it was dropped on.
// Only bets on the zero cell need it: zero spans several rows, so the
// y coordinate decides which neighbor a split on its right edge covers.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bet is immutable once placed. Bets are cleared as a batch, never edited.
type Bet struct {
	Label         string    `json:"label"`
	Placement     Placement `json:"placement"`
	LocalPosition Position  `json:"local_position"`
	Amount        int       `json:"amount"`
}

func (b *Bet) Validate() error {
	if b.Amount <= 0 {
		return fmt.Errorf("bet amount must be positive, got %d", b.Amount)
	}
	if !b.Placement.Valid() {
		return fmt.Errorf("invalid placement: %s", b.Placement)
	}
	return nil
}
