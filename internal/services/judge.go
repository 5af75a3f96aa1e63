package services

import (
	"strconv"

	"roulette-table-backend/internal/models"
)

const (
	colorRed   = "red"
	colorBlack = "black"

	// The zero cell spans the full board height; its local coordinates are
	// divided into row-sized strips to pick the split neighbor.
	zeroBoxSize = 10
)

// boxColorMap[n-1] is the color of cell n.
var boxColorMap = [36]string{
	colorRed, colorBlack, colorRed, colorBlack, colorRed, colorBlack,
	colorRed, colorBlack, colorRed, colorBlack, colorBlack, colorRed,
	colorBlack, colorRed, colorBlack, colorRed, colorBlack, colorRed,
	colorRed, colorBlack, colorRed, colorBlack, colorRed, colorBlack,
	colorRed, colorBlack, colorRed, colorBlack, colorBlack, colorRed,
	colorBlack, colorRed, colorBlack, colorRed, colorBlack, colorRed,
}

// Judgement is the outcome of judging one player's bets against a number.
type Judgement struct {
	WinningAmount int
	BetAmount     int
}

// sanitize maps a neighbor cell index to its board label. Neighbors off the
// low edge collapse onto the zero cell; neighbors past 36 stay in the list as
// empty fillers so the multiplier bucket still reflects the bet's shape.
func sanitize(num int) string {
	switch {
	case num < 0:
		return "0"
	case num > 36:
		return ""
	default:
		return strconv.Itoa(num)
	}
}

func cellRange(start, stop, step int) []string {
	var result []string
	for n := start; n < stop; n += step {
		result = append(result, strconv.Itoa(n))
	}
	return result
}

func cellsByColor(color string) []string {
	var result []string
	for i, c := range boxColorMap {
		if c == color {
			result = append(result, strconv.Itoa(i+1))
		}
	}
	return result
}

// AffectedCells expands a bet into the board cells it covers. The board has
// three rows: cells n with n%3==1 sit on the bottom, n%3==2 in the middle,
// n%3==0 on top. Placement picks the split/street/corner pattern relative to
// the labeled cell.
func AffectedCells(bet *models.Bet) []string {
	result := []string{bet.Label}

	if bet.Label == "0" {
		if bet.Placement == models.PlacementRight {
			y := (bet.LocalPosition.Y / zeroBoxSize) + 1
			result = append(result, strconv.Itoa(y))
		}
		return result
	}

	if num, err := strconv.Atoi(bet.Label); err == nil {
		switch num % 3 {
		case 1:
			switch bet.Placement {
			case models.PlacementTopLeft:
				result = append(result,
					sanitize(num-3), sanitize(num-2), sanitize(num-1),
					sanitize(num+1), sanitize(num+2))
			case models.PlacementTopRight:
				result = append(result,
					sanitize(num+1), sanitize(num+2), sanitize(num+3),
					sanitize(num+4), sanitize(num+5))
			}
		case 2:
			switch bet.Placement {
			case models.PlacementTopLeft:
				result = append(result,
					sanitize(num-4), sanitize(num-3), sanitize(num-1))
			case models.PlacementBottomRight:
				result = append(result,
					sanitize(num+1), sanitize(num+3), sanitize(num+4))
			}
		case 0:
			switch bet.Placement {
			case models.PlacementTopLeft:
				result = append(result,
					sanitize(num-4), sanitize(num-3), sanitize(num-1))
			case models.PlacementBottomRight:
				result = append(result,
					sanitize(num-2), sanitize(num-1), sanitize(num+1),
					sanitize(num+2), sanitize(num+3))
			}
		}
		return result
	}

	switch bet.Label {
	case "3rd":
		return cellRange(1, 37, 3)
	case "2nd":
		return cellRange(2, 37, 3)
	case "1st":
		return cellRange(3, 37, 3)
	case "1-12":
		return cellRange(1, 13, 1)
	case "13-24":
		return cellRange(13, 25, 1)
	case "25-36":
		return cellRange(25, 37, 1)
	case "1-18":
		return cellRange(1, 19, 1)
	case "19-36":
		return cellRange(19, 37, 1)
	case "even":
		return cellRange(2, 37, 2)
	case "odd":
		return cellRange(1, 37, 2)
	case colorRed:
		return cellsByColor(colorRed)
	case colorBlack:
		return cellsByColor(colorBlack)
	}
	return nil
}

// multiplierForCoverage maps how many cells a bet covers to its payout
// multiplier. Unknown coverage sizes pay nothing.
func multiplierForCoverage(cells int) int {
	switch cells {
	case 18:
		return 1
	case 12:
		return 2
	case 6:
		return 5
	case 4:
		return 8
	case 3:
		return 11
	case 2:
		return 17
	case 1:
		return 35
	}
	return 0
}

// JudgeBets computes a player's winnings and total wager for one spin. Pure
// and order-independent: both sums are commutative over the bet slice.
func JudgeBets(bets []models.Bet, winningNumber int) Judgement {
	winning := strconv.Itoa(winningNumber)

	var judgement Judgement
	for i := range bets {
		bet := &bets[i]
		judgement.BetAmount += bet.Amount

		affected := AffectedCells(bet)
		for _, cell := range affected {
			if cell == winning {
				judgement.WinningAmount += multiplierForCoverage(len(affected)) * bet.Amount
				break
			}
		}
	}

	return judgement
}
