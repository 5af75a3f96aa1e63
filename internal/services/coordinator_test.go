package services_test

import (
	"testing"
	"time"

	"roulette-table-backend/internal/models"
	"roulette-table-backend/internal/services"
)

func receiveSpin(t *testing.T, out *services.Outbound) models.SpinResponse {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-out.Messages():
			if spin, ok := msg.(models.SpinResponse); ok {
				return spin
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for a spin result")
		}
	}
}

func TestSinglePlayerSpinResolvesImmediately(t *testing.T) {
	// Window is long on purpose: a prompt result proves the quorum path
	// fired, not the timer.
	table := services.NewTable("solo", time.Minute, nil)
	t.Cleanup(table.Coordinator().Stop)

	alice, out := joinPlayer(t, table, "alice")
	table.AddBet(alice, models.Bet{Label: "17", Placement: models.PlacementCenter, Amount: 100})

	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("RequestSpin failed: %v", err)
	}

	spin := receiveSpin(t, out)
	if spin.WinningNumber < 0 || spin.WinningNumber > 36 {
		t.Errorf("Winning number out of range: %d", spin.WinningNumber)
	}

	if spin.WinningNumber == 17 {
		if spin.WinningAmount != 3500 {
			t.Errorf("Straight hit should pay 3500, got %d", spin.WinningAmount)
		}
		if spin.Balance != 2500+3500-100 {
			t.Errorf("Expected balance 5900 after a hit, got %d", spin.Balance)
		}
	} else {
		if spin.WinningAmount != 0 {
			t.Errorf("Miss should pay nothing, got %d", spin.WinningAmount)
		}
		if spin.Balance != 2400 {
			t.Errorf("Expected balance 2400 after a miss, got %d", spin.Balance)
		}
	}

	// Resolution clears the ready set whatever triggered it.
	status, _ := table.Status(alice)
	if got := status.(models.StatusResponse); got.SpinRequested {
		t.Error("Spin request should be cleared by resolution")
	}
}

func TestQuorumResolvesBeforeTimer(t *testing.T) {
	table := services.NewTable("duo", time.Minute, nil)
	t.Cleanup(table.Coordinator().Stop)

	alice, aliceOut := joinPlayer(t, table, "alice")
	bob, bobOut := joinPlayer(t, table, "bob")

	table.AddBet(alice, models.Bet{Label: "red", Placement: models.PlacementCenter, Amount: 100})
	table.AddBet(bob, models.Bet{Label: "black", Placement: models.PlacementCenter, Amount: 100})

	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("First RequestSpin failed: %v", err)
	}

	// First request arms the countdown for everyone.
	timerMsg, ok := receiveResponse(t, aliceOut).(models.BeginSpinTimerResponse)
	if !ok {
		t.Fatal("Expected BeginSpinTimer after the first request")
	}
	if timerMsg.Start == 0 {
		t.Error("BeginSpinTimer should carry the arming timestamp")
	}
	if _, ok := receiveResponse(t, bobOut).(models.BeginSpinTimerResponse); !ok {
		t.Fatal("The whole table should see BeginSpinTimer")
	}

	// Bob completes the quorum; resolution fires well before the
	// one-minute window.
	if _, err := table.RequestSpin(bob); err != nil {
		t.Fatalf("Second RequestSpin failed: %v", err)
	}

	aliceSpin := receiveSpin(t, aliceOut)
	bobSpin := receiveSpin(t, bobOut)
	if aliceSpin.WinningNumber != bobSpin.WinningNumber {
		t.Errorf("All players resolve against the same number: %d vs %d",
			aliceSpin.WinningNumber, bobSpin.WinningNumber)
	}

	// Red and black are disjoint, so exactly one of the two wins unless
	// zero came up.
	if aliceSpin.WinningNumber != 0 {
		if (aliceSpin.WinningAmount > 0) == (bobSpin.WinningAmount > 0) {
			t.Errorf("Exactly one of red/black should pay on %d", aliceSpin.WinningNumber)
		}
	}

	status, _ := table.Status(alice)
	if got := status.(models.StatusResponse); got.SpinRequested {
		t.Error("Quorum resolution should clear the ready set")
	}
}

func TestTimerResolvesWithoutQuorum(t *testing.T) {
	table := services.NewTable("slow", 100*time.Millisecond, nil)
	t.Cleanup(table.Coordinator().Stop)

	alice, aliceOut := joinPlayer(t, table, "alice")
	bob, bobOut := joinPlayer(t, table, "bob")

	table.AddBet(alice, models.Bet{Label: "17", Placement: models.PlacementCenter, Amount: 100})

	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("RequestSpin failed: %v", err)
	}
	if _, ok := receiveResponse(t, aliceOut).(models.BeginSpinTimerResponse); !ok {
		t.Fatal("Expected BeginSpinTimer")
	}

	// Bob never asks, the countdown resolves for him anyway.
	aliceSpin := receiveSpin(t, aliceOut)
	bobSpin := receiveSpin(t, bobOut)

	if bobSpin.WinningAmount != 0 || bobSpin.Balance != services.DefaultBalance {
		t.Errorf("A player without bets neither wins nor loses: %+v", bobSpin)
	}
	if aliceSpin.WinningNumber != bobSpin.WinningNumber {
		t.Error("Timeout resolution must use one number for the table")
	}

	status, _ := table.Status(bob)
	if got := status.(models.StatusResponse); got.SpinRequested {
		t.Error("Ready set should be empty after timeout resolution")
	}
}

func TestInsolventPlayerBetsAreCleared(t *testing.T) {
	table := services.NewTable("allin", time.Minute, nil)
	t.Cleanup(table.Coordinator().Stop)

	alice, out := joinPlayer(t, table, "alice")
	table.AddBet(alice, models.Bet{Label: "17", Placement: models.PlacementCenter, Amount: services.DefaultBalance})

	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("RequestSpin failed: %v", err)
	}

	spin := receiveSpin(t, out)

	// All-in on a straight number: new balance equals the payout, so the
	// bets are cleared exactly when the payout stays below the wager.
	wantCleared := spin.Balance < services.DefaultBalance
	if spin.BetsCleared != wantCleared {
		t.Errorf("BetsCleared inconsistent: balance %d, cleared %v", spin.Balance, spin.BetsCleared)
	}

	status, _ := table.Status(alice)
	got := status.(models.StatusResponse)
	if spin.BetsCleared && len(got.Bets) != 0 {
		t.Error("Cleared bets should be gone from the ledger")
	}
	if !spin.BetsCleared && len(got.Bets) != 1 {
		t.Error("A solvent player keeps their bets for the next round")
	}
}

func TestDisconnectedPlayerSkippedByResolution(t *testing.T) {
	table := services.NewTable("ghost", time.Minute, nil)
	t.Cleanup(table.Coordinator().Stop)

	alice, aliceOut := joinPlayer(t, table, "alice")
	bob, bobOut := joinPlayer(t, table, "bob")

	table.AddBet(alice, models.Bet{Label: "red", Placement: models.PlacementCenter, Amount: 100})
	table.AddBet(bob, models.Bet{Label: "black", Placement: models.PlacementCenter, Amount: 100})

	bobOut.Close()

	// With bob offline, alice alone is the active quorum.
	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("RequestSpin failed: %v", err)
	}

	receiveSpin(t, aliceOut)

	// Bob's session was not settled: his wager and balance are untouched.
	status, _ := table.Status(bob)
	got := status.(models.StatusResponse)
	if got.Balance != services.DefaultBalance || len(got.Bets) != 1 {
		t.Errorf("Offline players must not be settled: %+v", got)
	}
}

func TestNewRoundCanStartAfterResolution(t *testing.T) {
	table := services.NewTable("again", time.Minute, nil)
	t.Cleanup(table.Coordinator().Stop)

	alice, out := joinPlayer(t, table, "alice")
	table.AddBet(alice, models.Bet{Label: "1-18", Placement: models.PlacementCenter, Amount: 10})

	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("First round failed to start: %v", err)
	}
	receiveSpin(t, out)

	if _, err := table.AddBet(alice, models.Bet{Label: "19-36", Placement: models.PlacementCenter, Amount: 10}); err != nil {
		t.Fatalf("Betting should reopen after resolution: %v", err)
	}
	if _, err := table.RequestSpin(alice); err != nil {
		t.Fatalf("A new round should start after resolution: %v", err)
	}
	receiveSpin(t, out)
}
