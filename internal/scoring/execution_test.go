package scoring

import "testing"

func TestComputeExecutionQuality_CleanWinner(t *testing.T) {
	in := Input{
		ProfitLoss: floatPtr(120),
		StopLoss:   floatPtr(1.09),
		TakeProfit: floatPtr(1.12),
		ExitPrice:  floatPtr(1.118),
		Volume:     floatPtr(1),
	}
	got := ComputeExecutionQuality(in)
	if got.Score != 7 {
		t.Fatalf("score=%d want 7", got.Score)
	}
	if got.Factors.EntryPrecision != 8 {
		t.Fatalf("entry=%v want 8", got.Factors.EntryPrecision)
	}
	if got.Factors.StopPlacement != 7 {
		t.Fatalf("stop=%v want 7", got.Factors.StopPlacement)
	}
	if got.Factors.PositionSizing != 7 {
		t.Fatalf("sizing=%v want 7 (volume 1 is not large)", got.Factors.PositionSizing)
	}
	if got.Factors.ExitDiscipline != 8 {
		t.Fatalf("exit=%v want 8", got.Factors.ExitDiscipline)
	}
}

func TestComputeExecutionQuality_OversizedLoserNoStop(t *testing.T) {
	in := Input{
		ProfitLoss: floatPtr(-80),
		Volume:     floatPtr(10),
	}
	got := ComputeExecutionQuality(in)
	if got.Factors.EntryPrecision != 6 {
		t.Fatalf("entry=%v want 6", got.Factors.EntryPrecision)
	}
	if got.Factors.StopPlacement != 3 {
		t.Fatalf("stop=%v want 3", got.Factors.StopPlacement)
	}
	if got.Factors.PositionSizing != 5 {
		t.Fatalf("sizing=%v want 5 (both size penalties)", got.Factors.PositionSizing)
	}
	if got.Factors.ExitDiscipline != 6 {
		t.Fatalf("exit=%v want 6", got.Factors.ExitDiscipline)
	}
}

func TestComputeExecutionQuality_EmotionTiersStack(t *testing.T) {
	in := Input{
		Drift: &Drift{ConfidenceChange: -4, StressChange: 4},
	}
	got := ComputeExecutionQuality(in)
	if got.Factors.EmotionalControl != 1 {
		t.Fatalf("emotional control=%v want 1 (both tiers on both deltas)", got.Factors.EmotionalControl)
	}

	mild := ComputeExecutionQuality(Input{Drift: &Drift{ConfidenceChange: -1, StressChange: 1}})
	if mild.Factors.EmotionalControl != 5 {
		t.Fatalf("emotional control=%v want 5 (shallow tiers only)", mild.Factors.EmotionalControl)
	}
}

func TestComputeExecutionQuality_NoDriftNeutral(t *testing.T) {
	got := ComputeExecutionQuality(Input{})
	if got.Factors.EmotionalControl != 7 {
		t.Fatalf("emotional control=%v want baseline 7", got.Factors.EmotionalControl)
	}
}
