package scoring

import "testing"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestComputeDecisionQuality_FullSetup(t *testing.T) {
	in := Input{
		StopLoss:           floatPtr(1.09),
		TakeProfit:         floatPtr(1.12),
		RiskRewardRatio:    floatPtr(2.5),
		HoldingTimeMinutes: intPtr(60),
		HasStrategy:        true,
		HasMarketCondition: true,
	}
	got := ComputeDecisionQuality(in)
	if got.Score != 8 {
		t.Fatalf("score=%d want 8", got.Score)
	}
	if got.Factors.SetupQuality != 9 {
		t.Fatalf("setup=%v want 9", got.Factors.SetupQuality)
	}
	if got.Factors.RiskManagement != 9 {
		t.Fatalf("risk=%v want 9", got.Factors.RiskManagement)
	}
	if len(got.Mistakes) != 0 {
		t.Fatalf("mistakes=%v want none", got.Mistakes)
	}
	if len(got.Strengths) != 2 {
		t.Fatalf("strengths=%v want 2", got.Strengths)
	}
	if got.Strengths[0] != "Good risk/reward ratio" {
		t.Fatalf("strengths[0]=%q", got.Strengths[0])
	}
}

func TestComputeDecisionQuality_Defaults(t *testing.T) {
	got := ComputeDecisionQuality(Input{})
	if got.Score != 5 {
		t.Fatalf("score=%d want 5", got.Score)
	}
	wantMistakes := []string{"No stop loss", "No strategy specified"}
	if len(got.Mistakes) != len(wantMistakes) {
		t.Fatalf("mistakes=%v want %v", got.Mistakes, wantMistakes)
	}
	for i, m := range wantMistakes {
		if got.Mistakes[i] != m {
			t.Fatalf("mistakes[%d]=%q want %q", i, got.Mistakes[i], m)
		}
	}
	wantRecs := []string{"Always use stop losses", "Define and follow a trading strategy"}
	for i, r := range wantRecs {
		if got.Recommendations[i] != r {
			t.Fatalf("recommendations[%d]=%q want %q", i, got.Recommendations[i], r)
		}
	}
}

func TestComputeDecisionQuality_StopLossFactorSwing(t *testing.T) {
	without := ComputeDecisionQuality(Input{})
	with := ComputeDecisionQuality(Input{StopLoss: floatPtr(1.0)})
	if diff := with.Factors.RiskManagement - without.Factors.RiskManagement; diff != 5 {
		t.Fatalf("risk management swing=%v want 5", diff)
	}
	for _, m := range with.Mistakes {
		if m == "No stop loss" {
			t.Fatalf("unexpected mistake with stop loss set: %v", with.Mistakes)
		}
	}
}

func TestComputeDecisionQuality_ExplicitRatingWins(t *testing.T) {
	in := Input{
		SetupQuality:    intPtr(3),
		RiskRewardRatio: floatPtr(3),
		StopLoss:        floatPtr(1.0),
		TakeProfit:      floatPtr(2.0),
	}
	got := ComputeDecisionQuality(in)
	if got.Factors.SetupQuality != 3 {
		t.Fatalf("setup=%v want 3 (explicit rating skips bonuses)", got.Factors.SetupQuality)
	}
}

func TestComputeDecisionQuality_ExplicitRatingClamped(t *testing.T) {
	got := ComputeDecisionQuality(Input{SetupQuality: intPtr(42)})
	if got.Factors.SetupQuality != 10 {
		t.Fatalf("setup=%v want 10", got.Factors.SetupQuality)
	}
}

func TestComputeDecisionQuality_HoldingTimePenalties(t *testing.T) {
	short := ComputeDecisionQuality(Input{HoldingTimeMinutes: intPtr(2)})
	if short.Factors.TimingQuality != 5 {
		t.Fatalf("short-hold timing=%v want 5", short.Factors.TimingQuality)
	}
	long := ComputeDecisionQuality(Input{HoldingTimeMinutes: intPtr(600)})
	if long.Factors.TimingQuality != 6 {
		t.Fatalf("long-hold timing=%v want 6", long.Factors.TimingQuality)
	}
	found := false
	for _, lp := range short.LearningPoints {
		if lp == "Give setups room to play out before exiting" {
			found = true
		}
	}
	if !found {
		t.Fatalf("learning points=%v missing short-hold entry", short.LearningPoints)
	}
}
