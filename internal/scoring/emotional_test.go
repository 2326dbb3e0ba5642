package scoring

import (
	"math"
	"testing"
)

func TestComputeEmotionalCost_FallbackLoss(t *testing.T) {
	got := ComputeEmotionalCost(Input{ProfitLoss: floatPtr(-50)})
	if got.CostScore != 20 || got.StressAccumulation != 10 ||
		got.DecisionQualityImpact != 8 || got.FuturePerformanceImpact != 12 {
		t.Fatalf("loss fallback=%+v", got)
	}
	if got.RecoveryTimeMinutes != 60 {
		t.Fatalf("recovery=%d want 60", got.RecoveryTimeMinutes)
	}
}

func TestComputeEmotionalCost_FallbackNonLoss(t *testing.T) {
	for _, pl := range []*float64{nil, floatPtr(0), floatPtr(75)} {
		got := ComputeEmotionalCost(Input{ProfitLoss: pl})
		if got.CostScore != 5 || got.StressAccumulation != 2 ||
			got.DecisionQualityImpact != 0 || got.FuturePerformanceImpact != 3 {
			t.Fatalf("non-loss fallback=%+v for pl=%v", got, pl)
		}
		if got.RecoveryTimeMinutes != 60 {
			t.Fatalf("recovery=%d want 60", got.RecoveryTimeMinutes)
		}
	}
}

func TestComputeEmotionalCost_DriftWeights(t *testing.T) {
	in := Input{Drift: &Drift{
		ConfidenceChange: -40,
		StressChange:     40,
		FocusChange:      -20,
		EnergyChange:     -20,
	}}
	got := ComputeEmotionalCost(in)
	if got.CostScore != 32 {
		t.Fatalf("cost=%v want 32", got.CostScore)
	}
	if got.RecoveryTimeMinutes != 180 {
		t.Fatalf("recovery=%d want 180", got.RecoveryTimeMinutes)
	}
	if got.DecisionQualityImpact != 32 {
		t.Fatalf("dq impact=%v want 32 (0.8*40)", got.DecisionQualityImpact)
	}
	if math.Abs(got.FuturePerformanceImpact-19.2) > 1e-9 {
		t.Fatalf("future impact=%v want 19.2", got.FuturePerformanceImpact)
	}
	if got.StressAccumulation != 30 {
		t.Fatalf("stress=%v want 30 (40 + 0.5*-20)", got.StressAccumulation)
	}
}

func TestComputeEmotionalCost_RecoverySteps(t *testing.T) {
	low := ComputeEmotionalCost(Input{Drift: &Drift{ConfidenceChange: -10}})
	if low.RecoveryTimeMinutes != 30 {
		t.Fatalf("low recovery=%d want 30", low.RecoveryTimeMinutes)
	}
	mid := ComputeEmotionalCost(Input{Drift: &Drift{ConfidenceChange: -100}})
	if mid.CostScore != 30 {
		t.Fatalf("mid cost=%v want 30", mid.CostScore)
	}
	if mid.RecoveryTimeMinutes != 180 {
		t.Fatalf("mid recovery=%d want 180", mid.RecoveryTimeMinutes)
	}
	high := ComputeEmotionalCost(Input{Drift: &Drift{ConfidenceChange: -100, StressChange: 100}})
	if high.RecoveryTimeMinutes != 480 {
		t.Fatalf("high recovery=%d want 480", high.RecoveryTimeMinutes)
	}
}

func TestCombineDecisionScore(t *testing.T) {
	if got := CombineDecisionScore(8, 7); got != 8 {
		t.Fatalf("combine(8,7)=%d want 8", got)
	}
	if got := CombineDecisionScore(5, 7); got != 6 {
		t.Fatalf("combine(5,7)=%d want 6", got)
	}
	if got := CombineDecisionScore(0, 0); got != 0 {
		t.Fatalf("combine(0,0)=%d want 0", got)
	}
}
