package scoring

import "math"

type EmotionalCostResult struct {
	CostScore               float64 `json:"cost_score"`
	StressAccumulation      float64 `json:"stress_accumulation"`
	DecisionQualityImpact   float64 `json:"decision_quality_impact"`
	FuturePerformanceImpact float64 `json:"future_performance_impact"`
	RecoveryTimeMinutes     int     `json:"recovery_time_minutes"`
}

// ComputeEmotionalCost estimates what the trade cost the trader
// emotionally. With drift data the cost is a weighted sum of the absolute
// deltas; without it only the profit/loss sign informs a coarse default.
func ComputeEmotionalCost(in Input) EmotionalCostResult {
	if in.Drift == nil {
		if in.ProfitLoss != nil && *in.ProfitLoss < 0 {
			return EmotionalCostResult{
				CostScore:               20,
				StressAccumulation:      10,
				DecisionQualityImpact:   8,
				FuturePerformanceImpact: 12,
				RecoveryTimeMinutes:     60,
			}
		}
		return EmotionalCostResult{
			CostScore:               5,
			StressAccumulation:      2,
			DecisionQualityImpact:   0,
			FuturePerformanceImpact: 3,
			RecoveryTimeMinutes:     60,
		}
	}

	d := in.Drift
	cost := 0.3*math.Abs(d.ConfidenceChange) +
		0.3*math.Abs(d.StressChange) +
		0.2*math.Abs(d.FocusChange) +
		0.2*math.Abs(d.EnergyChange)

	recovery := 30
	switch {
	case cost > 50:
		recovery = 480
	case cost > 25:
		recovery = 180
	}

	return EmotionalCostResult{
		CostScore:               cost,
		StressAccumulation:      math.Max(0, d.StressChange+0.5*d.EnergyChange),
		DecisionQualityImpact:   math.Max(0, -0.8*d.ConfidenceChange),
		FuturePerformanceImpact: math.Max(0, 0.6*cost),
		RecoveryTimeMinutes:     recovery,
	}
}

// CombineDecisionScore weights decision quality over execution quality:
// the decision is more attributable to the trader than the fill.
func CombineDecisionScore(decisionScore, executionScore int) int {
	return int(math.Round(0.6*float64(decisionScore) + 0.4*float64(executionScore)))
}
