package scoring

// ExecutionFactors are the five weighted sub-scores of execution quality.
type ExecutionFactors struct {
	EntryPrecision   float64 `json:"entry_precision"`
	PositionSizing   float64 `json:"position_sizing"`
	StopPlacement    float64 `json:"stop_placement"`
	ExitDiscipline   float64 `json:"exit_discipline"`
	EmotionalControl float64 `json:"emotional_control"`
}

type ExecutionQualityResult struct {
	Score   int              `json:"score"`
	Factors ExecutionFactors `json:"factors"`
}

var executionWeights = map[Factor]float64{
	FactorEntryPrecision:   0.20,
	FactorStopPlacement:    0.20,
	FactorPositionSizing:   0.15,
	FactorExitDiscipline:   0.25,
	FactorEmotionalControl: 0.20,
}

// ExecutionRules is the ordered adjustment list for execution quality.
// Emotional-control penalties use two threshold tiers on the drift deltas;
// the deeper tier stacks on the shallow one.
func ExecutionRules() []Rule {
	return []Rule{
		{
			Name:   "entry_profitable",
			Factor: FactorEntryPrecision,
			Delta:  1,
			When:   func(in Input) bool { return in.ProfitLoss != nil && *in.ProfitLoss > 0 },
		},
		{
			Name:   "entry_losing",
			Factor: FactorEntryPrecision,
			Delta:  -1,
			When:   func(in Input) bool { return in.ProfitLoss != nil && *in.ProfitLoss < 0 },
		},
		{
			Name:   "stop_present",
			Factor: FactorStopPlacement,
			Delta:  2,
			When:   func(in Input) bool { return in.StopLoss != nil },
		},
		{
			Name:   "stop_absent",
			Factor: FactorStopPlacement,
			Delta:  -2,
			When:   func(in Input) bool { return in.StopLoss == nil },
		},
		{
			Name:   "sizing_large",
			Factor: FactorPositionSizing,
			Delta:  -1,
			When:   func(in Input) bool { return in.Volume != nil && *in.Volume > 1 },
		},
		{
			Name:   "sizing_oversized",
			Factor: FactorPositionSizing,
			Delta:  -1,
			When:   func(in Input) bool { return in.Volume != nil && *in.Volume > 5 },
		},
		{
			Name:   "exit_take_profit_set",
			Factor: FactorExitDiscipline,
			Delta:  1,
			When:   func(in Input) bool { return in.TakeProfit != nil },
		},
		{
			Name:   "exit_recorded",
			Factor: FactorExitDiscipline,
			Delta:  1,
			When:   func(in Input) bool { return in.ExitPrice != nil },
		},
		{
			Name:   "emotion_confidence_drop",
			Factor: FactorEmotionalControl,
			Delta:  -1,
			When:   func(in Input) bool { return in.Drift != nil && in.Drift.ConfidenceChange <= -1 },
		},
		{
			Name:   "emotion_confidence_collapse",
			Factor: FactorEmotionalControl,
			Delta:  -2,
			When:   func(in Input) bool { return in.Drift != nil && in.Drift.ConfidenceChange <= -3 },
		},
		{
			Name:   "emotion_stress_rise",
			Factor: FactorEmotionalControl,
			Delta:  -1,
			When:   func(in Input) bool { return in.Drift != nil && in.Drift.StressChange >= 1 },
		},
		{
			Name:   "emotion_stress_spike",
			Factor: FactorEmotionalControl,
			Delta:  -2,
			When:   func(in Input) bool { return in.Drift != nil && in.Drift.StressChange >= 3 },
		},
	}
}

// ComputeExecutionQuality scores how well the trade was executed against
// its own plan.
func ComputeExecutionQuality(in Input) ExecutionQualityResult {
	baseline := map[Factor]float64{
		FactorEntryPrecision:   7,
		FactorStopPlacement:    5,
		FactorPositionSizing:   7,
		FactorExitDiscipline:   6,
		FactorEmotionalControl: 7,
	}
	factors, _ := evaluate(in, baseline, ExecutionRules())
	return ExecutionQualityResult{
		Score: weighted(factors, executionWeights),
		Factors: ExecutionFactors{
			EntryPrecision:   factors[FactorEntryPrecision],
			StopPlacement:    factors[FactorStopPlacement],
			PositionSizing:   factors[FactorPositionSizing],
			ExitDiscipline:   factors[FactorExitDiscipline],
			EmotionalControl: factors[FactorEmotionalControl],
		},
	}
}
