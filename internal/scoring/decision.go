package scoring

// DecisionFactors are the five weighted sub-scores of decision quality,
// each on a 0-10 scale before adjustment.
type DecisionFactors struct {
	SetupQuality         float64 `json:"setup_quality"`
	TimingQuality        float64 `json:"timing_quality"`
	RiskManagement       float64 `json:"risk_management"`
	StrategyAlignment    float64 `json:"strategy_alignment"`
	MarketConditionMatch float64 `json:"market_condition_match"`
}

type DecisionQualityResult struct {
	Score           int             `json:"score"`
	Factors         DecisionFactors `json:"factors"`
	Mistakes        []string        `json:"mistakes"`
	Strengths       []string        `json:"strengths"`
	LearningPoints  []string        `json:"learning_points"`
	Recommendations []string        `json:"recommendations"`
}

var decisionWeights = map[Factor]float64{
	FactorSetupQuality:         0.25,
	FactorTimingQuality:        0.20,
	FactorRiskManagement:       0.25,
	FactorStrategyAlignment:    0.15,
	FactorMarketConditionMatch: 0.15,
}

// DecisionRules is the ordered adjustment list for decision quality.
// Setup bonuses only apply when no explicit setup rating was given;
// an explicit rating wins outright.
func DecisionRules() []Rule {
	return []Rule{
		{
			Name:   "setup_good_risk_reward",
			Factor: FactorSetupQuality,
			Delta:  2,
			When: func(in Input) bool {
				return in.SetupQuality == nil && in.RiskRewardRatio != nil && *in.RiskRewardRatio >= 2
			},
			Strength: "Good risk/reward ratio",
		},
		{
			Name:   "setup_defined_levels",
			Factor: FactorSetupQuality,
			Delta:  1,
			When: func(in Input) bool {
				return in.SetupQuality == nil && in.StopLoss != nil && in.TakeProfit != nil
			},
			Strength: "Defined stop loss and take profit",
		},
		{
			Name:   "timing_very_short_hold",
			Factor: FactorTimingQuality,
			Delta:  -2,
			When: func(in Input) bool {
				return in.HoldingTimeMinutes != nil && *in.HoldingTimeMinutes < 5
			},
			Mistake:       "Very short holding time",
			LearningPoint: "Give setups room to play out before exiting",
		},
		{
			Name:   "timing_very_long_hold",
			Factor: FactorTimingQuality,
			Delta:  -1,
			When: func(in Input) bool {
				return in.HoldingTimeMinutes != nil && *in.HoldingTimeMinutes > 480
			},
			Mistake: "Very long holding time",
		},
		{
			Name:   "risk_stop_loss_set",
			Factor: FactorRiskManagement,
			Delta:  2,
			When:   func(in Input) bool { return in.StopLoss != nil },
		},
		{
			Name:           "risk_no_stop_loss",
			Factor:         FactorRiskManagement,
			Delta:          -3,
			When:           func(in Input) bool { return in.StopLoss == nil },
			Mistake:        "No stop loss",
			Recommendation: "Always use stop losses",
		},
		{
			Name:   "risk_reward_strong",
			Factor: FactorRiskManagement,
			Delta:  2,
			When: func(in Input) bool {
				return in.RiskRewardRatio != nil && *in.RiskRewardRatio >= 2
			},
		},
		{
			Name:   "risk_reward_weak",
			Factor: FactorRiskManagement,
			Delta:  -2,
			When: func(in Input) bool {
				return in.RiskRewardRatio != nil && *in.RiskRewardRatio < 1
			},
		},
		{
			Name:           "strategy_missing",
			Factor:         FactorStrategyAlignment,
			Delta:          -4,
			When:           func(in Input) bool { return !in.HasStrategy },
			Mistake:        "No strategy specified",
			Recommendation: "Define and follow a trading strategy",
		},
		{
			Name:   "market_condition_missing",
			Factor: FactorMarketConditionMatch,
			Delta:  -3,
			When:   func(in Input) bool { return !in.HasMarketCondition },
		},
	}
}

// ComputeDecisionQuality scores how well the trade was decided,
// independent of its outcome. Absent optional fields skip their rules.
func ComputeDecisionQuality(in Input) DecisionQualityResult {
	setupBase := 6.0
	if in.SetupQuality != nil {
		setupBase = clamp(float64(*in.SetupQuality), 0, 10)
	}
	baseline := map[Factor]float64{
		FactorSetupQuality:         setupBase,
		FactorTimingQuality:        7,
		FactorRiskManagement:       5,
		FactorStrategyAlignment:    8,
		FactorMarketConditionMatch: 8,
	}
	factors, msgs := evaluate(in, baseline, DecisionRules())
	return DecisionQualityResult{
		Score: weighted(factors, decisionWeights),
		Factors: DecisionFactors{
			SetupQuality:         factors[FactorSetupQuality],
			TimingQuality:        factors[FactorTimingQuality],
			RiskManagement:       factors[FactorRiskManagement],
			StrategyAlignment:    factors[FactorStrategyAlignment],
			MarketConditionMatch: factors[FactorMarketConditionMatch],
		},
		Mistakes:        msgs.Mistakes,
		Strengths:       msgs.Strengths,
		LearningPoints:  msgs.LearningPoints,
		Recommendations: msgs.Recommendations,
	}
}
