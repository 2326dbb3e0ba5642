package scoring

import "math"

// Factor names one axis of a quality breakdown.
type Factor string

const (
	FactorSetupQuality         Factor = "setup_quality"
	FactorTimingQuality        Factor = "timing_quality"
	FactorRiskManagement       Factor = "risk_management"
	FactorStrategyAlignment    Factor = "strategy_alignment"
	FactorMarketConditionMatch Factor = "market_condition_match"

	FactorEntryPrecision   Factor = "entry_precision"
	FactorStopPlacement    Factor = "stop_placement"
	FactorPositionSizing   Factor = "position_sizing"
	FactorExitDiscipline   Factor = "exit_discipline"
	FactorEmotionalControl Factor = "emotional_control"
)

// Rule is one additive adjustment: when the condition holds, Delta is
// applied to Factor and the attached messages are recorded. Rules are
// evaluated in list order so message ordering is stable.
type Rule struct {
	Name   string
	Factor Factor
	Delta  float64
	When   func(in Input) bool

	Mistake        string
	Strength       string
	LearningPoint  string
	Recommendation string
}

// Messages collected while evaluating a rule list.
type Messages struct {
	Mistakes        []string
	Strengths       []string
	LearningPoints  []string
	Recommendations []string
}

func newMessages() Messages {
	return Messages{
		Mistakes:        []string{},
		Strengths:       []string{},
		LearningPoints:  []string{},
		Recommendations: []string{},
	}
}

// evaluate applies rules in order over the baseline factor map and
// returns the adjusted factors plus every message that fired.
func evaluate(in Input, baseline map[Factor]float64, rules []Rule) (map[Factor]float64, Messages) {
	factors := make(map[Factor]float64, len(baseline))
	for f, v := range baseline {
		factors[f] = v
	}
	msgs := newMessages()
	for _, r := range rules {
		if r.When != nil && !r.When(in) {
			continue
		}
		factors[r.Factor] += r.Delta
		if r.Mistake != "" {
			msgs.Mistakes = append(msgs.Mistakes, r.Mistake)
		}
		if r.Strength != "" {
			msgs.Strengths = append(msgs.Strengths, r.Strength)
		}
		if r.LearningPoint != "" {
			msgs.LearningPoints = append(msgs.LearningPoints, r.LearningPoint)
		}
		if r.Recommendation != "" {
			msgs.Recommendations = append(msgs.Recommendations, r.Recommendation)
		}
	}
	return factors, msgs
}

// weighted folds a factor map into a rounded composite score.
func weighted(factors map[Factor]float64, weights map[Factor]float64) int {
	var sum float64
	for f, w := range weights {
		sum += factors[f] * w
	}
	return int(math.Round(sum))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
