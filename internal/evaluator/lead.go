package evaluator

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
)

var highValueIndustries = map[string]bool{
	"technology": true,
	"finance":    true,
	"healthcare": true,
}

// LeadScorer awards additive, mutually exclusive tier bonuses per lead
// attribute and bands the sum into a quality label.
type LeadScorer struct {
	logger *zap.Logger
}

func NewLeadScorer(logger *zap.Logger) *LeadScorer {
	return &LeadScorer{logger: logger}
}

// Score evaluates leadData. Non-numeric company_size/budget and negative
// values are validation failures; an unknown engagement_level degrades to
// "low" with a warning instead of failing.
func (s *LeadScorer) Score(leadData map[string]any) (*model.LeadScore, error) {
	if len(leadData) == 0 {
		return nil, faults.Validation("lead_data must not be empty")
	}

	companySize, err := coerceNonNegative(leadData, "company_size")
	if err != nil {
		return nil, err
	}
	budget, err := coerceNonNegative(leadData, "budget")
	if err != nil {
		return nil, err
	}

	industry := strings.ToLower(strings.TrimSpace(cast.ToString(leadData["industry"])))
	engagement := strings.ToLower(strings.TrimSpace(cast.ToString(leadData["engagement_level"])))
	switch engagement {
	case "high", "medium", "low":
	case "":
		engagement = "low"
	default:
		s.logger.Warn("Unknown engagement_level, defaulting to low",
			zap.String("engagement_level", engagement),
		)
		engagement = "low"
	}
	isDecisionMaker := cast.ToBool(leadData["is_decision_maker"])

	score := 0
	factors := []string{}

	switch {
	case companySize > 1000:
		score += 30
		factors = append(factors, "Large company (+30)")
	case companySize > 100:
		score += 20
		factors = append(factors, "Medium company (+20)")
	case companySize > 10:
		score += 10
		factors = append(factors, "Small company (+10)")
	}

	if highValueIndustries[industry] {
		score += 25
		factors = append(factors, fmt.Sprintf("High-value industry: %s (+25)", industry))
	}

	switch {
	case budget > 100000:
		score += 40
		factors = append(factors, "High budget (+40)")
	case budget > 50000:
		score += 25
		factors = append(factors, "Medium budget (+25)")
	case budget > 10000:
		score += 15
		factors = append(factors, "Low budget (+15)")
	}

	switch engagement {
	case "high":
		score += 20
		factors = append(factors, "High engagement (+20)")
	case "medium":
		score += 10
		factors = append(factors, "Medium engagement (+10)")
	}

	if isDecisionMaker {
		score += 15
		factors = append(factors, "Decision maker (+15)")
	}

	return &model.LeadScore{
		Score:   score,
		Quality: qualityBand(score),
		Factors: factors,
		LeadData: map[string]any{
			"company_size":      companySize,
			"industry":          industry,
			"budget":            budget,
			"engagement_level":  engagement,
			"is_decision_maker": isDecisionMaker,
		},
	}, nil
}

// coerceNonNegative reads key as a float. An absent key is zero; a value
// that cannot be coerced is a validation failure, never a silent zero.
func coerceNonNegative(leadData map[string]any, key string) (float64, error) {
	raw, ok := leadData[key]
	if !ok || raw == nil {
		return 0, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, faults.Validation("%s must be numeric", key)
	}
	if v < 0 {
		return 0, faults.Validation("%s must not be negative", key)
	}
	return v, nil
}

func qualityBand(score int) string {
	switch {
	case score >= 80:
		return "hot"
	case score >= 50:
		return "warm"
	case score >= 25:
		return "cold"
	default:
		return "unqualified"
	}
}
