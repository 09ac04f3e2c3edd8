package rating

import (
	"fmt"
	"strings"

	"github.com/ternarybob/brfanalys/internal/models"
)

// ClassifyFinancialRisk scores the association's balance sheet health.
//
// Each metric contributes 0, 1 or 2 risk points:
// - loanPerSqm: +2 if > 7000, +1 if > 5000
// - savingsPerSqmYear: +2 if < 100, +1 if < 150
// - solidarity: +2 if < 20, +1 if < 30
//
// Absent metrics contribute nothing. Score >= 4 is high, >= 2 medium,
// otherwise low.
func ClassifyFinancialRisk(financial models.Financial) FinancialRiskResult {
	components := FinancialComponents{}
	reasons := []string{}

	if v := financial.LoanPerSqm; v != nil {
		switch {
		case *v > LoanHighRisk:
			components.LoanPoints = 2
		case *v > LoanElevatedRisk:
			components.LoanPoints = 1
		}
		if components.LoanPoints > 0 {
			reasons = append(reasons, fmt.Sprintf("loan %.0f kr/sqm (+%d)", *v, components.LoanPoints))
		}
	}

	if v := financial.SavingsPerSqmYear; v != nil {
		switch {
		case *v < SavingsHighRisk:
			components.SavingsPoints = 2
		case *v < SavingsElevatedRisk:
			components.SavingsPoints = 1
		}
		if components.SavingsPoints > 0 {
			reasons = append(reasons, fmt.Sprintf("savings %.0f kr/sqm/yr (+%d)", *v, components.SavingsPoints))
		}
	}

	if v := financial.Solidarity; v != nil {
		switch {
		case *v < SolidarityHighRisk:
			components.SolidarityPoints = 2
		case *v < SolidarityElevated:
			components.SolidarityPoints = 1
		}
		if components.SolidarityPoints > 0 {
			reasons = append(reasons, fmt.Sprintf("solidarity %.1f%% (+%d)", *v, components.SolidarityPoints))
		}
	}

	score := components.LoanPoints + components.SavingsPoints + components.SolidarityPoints
	level := financialLevel(score)

	reasoning := fmt.Sprintf("Financial risk %d/6 (%s)", score, level)
	if len(reasons) > 0 {
		reasoning += ": " + strings.Join(reasons, ", ")
	}

	return FinancialRiskResult{
		Score:      score,
		Level:      level,
		Status:     StatusFromRisk(level),
		Components: components,
		Reasoning:  reasoning,
	}
}

func financialLevel(score int) RiskLevel {
	switch {
	case score >= FinancialRiskHighScore:
		return RiskHigh
	case score >= FinancialRiskMediumScore:
		return RiskMedium
	default:
		return RiskLow
	}
}

// EvaluateMetrics produces the per-metric display verdicts. These use looser
// bands than ClassifyFinancialRisk and never feed into any score.
func EvaluateMetrics(financial models.Financial) []MetricVerdict {
	return []MetricVerdict{
		judge(MetricLoanPerSqm, "Lån per m²", "kr", "Under 5 000 kr = bra", financial.LoanPerSqm,
			func(v float64) bool { return v < LoanElevatedRisk }),
		judge(MetricFeePerSqmYear, "Avgift per m²/år", "kr", "600–800 kr = normalt", financial.FeePerSqmYear,
			func(v float64) bool { return v >= FeeGoodMin && v <= FeeGoodMax }),
		judge(MetricSavingsPerSqmYear, "Sparande per m²/år", "kr", "Över 150 kr = bra", financial.SavingsPerSqmYear,
			func(v float64) bool { return v >= SavingsElevatedRisk }),
		judge(MetricSolidarity, "Soliditet", "%", "Över 30% = bra", financial.Solidarity,
			func(v float64) bool { return v > SolidarityElevated }),
		judge(MetricTotalLoans, "Totala lån", "kr", "", financial.TotalLoans, nil),
		judge(MetricResult, "Årsresultat", "kr", "Positivt = bra", financial.Result,
			func(v float64) bool { return v >= 0 }),
	}
}

func judge(key MetricKey, label, unit, benchmark string, value *float64, isGood func(float64) bool) MetricVerdict {
	mv := MetricVerdict{
		Key:       key,
		Label:     label,
		Value:     value,
		Unit:      unit,
		Benchmark: benchmark,
	}

	switch {
	case value == nil:
		mv.Verdict = VerdictUnknown
	case isGood == nil:
		mv.Verdict = VerdictNeutral
	case isGood(*value):
		mv.Verdict = VerdictGood
	default:
		mv.Verdict = VerdictBad
	}
	return mv
}
