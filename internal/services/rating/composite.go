package rating

import (
	"fmt"

	"github.com/ternarybob/brfanalys/internal/models"
)

// ComputeScores combines technical and financial signals into three
// sub-scores and a total, each an integer in [0, 100].
//
// Technical (base 70):
// - -8 per high-risk item, -3 per medium-risk item
//
// Financial (base 70), one bracket per metric, most severe checked first:
// - loanPerSqm: >7000 -20, >5000 -10, <3000 +10
// - savingsPerSqmYear: <100 -15, <150 -8, >200 +10
// - solidarity: <20 -15, <30 -8, >40 +10
//
// FeeRisk (base 60, higher is safer):
// - -15 if loanPerSqm > 5000, -10 if savingsPerSqmYear < 150
// - -5 per high-risk technical item
//
// Total is the mean of the three, rounded half up. Absent metrics are skipped.
func ComputeScores(analysis *models.AnalysisResult, strategy StatusStrategy, clock Clock) (Scores, ScoreBreakdown) {
	if analysis == nil {
		analysis = &models.AnalysisResult{}
	}
	if strategy == nil {
		strategy = SelectStatusStrategy(analysis)
	}

	breakdown := ScoreBreakdown{
		Base: Scores{
			Technical: BaseTechnicalScore,
			Financial: BaseFinancialScore,
			FeeRisk:   BaseFeeRiskScore,
		},
		Adjustments: []Adjustment{},
	}
	add := func(adj Adjustment) {
		breakdown.Adjustments = append(breakdown.Adjustments, adj)
	}

	technical := BaseTechnicalScore
	feeRisk := BaseFeeRiskScore
	for _, item := range analysis.Technical {
		risk, _ := strategy.Assess(item, clock)
		switch risk {
		case RiskHigh:
			technical += TechnicalHighPenalty
			feeRisk += FeeRiskHighItemPenalty
			add(Adjustment{ComponentTechnical, string(item.Category), TechnicalHighPenalty,
				fmt.Sprintf("%s: hög risk", itemLabel(item))})
			add(Adjustment{ComponentFeeRisk, string(item.Category), FeeRiskHighItemPenalty,
				fmt.Sprintf("%s: hög risk kan ge avgiftshöjning", itemLabel(item))})
		case RiskMedium:
			technical += TechnicalMediumPenalty
			add(Adjustment{ComponentTechnical, string(item.Category), TechnicalMediumPenalty,
				fmt.Sprintf("%s: medelrisk", itemLabel(item))})
		}
	}

	financial := BaseFinancialScore
	fin := analysis.Financial

	if v := fin.LoanPerSqm; v != nil {
		delta := 0
		switch {
		case *v > LoanHighRisk:
			delta = -20
		case *v > LoanElevatedRisk:
			delta = -10
		case *v < LoanLowBonus:
			delta = 10
		}
		if delta != 0 {
			financial += delta
			add(Adjustment{ComponentFinancial, string(MetricLoanPerSqm), delta,
				fmt.Sprintf("Lån %.0f kr/m²", *v)})
		}
		if *v > LoanElevatedRisk {
			feeRisk += FeeRiskLoanPenalty
			add(Adjustment{ComponentFeeRisk, string(MetricLoanPerSqm), FeeRiskLoanPenalty,
				fmt.Sprintf("Lån %.0f kr/m² över 5 000", *v)})
		}
	}

	if v := fin.SavingsPerSqmYear; v != nil {
		delta := 0
		switch {
		case *v < SavingsHighRisk:
			delta = -15
		case *v < SavingsElevatedRisk:
			delta = -8
		case *v > SavingsHighBonus:
			delta = 10
		}
		if delta != 0 {
			financial += delta
			add(Adjustment{ComponentFinancial, string(MetricSavingsPerSqmYear), delta,
				fmt.Sprintf("Sparande %.0f kr/m²/år", *v)})
		}
		if *v < SavingsElevatedRisk {
			feeRisk += FeeRiskSavingsPenalty
			add(Adjustment{ComponentFeeRisk, string(MetricSavingsPerSqmYear), FeeRiskSavingsPenalty,
				fmt.Sprintf("Sparande %.0f kr/m²/år under 150", *v)})
		}
	}

	if v := fin.Solidarity; v != nil {
		delta := 0
		switch {
		case *v < SolidarityHighRisk:
			delta = -15
		case *v < SolidarityElevated:
			delta = -8
		case *v > SolidarityHighBonus:
			delta = 10
		}
		if delta != 0 {
			financial += delta
			add(Adjustment{ComponentFinancial, string(MetricSolidarity), delta,
				fmt.Sprintf("Soliditet %.1f %%", *v)})
		}
	}

	scores := Scores{
		Technical: ClampScore(technical),
		Financial: ClampScore(financial),
		FeeRisk:   ClampScore(feeRisk),
	}
	scores.Total = ClampScore(RoundHalfUp(Mean([]float64{
		float64(scores.Technical),
		float64(scores.Financial),
		float64(scores.FeeRisk),
	})))

	return scores, breakdown
}

// ScoreBand maps a 0-100 score to the five-level assessment scale.
//
// Bands:
// - excellent: 75+
// - good: 60-74
// - normal: 45-59
// - strained: 30-44
// - critical: below 30
func ScoreBand(score int) models.Assessment {
	switch {
	case score >= BandExcellent:
		return models.AssessmentExcellent
	case score >= BandGood:
		return models.AssessmentGood
	case score >= BandNormal:
		return models.AssessmentNormal
	case score >= BandStrained:
		return models.AssessmentStrained
	default:
		return models.AssessmentCritical
	}
}

func itemLabel(item models.TechnicalItem) string {
	if item.Name != "" {
		return item.Name
	}
	return string(item.Category)
}
