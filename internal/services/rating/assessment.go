package rating

import (
	"fmt"
	"strings"

	"github.com/ternarybob/brfanalys/internal/models"
)

// GenericAssessmentReason is used when the provider's label cannot be trusted
const GenericAssessmentReason = "Bedömningen kunde inte fastställas från analysen. Föreningen bedöms som normal i väntan på granskning."

// ValidationError reports a value outside its declared finite set. It is
// recovered locally and never aborts an evaluation.
type ValidationError struct {
	Field string
	Value string
	Want  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: want one of %s", e.Field, e.Value, strings.Join(e.Want, ", "))
}

// AssessmentInput is everything a resolver may consult
type AssessmentInput struct {
	Analysis  *models.AnalysisResult
	Scores    Scores
	Technical []TechnicalAssessment
	Financial FinancialRiskResult
}

// AssessmentResolver produces the overall assessment for an analysis
type AssessmentResolver interface {
	Resolve(input AssessmentInput) Resolution
}

// ProviderAssessmentResolver treats the provider's label as authoritative,
// only checking it belongs to the known set
type ProviderAssessmentResolver struct{}

// Resolve implements AssessmentResolver.
func (ProviderAssessmentResolver) Resolve(input AssessmentInput) Resolution {
	raw := ""
	reason := ""
	if input.Analysis != nil {
		raw = strings.TrimSpace(input.Analysis.OverallAssessment)
		reason = strings.TrimSpace(input.Analysis.AssessmentReason)
	}

	assessment := models.Assessment(strings.ToLower(raw))
	if !assessment.IsValid() {
		want := make([]string, 0, len(models.AllAssessments()))
		for _, a := range models.AllAssessments() {
			want = append(want, string(a))
		}
		return Resolution{
			Assessment: models.AssessmentNormal,
			Reason:     GenericAssessmentReason,
			Source:     AssessmentFromProvider,
			Err:        &ValidationError{Field: "overallAssessment", Value: raw, Want: want},
		}
	}

	if reason == "" {
		reason = GenericAssessmentReason
	}
	return Resolution{
		Assessment: assessment,
		Reason:     reason,
		Source:     AssessmentFromProvider,
	}
}

// LocalAssessmentResolver derives the assessment from the total score and
// names the weakest sub-score with its concrete cause
type LocalAssessmentResolver struct{}

// Resolve implements AssessmentResolver.
func (LocalAssessmentResolver) Resolve(input AssessmentInput) Resolution {
	assessment := ScoreBand(input.Scores.Total)

	component, value := weakestComponent(input.Scores)
	cause := ""
	switch component {
	case ComponentTechnical:
		cause = technicalCause(input.Technical)
	case ComponentFinancial:
		cause = financialCause(input.Analysis)
	case ComponentFeeRisk:
		cause = feeRiskCause(input.Analysis, input.Technical)
	}

	reason := fmt.Sprintf("Totalpoäng %d av 100. Svagast är %s (%d)", input.Scores.Total, componentLabel(component), value)
	if cause != "" {
		reason += ": " + cause
	}
	reason += "."

	return Resolution{
		Assessment: assessment,
		Reason:     reason,
		Source:     AssessmentFromScores,
	}
}

// SelectAssessmentResolver uses the provider's label when present, otherwise
// derives one locally.
func SelectAssessmentResolver(analysis *models.AnalysisResult) AssessmentResolver {
	if analysis != nil && strings.TrimSpace(analysis.OverallAssessment) != "" {
		return ProviderAssessmentResolver{}
	}
	return LocalAssessmentResolver{}
}

// weakestComponent returns the lowest sub-score. Ties resolve in the order
// technical, financial, feeRisk.
func weakestComponent(scores Scores) (ScoreComponent, int) {
	component, value := ComponentTechnical, scores.Technical
	if scores.Financial < value {
		component, value = ComponentFinancial, scores.Financial
	}
	if scores.FeeRisk < value {
		component, value = ComponentFeeRisk, scores.FeeRisk
	}
	return component, value
}

func componentLabel(component ScoreComponent) string {
	switch component {
	case ComponentTechnical:
		return "tekniskt skick"
	case ComponentFinancial:
		return "ekonomin"
	default:
		return "avgiftsrisken"
	}
}

// technicalCause names the highest-risk item. The slice is sorted critical
// first, so the first entry is the worst.
func technicalCause(technical []TechnicalAssessment) string {
	if len(technical) == 0 {
		return "inga tekniska uppgifter redovisas"
	}
	worst := technical[0]
	name := worst.Item.Name
	if name == "" {
		name = string(worst.Item.Category)
	}
	switch worst.Risk {
	case RiskHigh:
		if worst.YearsSinceMaintenance != nil {
			return fmt.Sprintf("%s har hög risk (%d år sedan underhåll)", name, *worst.YearsSinceMaintenance)
		}
		return fmt.Sprintf("%s har hög risk", name)
	case RiskMedium:
		return fmt.Sprintf("%s bör bevakas", name)
	default:
		return "samtliga komponenter i gott skick"
	}
}

// financialCause names the metric with the largest risk contribution.
func financialCause(analysis *models.AnalysisResult) string {
	if analysis == nil {
		return "ekonomiska uppgifter saknas"
	}
	fin := analysis.Financial
	risk := ClassifyFinancialRisk(fin)
	c := risk.Components

	switch {
	case c.LoanPoints == 0 && c.SavingsPoints == 0 && c.SolidarityPoints == 0:
		if fin.LoanPerSqm == nil && fin.SavingsPerSqmYear == nil && fin.Solidarity == nil {
			return "ekonomiska nyckeltal saknas"
		}
		return "inga tydliga ekonomiska risker"
	case c.LoanPoints >= c.SavingsPoints && c.LoanPoints >= c.SolidarityPoints:
		return fmt.Sprintf("hög belåning (%.0f kr/m²)", *fin.LoanPerSqm)
	case c.SolidarityPoints >= c.SavingsPoints:
		return fmt.Sprintf("låg soliditet (%.1f %%)", *fin.Solidarity)
	default:
		return fmt.Sprintf("lågt sparande (%.0f kr/m²/år)", *fin.SavingsPerSqmYear)
	}
}

func feeRiskCause(analysis *models.AnalysisResult, technical []TechnicalAssessment) string {
	causes := []string{}
	if analysis != nil {
		if v := analysis.Financial.LoanPerSqm; v != nil && *v > LoanElevatedRisk {
			causes = append(causes, fmt.Sprintf("belåning %.0f kr/m²", *v))
		}
		if v := analysis.Financial.SavingsPerSqmYear; v != nil && *v < SavingsElevatedRisk {
			causes = append(causes, fmt.Sprintf("sparande %.0f kr/m²/år", *v))
		}
	}
	high := 0
	for _, t := range technical {
		if t.Risk == RiskHigh {
			high++
		}
	}
	if high > 0 {
		causes = append(causes, fmt.Sprintf("%d komponenter med hög risk", high))
	}
	if len(causes) == 0 {
		return "risk för framtida avgiftshöjningar"
	}
	return "risk för avgiftshöjning (" + strings.Join(causes, ", ") + ")"
}
