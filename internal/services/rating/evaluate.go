package rating

import (
	"github.com/shopspring/decimal"

	"github.com/ternarybob/brfanalys/internal/models"
)

// Evaluate runs the full derivation for one analysis. The input is never
// modified and no shared state is touched, so concurrent calls are safe.
func Evaluate(analysis *models.AnalysisResult, clock Clock) *Report {
	if analysis == nil {
		analysis = &models.AnalysisResult{}
	}
	if clock == nil {
		clock = SystemClock{}
	}

	strategy := SelectStatusStrategy(analysis)
	source := SourceDerived
	if _, ok := strategy.(ProviderStatusStrategy); ok {
		source = SourceProvider
	}

	technical, counts := AssessTechnical(analysis, strategy, clock)
	financialRisk := ClassifyFinancialRisk(analysis.Financial)
	scores, breakdown := ComputeScores(analysis, strategy, clock)

	resolution := SelectAssessmentResolver(analysis).Resolve(AssessmentInput{
		Analysis:  analysis,
		Scores:    scores,
		Technical: technical,
		Financial: financialRisk,
	})

	report := &Report{
		CurrentYear:   CurrentYear(clock),
		BuildingAge:   BuildingAge(analysis.Association, clock),
		Technical:     technical,
		StatusCounts:  counts,
		StatusSource:  source,
		FinancialRisk: financialRisk,
		Metrics:       EvaluateMetrics(analysis.Financial),
		Scores:        scores,
		Breakdown:     breakdown,
		ScoreBand:     ScoreBand(scores.Total),
		Assessment:    resolution,
		FeeSummary:    SummarizeFees(analysis.FeeIncludes),
	}
	if resolution.Err != nil {
		report.ValidationNote = resolution.Err.Error()
	}
	return report
}

// BuildingAge returns years since construction, or nil when unknown.
func BuildingAge(association models.Association, clock Clock) *int {
	if association.BuildYear == nil {
		return nil
	}
	age := CurrentYear(clock) - *association.BuildYear
	return &age
}

// SummarizeFees sums the estimated monthly costs of included services.
// Items without an estimate are counted but add nothing to the total.
func SummarizeFees(items []models.FeeIncludesItem) FeeSummary {
	total := decimal.Zero
	hasEstimates := false
	for _, item := range items {
		if item.EstimatedMonthlyCost == nil {
			continue
		}
		hasEstimates = true
		total = total.Add(decimal.NewFromFloat(*item.EstimatedMonthlyCost))
	}
	return FeeSummary{
		Items:          len(items),
		TotalEstimated: total,
		HasEstimates:   hasEstimates,
	}
}
