package rating

import (
	"reflect"
	"sync"
	"testing"

	"github.com/ternarybob/brfanalys/internal/models"
)

func sampleAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		Association: models.Association{
			Name:      "BRF Solgläntan",
			BuildYear: models.Int(1968),
		},
		Financial: models.Financial{
			LoanPerSqm:        models.Float(6200),
			FeePerSqmYear:     models.Float(750),
			SavingsPerSqmYear: models.Float(120),
			Solidarity:        models.Float(22),
		},
		Technical: []models.TechnicalItem{
			{Category: models.CategoryRisers, Name: "Stammar", LastMaintained: models.Int(1968)},
			{Category: models.CategoryVentilation, Name: "Ventilation", LastMaintained: models.Int(2019)},
		},
		FeeIncludes: []models.FeeIncludesItem{
			{Item: models.FeeItemHeating, Name: "Värme", EstimatedMonthlyCost: models.Float(450.5)},
			{Item: models.FeeItemBroadband, Name: "Bredband", EstimatedMonthlyCost: models.Float(99.25)},
			{Item: models.FeeItemWater, Name: "Vatten"},
		},
		Summary: "Föreningen har ansträngd ekonomi.",
	}
}

func TestEvaluate(t *testing.T) {
	report := Evaluate(sampleAnalysis(), FixedYear(2026))

	if report.CurrentYear != 2026 {
		t.Errorf("CurrentYear = %d", report.CurrentYear)
	}
	if report.BuildingAge == nil || *report.BuildingAge != 58 {
		t.Errorf("BuildingAge = %v, want 58", report.BuildingAge)
	}
	if report.StatusSource != SourceDerived {
		t.Errorf("StatusSource = %s, want derived", report.StatusSource)
	}
	if report.FinancialRisk.Score != 3 || report.FinancialRisk.Level != RiskMedium {
		t.Errorf("FinancialRisk = %+v", report.FinancialRisk)
	}
	// technical 70-8, financial 70-10-8-8, feeRisk 60-15-10-5
	want := Scores{Technical: 62, Financial: 44, FeeRisk: 30, Total: 45}
	if report.Scores != want {
		t.Errorf("Scores = %+v, want %+v", report.Scores, want)
	}
	if report.ScoreBand != models.AssessmentNormal {
		t.Errorf("ScoreBand = %s", report.ScoreBand)
	}
	if report.Assessment.Source != AssessmentFromScores || report.Assessment.Assessment != models.AssessmentNormal {
		t.Errorf("Assessment = %+v", report.Assessment)
	}
	if report.StatusCounts != (StatusCounts{Good: 1, Critical: 1}) {
		t.Errorf("StatusCounts = %+v", report.StatusCounts)
	}
	if !report.FeeSummary.HasEstimates || report.FeeSummary.Items != 3 {
		t.Errorf("FeeSummary = %+v", report.FeeSummary)
	}
	if report.FeeSummary.TotalEstimated.String() != "549.75" {
		t.Errorf("TotalEstimated = %s, want 549.75", report.FeeSummary.TotalEstimated)
	}
	if report.ValidationNote != "" {
		t.Errorf("unexpected ValidationNote %q", report.ValidationNote)
	}
}

func TestEvaluateInvalidProviderAssessment(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.OverallAssessment = "fantastic"

	report := Evaluate(analysis, FixedYear(2026))

	if report.Assessment.Assessment != models.AssessmentNormal {
		t.Errorf("Assessment = %s, want normal", report.Assessment.Assessment)
	}
	if report.Assessment.Err == nil || report.ValidationNote == "" {
		t.Errorf("expected a recorded validation error")
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	analysis := sampleAnalysis()
	before := sampleAnalysis()

	Evaluate(analysis, FixedYear(2026))

	if !reflect.DeepEqual(analysis, before) {
		t.Errorf("Evaluate mutated its input")
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	analysis := sampleAnalysis()
	want := Evaluate(analysis, FixedYear(2026)).Scores

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Evaluate(analysis, FixedYear(2026)).Scores; got != want {
				t.Errorf("concurrent Evaluate = %+v, want %+v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestEvaluateNil(t *testing.T) {
	report := Evaluate(nil, FixedYear(2026))
	if report.Scores != (Scores{Technical: 70, Financial: 70, FeeRisk: 60, Total: 67}) {
		t.Errorf("Scores = %+v", report.Scores)
	}
	if report.BuildingAge != nil {
		t.Errorf("BuildingAge should be nil")
	}
	if report.FeeSummary.HasEstimates {
		t.Errorf("HasEstimates should be false")
	}
}
