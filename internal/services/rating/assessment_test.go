package rating

import (
	"errors"
	"strings"
	"testing"

	"github.com/ternarybob/brfanalys/internal/models"
)

func TestProviderAssessmentResolver(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		reason     string
		want       models.Assessment
		wantReason string
		wantErr    bool
	}{
		{
			name:       "valid label is kept",
			raw:        "strained",
			reason:     "Hög belåning",
			want:       models.AssessmentStrained,
			wantReason: "Hög belåning",
		},
		{
			name:       "label is case-insensitive",
			raw:        " Excellent ",
			reason:     "Stark ekonomi",
			want:       models.AssessmentExcellent,
			wantReason: "Stark ekonomi",
		},
		{
			name:       "invalid label falls back to normal",
			raw:        "superb",
			reason:     "Något",
			want:       models.AssessmentNormal,
			wantReason: GenericAssessmentReason,
			wantErr:    true,
		},
		{
			name:       "empty label falls back to normal",
			raw:        "",
			want:       models.AssessmentNormal,
			wantReason: GenericAssessmentReason,
			wantErr:    true,
		},
		{
			name:       "valid label without reason gets generic reason",
			raw:        "good",
			want:       models.AssessmentGood,
			wantReason: GenericAssessmentReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := &models.AnalysisResult{OverallAssessment: tt.raw, AssessmentReason: tt.reason}
			got := ProviderAssessmentResolver{}.Resolve(AssessmentInput{Analysis: analysis})

			if got.Assessment != tt.want {
				t.Errorf("Assessment = %s, want %s", got.Assessment, tt.want)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Source != AssessmentFromProvider {
				t.Errorf("Source = %s, want provider", got.Source)
			}

			var verr *ValidationError
			if tt.wantErr != errors.As(got.Err, &verr) {
				t.Errorf("Err = %v, wantErr %v", got.Err, tt.wantErr)
			}
			if tt.wantErr && verr.Field != "overallAssessment" {
				t.Errorf("ValidationError.Field = %s", verr.Field)
			}
		})
	}
}

func TestLocalAssessmentResolver(t *testing.T) {
	clock := FixedYear(2026)

	tests := []struct {
		name         string
		analysis     *models.AnalysisResult
		want         models.Assessment
		wantContains []string
	}{
		{
			name:         "empty analysis names fee risk as weakest",
			analysis:     &models.AnalysisResult{},
			want:         models.AssessmentGood,
			wantContains: []string{"Totalpoäng 67", "avgiftsrisken (60)"},
		},
		{
			name: "financial weakness names the worst metric",
			analysis: &models.AnalysisResult{
				Financial: models.Financial{
					LoanPerSqm:        models.Float(9000),
					SavingsPerSqmYear: models.Float(140),
					Solidarity:        models.Float(12),
				},
			},
			want:         models.AssessmentStrained,
			wantContains: []string{"ekonomin (27)", "hög belåning (9000 kr/m²)"},
		},
		{
			name: "technical weakness names the highest risk component",
			analysis: &models.AnalysisResult{
				Financial: models.Financial{
					LoanPerSqm:        models.Float(2000),
					SavingsPerSqmYear: models.Float(300),
					Solidarity:        models.Float(55),
				},
				Technical: []models.TechnicalItem{
					{Category: models.CategoryVentilation, Name: "Ventilation", LastMaintained: models.Int(2022)},
					{Category: models.CategoryRisers, Name: "Stammar", LastMaintained: models.Int(1966)},
					{Category: models.CategoryRoof, Name: "Tak", LastMaintained: models.Int(1975)},
					{Category: models.CategoryCulverts, Name: "Kulvertar", LastMaintained: models.Int(1970)},
					{Category: models.CategoryHeating, Name: "Värme"},
				},
			},
			want:         models.AssessmentGood,
			wantContains: []string{"tekniskt skick (43)", "Stammar har hög risk (60 år sedan underhåll)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := SelectStatusStrategy(tt.analysis)
			technical, _ := AssessTechnical(tt.analysis, strategy, clock)
			scores, _ := ComputeScores(tt.analysis, strategy, clock)

			got := LocalAssessmentResolver{}.Resolve(AssessmentInput{
				Analysis:  tt.analysis,
				Scores:    scores,
				Technical: technical,
				Financial: ClassifyFinancialRisk(tt.analysis.Financial),
			})

			if got.Assessment != tt.want {
				t.Errorf("Assessment = %s, want %s (scores %+v)", got.Assessment, tt.want, scores)
			}
			if got.Source != AssessmentFromScores || got.Err != nil {
				t.Errorf("Source/Err = %s/%v", got.Source, got.Err)
			}
			for _, s := range tt.wantContains {
				if !strings.Contains(got.Reason, s) {
					t.Errorf("Reason %q does not contain %q", got.Reason, s)
				}
			}
		})
	}
}

func TestFinancialCause(t *testing.T) {
	tests := []struct {
		name      string
		financial models.Financial
		want      string
	}{
		{"no data", models.Financial{}, "ekonomiska nyckeltal saknas"},
		{"healthy", models.Financial{LoanPerSqm: models.Float(3000)}, "inga tydliga ekonomiska risker"},
		{"loan dominates", models.Financial{LoanPerSqm: models.Float(8000), Solidarity: models.Float(25)}, "hög belåning"},
		{"solidarity dominates", models.Financial{LoanPerSqm: models.Float(6000), Solidarity: models.Float(15)}, "låg soliditet"},
		{"savings dominates", models.Financial{SavingsPerSqmYear: models.Float(80), Solidarity: models.Float(25)}, "lågt sparande"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := financialCause(&models.AnalysisResult{Financial: tt.financial})
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("financialCause() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestSelectAssessmentResolver(t *testing.T) {
	if _, ok := SelectAssessmentResolver(&models.AnalysisResult{OverallAssessment: "good"}).(ProviderAssessmentResolver); !ok {
		t.Errorf("expected provider resolver when a label is present")
	}
	if _, ok := SelectAssessmentResolver(&models.AnalysisResult{OverallAssessment: "  "}).(LocalAssessmentResolver); !ok {
		t.Errorf("expected local resolver for a blank label")
	}
	if _, ok := SelectAssessmentResolver(nil).(LocalAssessmentResolver); !ok {
		t.Errorf("expected local resolver for nil analysis")
	}
}
