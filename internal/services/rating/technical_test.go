package rating

import (
	"testing"

	"github.com/ternarybob/brfanalys/internal/models"
)

func TestClassifyTechnicalRisk(t *testing.T) {
	clock := FixedYear(2026)

	tests := []struct {
		name           string
		category       models.TechnicalCategory
		lastMaintained *int
		want           RiskLevel
	}{
		{
			name:     "absent year is medium",
			category: models.CategoryRoof,
			want:     RiskMedium,
		},
		{
			name:           "roof 41 years is high",
			category:       models.CategoryRoof,
			lastMaintained: models.Int(1985),
			want:           RiskHigh,
		},
		{
			name:           "ventilation 11 years is low",
			category:       models.CategoryVentilation,
			lastMaintained: models.Int(2015),
			want:           RiskLow,
		},
		{
			name:           "unknown category uses default thresholds",
			category:       models.TechnicalCategory("sauna"),
			lastMaintained: models.Int(2000),
			want:           RiskMedium,
		},
		{
			name:           "elevators exactly at critical",
			category:       models.CategoryElevators,
			lastMaintained: models.Int(1998),
			want:           RiskHigh,
		},
		{
			name:           "elevators one year below critical",
			category:       models.CategoryElevators,
			lastMaintained: models.Int(1999),
			want:           RiskMedium,
		},
		{
			name:           "risers exactly at warn",
			category:       models.CategoryRisers,
			lastMaintained: models.Int(1991),
			want:           RiskMedium,
		},
		{
			name:           "laundry has no own lifespan",
			category:       models.CategoryLaundry,
			lastMaintained: models.Int(1990),
			want:           RiskHigh,
		},
		{
			name:           "maintenance in the future is low",
			category:       models.CategoryFacade,
			lastMaintained: models.Int(2030),
			want:           RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTechnicalRisk(tt.category, tt.lastMaintained, clock)
			if got != tt.want {
				t.Errorf("ClassifyTechnicalRisk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThresholdsFor(t *testing.T) {
	withOwnEntry := map[models.TechnicalCategory]AgeThresholds{
		models.CategoryRoof:        {25, 40},
		models.CategoryFacade:      {30, 50},
		models.CategoryRisers:      {35, 50},
		models.CategoryFoundation:  {30, 45},
		models.CategoryVentilation: {15, 25},
		models.CategoryElectrical:  {30, 50},
		models.CategoryHeating:     {15, 25},
		models.CategoryElevators:   {20, 28},
		models.CategoryWindows:     {25, 35},
		models.CategoryStairwell:   {15, 25},
		models.CategoryEntryDoors:  {15, 25},
		models.CategoryCulverts:    {30, 45},
	}

	for _, category := range models.AllTechnicalCategories() {
		got, known := ThresholdsFor(category)
		want, hasEntry := withOwnEntry[category]
		if !hasEntry {
			want = DefaultAgeThresholds
		}
		if got != want || known != hasEntry {
			t.Errorf("ThresholdsFor(%s) = %v, %v; want %v, %v", category, got, known, want, hasEntry)
		}
		if got.Warn >= got.Critical {
			t.Errorf("ThresholdsFor(%s): warn %d must be below critical %d", category, got.Warn, got.Critical)
		}
	}

	if got, known := ThresholdsFor("okänd"); known || got != DefaultAgeThresholds {
		t.Errorf("ThresholdsFor(unknown) = %v, %v; want defaults", got, known)
	}
}

func TestStatusRiskMapping(t *testing.T) {
	for _, risk := range AllRiskLevels() {
		if got := RiskFromStatus(StatusFromRisk(risk)); got != risk {
			t.Errorf("round trip of %s = %s", risk, got)
		}
	}
	for _, status := range models.AllComponentStatuses() {
		if got := StatusFromRisk(RiskFromStatus(status)); got != status {
			t.Errorf("round trip of %s = %s", status, got)
		}
	}
}

func TestSelectStatusStrategy(t *testing.T) {
	tests := []struct {
		name     string
		analysis *models.AnalysisResult
		want     string
	}{
		{
			name:     "nil analysis",
			analysis: nil,
			want:     "age_derived",
		},
		{
			name: "no statuses",
			analysis: &models.AnalysisResult{Technical: []models.TechnicalItem{
				{Category: models.CategoryRoof},
			}},
			want: "age_derived",
		},
		{
			name: "one status is enough",
			analysis: &models.AnalysisResult{Technical: []models.TechnicalItem{
				{Category: models.CategoryRoof},
				{Category: models.CategoryFacade, Status: models.Status(models.StatusGood)},
			}},
			want: "provider_status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectStatusStrategy(tt.analysis).Name(); got != tt.want {
				t.Errorf("SelectStatusStrategy() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProviderStatusNeverOverriddenByAge(t *testing.T) {
	clock := FixedYear(2026)
	// A roof maintained in 1950 is high risk by age, but the provider says good.
	item := models.TechnicalItem{
		Category:       models.CategoryRoof,
		LastMaintained: models.Int(1950),
		Status:         models.Status(models.StatusGood),
	}

	risk, source := ProviderStatusStrategy{}.Assess(item, clock)
	if risk != RiskLow || source != SourceProvider {
		t.Errorf("Assess() = %s/%s, want low/provider", risk, source)
	}

	// Items lacking a status fall back to age.
	item.Status = nil
	risk, source = ProviderStatusStrategy{}.Assess(item, clock)
	if risk != RiskHigh || source != SourceDerived {
		t.Errorf("Assess() without status = %s/%s, want high/derived", risk, source)
	}

	// An invalid status is treated as absent.
	bogus := models.ComponentStatus("bad")
	item.Status = &bogus
	risk, source = ProviderStatusStrategy{}.Assess(item, clock)
	if risk != RiskHigh || source != SourceDerived {
		t.Errorf("Assess() with invalid status = %s/%s, want high/derived", risk, source)
	}
}

func TestAssessTechnical(t *testing.T) {
	clock := FixedYear(2026)
	analysis := &models.AnalysisResult{Technical: []models.TechnicalItem{
		{Category: models.CategoryVentilation, Name: "Ventilation", LastMaintained: models.Int(2020)},
		{Category: models.CategoryRoof, Name: "Tak", LastMaintained: models.Int(1980)},
		{Category: models.CategoryHeating, Name: "Värme"},
		{Category: models.CategoryRisers, Name: "Stammar", LastMaintained: models.Int(1970)},
		{Category: models.CategoryWindows, Name: "Fönster", LastMaintained: models.Int(2010)},
	}}

	got, counts := AssessTechnical(analysis, AgeDerivedStrategy{}, clock)

	wantOrder := []string{"Tak", "Stammar", "Värme", "Ventilation", "Fönster"}
	if len(got) != len(wantOrder) {
		t.Fatalf("AssessTechnical() returned %d items, want %d", len(got), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got[i].Item.Name != name {
			t.Errorf("position %d = %s, want %s", i, got[i].Item.Name, name)
		}
	}

	if counts != (StatusCounts{Good: 2, Warning: 1, Critical: 2}) {
		t.Errorf("counts = %+v", counts)
	}

	if got[0].YearsSinceMaintenance == nil || *got[0].YearsSinceMaintenance != 46 {
		t.Errorf("years since maintenance for roof = %v, want 46", got[0].YearsSinceMaintenance)
	}
	if got[2].YearsSinceMaintenance != nil {
		t.Errorf("years since maintenance for unknown year should be nil")
	}

	// Input is read-only.
	if analysis.Technical[0].Name != "Ventilation" {
		t.Errorf("AssessTechnical mutated its input")
	}
}

func TestAssessTechnicalEmpty(t *testing.T) {
	got, counts := AssessTechnical(&models.AnalysisResult{}, nil, FixedYear(2026))
	if len(got) != 0 || counts != (StatusCounts{}) {
		t.Errorf("AssessTechnical(empty) = %v, %+v", got, counts)
	}
}
