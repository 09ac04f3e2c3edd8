package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/rating"
)

func assertComplete(t *testing.T, what string, s Style) {
	t.Helper()
	assert.NotEmpty(t, s.TextColor, "%s text colour", what)
	assert.NotEmpty(t, s.BgColor, "%s background colour", what)
	assert.NotEmpty(t, s.Emoji, "%s emoji", what)
	assert.NotEmpty(t, s.Label, "%s label", what)
}

func TestEveryEnumValueHasAStyle(t *testing.T) {
	for _, r := range rating.AllRiskLevels() {
		assertComplete(t, "risk "+string(r), RiskStyle(r))
	}
	for _, s := range models.AllComponentStatuses() {
		assertComplete(t, "status "+string(s), StatusStyle(s))
	}
	for _, a := range models.AllAssessments() {
		assertComplete(t, "assessment "+string(a), AssessmentStyle(a))
	}
	for _, v := range rating.AllVerdicts() {
		assertComplete(t, "verdict "+string(v), VerdictStyle(v))
	}
	for score := 0; score <= 100; score++ {
		assertComplete(t, "score", ScoreStyle(score))
	}
}

func TestStylesAreDistinctPerValue(t *testing.T) {
	labels := map[string]bool{}
	for _, a := range models.AllAssessments() {
		labels[AssessmentStyle(a).Label] = true
	}
	assert.Len(t, labels, len(models.AllAssessments()))

	labels = map[string]bool{}
	for _, r := range rating.AllRiskLevels() {
		labels[RiskStyle(r).Label] = true
	}
	assert.Len(t, labels, len(rating.AllRiskLevels()))
}

func TestRiskStyle(t *testing.T) {
	assert.Equal(t, Style{TextColor: "text-risk-low", BgColor: "bg-risk-low-bg", Emoji: "🟢", Label: "Låg risk"}, RiskStyle(rating.RiskLow))
	assert.Equal(t, "Hög risk", RiskStyle(rating.RiskHigh).Label)
	assert.Equal(t, "Medel risk", RiskStyle(rating.RiskLevel("bogus")).Label)
}

func TestScoreStyle(t *testing.T) {
	tests := []struct {
		score     int
		wantLabel string
		wantColor string
	}{
		{90, "Utmärkt", "text-score-excellent"},
		{75, "Utmärkt", "text-score-excellent"},
		{60, "Bra", "text-score-good"},
		{45, "Godkänt", "text-score-fair"},
		{30, "Ansträngt", "text-score-poor"},
		{29, "Kritiskt", "text-score-bad"},
	}
	for _, tt := range tests {
		got := ScoreStyle(tt.score)
		assert.Equal(t, tt.wantLabel, got.Label, "score %d", tt.score)
		assert.Equal(t, tt.wantColor, got.TextColor, "score %d", tt.score)
	}
}

func TestCategoryDisplay(t *testing.T) {
	for _, c := range models.AllTechnicalCategories() {
		d := CategoryDisplay(models.TechnicalItem{Category: c})
		assert.NotEmpty(t, d.Name, "category %s", c)
		assert.NotEmpty(t, d.Icon, "category %s", c)
	}

	assert.Equal(t, Display{Name: "Stammar (V/A)", Icon: "🚿"}, CategoryDisplay(models.TechnicalItem{Category: models.CategoryRisers, Name: "Rör"}))
	assert.Equal(t, Display{Name: "Bastu", Icon: "📋"}, CategoryDisplay(models.TechnicalItem{Category: "sauna", Name: "Bastu"}))
	assert.Equal(t, Display{Name: "sauna", Icon: "📋"}, CategoryDisplay(models.TechnicalItem{Category: "sauna"}))
	assert.Equal(t, Display{Name: "Övrigt", Icon: "📋"}, CategoryDisplay(models.TechnicalItem{}))
}

func TestFeeItemDisplay(t *testing.T) {
	for _, f := range models.AllFeeItemTypes() {
		d := FeeItemDisplay(models.FeeIncludesItem{Item: f})
		assert.NotEmpty(t, d.Name, "fee item %s", f)
		assert.NotEmpty(t, d.Icon, "fee item %s", f)
	}
	assert.Equal(t, "Gym", FeeItemDisplay(models.FeeIncludesItem{Item: "gym", Name: "Gym"}).Name)
	assert.Equal(t, "Övrigt", FeeItemDisplay(models.FeeIncludesItem{}).Name)
}
