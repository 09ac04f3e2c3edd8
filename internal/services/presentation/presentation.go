// Package presentation maps derived enums to display tokens: colour classes,
// emoji and Swedish labels. Every lookup is a switch over a closed set.
package presentation

import (
	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/rating"
)

// Style is the display treatment for one enum value
type Style struct {
	TextColor string `json:"textColor"`
	BgColor   string `json:"bgColor"`
	Emoji     string `json:"emoji"`
	Label     string `json:"label"`
}

// Display is the name and icon for a category or fee item
type Display struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

const (
	textRiskLow    = "text-risk-low"
	textRiskMedium = "text-risk-medium"
	textRiskHigh   = "text-risk-high"
	bgRiskLow      = "bg-risk-low-bg"
	bgRiskMedium   = "bg-risk-medium-bg"
	bgRiskHigh     = "bg-risk-high-bg"

	fallbackIcon = "📋"
)

// RiskStyle returns the style for a risk level. Unknown values render as
// medium.
func RiskStyle(risk rating.RiskLevel) Style {
	switch risk {
	case rating.RiskLow:
		return Style{TextColor: textRiskLow, BgColor: bgRiskLow, Emoji: "🟢", Label: "Låg risk"}
	case rating.RiskHigh:
		return Style{TextColor: textRiskHigh, BgColor: bgRiskHigh, Emoji: "🔴", Label: "Hög risk"}
	default:
		return Style{TextColor: textRiskMedium, BgColor: bgRiskMedium, Emoji: "🟡", Label: "Medel risk"}
	}
}

// StatusStyle returns the style for a component status badge.
func StatusStyle(status models.ComponentStatus) Style {
	switch status {
	case models.StatusGood:
		return Style{TextColor: textRiskLow, BgColor: bgRiskLow, Emoji: "🟢", Label: "Bra skick"}
	case models.StatusCritical:
		return Style{TextColor: textRiskHigh, BgColor: bgRiskHigh, Emoji: "🔴", Label: "Åtgärd krävs"}
	default:
		return Style{TextColor: textRiskMedium, BgColor: bgRiskMedium, Emoji: "🟡", Label: "Bevaka"}
	}
}

// AssessmentStyle returns the style for the overall assessment.
func AssessmentStyle(assessment models.Assessment) Style {
	switch assessment {
	case models.AssessmentExcellent:
		return Style{TextColor: "text-score-excellent", BgColor: bgRiskLow, Emoji: "🌟", Label: "Utmärkt"}
	case models.AssessmentGood:
		return Style{TextColor: "text-score-good", BgColor: bgRiskLow, Emoji: "🟢", Label: "Bra"}
	case models.AssessmentStrained:
		return Style{TextColor: "text-score-poor", BgColor: bgRiskMedium, Emoji: "🟠", Label: "Ansträngd"}
	case models.AssessmentCritical:
		return Style{TextColor: "text-score-bad", BgColor: bgRiskHigh, Emoji: "🔴", Label: "Kritisk"}
	default:
		return Style{TextColor: "text-score-fair", BgColor: bgRiskMedium, Emoji: "🟡", Label: "Normal"}
	}
}

// ScoreStyle returns the style for a 0-100 score using the score bands.
func ScoreStyle(score int) Style {
	switch rating.ScoreBand(score) {
	case models.AssessmentExcellent:
		return Style{TextColor: "text-score-excellent", BgColor: bgRiskLow, Emoji: "🌟", Label: "Utmärkt"}
	case models.AssessmentGood:
		return Style{TextColor: "text-score-good", BgColor: bgRiskLow, Emoji: "🟢", Label: "Bra"}
	case models.AssessmentNormal:
		return Style{TextColor: "text-score-fair", BgColor: bgRiskMedium, Emoji: "🟡", Label: "Godkänt"}
	case models.AssessmentStrained:
		return Style{TextColor: "text-score-poor", BgColor: bgRiskMedium, Emoji: "🟠", Label: "Ansträngt"}
	default:
		return Style{TextColor: "text-score-bad", BgColor: bgRiskHigh, Emoji: "🔴", Label: "Kritiskt"}
	}
}

// VerdictStyle returns the style for a financial metric verdict.
func VerdictStyle(verdict rating.Verdict) Style {
	switch verdict {
	case rating.VerdictGood:
		return Style{TextColor: textRiskLow, BgColor: bgRiskLow, Emoji: "📈", Label: "Bra"}
	case rating.VerdictBad:
		return Style{TextColor: textRiskHigh, BgColor: bgRiskHigh, Emoji: "📉", Label: "Svagt"}
	case rating.VerdictNeutral:
		return Style{TextColor: "text-foreground", BgColor: bgRiskMedium, Emoji: "➖", Label: "Information"}
	default:
		return Style{TextColor: "text-muted-foreground", BgColor: "bg-secondary", Emoji: "➖", Label: "Ej angivet"}
	}
}

// CategoryDisplay returns the Swedish name and icon for a technical item.
// Categories outside the known set show the item's own name.
func CategoryDisplay(item models.TechnicalItem) Display {
	switch item.Category {
	case models.CategoryRoof:
		return Display{Name: "Tak", Icon: "🏠"}
	case models.CategoryFacade:
		return Display{Name: "Fasad", Icon: "🧱"}
	case models.CategoryRisers:
		return Display{Name: "Stammar (V/A)", Icon: "🚿"}
	case models.CategoryFoundation:
		return Display{Name: "Grund & dränering", Icon: "🏗️"}
	case models.CategoryVentilation:
		return Display{Name: "Ventilation", Icon: "💨"}
	case models.CategoryElectrical:
		return Display{Name: "El-system", Icon: "⚡"}
	case models.CategoryHeating:
		return Display{Name: "Värmesystem", Icon: "🔥"}
	case models.CategoryElevators:
		return Display{Name: "Hissar", Icon: "🛗"}
	case models.CategoryWindows:
		return Display{Name: "Fönster", Icon: "🪟"}
	case models.CategoryStairwell:
		return Display{Name: "Trapphus", Icon: "🪜"}
	case models.CategoryEntryDoors:
		return Display{Name: "Portar & låssystem", Icon: "🚪"}
	case models.CategoryCulverts:
		return Display{Name: "Kulvertar", Icon: "🔧"}
	case models.CategoryLaundry:
		return Display{Name: "Tvättstuga", Icon: "🧺"}
	case models.CategoryGarage:
		return Display{Name: "Garage", Icon: "🚗"}
	case models.CategoryOther:
		return Display{Name: nameOr(item.Name, "Övrigt"), Icon: fallbackIcon}
	default:
		return Display{Name: nameOr(item.Name, nameOr(string(item.Category), "Övrigt")), Icon: fallbackIcon}
	}
}

// FeeItemDisplay returns the Swedish name and icon for a fee item.
func FeeItemDisplay(item models.FeeIncludesItem) Display {
	switch item.Item {
	case models.FeeItemHeating:
		return Display{Name: "Värme", Icon: "🔥"}
	case models.FeeItemWater:
		return Display{Name: "Vatten", Icon: "💧"}
	case models.FeeItemElectricity:
		return Display{Name: "Hushållsel", Icon: "⚡"}
	case models.FeeItemBroadband:
		return Display{Name: "Bredband/TV", Icon: "📡"}
	case models.FeeItemParking:
		return Display{Name: "Parkering", Icon: "🅿️"}
	case models.FeeItemInsurance:
		return Display{Name: "Bostadsrättstillägg", Icon: "🛡️"}
	case models.FeeItemWaste:
		return Display{Name: "Sophantering", Icon: "♻️"}
	case models.FeeItemMaintenance:
		return Display{Name: "Underhållsfond", Icon: "🏦"}
	case models.FeeItemOther:
		return Display{Name: nameOr(item.Name, "Övrigt"), Icon: fallbackIcon}
	default:
		return Display{Name: nameOr(item.Name, nameOr(string(item.Item), "Övrigt")), Icon: fallbackIcon}
	}
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
