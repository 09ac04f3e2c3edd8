package rating

import "github.com/ternarybob/brfanalys/internal/models"

// DefaultAgeThresholds applies to any category without its own lifespan
var DefaultAgeThresholds = AgeThresholds{Warn: 20, Critical: 35}

// ThresholdsFor returns the warn/critical ages for category. The second
// value is false when the category has no entry and defaults were used.
func ThresholdsFor(category models.TechnicalCategory) (AgeThresholds, bool) {
	switch category {
	case models.CategoryRoof:
		return AgeThresholds{Warn: 25, Critical: 40}, true
	case models.CategoryFacade:
		return AgeThresholds{Warn: 30, Critical: 50}, true
	case models.CategoryRisers:
		return AgeThresholds{Warn: 35, Critical: 50}, true
	case models.CategoryFoundation:
		return AgeThresholds{Warn: 30, Critical: 45}, true
	case models.CategoryVentilation:
		return AgeThresholds{Warn: 15, Critical: 25}, true
	case models.CategoryElectrical:
		return AgeThresholds{Warn: 30, Critical: 50}, true
	case models.CategoryHeating:
		return AgeThresholds{Warn: 15, Critical: 25}, true
	case models.CategoryElevators:
		return AgeThresholds{Warn: 20, Critical: 28}, true
	case models.CategoryWindows:
		return AgeThresholds{Warn: 25, Critical: 35}, true
	case models.CategoryStairwell:
		return AgeThresholds{Warn: 15, Critical: 25}, true
	case models.CategoryEntryDoors:
		return AgeThresholds{Warn: 15, Critical: 25}, true
	case models.CategoryCulverts:
		return AgeThresholds{Warn: 30, Critical: 45}, true
	default:
		return DefaultAgeThresholds, false
	}
}

// Financial risk thresholds (risk points)
const (
	LoanHighRisk        = 7000.0 // kr/sqm, +2 above
	LoanElevatedRisk    = 5000.0 // kr/sqm, +1 above
	SavingsHighRisk     = 100.0  // kr/sqm/year, +2 below
	SavingsElevatedRisk = 150.0  // kr/sqm/year, +1 below
	SolidarityHighRisk  = 20.0   // percent, +2 below
	SolidarityElevated  = 30.0   // percent, +1 below

	FinancialRiskHighScore   = 4
	FinancialRiskMediumScore = 2
)

// Financial score bonus thresholds
const (
	LoanLowBonus          = 3000.0 // below earns +10
	SavingsHighBonus      = 200.0  // above earns +10
	SolidarityHighBonus   = 40.0   // above earns +10
	FeeGoodMin            = 500.0
	FeeGoodMax            = 900.0
	FeeBenchmarkCenterMin = 600.0
	FeeBenchmarkCenterMax = 800.0
)

// Score bases and deltas
const (
	BaseTechnicalScore = 70
	BaseFinancialScore = 70
	BaseFeeRiskScore   = 60

	TechnicalHighPenalty   = -8
	TechnicalMediumPenalty = -3
	FeeRiskLoanPenalty     = -15
	FeeRiskSavingsPenalty  = -10
	FeeRiskHighItemPenalty = -5
)

// Score band thresholds
const (
	BandExcellent = 75
	BandGood      = 60
	BandNormal    = 45
	BandStrained  = 30
)
