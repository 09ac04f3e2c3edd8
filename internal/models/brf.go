// -----------------------------------------------------------------------
// BRF annual report data model - the structured output of extraction
// -----------------------------------------------------------------------

package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// TechnicalCategory identifies a building subsystem. The known set is closed,
// but values outside it are preserved from the wire and classified with
// default thresholds.
type TechnicalCategory string

const (
	CategoryRoof        TechnicalCategory = "tak"
	CategoryFacade      TechnicalCategory = "fasad"
	CategoryRisers      TechnicalCategory = "stammar"
	CategoryFoundation  TechnicalCategory = "grund"
	CategoryVentilation TechnicalCategory = "ventilation"
	CategoryElectrical  TechnicalCategory = "el"
	CategoryHeating     TechnicalCategory = "varme"
	CategoryElevators   TechnicalCategory = "hissar"
	CategoryWindows     TechnicalCategory = "fonster"
	CategoryStairwell   TechnicalCategory = "trapphus"
	CategoryEntryDoors  TechnicalCategory = "portar"
	CategoryCulverts    TechnicalCategory = "kulvertar"
	CategoryLaundry     TechnicalCategory = "tvattstuga"
	CategoryGarage      TechnicalCategory = "garage"
	CategoryOther       TechnicalCategory = "ovrigt"
)

// AllTechnicalCategories returns every known category in display order.
func AllTechnicalCategories() []TechnicalCategory {
	return []TechnicalCategory{
		CategoryRoof, CategoryFacade, CategoryRisers, CategoryFoundation,
		CategoryVentilation, CategoryElectrical, CategoryHeating, CategoryElevators,
		CategoryWindows, CategoryStairwell, CategoryEntryDoors, CategoryCulverts,
		CategoryLaundry, CategoryGarage, CategoryOther,
	}
}

// IsKnown reports whether the category belongs to the closed set.
func (c TechnicalCategory) IsKnown() bool {
	for _, known := range AllTechnicalCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ComponentStatus is the provider-assigned (or derived) badge for a technical item
type ComponentStatus string

const (
	StatusGood     ComponentStatus = "good"
	StatusWarning  ComponentStatus = "warning"
	StatusCritical ComponentStatus = "critical"
)

// AllComponentStatuses returns the statuses from best to worst.
func AllComponentStatuses() []ComponentStatus {
	return []ComponentStatus{StatusGood, StatusWarning, StatusCritical}
}

// IsValid reports whether s is one of the three known statuses.
func (s ComponentStatus) IsValid() bool {
	switch s {
	case StatusGood, StatusWarning, StatusCritical:
		return true
	}
	return false
}

// Assessment is the five-level overall label for an association
type Assessment string

const (
	AssessmentExcellent Assessment = "excellent"
	AssessmentGood      Assessment = "good"
	AssessmentNormal    Assessment = "normal"
	AssessmentStrained  Assessment = "strained"
	AssessmentCritical  Assessment = "critical"
)

// AllAssessments returns the assessments from best to worst.
func AllAssessments() []Assessment {
	return []Assessment{
		AssessmentExcellent, AssessmentGood, AssessmentNormal,
		AssessmentStrained, AssessmentCritical,
	}
}

// IsValid reports whether a is one of the five known assessments.
func (a Assessment) IsValid() bool {
	switch a {
	case AssessmentExcellent, AssessmentGood, AssessmentNormal, AssessmentStrained, AssessmentCritical:
		return true
	}
	return false
}

// FeeItemType identifies a service included in the monthly fee
type FeeItemType string

const (
	FeeItemHeating     FeeItemType = "varme"
	FeeItemWater       FeeItemType = "vatten"
	FeeItemElectricity FeeItemType = "el"
	FeeItemBroadband   FeeItemType = "bredband"
	FeeItemParking     FeeItemType = "parkering"
	FeeItemInsurance   FeeItemType = "forsakring"
	FeeItemWaste       FeeItemType = "sophantering"
	FeeItemMaintenance FeeItemType = "underhallsfond"
	FeeItemOther       FeeItemType = "ovrigt"
)

// AllFeeItemTypes returns every known fee item type.
func AllFeeItemTypes() []FeeItemType {
	return []FeeItemType{
		FeeItemHeating, FeeItemWater, FeeItemElectricity, FeeItemBroadband,
		FeeItemParking, FeeItemInsurance, FeeItemWaste, FeeItemMaintenance,
		FeeItemOther,
	}
}

// Association describes the cooperative itself
type Association struct {
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Address    string   `json:"address,omitempty" yaml:"address,omitempty"`
	BuildYear  *int     `json:"buildYear,omitempty" yaml:"buildYear,omitempty"`
	Apartments *int     `json:"apartments,omitempty" yaml:"apartments,omitempty"`
	TotalArea  *float64 `json:"totalArea,omitempty" yaml:"totalArea,omitempty"` // sqm
	FiscalYear string   `json:"fiscalYear,omitempty" yaml:"fiscalYear,omitempty"`
}

// Financial holds the key ratios from the annual report. A nil field is
// unknown; zero is a real value.
type Financial struct {
	TotalLoans         *float64 `json:"totalLoans,omitempty" yaml:"totalLoans,omitempty"`
	LoanPerSqm         *float64 `json:"loanPerSqm,omitempty" yaml:"loanPerSqm,omitempty"`
	TotalFees          *float64 `json:"totalFees,omitempty" yaml:"totalFees,omitempty"`
	FeePerSqmYear      *float64 `json:"feePerSqmYear,omitempty" yaml:"feePerSqmYear,omitempty"`
	MaintenanceSavings *float64 `json:"maintenanceSavings,omitempty" yaml:"maintenanceSavings,omitempty"`
	SavingsPerSqmYear  *float64 `json:"savingsPerSqmYear,omitempty" yaml:"savingsPerSqmYear,omitempty"`
	Solidarity         *float64 `json:"solidarity,omitempty" yaml:"solidarity,omitempty"` // percent
	Result             *float64 `json:"result,omitempty" yaml:"result,omitempty"`
	InterestCosts      *float64 `json:"interestCosts,omitempty" yaml:"interestCosts,omitempty"`
	Equity             *float64 `json:"equity,omitempty" yaml:"equity,omitempty"`
	TotalAssets        *float64 `json:"totalAssets,omitempty" yaml:"totalAssets,omitempty"`
}

// TechnicalItem is one building component found in the report
type TechnicalItem struct {
	Category       TechnicalCategory `json:"category" yaml:"category"`
	Name           string            `json:"name" yaml:"name"`
	LastMaintained *int              `json:"lastMaintained,omitempty" yaml:"lastMaintained,omitempty"`
	PlannedYear    *int              `json:"plannedYear,omitempty" yaml:"plannedYear,omitempty"`
	MaterialType   string            `json:"materialType,omitempty" yaml:"materialType,omitempty"`
	Notes          string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status         *ComponentStatus  `json:"status,omitempty" yaml:"status,omitempty"`
}

// FeeIncludesItem is a service covered by the monthly fee. Informational only.
type FeeIncludesItem struct {
	Item                 FeeItemType `json:"item" yaml:"item"`
	Name                 string      `json:"name" yaml:"name"`
	EstimatedMonthlyCost *float64    `json:"estimatedMonthlyCost,omitempty" yaml:"estimatedMonthlyCost,omitempty"`
	Notes                string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AnalysisResult is the complete extraction for one annual report. It is
// produced by the extraction provider and consumed read-only by the rating
// engine.
type AnalysisResult struct {
	Association       Association       `json:"association" yaml:"association" validate:"required"`
	Financial         Financial         `json:"financial" yaml:"financial"`
	Technical         []TechnicalItem   `json:"technical" yaml:"technical"`
	FeeIncludes       []FeeIncludesItem `json:"feeIncludes,omitempty" yaml:"feeIncludes,omitempty"`
	FeeAnalysis       string            `json:"feeAnalysis,omitempty" yaml:"feeAnalysis,omitempty"`
	OverallAssessment string            `json:"overallAssessment,omitempty" yaml:"overallAssessment,omitempty"`
	AssessmentReason  string            `json:"assessmentReason,omitempty" yaml:"assessmentReason,omitempty"`
	Risks             []string          `json:"risks,omitempty" yaml:"risks,omitempty"`
	Positives         []string          `json:"positives,omitempty" yaml:"positives,omitempty"`
	Summary           string            `json:"summary" yaml:"summary" validate:"required"`
}

var validate = validator.New()

// Validate checks the fields the rest of the system relies on being present.
// Optional data is never validated here; missing values are "unknown".
func (a *AnalysisResult) Validate() error {
	if a == nil {
		return fmt.Errorf("analysis result is nil")
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid analysis result: %w", err)
	}
	return nil
}

// HasProviderStatus reports whether any technical item carries a
// provider-assigned status.
func (a *AnalysisResult) HasProviderStatus() bool {
	for _, item := range a.Technical {
		if item.Status != nil {
			return true
		}
	}
	return false
}

// Float returns a pointer to v, for building optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building optional year/count fields.
func Int(v int) *int {
	return &v
}

// Status returns a pointer to s.
func Status(s ComponentStatus) *ComponentStatus {
	return &s
}
