// Package rating provides pure calculation functions for BRF annual report
// risk ratings. All functions are stateless and perform no I/O.
package rating

import (
	"github.com/shopspring/decimal"

	"github.com/ternarybob/brfanalys/internal/models"
)

// RiskLevel is the three-level risk classification shared by technical and
// financial classifiers
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AllRiskLevels returns the risk levels from lowest to highest.
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh}
}

// StatusSource tells whether a technical status came from the extraction
// provider or was derived from maintenance age
type StatusSource string

const (
	SourceProvider StatusSource = "provider"
	SourceDerived  StatusSource = "derived"
)

// AssessmentSource tells which resolver produced the overall assessment
type AssessmentSource string

const (
	AssessmentFromProvider AssessmentSource = "provider"
	AssessmentFromScores   AssessmentSource = "local"
)

// AgeThresholds holds warn and critical ages in years for a category
type AgeThresholds struct {
	Warn     int `json:"warn" yaml:"warn"`
	Critical int `json:"critical" yaml:"critical"`
}

// TechnicalAssessment is the derived view of one technical item
type TechnicalAssessment struct {
	Item                  models.TechnicalItem   `json:"item" yaml:"item"`
	Risk                  RiskLevel              `json:"risk" yaml:"risk"`
	Status                models.ComponentStatus `json:"status" yaml:"status"`
	Source                StatusSource           `json:"source" yaml:"source"`
	YearsSinceMaintenance *int                   `json:"yearsSinceMaintenance,omitempty" yaml:"yearsSinceMaintenance,omitempty"`
	Thresholds            AgeThresholds          `json:"thresholds" yaml:"thresholds"`
	KnownCategory         bool                   `json:"knownCategory" yaml:"knownCategory"`
}

// StatusCounts tallies technical items per status
type StatusCounts struct {
	Good     int `json:"good" yaml:"good"`
	Warning  int `json:"warning" yaml:"warning"`
	Critical int `json:"critical" yaml:"critical"`
}

// FinancialComponents holds the per-metric risk points
type FinancialComponents struct {
	LoanPoints       int `json:"loan_points" yaml:"loan_points"`
	SavingsPoints    int `json:"savings_points" yaml:"savings_points"`
	SolidarityPoints int `json:"solidarity_points" yaml:"solidarity_points"`
}

// FinancialRiskResult is the output of ClassifyFinancialRisk
type FinancialRiskResult struct {
	Score      int                    `json:"score" yaml:"score"` // 0-6
	Level      RiskLevel              `json:"level" yaml:"level"`
	Status     models.ComponentStatus `json:"status" yaml:"status"`
	Components FinancialComponents    `json:"components" yaml:"components"`
	Reasoning  string                 `json:"reasoning" yaml:"reasoning"`
}

// Verdict is the display judgement for a single financial metric
type Verdict string

const (
	VerdictGood    Verdict = "good"
	VerdictBad     Verdict = "bad"
	VerdictUnknown Verdict = "unknown"
	VerdictNeutral Verdict = "neutral" // informational metric, never judged
)

// AllVerdicts returns every verdict value.
func AllVerdicts() []Verdict {
	return []Verdict{VerdictGood, VerdictBad, VerdictUnknown, VerdictNeutral}
}

// MetricKey identifies a financial metric shown in reports
type MetricKey string

const (
	MetricLoanPerSqm        MetricKey = "loanPerSqm"
	MetricFeePerSqmYear     MetricKey = "feePerSqmYear"
	MetricSavingsPerSqmYear MetricKey = "savingsPerSqmYear"
	MetricSolidarity        MetricKey = "solidarity"
	MetricTotalLoans        MetricKey = "totalLoans"
	MetricResult            MetricKey = "result"
)

// MetricVerdict is one financial metric with its display judgement
type MetricVerdict struct {
	Key       MetricKey `json:"key" yaml:"key"`
	Label     string    `json:"label" yaml:"label"`
	Value     *float64  `json:"value,omitempty" yaml:"value,omitempty"`
	Unit      string    `json:"unit" yaml:"unit"`
	Benchmark string    `json:"benchmark,omitempty" yaml:"benchmark,omitempty"`
	Verdict   Verdict   `json:"verdict" yaml:"verdict"`
}

// ScoreComponent names one of the three sub-scores
type ScoreComponent string

const (
	ComponentTechnical ScoreComponent = "technical"
	ComponentFinancial ScoreComponent = "financial"
	ComponentFeeRisk   ScoreComponent = "feeRisk"
)

// Scores holds the three sub-scores and the total, each an integer 0-100
type Scores struct {
	Technical int `json:"technical" yaml:"technical"`
	Financial int `json:"financial" yaml:"financial"`
	FeeRisk   int `json:"feeRisk" yaml:"feeRisk"`
	Total     int `json:"total" yaml:"total"`
}

// Adjustment is one applied score delta with its cause
type Adjustment struct {
	Component ScoreComponent `json:"component" yaml:"component"`
	Factor    string         `json:"factor" yaml:"factor"`
	Delta     int            `json:"delta" yaml:"delta"`
	Reason    string         `json:"reason" yaml:"reason"`
}

// ScoreBreakdown lists the base values and every adjustment so each point of
// a sub-score can be attributed
type ScoreBreakdown struct {
	Base        Scores       `json:"base" yaml:"base"`
	Adjustments []Adjustment `json:"adjustments" yaml:"adjustments"`
}

// Resolution is the overall assessment with its justification
type Resolution struct {
	Assessment models.Assessment `json:"assessment" yaml:"assessment"`
	Reason     string            `json:"reason" yaml:"reason"`
	Source     AssessmentSource  `json:"source" yaml:"source"`
	Err        error             `json:"-" yaml:"-"`
}

// FeeSummary totals the estimated monthly costs of included services
type FeeSummary struct {
	Items          int             `json:"items" yaml:"items"`
	TotalEstimated decimal.Decimal `json:"totalEstimated" yaml:"totalEstimated"`
	HasEstimates   bool            `json:"hasEstimates" yaml:"hasEstimates"`
}

// Report is the complete derived view of one analysis
type Report struct {
	CurrentYear    int                   `json:"currentYear" yaml:"currentYear"`
	BuildingAge    *int                  `json:"buildingAge,omitempty" yaml:"buildingAge,omitempty"`
	Technical      []TechnicalAssessment `json:"technical" yaml:"technical"`
	StatusCounts   StatusCounts          `json:"statusCounts" yaml:"statusCounts"`
	StatusSource   StatusSource          `json:"statusSource" yaml:"statusSource"`
	FinancialRisk  FinancialRiskResult   `json:"financialRisk" yaml:"financialRisk"`
	Metrics        []MetricVerdict       `json:"metrics" yaml:"metrics"`
	Scores         Scores                `json:"scores" yaml:"scores"`
	Breakdown      ScoreBreakdown        `json:"breakdown" yaml:"breakdown"`
	ScoreBand      models.Assessment     `json:"scoreBand" yaml:"scoreBand"`
	Assessment     Resolution            `json:"assessment" yaml:"assessment"`
	FeeSummary     FeeSummary            `json:"feeSummary" yaml:"feeSummary"`
	ValidationNote string                `json:"validationNote,omitempty" yaml:"validationNote,omitempty"`
}
