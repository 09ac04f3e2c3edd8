package rating

import (
	"sort"

	"github.com/ternarybob/brfanalys/internal/models"
)

// ClassifyTechnicalRisk classifies a building component by years since its
// last maintenance.
//
// Rules:
// - lastMaintained absent: medium (insufficient information is moderate risk)
// - age >= critical threshold: high
// - age >= warn threshold: medium
// - otherwise: low
//
// Unknown categories use DefaultAgeThresholds (20/35).
func ClassifyTechnicalRisk(category models.TechnicalCategory, lastMaintained *int, clock Clock) RiskLevel {
	if lastMaintained == nil {
		return RiskMedium
	}

	age := CurrentYear(clock) - *lastMaintained
	thresholds, _ := ThresholdsFor(category)

	switch {
	case age >= thresholds.Critical:
		return RiskHigh
	case age >= thresholds.Warn:
		return RiskMedium
	default:
		return RiskLow
	}
}

// YearsSinceMaintenance returns the age of the last maintenance, or nil when
// the year is unknown.
func YearsSinceMaintenance(item models.TechnicalItem, clock Clock) *int {
	if item.LastMaintained == nil {
		return nil
	}
	age := CurrentYear(clock) - *item.LastMaintained
	return &age
}

// StatusFromRisk maps a risk level to its status badge.
func StatusFromRisk(risk RiskLevel) models.ComponentStatus {
	switch risk {
	case RiskLow:
		return models.StatusGood
	case RiskHigh:
		return models.StatusCritical
	default:
		return models.StatusWarning
	}
}

// RiskFromStatus maps a status badge to its risk level.
func RiskFromStatus(status models.ComponentStatus) RiskLevel {
	switch status {
	case models.StatusGood:
		return RiskLow
	case models.StatusCritical:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// StatusStrategy decides the canonical risk signal for a technical item
type StatusStrategy interface {
	Assess(item models.TechnicalItem, clock Clock) (RiskLevel, StatusSource)
	Name() string
}

// AgeDerivedStrategy classifies every item from its maintenance age
type AgeDerivedStrategy struct{}

// Assess implements StatusStrategy.
func (AgeDerivedStrategy) Assess(item models.TechnicalItem, clock Clock) (RiskLevel, StatusSource) {
	return ClassifyTechnicalRisk(item.Category, item.LastMaintained, clock), SourceDerived
}

// Name implements StatusStrategy.
func (AgeDerivedStrategy) Name() string { return "age_derived" }

// ProviderStatusStrategy trusts the provider-assigned status. Age is only
// consulted for items that carry no (valid) status, and never overrides one.
type ProviderStatusStrategy struct{}

// Assess implements StatusStrategy.
func (ProviderStatusStrategy) Assess(item models.TechnicalItem, clock Clock) (RiskLevel, StatusSource) {
	if item.Status != nil && item.Status.IsValid() {
		return RiskFromStatus(*item.Status), SourceProvider
	}
	return AgeDerivedStrategy{}.Assess(item, clock)
}

// Name implements StatusStrategy.
func (ProviderStatusStrategy) Name() string { return "provider_status" }

// SelectStatusStrategy picks the strategy once per analysis: provider status
// when any item carries one, otherwise age-derived.
func SelectStatusStrategy(analysis *models.AnalysisResult) StatusStrategy {
	if analysis != nil && analysis.HasProviderStatus() {
		return ProviderStatusStrategy{}
	}
	return AgeDerivedStrategy{}
}

// AssessTechnical derives risk and status for every technical item, sorted
// critical first. Items with equal status keep their input order.
func AssessTechnical(analysis *models.AnalysisResult, strategy StatusStrategy, clock Clock) ([]TechnicalAssessment, StatusCounts) {
	var counts StatusCounts
	if analysis == nil || len(analysis.Technical) == 0 {
		return []TechnicalAssessment{}, counts
	}
	if strategy == nil {
		strategy = SelectStatusStrategy(analysis)
	}

	assessments := make([]TechnicalAssessment, 0, len(analysis.Technical))
	for _, item := range analysis.Technical {
		risk, source := strategy.Assess(item, clock)
		thresholds, known := ThresholdsFor(item.Category)
		status := StatusFromRisk(risk)

		switch status {
		case models.StatusGood:
			counts.Good++
		case models.StatusWarning:
			counts.Warning++
		case models.StatusCritical:
			counts.Critical++
		}

		assessments = append(assessments, TechnicalAssessment{
			Item:                  item,
			Risk:                  risk,
			Status:                status,
			Source:                source,
			YearsSinceMaintenance: YearsSinceMaintenance(item, clock),
			Thresholds:            thresholds,
			KnownCategory:         known,
		})
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return statusRank(assessments[i].Status) < statusRank(assessments[j].Status)
	})

	return assessments, counts
}

func statusRank(status models.ComponentStatus) int {
	switch status {
	case models.StatusCritical:
		return 0
	case models.StatusWarning:
		return 1
	default:
		return 2
	}
}
