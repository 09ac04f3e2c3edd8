package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ternarybob/brfanalys/internal/models"
	"github.com/ternarybob/brfanalys/internal/services/presentation"
	"github.com/ternarybob/brfanalys/internal/services/rating"
)

// Options control markdown output
type Options struct {
	// Emoji adds icons to headings and badges. PDF output turns this off
	// because the core fonts cannot draw them.
	Emoji bool
}

type writer struct {
	sb      strings.Builder
	opts    Options
	printer *message.Printer
}

func (w *writer) icon(emoji string) string {
	if !w.opts.Emoji || emoji == "" {
		return ""
	}
	return emoji + " "
}

func (w *writer) line(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
	w.sb.WriteString("\n")
}

func (w *writer) blank() {
	w.sb.WriteString("\n")
}

// num formats v with Swedish digit grouping and at most decimals fraction digits
func (w *writer) num(v float64, decimals int) string {
	return w.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(decimals)))
}

func (w *writer) badge(s presentation.Style) string {
	return w.icon(s.Emoji) + s.Label
}

// Markdown renders the Swedish report for one analysis and its derived
// report. Sections without data are left out.
func Markdown(analysis *models.AnalysisResult, report *rating.Report, opts Options) string {
	if analysis == nil {
		analysis = &models.AnalysisResult{}
	}
	if report == nil {
		report = rating.Evaluate(analysis, nil)
	}

	w := &writer{opts: opts, printer: message.NewPrinter(language.Swedish)}

	w.hero(analysis, report)
	w.scores(report)
	w.technical(report)
	w.financial(report)
	w.fees(analysis, report)
	w.narrative(analysis)

	return w.sb.String()
}

func (w *writer) hero(analysis *models.AnalysisResult, report *rating.Report) {
	a := analysis.Association
	name := a.Name
	if name == "" {
		name = "Okänd förening"
	}
	w.line("# %s%s", w.icon("🏢"), flatten(name))
	w.blank()
	if a.Address != "" {
		w.line("%s%s", w.icon("📍"), flatten(a.Address))
		w.blank()
	}

	var facts []string
	if a.BuildYear != nil {
		fact := fmt.Sprintf("**Byggnadsår:** %d", *a.BuildYear)
		if report.BuildingAge != nil {
			fact += fmt.Sprintf(" (%d år)", *report.BuildingAge)
		}
		facts = append(facts, fact)
	}
	if a.Apartments != nil {
		facts = append(facts, fmt.Sprintf("**Lägenheter:** %d", *a.Apartments))
	}
	if a.TotalArea != nil {
		facts = append(facts, fmt.Sprintf("**Boarea:** %s m²", w.num(*a.TotalArea, 0)))
	}
	if a.FiscalYear != "" {
		facts = append(facts, fmt.Sprintf("**Räkenskapsår:** %s", flatten(a.FiscalYear)))
	}
	if len(facts) > 0 {
		w.line("%s", strings.Join(facts, " | "))
		w.blank()
	}

	resolution := report.Assessment
	w.line("**Samlad bedömning:** %s", w.badge(presentation.AssessmentStyle(resolution.Assessment)))
	w.blank()
	if resolution.Reason != "" {
		w.line("%s", flatten(resolution.Reason))
		w.blank()
	}
	if report.ValidationNote != "" {
		w.line("*Bedömningen från analysen kunde inte tolkas och har ersatts med Normal.*")
		w.blank()
	}
}

func (w *writer) scores(report *rating.Report) {
	s := report.Scores
	w.line("## %sPoängöversikt", w.icon("📊"))
	w.blank()
	w.line("| Område | Poäng | Betyg |")
	w.line("|--------|------:|-------|")
	w.line("| Tekniskt skick | %d | %s |", s.Technical, w.badge(presentation.ScoreStyle(s.Technical)))
	w.line("| Ekonomi | %d | %s |", s.Financial, w.badge(presentation.ScoreStyle(s.Financial)))
	w.line("| Avgiftsrisk | %d | %s |", s.FeeRisk, w.badge(presentation.ScoreStyle(s.FeeRisk)))
	w.line("| **Totalt** | **%d** | %s |", s.Total, w.badge(presentation.ScoreStyle(s.Total)))
	w.blank()

	if len(report.Breakdown.Adjustments) == 0 {
		return
	}
	w.line("### Poängjusteringar")
	w.blank()
	for _, adj := range report.Breakdown.Adjustments {
		w.line("- %s: %+d (%s)", componentName(adj.Component), adj.Delta, flatten(adj.Reason))
	}
	w.blank()
}

func componentName(c rating.ScoreComponent) string {
	switch c {
	case rating.ComponentTechnical:
		return "Tekniskt skick"
	case rating.ComponentFinancial:
		return "Ekonomi"
	default:
		return "Avgiftsrisk"
	}
}

func (w *writer) technical(report *rating.Report) {
	w.line("## %sTekniskt skick", w.icon("🔧"))
	w.blank()

	if len(report.Technical) == 0 {
		w.line("Inga tekniska uppgifter hittades i årsredovisningen.")
		w.blank()
		return
	}

	c := report.StatusCounts
	w.line("%d bra skick, %d att bevaka, %d där åtgärd krävs.", c.Good, c.Warning, c.Critical)
	w.blank()
	if report.StatusSource == rating.SourceProvider {
		w.line("*Status enligt analysen av årsredovisningen.*")
	} else {
		w.line("*Status beräknad från tid sedan senaste underhåll.*")
	}
	w.blank()

	w.line("| Del | Status | Senast åtgärdat | Planerat | Notering |")
	w.line("|-----|--------|-----------------|----------|----------|")
	for _, ta := range report.Technical {
		display := presentation.CategoryDisplay(ta.Item)
		name := display.Name
		if ta.Item.Name != "" && !strings.HasPrefix(strings.ToLower(display.Name), strings.ToLower(ta.Item.Name)) {
			name += " - " + ta.Item.Name
		}

		last := "Ej angivet"
		if ta.Item.LastMaintained != nil {
			last = fmt.Sprintf("%d", *ta.Item.LastMaintained)
			if ta.YearsSinceMaintenance != nil {
				last += fmt.Sprintf(" (%d år sedan)", *ta.YearsSinceMaintenance)
			}
		}

		planned := "-"
		if ta.Item.PlannedYear != nil {
			planned = fmt.Sprintf("%d", *ta.Item.PlannedYear)
		}

		notes := ta.Item.Notes
		if ta.Item.MaterialType != "" {
			notes = strings.TrimSpace(ta.Item.MaterialType + ". " + notes)
		}

		w.line("| %s%s | %s | %s | %s | %s |",
			w.icon(display.Icon), escapeCell(name),
			w.badge(presentation.StatusStyle(ta.Status)),
			last, planned, escapeCell(notes))
	}
	w.blank()
}

func (w *writer) financial(report *rating.Report) {
	risk := report.FinancialRisk
	w.line("## %sEkonomi", w.icon("💰"))
	w.blank()
	w.line("**Finansiell risk:** %s (%d av 6 riskpoäng)", w.badge(presentation.RiskStyle(risk.Level)), risk.Score)
	w.blank()

	w.line("| Nyckeltal | Värde | Riktvärde | Bedömning |")
	w.line("|-----------|------:|-----------|-----------|")
	for _, m := range report.Metrics {
		value := "Ej angivet"
		if m.Value != nil {
			value = w.metricValue(m)
		}
		benchmark := m.Benchmark
		if benchmark == "" {
			benchmark = "-"
		}
		w.line("| %s | %s | %s | %s |", m.Label, value, benchmark, w.badge(presentation.VerdictStyle(m.Verdict)))
	}
	w.blank()
}

func (w *writer) metricValue(m rating.MetricVerdict) string {
	if m.Unit == "%" {
		return w.num(*m.Value, 1) + " %"
	}
	return w.num(*m.Value, 0) + " " + m.Unit
}

func (w *writer) fees(analysis *models.AnalysisResult, report *rating.Report) {
	if len(analysis.FeeIncludes) == 0 && analysis.FeeAnalysis == "" {
		return
	}

	w.line("## %sAvgiften inkluderar", w.icon("🧾"))
	w.blank()

	if len(analysis.FeeIncludes) > 0 {
		w.line("| Tjänst | Uppskattad kostnad/mån | Notering |")
		w.line("|--------|-----------------------:|----------|")
		for _, item := range analysis.FeeIncludes {
			display := presentation.FeeItemDisplay(item)
			cost := "-"
			if item.EstimatedMonthlyCost != nil {
				cost = w.num(*item.EstimatedMonthlyCost, 2) + " kr"
			}
			w.line("| %s%s | %s | %s |", w.icon(display.Icon), escapeCell(display.Name), cost, escapeCell(item.Notes))
		}
		w.blank()
	}

	if report.FeeSummary.HasEstimates {
		total, _ := report.FeeSummary.TotalEstimated.Float64()
		w.line("**Uppskattat värde av ingående tjänster:** %s kr/mån", w.num(total, 2))
		w.blank()
	}

	if analysis.FeeAnalysis != "" {
		w.line("%s", flatten(analysis.FeeAnalysis))
		w.blank()
	}
}

func (w *writer) narrative(analysis *models.AnalysisResult) {
	if analysis.Summary != "" {
		w.line("## %sSammanfattning", w.icon("📝"))
		w.blank()
		w.line("%s", flatten(analysis.Summary))
		w.blank()
	}
	w.list("✅", "Styrkor", analysis.Positives)
	w.list("⚠️", "Risker", analysis.Risks)
}

func (w *writer) list(emoji, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	w.line("## %s%s", w.icon(emoji), heading)
	w.blank()
	for _, item := range items {
		w.line("- %s", flatten(item))
	}
	w.blank()
}

// flatten collapses provider text to a single line so it cannot break a
// table row or list item.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(flatten(s), "|", "\\|")
}
