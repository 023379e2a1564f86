package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"invest-sim/domain"
)

// MoneyFormatter renders amounts for the report.
type MoneyFormatter interface {
	Format(v domain.Value) string
	FormatAmount(amount float64) string
}

type column struct {
	title string
	width float64
	align string
}

var columns = []column{
	{"#", 10, "C"},
	{"Name", 62, "L"},
	{"Initial", 38, "R"},
	{"Contribution / month", 38, "R"},
	{"Term", 24, "C"},
	{"Rate", 30, "C"},
	{"Tax", 16, "C"},
	{"Tax paid", 30, "R"},
	{"Final net value", 42, "R"},
}

// ScenarioReport builds a landscape A4 PDF listing saved scenarios.
type ScenarioReport struct {
	pdf       *fpdf.Fpdf
	money     MoneyFormatter
	translate func(string) string
}

func NewScenarioReport(money MoneyFormatter) *ScenarioReport {
	pdf := fpdf.New("L", "mm", "A4", "")
	return &ScenarioReport{
		pdf:       pdf,
		money:     money,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Write renders the scenarios and writes the finished document to w.
func (r *ScenarioReport) Write(w io.Writer, scenarios []domain.Scenario, generatedAt time.Time) error {
	r.pdf.SetCreationDate(generatedAt)
	r.pdf.SetTitle("Investment scenarios", true)
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 18)
	r.pdf.CellFormat(0, 12, "Investment scenarios", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("2 January 2006 15:04")), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)

	if len(scenarios) == 0 {
		r.pdf.SetFont("Arial", "", 11)
		r.pdf.CellFormat(0, 8, "No scenarios saved yet.", "", 1, "L", false, 0, "")
		return r.output(w)
	}

	r.header()
	r.pdf.SetFont("Arial", "", 9)
	for i, sc := range scenarios {
		fill := i%2 == 1
		if fill {
			r.pdf.SetFillColor(242, 242, 242)
		}
		cells := []string{
			strconv.Itoa(i),
			sc.Input.Name,
			r.money.FormatAmount(sc.Input.InitialAmount),
			r.money.FormatAmount(sc.Input.RecurringContribution),
			fmt.Sprintf("%g %s", sc.Input.TermValue, sc.Input.TermUnit),
			fmt.Sprintf("%g%% %s", sc.Input.RateValue, sc.Input.RateUnit),
			fmt.Sprintf("%g%%", sc.Input.TaxRatePercent),
			r.money.Format(sc.Result.TaxAmount),
			r.money.Format(sc.Result.FinalNetValue),
		}
		for c, text := range cells {
			r.pdf.CellFormat(columns[c].width, 7, r.translate(text), "1", 0, columns[c].align, fill, 0, "")
		}
		r.pdf.Ln(-1)
	}

	return r.output(w)
}

func (r *ScenarioReport) header() {
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(52, 73, 94)
	r.pdf.SetTextColor(255, 255, 255)
	for _, c := range columns {
		r.pdf.CellFormat(c.width, 8, c.title, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *ScenarioReport) output(w io.Writer) error {
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
