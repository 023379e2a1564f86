package service

import (
	"math"
	"testing"

	"invest-sim/domain"
)

const relTolerance = 1e-6

func assertClose(t *testing.T, expected, actual float64, description string) {
	t.Helper()
	diff := math.Abs(expected - actual)
	if diff > relTolerance*math.Max(1, math.Abs(expected)) {
		t.Errorf("%s: expected %.6f, got %.6f (diff: %.9f)",
			description, expected, actual, actual-expected)
	}
}

func TestCompute_AnnualRateWithContributions(t *testing.T) {

	result := Compute(1000, 100, 12, domain.TermMonths, 12, domain.RateAnnual, 15)

	if result.FinalNetValue.Overflow || result.NetGain.Overflow {
		t.Fatalf("unexpected overflow: %+v", result)
	}

	monthlyRate := math.Pow(1.12, 1.0/12) - 1
	growth := math.Pow(1+monthlyRate, 12)
	gross := 1000*growth + 100*((growth-1)/monthlyRate)
	gain := gross - 2200
	tax := gain * 0.15

	assertClose(t, 0.009488792934583046, monthlyRate, "monthly rate")
	assertClose(t, 2200, result.TotalContributed.Amount, "total contributed")
	assertClose(t, tax, result.TaxAmount.Amount, "tax")
	assertClose(t, 27.697468625297915, result.TaxAmount.Amount, "tax literal")
	assertClose(t, gain-tax, result.NetGain.Amount, "net gain")
	assertClose(t, 2356.9523222100215, result.FinalNetValue.Amount, "final net value")
}

func TestCompute_YearsAreTwelveMonths(t *testing.T) {

	inYears := Compute(500, 50, 2, domain.TermYears, 1, domain.RateMonthly, 10)
	inMonths := Compute(500, 50, 24, domain.TermMonths, 1, domain.RateMonthly, 10)

	if inYears != inMonths {
		t.Errorf("expected 2 years == 24 months, got %+v vs %+v", inYears, inMonths)
	}
}

func TestCompute_MonthlyRate(t *testing.T) {

	result := Compute(1000, 100, 12, domain.TermMonths, 1, domain.RateMonthly, 0)

	assertClose(t, 2395.0753314516674, result.FinalNetValue.Amount, "final net value")
	if result.TaxAmount.Amount != 0 {
		t.Errorf("expected no tax with 0%% rate, got %.2f", result.TaxAmount.Amount)
	}
}

func TestCompute_ZeroRateNoContribution(t *testing.T) {

	for _, initial := range []float64{0, 1, 1234.56, 1e9} {
		result := Compute(initial, 0, 36, domain.TermMonths, 0, domain.RateMonthly, 27.5)

		if result.FinalNetValue.Amount != initial {
			t.Errorf("expected final == %.2f, got %.2f", initial, result.FinalNetValue.Amount)
		}
		if result.TaxAmount.Amount != 0 {
			t.Errorf("expected no tax, got %.2f", result.TaxAmount.Amount)
		}
	}
}

func TestCompute_ZeroRateWithContribution(t *testing.T) {

	// Sin tasa la anualidad se reduce a aporte * meses
	result := Compute(0, 100, 1, domain.TermYears, 0, domain.RateAnnual, 15)

	if result.FinalNetValue.Overflow {
		t.Fatalf("zero rate must not divide by zero: %+v", result)
	}
	assertClose(t, 1200, result.FinalNetValue.Amount, "final net value")
	assertClose(t, 0, result.NetGain.Amount, "net gain")
}

func TestCompute_LossesAreNotTaxed(t *testing.T) {

	result := Compute(1000, 50, 12, domain.TermMonths, -2, domain.RateMonthly, 20)

	if result.TaxAmount.Amount != 0 {
		t.Errorf("expected no tax on a loss, got %.2f", result.TaxAmount.Amount)
	}
	grossGain := result.FinalNetValue.Amount - result.TotalContributed.Amount
	if grossGain >= 0 {
		t.Fatalf("expected a loss, got gain %.2f", grossGain)
	}
	assertClose(t, grossGain, result.NetGain.Amount, "net gain equals gross gain")
}

func TestCompute_NegativeContributionCountsAsNoAnnuity(t *testing.T) {

	result := Compute(1000, -10, 12, domain.TermMonths, 0, domain.RateMonthly, 0)

	// Total aportado sí incluye el aporte negativo
	assertClose(t, 880, result.TotalContributed.Amount, "total contributed")
	assertClose(t, 120, result.NetGain.Amount, "net gain")
	assertClose(t, 1000, result.FinalNetValue.Amount, "final net value")
}

func TestCompute_Overflow(t *testing.T) {

	result := Compute(1e10, 0, 1000, domain.TermMonths, 1000, domain.RateMonthly, 0)

	if !result.FinalNetValue.Overflow {
		t.Errorf("expected overflow sentinel, got %v", result.FinalNetValue)
	}
	if !result.NetGain.Overflow {
		t.Errorf("expected overflow sentinel for net gain, got %v", result.NetGain)
	}
	if math.IsInf(result.FinalNetValue.Amount, 0) {
		t.Errorf("overflowed value must not carry a raw infinity")
	}
	assertClose(t, 1e10, result.TotalContributed.Amount, "total contributed")
	if result.TaxAmount.Overflow || result.TaxAmount.Amount != 0 {
		t.Errorf("expected tax 0, got %v", result.TaxAmount)
	}
}

func TestCompute_IsPure(t *testing.T) {

	input := domain.ScenarioInput{
		Name:                  "repeat",
		InitialAmount:         2500,
		RecurringContribution: 300,
		TermValue:             10,
		TermUnit:              domain.TermYears,
		RateValue:             9.5,
		RateUnit:              domain.RateAnnual,
		TaxRatePercent:        22.5,
	}

	first := ComputeInput(input)
	second := ComputeInput(input)

	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}
