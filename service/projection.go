package service

import (
	"math"

	"invest-sim/domain"
)

// Compute projects the future value of an initial lump sum plus a monthly
// contribution stream, and applies a flat tax to the gain.
//
// Inputs are not validated. Degenerate values flow through the formula, and
// a non-finite final value is reported with the overflow sentinel.
func Compute(
	initialAmount float64,
	recurringContribution float64,
	termValue float64,
	termUnit domain.TermUnit,
	rateValue float64,
	rateUnit domain.RateUnit,
	taxRatePercent float64,
) domain.ScenarioResult {

	termMonths := termValue
	if termUnit == domain.TermYears {
		termMonths = termValue * MonthsPerYear
	}

	monthlyRate := rateValue / percent
	if rateUnit == domain.RateAnnual {
		monthlyRate = math.Pow(1+rateValue/percent, 1.0/MonthsPerYear) - 1
	}

	growth := math.Pow(1+monthlyRate, termMonths)
	fvInitial := initialAmount * growth

	fvContrib := 0.0
	if recurringContribution > 0 {
		if monthlyRate == 0 {
			fvContrib = recurringContribution * termMonths
		} else {
			fvContrib = recurringContribution * ((growth - 1) / monthlyRate)
		}
	}

	grossFutureValue := fvInitial + fvContrib
	totalContributed := initialAmount + recurringContribution*termMonths
	grossGain := grossFutureValue - totalContributed

	// Solo se tributa la ganancia positiva
	taxAmount := 0.0
	if grossGain > 0 && taxRatePercent > 0 {
		taxAmount = grossGain * taxRatePercent / percent
	}

	netGain := grossGain - taxAmount
	finalNetValue := totalContributed + netGain

	result := domain.ScenarioResult{
		FinalNetValue:    domain.Finite(finalNetValue),
		TotalContributed: domain.Finite(totalContributed),
		NetGain:          domain.Finite(netGain),
		TaxAmount:        domain.Finite(taxAmount),
	}
	if result.FinalNetValue.Overflow {
		result.NetGain = domain.OverflowValue()
	}

	return result
}

// ComputeInput is Compute applied to a ScenarioInput.
func ComputeInput(input domain.ScenarioInput) domain.ScenarioResult {
	return Compute(
		input.InitialAmount,
		input.RecurringContribution,
		input.TermValue,
		input.TermUnit,
		input.RateValue,
		input.RateUnit,
		input.TaxRatePercent,
	)
}
