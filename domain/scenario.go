package domain

import "time"

type TermUnit string

const (
	TermMonths TermUnit = "months"
	TermYears  TermUnit = "years"
)

type RateUnit string

const (
	RateMonthly RateUnit = "monthly"
	RateAnnual  RateUnit = "annual"
)

// Valid reports whether u is one of the known term units.
func (u TermUnit) Valid() bool {
	return u == TermMonths || u == TermYears
}

// Valid reports whether u is one of the known rate units.
func (u RateUnit) Valid() bool {
	return u == RateMonthly || u == RateAnnual
}

type ScenarioInput struct {
	Name                  string   `json:"name"`
	InitialAmount         float64  `json:"initialAmount"`
	RecurringContribution float64  `json:"recurringContribution"`
	TermValue             float64  `json:"termValue"`
	TermUnit              TermUnit `json:"termUnit"`
	RateValue             float64  `json:"rateValue"`
	RateUnit              RateUnit `json:"rateUnit"`
	TaxRatePercent        float64  `json:"taxRatePercent"`
}

// ScenarioResult is the projection for one ScenarioInput. TotalContributed
// and TaxAmount only overflow when the inputs themselves are out of range.
type ScenarioResult struct {
	FinalNetValue    Value `json:"finalNetValue"`
	TotalContributed Value `json:"totalContributed"`
	NetGain          Value `json:"netGain"`
	TaxAmount        Value `json:"taxAmount"`
}

// Scenario is a saved input bundle together with its projection.
// Scenarios are addressed by position; ID only detects stale positions.
type Scenario struct {
	ID      string         `json:"id,omitempty"`
	Input   ScenarioInput  `json:"input"`
	Result  ScenarioResult `json:"result"`
	SavedAt time.Time      `json:"savedAt,omitzero"`
}

// SaveTarget selects between appending a new scenario and replacing an
// existing one. The zero value is Create.
type SaveTarget struct {
	update bool
	index  int
	// ExpectedID, when set on an update, must match the ID of the entry
	// currently at the index.
	ExpectedID string
}

// Create returns a target that appends a new scenario.
func Create() SaveTarget {
	return SaveTarget{}
}

// UpdateAt returns a target that replaces the scenario at index.
func UpdateAt(index int) SaveTarget {
	return SaveTarget{update: true, index: index}
}

// WithExpectedID returns a copy of t guarded by the given scenario ID.
func (t SaveTarget) WithExpectedID(id string) SaveTarget {
	t.ExpectedID = id
	return t
}

// Update reports whether t replaces an existing entry, and at which index.
func (t SaveTarget) Update() (int, bool) {
	return t.index, t.update
}

// ScenarioView is a saved scenario prepared for listing.
type ScenarioView struct {
	Index                 int      `json:"index"`
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	FormattedFinalValue   string   `json:"formattedFinalValue"`
	FormattedContribution string   `json:"formattedContribution"`
	TermValue             float64  `json:"termValue"`
	TermUnit              TermUnit `json:"termUnit"`
	RateValue             float64  `json:"rateValue"`
	RateUnit              RateUnit `json:"rateUnit"`
}
