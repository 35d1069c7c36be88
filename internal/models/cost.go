package models

// CostRequest is the input of the rent cost calculator
type CostRequest struct {
	MonthlyRent      float64 `json:"monthlyRent"`
	DepositMonths    int     `json:"depositMonths"`
	AgencyFee        bool    `json:"agencyFee"`
	IncludeUtilities bool    `json:"includeUtilities"`
}

// UtilityEstimate holds average monthly utility costs in EUR
type UtilityEstimate struct {
	Electricity float64 `json:"electricity"`
	Water       float64 `json:"water"`
	Internet    float64 `json:"internet"`
	Gas         float64 `json:"gas"`
}

// Total returns the sum of all utilities
func (u UtilityEstimate) Total() float64 {
	return u.Electricity + u.Water + u.Internet + u.Gas
}

// CostBreakdown is the result of the rent cost calculator
type CostBreakdown struct {
	MonthlyRent   float64          `json:"monthlyRent"`
	DepositMonths int              `json:"depositMonths"`
	Deposit       float64          `json:"deposit"`
	AgencyFee     float64          `json:"agencyFee"`
	InitialTotal  float64          `json:"initialTotal"`
	Utilities     *UtilityEstimate `json:"utilities,omitempty"`
	MonthlyTotal  float64          `json:"monthlyTotal"`
}
