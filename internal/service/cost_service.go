package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/valencia-move/listings-backend/internal/models"
)

// ErrInvalidRent is returned when the monthly rent is missing or not positive
var ErrInvalidRent = errors.New("monthly rent must be greater than zero")

// DefaultDepositMonths is used when the request omits the deposit
const DefaultDepositMonths = 2

// ValenciaUtilities are average monthly utility costs in Valencia
var ValenciaUtilities = models.UtilityEstimate{
	Electricity: 80,
	Water:       30,
	Internet:    40,
	Gas:         25,
}

// CostService computes the up-front and monthly cost of renting
type CostService struct {
	utilities models.UtilityEstimate
}

// NewCostService creates a cost service using the given utility estimate
func NewCostService(utilities models.UtilityEstimate) *CostService {
	return &CostService{utilities: utilities}
}

// Calculate returns deposit, agency fee and totals for req.
// The agency fee is one month of rent.
func (s *CostService) Calculate(req models.CostRequest) (*models.CostBreakdown, error) {
	if math.IsNaN(req.MonthlyRent) || math.IsInf(req.MonthlyRent, 0) || req.MonthlyRent <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRent, req.MonthlyRent)
	}
	months := req.DepositMonths
	if months < 1 {
		months = DefaultDepositMonths
	}

	b := &models.CostBreakdown{
		MonthlyRent:   req.MonthlyRent,
		DepositMonths: months,
		Deposit:       round2(req.MonthlyRent * float64(months)),
		MonthlyTotal:  req.MonthlyRent,
	}
	if req.AgencyFee {
		b.AgencyFee = req.MonthlyRent
	}
	b.InitialTotal = round2(b.Deposit + b.AgencyFee)

	if req.IncludeUtilities {
		u := s.utilities
		b.Utilities = &u
		b.MonthlyTotal = round2(req.MonthlyRent + u.Total())
	}
	return b, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
