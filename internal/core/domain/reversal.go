package domain

import "github.com/shopspring/decimal"

// ReversalResult is the outcome of reversing a single payment during
// reservation cancellation.
type ReversalResult struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	Reversed  bool            `json:"reversed"`
	Error     string          `json:"error,omitempty"`
}

// ReversalReport collects the per-payment outcomes of a cancellation run.
// A report with failures still accompanies a successful status transition:
// financial reversal is best-effort and subordinate to the domain fact that
// the reservation is cancelled.
type ReversalReport struct {
	ReservationID string           `json:"reservationID"`
	Results       []ReversalResult `json:"results"`
}

// FailedCount returns the number of payments whose reversal did not complete.
func (r ReversalReport) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Reversed {
			n++
		}
	}
	return n
}
