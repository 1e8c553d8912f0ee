package domain

import "time"

type LeaseState string

const (
	LeaseStateListed LeaseState = "LISTED"
	LeaseStateRented LeaseState = "RENTED"
)

// Leasing holds the terms the leaser fixed at listing time.
type Leasing struct {
	Leaser      string `json:"leaser"`
	PriceUnits  int64  `json:"price_units"`
	MaxDuration int64  `json:"max_duration_seconds"`
}

// Renting holds the terms fixed at rental start. Present only while the
// lease is in the RENTED state.
type Renting struct {
	Renter       string `json:"renter"`
	RentDuration int64  `json:"rent_duration_seconds"`
	StartTime    int64  `json:"start_time"` // unix seconds at rental start
}

// Lease is the unit of escrow state, keyed by the leased asset's
// identifier. At most one live Lease exists per asset; absence of a
// record is the canonical "no active listing" state.
type Lease struct {
	Asset     string     `json:"asset"`
	State     LeaseState `json:"state"`
	Leasing   Leasing    `json:"leasing"`
	Renting   *Renting   `json:"renting,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
}

// Deadline returns the unix second at which the active rental expires.
// Only meaningful while State == LeaseStateRented.
func (l *Lease) Deadline() int64 {
	if l.Renting == nil {
		return 0
	}
	return l.Renting.StartTime + l.Renting.RentDuration
}
