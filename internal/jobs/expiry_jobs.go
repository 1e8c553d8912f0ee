package jobs

import (
	"context"
	"time"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/logger"
)

// ReportExpiredRentals surfaces rentals whose agreed duration has
// elapsed without a return, so leasers know a claim_token call is due.
func (jr *JobRunner) ReportExpiredRentals() {
	jr.runWithRecovery("ReportExpiredRentals", func() {
		ctx := context.Background()

		rented, err := jr.leaseRepo.ListByState(ctx, domain.LeaseStateRented)
		if err != nil {
			logger.Error("Failed to list rented leases", "error", err)
			return
		}

		now := time.Now().Unix()
		count := 0
		for _, lease := range rented {
			deadline := lease.Deadline()
			if now < deadline {
				continue
			}
			count++
			logger.Info("Rental past deadline",
				"asset", lease.Asset,
				"leaser", lease.Leasing.Leaser,
				"renter", lease.Renting.Renter,
				"deadline", time.Unix(deadline, 0).UTC().Format(time.RFC3339),
				"overdue_seconds", now-deadline)
		}

		logger.Info("Expired rental report finished", "rented", len(rented), "expired", count)
	})
}
