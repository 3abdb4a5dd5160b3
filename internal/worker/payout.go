package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/repo"

	"github.com/google/uuid"
)

// PayoutWorker periodically batches payable commission into pending
// commission_payments rows. An order's commission becomes payable once the
// order is paid and its commission_status is still PENDING; flipping those
// rows to PAID and writing the ledger row happen in one transaction so a
// crash never double-counts a commission.
type PayoutWorker struct {
	db          *sql.DB
	orderRepo   repo.OrderRepo
	paymentRepo repo.PaymentRepo
	interval    time.Duration
	period      time.Duration
}

func NewPayoutWorker(
	db *sql.DB,
	orderRepo repo.OrderRepo,
	paymentRepo repo.PaymentRepo,
	interval time.Duration,
	period time.Duration,
) *PayoutWorker {
	return &PayoutWorker{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		interval:    interval,
		period:      period,
	}
}

func (pw *PayoutWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	log.Println("Payout worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := pw.process(ctx); err != nil {
				log.Printf("Payout batching failed: %v", err)
			}
		}
	}
}

func (pw *PayoutWorker) process(ctx context.Context) error {
	payables, err := pw.paymentRepo.FindPayable(ctx)
	if err != nil {
		return err
	}

	if len(payables) == 0 {
		return nil
	}

	log.Printf("Found %d partners with payable commission", len(payables))

	now := time.Now()
	for _, payable := range payables {
		if err := pw.settle(ctx, payable, now); err != nil {
			log.Printf("Failed to settle partner %s: %v", payable.PartnerID, err)
			continue // leave it for the next sweep
		}
	}
	return nil
}

func (pw *PayoutWorker) settle(ctx context.Context, payable repo.PayableCommission, now time.Time) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The settled amount comes from the rows flipped inside this tx, not
	// from the earlier scan, so orders paid in between are never misbooked.
	amount, marked, err := pw.orderRepo.MarkCommissionPaid(ctx, tx, payable.PartnerID)
	if err != nil {
		return err
	}
	if marked == 0 {
		// Another instance settled this partner between the scan and now.
		return nil
	}

	payment := &domain.CommissionPayment{
		ID:          uuid.New(),
		PartnerID:   payable.PartnerID,
		Amount:      amount,
		PeriodStart: now.Add(-pw.period),
		PeriodEnd:   now,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
	}
	if err := pw.paymentRepo.Create(ctx, tx, payment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("Created pending payout of %s for partner %s", amount, payable.PartnerID)
	return nil
}
