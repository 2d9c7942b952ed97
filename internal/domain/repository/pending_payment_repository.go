package repository

import (
	"context"

	"slidemarket/internal/domain/entity"
)

type PendingPaymentRepository interface {
	// Create fails with Conflict if the user already has a payment in flight.
	Create(ctx context.Context, payment *entity.PendingPayment) error
	GetByUser(ctx context.Context, userID int64) (*entity.PendingPayment, error)
	// Remove deletes the pending payment and returns it. A second caller racing
	// on the same user gets NotFound, so an approval is applied at most once.
	Remove(ctx context.Context, userID int64) (*entity.PendingPayment, error)
}
