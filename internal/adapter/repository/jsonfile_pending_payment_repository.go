package repository

import (
	"context"
	"path/filepath"
	"time"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/pkg/errors"
)

type jsonFilePendingPaymentRepository struct {
	collection *jsonCollection[entity.PendingPayment]
}

func NewJSONFilePendingPaymentRepository(dataDir string) repository.PendingPaymentRepository {
	return &jsonFilePendingPaymentRepository{
		collection: newJSONCollection[entity.PendingPayment](filepath.Join(dataDir, "pending_payments.json")),
	}
}

func (r *jsonFilePendingPaymentRepository) Create(ctx context.Context, payment *entity.PendingPayment) error {
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	return r.collection.mutate(func(records []*entity.PendingPayment) ([]*entity.PendingPayment, error) {
		for _, p := range records {
			if p.UserID == payment.UserID {
				return nil, errors.Conflict("A payment is already awaiting review for this user")
			}
		}
		return append(records, payment), nil
	})
}

func (r *jsonFilePendingPaymentRepository) GetByUser(ctx context.Context, userID int64) (*entity.PendingPayment, error) {
	var found *entity.PendingPayment
	err := r.collection.view(func(records []*entity.PendingPayment) error {
		for _, p := range records {
			if p.UserID == userID {
				found = p
				return nil
			}
		}
		return errors.NotFound("Pending payment", nil)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *jsonFilePendingPaymentRepository) Remove(ctx context.Context, userID int64) (*entity.PendingPayment, error) {
	var removed *entity.PendingPayment
	err := r.collection.mutate(func(records []*entity.PendingPayment) ([]*entity.PendingPayment, error) {
		kept := records[:0]
		for _, p := range records {
			if p.UserID == userID {
				removed = p
				continue
			}
			kept = append(kept, p)
		}
		if removed == nil {
			return nil, errors.NotFound("Pending payment", nil)
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
