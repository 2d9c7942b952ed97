package usecase

import (
	"context"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
)

// Payment receipts are bounded to 640x640 before storage.
const ReceiptMaxDimension = 640

type PurchaseUseCase struct {
	paymentRepo repository.PendingPaymentRepository
	files       service.FileStorage
	media       service.MediaNormalizer
}

func NewPurchaseUseCase(
	paymentRepo repository.PendingPaymentRepository,
	files service.FileStorage,
	media service.MediaNormalizer,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		paymentRepo: paymentRepo,
		files:       files,
		media:       media,
	}
}

// SubmitReceipt normalizes and stores a payment receipt photo and records the
// pending payment. A user can have only one payment awaiting review; a second
// purchase attempt is rejected until the administrator decides the first.
func (uc *PurchaseUseCase) SubmitReceipt(ctx context.Context, userID int64, userName string, listing *entity.Listing, photo []byte) (*entity.PendingPayment, error) {
	if _, err := uc.paymentRepo.GetByUser(ctx, userID); err == nil {
		return nil, errors.Conflict("You already have a payment awaiting review")
	}

	normalized, err := uc.media.Normalize(photo, ReceiptMaxDimension)
	if err != nil {
		return nil, err
	}

	ref, err := uc.files.Save(service.FolderReceipts, "receipt.jpg", normalized)
	if err != nil {
		return nil, err
	}

	payment := &entity.PendingPayment{
		UserID:          userID,
		UserName:        userName,
		ListingFileRef:  listing.FileRef,
		ListingName:     listing.Name,
		ReceiptImageRef: ref,
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		uc.files.Delete(ref)
		return nil, err
	}
	return payment, nil
}
