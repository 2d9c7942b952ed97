package usecase

import (
	"context"
	"fmt"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

// Callback payloads for the administrator's approve/reject buttons.
func ApproveUploadCallback(userID int64, slideID string) string {
	return fmt.Sprintf("approve_upload_%d_%s", userID, slideID)
}

func RejectUploadCallback(userID int64, slideID string) string {
	return fmt.Sprintf("reject_upload_%d_%s", userID, slideID)
}

func ApprovePaymentCallback(userID int64) string {
	return fmt.Sprintf("approve_payment_%d", userID)
}

func RejectPaymentCallback(userID int64) string {
	return fmt.Sprintf("reject_payment_%d", userID)
}

// ModerationUseCase routes new uploads and payments to the single configured
// administrator and applies the administrator's decisions.
type ModerationUseCase struct {
	listingRepo repository.ListingRepository
	uploadRepo  repository.PendingUploadRepository
	paymentRepo repository.PendingPaymentRepository
	files       service.FileStorage
	bot         service.Messenger
	adminChatID int64
	sellerShare float64
}

func NewModerationUseCase(
	listingRepo repository.ListingRepository,
	uploadRepo repository.PendingUploadRepository,
	paymentRepo repository.PendingPaymentRepository,
	files service.FileStorage,
	bot service.Messenger,
	adminChatID int64,
	sellerShare float64,
) *ModerationUseCase {
	return &ModerationUseCase{
		listingRepo: listingRepo,
		uploadRepo:  uploadRepo,
		paymentRepo: paymentRepo,
		files:       files,
		bot:         bot,
		adminChatID: adminChatID,
		sellerShare: sellerShare,
	}
}

func (uc *ModerationUseCase) authorize(ctx context.Context, callerChatID int64) error {
	if callerChatID == uc.adminChatID {
		return nil
	}
	uc.bot.SendText(ctx, callerChatID, "This action is only available to the administrator.")
	return errors.Unauthorized("Caller is not the administrator", nil)
}

// NotifyNewUpload forwards a submitted upload to the administrator: preview
// images, the slide document, and a summary with approve/reject buttons.
// Undeliverable media degrades to a textual notice so the decision buttons
// always arrive.
func (uc *ModerationUseCase) NotifyNewUpload(ctx context.Context, upload *entity.PendingUpload) error {
	for i, ref := range upload.ImageRefs {
		data, err := uc.files.Read(ref)
		if err == nil {
			caption := fmt.Sprintf("Preview image %d - %s", i+1, upload.Name)
			err = uc.bot.SendPhoto(ctx, uc.adminChatID, data, caption)
		}
		if err != nil {
			logger.Error("Failed to deliver preview image %s to admin: %v", ref, err)
			uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("Preview image %d could not be delivered.", i+1))
		}
	}

	summary := fmt.Sprintf(
		"New slide submitted!\n"+
			"User: %s (ID: %d)\n"+
			"Slide: %s\n"+
			"Category: %s\n"+
			"Language: %s\n"+
			"Pages: %d\n"+
			"Price: %.2f AZN\n"+
			"Format: %s\n"+
			"Card: %s",
		upload.UserName, upload.UserID, upload.Name, upload.Category,
		upload.Language, upload.Pages, upload.Price, upload.FileExtension, upload.CardNumber,
	)
	buttons := [][]service.Button{{
		{Label: "✅ Approve", Data: ApproveUploadCallback(upload.UserID, upload.SlideID)},
		{Label: "❌ Reject", Data: RejectUploadCallback(upload.UserID, upload.SlideID)},
	}}

	data, err := uc.files.Read(upload.FileRef)
	if err == nil {
		err = uc.bot.SendDocument(ctx, uc.adminChatID, data, upload.Name+upload.FileExtension, summary, buttons...)
	}
	if err != nil {
		logger.Error("Failed to deliver slide document %s to admin: %v", upload.FileRef, err)
		return uc.bot.SendText(ctx, uc.adminChatID, summary+"\n\n⚠️ The slide file could not be delivered.", buttons...)
	}
	return nil
}

// DecideUpload applies the administrator's verdict on a pending upload. The
// pending record is claimed first, so a repeated decision finds nothing.
func (uc *ModerationUseCase) DecideUpload(ctx context.Context, callerChatID, userID int64, slideID string, approve bool) error {
	if err := uc.authorize(ctx, callerChatID); err != nil {
		return err
	}

	upload, err := uc.uploadRepo.Remove(ctx, userID, slideID)
	if err != nil {
		uc.bot.SendText(ctx, uc.adminChatID,
			fmt.Sprintf("Upload not found (User ID: %d, Slide ID: %s).", userID, slideID))
		return err
	}

	if !approve {
		uc.files.Delete(upload.FileRef)
		for _, ref := range upload.ImageRefs {
			uc.files.Delete(ref)
		}
		uc.bot.SendText(ctx, userID,
			fmt.Sprintf("❌ Your slide ('%s') was rejected by the administrator.\nPlease try again or contact the administrator.", upload.Name))
		uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("✅ Slide (ID: %s) rejected.", slideID))
		logger.Info("Admin rejected upload user=%d slide=%s", userID, slideID)
		return nil
	}

	listing := &entity.Listing{
		ID:            upload.SlideID,
		OwnerID:       upload.OwnerID,
		OwnerName:     upload.OwnerName,
		Name:          upload.Name,
		Category:      upload.Category,
		Language:      upload.Language,
		Pages:         upload.Pages,
		Price:         upload.Price,
		CardNumber:    upload.CardNumber,
		FileRef:       upload.FileRef,
		FileExtension: upload.FileExtension,
		FileType:      MimeTypeForExtension(upload.FileExtension),
		ImageRefs:     upload.ImageRefs,
		CreatedAt:     upload.CreatedAt,
	}
	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("Failed to publish slide (ID: %s): %s", slideID, err))
		return err
	}

	uc.bot.SendText(ctx, userID,
		fmt.Sprintf("✅ Your slide ('%s') was approved and published!\nOther users can now find it in search.", upload.Name))
	uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("✅ Slide (ID: %s) approved and published.", slideID))
	logger.Info("Admin approved upload user=%d slide=%s", userID, slideID)
	return nil
}

// NotifyNewPayment forwards a submitted receipt to the administrator with
// approve/reject buttons.
func (uc *ModerationUseCase) NotifyNewPayment(ctx context.Context, payment *entity.PendingPayment, listing *entity.Listing) error {
	summary := fmt.Sprintf(
		"New payment!\n"+
			"Buyer: %s (ID: %d)\n"+
			"Slide: %s\n"+
			"Seller: %s (ID: %d)\n"+
			"Card: %s",
		payment.UserName, payment.UserID, payment.ListingName,
		listing.OwnerName, listing.OwnerID, listing.CardNumber,
	)
	buttons := [][]service.Button{{
		{Label: "✅ Approve", Data: ApprovePaymentCallback(payment.UserID)},
		{Label: "❌ Reject", Data: RejectPaymentCallback(payment.UserID)},
	}}

	data, err := uc.files.Read(payment.ReceiptImageRef)
	if err == nil {
		err = uc.bot.SendPhoto(ctx, uc.adminChatID, data, summary, buttons...)
	}
	if err != nil {
		logger.Error("Failed to deliver receipt %s to admin: %v", payment.ReceiptImageRef, err)
		return uc.bot.SendText(ctx, uc.adminChatID, summary+"\n\n⚠️ The receipt image could not be delivered.", buttons...)
	}
	return nil
}

// DecidePayment applies the administrator's verdict on a pending payment.
// The pending record is claimed before any side effect, so two racing
// approvals increment the sales count exactly once: the loser gets NotFound.
func (uc *ModerationUseCase) DecidePayment(ctx context.Context, callerChatID, userID int64, approve bool) error {
	if err := uc.authorize(ctx, callerChatID); err != nil {
		return err
	}

	payment, err := uc.paymentRepo.Remove(ctx, userID)
	if err != nil {
		uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("Payment not found (User ID: %d).", userID))
		return err
	}

	if !approve {
		uc.files.Delete(payment.ReceiptImageRef)
		uc.bot.SendText(ctx, userID,
			fmt.Sprintf("❌ Your payment was rejected by the administrator (Slide: %s).\nPlease try again or contact the administrator.", payment.ListingName))
		uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("✅ Payment (User ID: %d) rejected.", userID))
		logger.Info("Admin rejected payment user=%d", userID)
		return nil
	}

	// The listing may have been deleted between submission and decision.
	listing, err := uc.listingRepo.GetByFileRef(ctx, payment.ListingFileRef)
	if err != nil {
		uc.bot.SendText(ctx, uc.adminChatID,
			fmt.Sprintf("Slide for this payment no longer exists (Slide: %s).", payment.ListingName))
		uc.bot.SendText(ctx, userID,
			fmt.Sprintf("❌ The slide '%s' is no longer available. Your payment could not be completed; contact the administrator.", payment.ListingName))
		return err
	}

	if err := uc.listingRepo.IncrementSales(ctx, listing.ID); err != nil {
		uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("Failed to record the sale: %s", err))
		return err
	}

	payout := listing.Price * uc.sellerShare
	uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf(
		"💰 Payout due:\n\n"+
			"Seller ID: %d\n"+
			"Card: %s\n"+
			"Amount: %.2f AZN\n"+
			"(Sale price: %.2f AZN)",
		listing.OwnerID, listing.CardNumber, payout, listing.Price,
	))

	data, err := uc.files.Read(listing.FileRef)
	if err == nil {
		err = uc.bot.SendDocument(ctx, userID, data, listing.FileName(),
			fmt.Sprintf("Slide: %s", listing.Name))
	}
	if err != nil {
		logger.Error("Failed to deliver slide %s to buyer %d: %v", listing.FileRef, userID, err)
		uc.bot.SendText(ctx, userID,
			"✅ Your payment was approved, but the slide file could not be delivered. Please contact the administrator.")
		uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("⚠️ Slide could not be delivered to user %d.", userID))
		return errors.DeliveryFault("Failed to deliver slide to buyer", err)
	}

	uc.bot.SendText(ctx, userID, "✅ Your payment was approved! The slide file was sent above.")
	uc.bot.SendText(ctx, uc.adminChatID, fmt.Sprintf("✅ Slide delivered to user %d.", userID))
	logger.Info("Admin approved payment user=%d listing=%s", userID, listing.ID)
	return nil
}
