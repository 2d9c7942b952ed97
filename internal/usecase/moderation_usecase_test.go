package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonrepo "slidemarket/internal/adapter/repository"
	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/internal/domain/service"
	"slidemarket/internal/infrastructure/storage"
	"slidemarket/pkg/errors"
)

const testAdminChatID = int64(999)

type sentMessage struct {
	ChatID   int64
	Kind     string
	Text     string
	Filename string
	Buttons  [][]service.Button
}

// fakeMessenger records outbound messages instead of talking to Telegram.
type fakeMessenger struct {
	mu   sync.Mutex
	Sent []sentMessage
}

func (f *fakeMessenger) record(m sentMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, m)
}

func (f *fakeMessenger) SendText(ctx context.Context, chatID int64, text string, buttons ...[]service.Button) error {
	f.record(sentMessage{ChatID: chatID, Kind: "text", Text: text, Buttons: buttons})
	return nil
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string, buttons ...[]service.Button) error {
	f.record(sentMessage{ChatID: chatID, Kind: "photo", Text: caption, Buttons: buttons})
	return nil
}

func (f *fakeMessenger) SendDocument(ctx context.Context, chatID int64, document []byte, filename, caption string, buttons ...[]service.Button) error {
	f.record(sentMessage{ChatID: chatID, Kind: "document", Text: caption, Filename: filename, Buttons: buttons})
	return nil
}

func (f *fakeMessenger) textsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, m := range f.Sent {
		if m.ChatID == chatID {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

func (f *fakeMessenger) documentsTo(chatID int64) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []sentMessage
	for _, m := range f.Sent {
		if m.ChatID == chatID && m.Kind == "document" {
			docs = append(docs, m)
		}
	}
	return docs
}

type moderationFixture struct {
	uc          *ModerationUseCase
	bot         *fakeMessenger
	files       service.FileStorage
	listingRepo repository.ListingRepository
	uploadRepo  repository.PendingUploadRepository
	paymentRepo repository.PendingPaymentRepository
}

func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()
	dir := t.TempDir()

	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	bot := &fakeMessenger{}
	listingRepo := jsonrepo.NewJSONFileListingRepository(dir)
	uploadRepo := jsonrepo.NewJSONFilePendingUploadRepository(dir)
	paymentRepo := jsonrepo.NewJSONFilePendingPaymentRepository(dir)

	return &moderationFixture{
		uc: NewModerationUseCase(
			listingRepo, uploadRepo, paymentRepo, files, bot, testAdminChatID, 0.70),
		bot:         bot,
		files:       files,
		listingRepo: listingRepo,
		uploadRepo:  uploadRepo,
		paymentRepo: paymentRepo,
	}
}

func (fx *moderationFixture) seedUpload(t *testing.T, userID int64, slideID string) *entity.PendingUpload {
	t.Helper()
	fileRef, err := fx.files.Save(service.FolderSlides, "lecture.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)
	imageRef, err := fx.files.Save(service.FolderImages, "preview.jpg", []byte("jpg-bytes"))
	require.NoError(t, err)

	upload := &entity.PendingUpload{
		SlideID:       slideID,
		UserID:        userID,
		UserName:      "Aysel",
		OwnerID:       userID,
		OwnerName:     "Aysel",
		Name:          "Physics 101",
		Category:      "IT",
		Price:         10,
		Language:      "Azərbaycan",
		Pages:         20,
		CardNumber:    "4169111122223333",
		FileRef:       fileRef,
		FileExtension: ".pdf",
		ImageRefs:     []string{imageRef},
	}
	require.NoError(t, fx.uploadRepo.Create(context.Background(), upload))
	return upload
}

func (fx *moderationFixture) seedListingWithPayment(t *testing.T, buyerID int64) *entity.Listing {
	t.Helper()
	fileRef, err := fx.files.Save(service.FolderSlides, "lecture.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)
	receiptRef, err := fx.files.Save(service.FolderReceipts, "receipt.jpg", []byte("jpg-bytes"))
	require.NoError(t, err)

	listing := &entity.Listing{
		ID:            "slide-1",
		OwnerID:       55,
		OwnerName:     "Seller",
		Name:          "Physics 101",
		Category:      "IT",
		Language:      "Azərbaycan",
		Pages:         20,
		Price:         10,
		CardNumber:    "4169111122223333",
		FileRef:       fileRef,
		FileExtension: ".pdf",
		FileType:      "application/pdf",
		ImageRefs:     nil,
	}
	require.NoError(t, fx.listingRepo.Create(context.Background(), listing))
	require.NoError(t, fx.paymentRepo.Create(context.Background(), &entity.PendingPayment{
		UserID:          buyerID,
		UserName:        "Murad",
		ListingFileRef:  fileRef,
		ListingName:     listing.Name,
		ReceiptImageRef: receiptRef,
	}))
	return listing
}

func TestDecideUploadRejectsNonAdmin(t *testing.T) {
	fx := newModerationFixture(t)
	fx.seedUpload(t, 7, "slide-1")

	err := fx.uc.DecideUpload(context.Background(), 12345, 7, "slide-1", true)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	// The upload is untouched and the caller was told off.
	_, err = fx.uploadRepo.Get(context.Background(), 7, "slide-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, fx.bot.textsTo(12345))
}

func TestRejectUploadDiscardsEverything(t *testing.T) {
	fx := newModerationFixture(t)
	upload := fx.seedUpload(t, 7, "slide-1")

	require.NoError(t, fx.uc.DecideUpload(context.Background(), testAdminChatID, 7, "slide-1", false))

	_, err := fx.uploadRepo.Get(context.Background(), 7, "slide-1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = fx.files.Read(upload.FileRef)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	_, err = fx.files.Read(upload.ImageRefs[0])
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	listings, err := fx.listingRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listings)

	assert.NotEmpty(t, fx.bot.textsTo(7))
}

func TestApproveUploadPublishesListing(t *testing.T) {
	fx := newModerationFixture(t)
	upload := fx.seedUpload(t, 7, "slide-1")

	require.NoError(t, fx.uc.DecideUpload(context.Background(), testAdminChatID, 7, "slide-1", true))

	listing, err := fx.listingRepo.GetByID(context.Background(), "slide-1")
	require.NoError(t, err)
	assert.Equal(t, upload.Name, listing.Name)
	assert.Equal(t, upload.UserID, listing.OwnerID)
	assert.Equal(t, "application/pdf", listing.FileType)
	assert.Equal(t, 0, listing.SalesCount)

	// The pending record was consumed; a second decision finds nothing.
	err = fx.uc.DecideUpload(context.Background(), testAdminChatID, 7, "slide-1", true)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	listings, err := fx.listingRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestApprovePaymentDeliversAndCountsOnce(t *testing.T) {
	fx := newModerationFixture(t)
	listing := fx.seedListingWithPayment(t, 9)

	require.NoError(t, fx.uc.DecidePayment(context.Background(), testAdminChatID, 9, true))

	got, err := fx.listingRepo.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SalesCount)

	docs := fx.bot.documentsTo(9)
	require.Len(t, docs, 1)
	assert.Equal(t, "Physics 101.pdf", docs[0].Filename)

	// The admin is told the payout owed to the seller at the 70% share.
	payout := fmt.Sprintf("%.2f AZN", listing.Price*0.70)
	var sawPayout bool
	for _, text := range fx.bot.textsTo(testAdminChatID) {
		if strings.Contains(text, "Payout") && strings.Contains(text, payout) {
			sawPayout = true
		}
	}
	assert.True(t, sawPayout)

	// A racing second approval loses the claim and changes nothing.
	err = fx.uc.DecidePayment(context.Background(), testAdminChatID, 9, true)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	got, err = fx.listingRepo.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SalesCount)
}

func TestRejectPaymentDiscardsReceipt(t *testing.T) {
	fx := newModerationFixture(t)
	listing := fx.seedListingWithPayment(t, 9)

	payment, err := fx.paymentRepo.GetByUser(context.Background(), 9)
	require.NoError(t, err)

	require.NoError(t, fx.uc.DecidePayment(context.Background(), testAdminChatID, 9, false))

	_, err = fx.files.Read(payment.ReceiptImageRef)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	got, err := fx.listingRepo.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SalesCount)

	assert.Empty(t, fx.bot.documentsTo(9))
	assert.NotEmpty(t, fx.bot.textsTo(9))
}

func TestApprovePaymentForDeletedListing(t *testing.T) {
	fx := newModerationFixture(t)
	listing := fx.seedListingWithPayment(t, 9)
	require.NoError(t, fx.listingRepo.Delete(context.Background(), listing.ID))

	err := fx.uc.DecidePayment(context.Background(), testAdminChatID, 9, true)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// Both sides learn the purchase could not complete.
	assert.NotEmpty(t, fx.bot.textsTo(9))
	assert.NotEmpty(t, fx.bot.textsTo(testAdminChatID))
}
