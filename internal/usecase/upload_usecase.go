package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

const (
	MaxSlideFileSize = 30 * 1024 * 1024

	// Listing previews are bounded to 1280x1280 before storage.
	PreviewMaxDimension = 1280
)

// Supported slide formats, mime type to extension.
var supportedSlideTypes = map[string]string{
	"application/pdf":               ".pdf",
	"application/vnd.ms-powerpoint": ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
}

// IsSupportedSlideType reports whether a mime type is an accepted slide
// format. The transport uses it to skip downloading files that would be
// rejected anyway.
func IsSupportedSlideType(mimeType string) bool {
	_, ok := supportedSlideTypes[mimeType]
	return ok
}

// MimeTypeForExtension maps a slide file extension back to its mime type.
// Unknown extensions fall back to PDF.
func MimeTypeForExtension(ext string) string {
	for mime, e := range supportedSlideTypes {
		if e == ext {
			return mime
		}
	}
	return "application/pdf"
}

type UploadUseCase struct {
	uploadRepo repository.PendingUploadRepository
	files      service.FileStorage
	media      service.MediaNormalizer
	validate   *validator.Validate
}

func NewUploadUseCase(
	uploadRepo repository.PendingUploadRepository,
	files service.FileStorage,
	media service.MediaNormalizer,
) *UploadUseCase {
	return &UploadUseCase{
		uploadRepo: uploadRepo,
		files:      files,
		media:      media,
		validate:   validator.New(),
	}
}

// SaveSlideFile validates the incoming document and stores it, returning the
// file reference and its normalized extension.
func (uc *UploadUseCase) SaveSlideFile(ctx context.Context, fileName, mimeType string, size int64, data []byte) (string, string, error) {
	ext, ok := supportedSlideTypes[mimeType]
	if !ok {
		return "", "", errors.Validation("Only PDF and PowerPoint (PPT/PPTX) files are supported", nil)
	}
	if size > MaxSlideFileSize {
		return "", "", errors.Validation("File is larger than 30MB", nil)
	}
	if len(data) == 0 {
		return "", "", errors.Internal("Slide file content was not delivered", nil)
	}

	// Prefer the extension of the original filename when it is one of ours,
	// and make sure the stored name carries it exactly once.
	if e := strings.ToLower(filepath.Ext(fileName)); e == ".pdf" || e == ".ppt" || e == ".pptx" {
		ext = e
	}
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.TrimSuffix(base, ext)

	ref, err := uc.files.Save(service.FolderSlides, base+ext, data)
	if err != nil {
		return "", "", err
	}
	return ref, ext, nil
}

// SavePreviewImage normalizes a preview photo and stores it.
func (uc *UploadUseCase) SavePreviewImage(ctx context.Context, photo []byte) (string, error) {
	normalized, err := uc.media.Normalize(photo, PreviewMaxDimension)
	if err != nil {
		return "", err
	}
	return uc.files.Save(service.FolderImages, "preview.jpg", normalized)
}

// Submit turns an accumulated upload draft into a PendingUpload awaiting
// administrator review.
func (uc *UploadUseCase) Submit(ctx context.Context, upload *entity.PendingUpload) error {
	if upload.SlideID == "" {
		upload.SlideID = uuid.NewString()
	}
	upload.OwnerID = upload.UserID
	upload.OwnerName = upload.UserName
	upload.CreatedAt = time.Now()

	if err := uc.validate.Struct(upload); err != nil {
		return errors.Validation("Upload is missing required fields", err)
	}
	return uc.uploadRepo.Create(ctx, upload)
}

// DiscardDraft removes files stored for a flow that was cancelled before
// submission.
func (uc *UploadUseCase) DiscardDraft(ctx context.Context, fileRef string, imageRefs []string) {
	if fileRef != "" {
		if err := uc.files.Delete(fileRef); err != nil {
			logger.Warn("Failed to discard draft slide file %s: %v", fileRef, err)
		}
	}
	for _, ref := range imageRefs {
		if err := uc.files.Delete(ref); err != nil {
			logger.Warn("Failed to discard draft preview image %s: %v", ref, err)
		}
	}
}
