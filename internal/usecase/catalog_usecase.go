package usecase

import (
	"context"
	"strconv"
	"strings"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

// Editable listing fields.
const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldPages    = "pages"
	FieldCard     = "card"
	FieldCategory = "category"
	FieldLanguage = "language"
)

type CatalogUseCase struct {
	listingRepo repository.ListingRepository
	files       service.FileStorage
}

func NewCatalogUseCase(listingRepo repository.ListingRepository, files service.FileStorage) *CatalogUseCase {
	return &CatalogUseCase{
		listingRepo: listingRepo,
		files:       files,
	}
}

func (uc *CatalogUseCase) SearchByName(ctx context.Context, query string) ([]*entity.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Validation("Search query cannot be empty", nil)
	}
	return uc.listingRepo.SearchByName(ctx, query)
}

func (uc *CatalogUseCase) SearchByCategory(ctx context.Context, category string) ([]*entity.Listing, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.Validation("Category cannot be empty", nil)
	}
	return uc.listingRepo.ListByCategory(ctx, category)
}

func (uc *CatalogUseCase) SearchByLanguage(ctx context.Context, language string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByLanguage(ctx, language)
}

func (uc *CatalogUseCase) MyListings(ctx context.Context, ownerID int64) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByOwner(ctx, ownerID)
}

// UpdateField validates value against the chosen field and persists the
// change. Only the listing owner may edit.
func (uc *CatalogUseCase) UpdateField(ctx context.Context, listingID string, ownerID int64, field, value string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, errors.Unauthorized("Only the owner can edit this listing", nil)
	}

	value = strings.TrimSpace(value)
	switch field {
	case FieldPrice:
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price <= 0 {
			return nil, errors.Validation("Enter a valid price, for example 5 or 5.5", nil)
		}
		listing.Price = price
	case FieldPages:
		pages, err := strconv.Atoi(value)
		if err != nil || pages <= 0 {
			return nil, errors.Validation("Enter a valid page count, for example 15", nil)
		}
		listing.Pages = pages
	case FieldName:
		if value == "" {
			return nil, errors.Validation("Name cannot be empty", nil)
		}
		listing.Name = value
	case FieldCard:
		if value == "" {
			return nil, errors.Validation("Card number cannot be empty", nil)
		}
		listing.CardNumber = value
	case FieldCategory:
		if value == "" {
			return nil, errors.Validation("Category cannot be empty", nil)
		}
		listing.Category = value
	case FieldLanguage:
		if value == "" {
			return nil, errors.Validation("Language cannot be empty", nil)
		}
		listing.Language = value
	default:
		return nil, errors.Validation("Unknown field", nil)
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes the listing and its stored file and preview images. Only the
// listing owner may delete.
func (uc *CatalogUseCase) Delete(ctx context.Context, listingID string, ownerID int64) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != ownerID {
		return errors.Unauthorized("Only the owner can delete this listing", nil)
	}

	if err := uc.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	if err := uc.files.Delete(listing.FileRef); err != nil {
		logger.Warn("Failed to delete slide file %s: %v", listing.FileRef, err)
	}
	for _, ref := range listing.ImageRefs {
		if err := uc.files.Delete(ref); err != nil {
			logger.Warn("Failed to delete preview image %s: %v", ref, err)
		}
	}
	return nil
}
