package repository

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/repository"
	"slidemarket/pkg/errors"
)

type jsonFileListingRepository struct {
	collection *jsonCollection[entity.Listing]
}

func NewJSONFileListingRepository(dataDir string) repository.ListingRepository {
	return &jsonFileListingRepository{
		collection: newJSONCollection[entity.Listing](filepath.Join(dataDir, "listings.json")),
	}
}

func (r *jsonFileListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now()
	}
	return r.collection.mutate(func(records []*entity.Listing) ([]*entity.Listing, error) {
		return append(records, listing), nil
	})
}

func (r *jsonFileListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return r.find(func(l *entity.Listing) bool { return l.ID == id })
}

func (r *jsonFileListingRepository) GetByFileRef(ctx context.Context, fileRef string) (*entity.Listing, error) {
	return r.find(func(l *entity.Listing) bool { return l.FileRef == fileRef })
}

func (r *jsonFileListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	return r.filter(func(*entity.Listing) bool { return true })
}

func (r *jsonFileListingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Listing, error) {
	return r.filter(func(l *entity.Listing) bool { return l.OwnerID == ownerID })
}

func (r *jsonFileListingRepository) SearchByName(ctx context.Context, query string) ([]*entity.Listing, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	return r.filter(func(l *entity.Listing) bool {
		return strings.Contains(strings.ToLower(l.Name), query)
	})
}

func (r *jsonFileListingRepository) ListByCategory(ctx context.Context, category string) ([]*entity.Listing, error) {
	return r.filter(func(l *entity.Listing) bool {
		return strings.EqualFold(l.Category, category)
	})
}

func (r *jsonFileListingRepository) ListByLanguage(ctx context.Context, language string) ([]*entity.Listing, error) {
	return r.filter(func(l *entity.Listing) bool {
		return strings.EqualFold(l.Language, language)
	})
}

func (r *jsonFileListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	return r.collection.mutate(func(records []*entity.Listing) ([]*entity.Listing, error) {
		for i, l := range records {
			if l.ID == listing.ID {
				records[i] = listing
				return records, nil
			}
		}
		return nil, errors.NotFound("Listing", nil)
	})
}

func (r *jsonFileListingRepository) Delete(ctx context.Context, id string) error {
	return r.collection.mutate(func(records []*entity.Listing) ([]*entity.Listing, error) {
		kept := records[:0]
		found := false
		for _, l := range records {
			if l.ID == id {
				found = true
				continue
			}
			kept = append(kept, l)
		}
		if !found {
			return nil, errors.NotFound("Listing", nil)
		}
		return kept, nil
	})
}

func (r *jsonFileListingRepository) IncrementSales(ctx context.Context, id string) error {
	return r.collection.mutate(func(records []*entity.Listing) ([]*entity.Listing, error) {
		for _, l := range records {
			if l.ID == id {
				l.SalesCount++
				return records, nil
			}
		}
		return nil, errors.NotFound("Listing", nil)
	})
}

func (r *jsonFileListingRepository) find(match func(*entity.Listing) bool) (*entity.Listing, error) {
	var found *entity.Listing
	err := r.collection.view(func(records []*entity.Listing) error {
		for _, l := range records {
			if match(l) {
				found = l
				return nil
			}
		}
		return errors.NotFound("Listing", nil)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *jsonFileListingRepository) filter(match func(*entity.Listing) bool) ([]*entity.Listing, error) {
	var results []*entity.Listing
	err := r.collection.view(func(records []*entity.Listing) error {
		for _, l := range records {
			if match(l) {
				results = append(results, l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
