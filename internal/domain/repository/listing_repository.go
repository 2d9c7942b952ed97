package repository

import (
	"context"

	"slidemarket/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	GetByFileRef(ctx context.Context, fileRef string) (*entity.Listing, error)
	List(ctx context.Context) ([]*entity.Listing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Listing, error)
	SearchByName(ctx context.Context, query string) ([]*entity.Listing, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Listing, error)
	ListByLanguage(ctx context.Context, language string) ([]*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
	IncrementSales(ctx context.Context, id string) error
}
