package usecase

import (
	"context"
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

func newCatalogFixture(t *testing.T) (*CatalogUseCase, repository.ListingRepository, service.FileStorage) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	listingRepo := jsonrepo.NewJSONFileListingRepository(dir)
	return NewCatalogUseCase(listingRepo, files), listingRepo, files
}

func seedCatalogListing(t *testing.T, repo repository.ListingRepository, files service.FileStorage, ownerID int64) *entity.Listing {
	t.Helper()
	fileRef, err := files.Save(service.FolderSlides, "lecture.pdf", []byte("pdf"))
	require.NoError(t, err)
	imageRef, err := files.Save(service.FolderImages, "preview.jpg", []byte("jpg"))
	require.NoError(t, err)

	listing := &entity.Listing{
		ID:            "slide-1",
		OwnerID:       ownerID,
		OwnerName:     "Seller",
		Name:          "Networks",
		Category:      "IT",
		Language:      "Azərbaycan",
		Pages:         12,
		Price:         4,
		CardNumber:    "4169",
		FileRef:       fileRef,
		FileExtension: ".pdf",
		ImageRefs:     []string{imageRef},
	}
	require.NoError(t, repo.Create(context.Background(), listing))
	return listing
}

func TestUpdateFieldValidatesInput(t *testing.T) {
	uc, repo, files := newCatalogFixture(t)
	seedCatalogListing(t, repo, files, 1)
	ctx := context.Background()

	for _, value := range []string{"abc", "-5", "0", ""} {
		_, err := uc.UpdateField(ctx, "slide-1", 1, FieldPrice, value)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "price %q", value)
	}
	for _, value := range []string{"abc", "-3", "0", "2.5"} {
		_, err := uc.UpdateField(ctx, "slide-1", 1, FieldPages, value)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "pages %q", value)
	}
	_, err := uc.UpdateField(ctx, "slide-1", 1, FieldName, "   ")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	// Nothing was persisted by the refused updates.
	got, err := repo.GetByID(ctx, "slide-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Price)
	assert.Equal(t, 12, got.Pages)
}

func TestUpdateFieldPersistsChange(t *testing.T) {
	uc, repo, files := newCatalogFixture(t)
	seedCatalogListing(t, repo, files, 1)
	ctx := context.Background()

	updated, err := uc.UpdateField(ctx, "slide-1", 1, FieldPrice, "7.5")
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.Price)

	got, err := repo.GetByID(ctx, "slide-1")
	require.NoError(t, err)
	assert.Equal(t, 7.5, got.Price)
}

func TestUpdateFieldRequiresOwnership(t *testing.T) {
	uc, repo, files := newCatalogFixture(t)
	seedCatalogListing(t, repo, files, 1)

	_, err := uc.UpdateField(context.Background(), "slide-1", 2, FieldName, "Stolen")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestDeleteRemovesListingAndFiles(t *testing.T) {
	uc, repo, files := newCatalogFixture(t)
	listing := seedCatalogListing(t, repo, files, 1)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "slide-1", 1))

	_, err := repo.GetByID(ctx, "slide-1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	_, err = files.Read(listing.FileRef)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	_, err = files.Read(listing.ImageRefs[0])
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteRequiresOwnership(t *testing.T) {
	uc, repo, files := newCatalogFixture(t)
	seedCatalogListing(t, repo, files, 1)

	err := uc.Delete(context.Background(), "slide-1", 2)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = repo.GetByID(context.Background(), "slide-1")
	assert.NoError(t, err)
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)

	_, err := uc.SearchByName(context.Background(), "   ")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	_, err = uc.SearchByCategory(context.Background(), "")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}
