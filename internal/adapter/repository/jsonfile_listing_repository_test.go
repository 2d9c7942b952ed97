package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidemarket/internal/domain/entity"
	"slidemarket/pkg/errors"
)

func seedListing(t *testing.T, dir, id, name, category, language string, ownerID int64) *entity.Listing {
	t.Helper()
	repo := NewJSONFileListingRepository(dir)
	l := &entity.Listing{
		ID:            id,
		OwnerID:       ownerID,
		OwnerName:     "Seller",
		Name:          name,
		Category:      category,
		Language:      language,
		Pages:         15,
		Price:         5.5,
		CardNumber:    "4169000000000000",
		FileRef:       "slides/" + id + ".pdf",
		FileExtension: ".pdf",
		FileType:      "application/pdf",
		ImageRefs:     []string{"images/" + id + ".jpg"},
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestListingSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	created := seedListing(t, dir, "s1", "Thermodynamics", "IT", "Azərbaycan", 42)

	// A fresh repository over the same directory sees the same record.
	repo := NewJSONFileListingRepository(dir)
	got, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.OwnerID, got.OwnerID)
	assert.Equal(t, created.ImageRefs, got.ImageRefs)
	assert.Equal(t, created.Price, got.Price)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listings.json"), []byte("{not json"), 0o644))

	repo := NewJSONFileListingRepository(dir)
	listings, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listings)

	// The collection is writable again after the corruption.
	seedListing(t, dir, "s1", "Algebra", "Riyaziyyat", "Rus", 1)
	listings, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestSearchByNameIsSubstringAndCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	seedListing(t, dir, "s1", "Organic Chemistry Basics", "Tibb", "İngilis", 1)
	seedListing(t, dir, "s2", "Linear Algebra", "Riyaziyyat", "Rus", 2)

	repo := NewJSONFileListingRepository(dir)
	results, err := repo.SearchByName(context.Background(), "chemistry")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "s1", results[0].ID)

	results, err = repo.SearchByName(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCategoryMatchIsExactButCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	seedListing(t, dir, "s1", "Networks", "IT", "Azərbaycan", 1)
	seedListing(t, dir, "s2", "Calculus", "Riyaziyyat", "Azərbaycan", 2)

	repo := NewJSONFileListingRepository(dir)
	results, err := repo.ListByCategory(context.Background(), "it")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "s1", results[0].ID)
}

func TestIncrementSales(t *testing.T) {
	dir := t.TempDir()
	seedListing(t, dir, "s1", "Networks", "IT", "Azərbaycan", 1)

	repo := NewJSONFileListingRepository(dir)
	require.NoError(t, repo.IncrementSales(context.Background(), "s1"))
	require.NoError(t, repo.IncrementSales(context.Background(), "s1"))

	got, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.SalesCount)

	err = repo.IncrementSales(context.Background(), "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteRemovesOnlyTarget(t *testing.T) {
	dir := t.TempDir()
	seedListing(t, dir, "s1", "Networks", "IT", "Azərbaycan", 1)
	seedListing(t, dir, "s2", "Calculus", "Riyaziyyat", "Azərbaycan", 1)

	repo := NewJSONFileListingRepository(dir)
	require.NoError(t, repo.Delete(context.Background(), "s1"))

	_, err := repo.GetByID(context.Background(), "s1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	_, err = repo.GetByID(context.Background(), "s2")
	assert.NoError(t, err)

	err = repo.Delete(context.Background(), "s1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListByOwner(t *testing.T) {
	dir := t.TempDir()
	seedListing(t, dir, "s1", "Networks", "IT", "Azərbaycan", 1)
	seedListing(t, dir, "s2", "Calculus", "Riyaziyyat", "Azərbaycan", 2)
	seedListing(t, dir, "s3", "Databases", "IT", "İngilis", 1)

	repo := NewJSONFileListingRepository(dir)
	mine, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
