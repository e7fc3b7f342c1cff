package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pgf/backend/internal/models"
)

var testDBCounter int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	svc := NewCategoryService(openTestDB(t))

	created, err := svc.Create(&models.Category{Name: "Toiles de jute"})
	require.NoError(t, err)
	assert.Equal(t, "toiles-de-jute", created.Slug)
}

func TestCategoryCreateDuplicateSlug(t *testing.T) {
	svc := NewCategoryService(openTestDB(t))

	_, err := svc.Create(&models.Category{Name: "Peintures", Slug: "peintures"})
	require.NoError(t, err)

	_, err = svc.Create(&models.Category{Name: "Autres peintures", Slug: "peintures"})
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	_, err = svc.Create(&models.Category{Name: "Peintures", Slug: "peintures-2"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestCategoryUpdateDerivesSlugWhenEmpty(t *testing.T) {
	svc := NewCategoryService(openTestDB(t))

	created, err := svc.Create(&models.Category{Name: "Sculptures", Slug: "sculptures"})
	require.NoError(t, err)

	// an update request without a slug must not blank the stored one
	updated, err := svc.Update(created.ID, &models.Category{Name: "Sculptures en fer"})
	require.NoError(t, err)
	assert.Equal(t, "sculptures-en-fer", updated.Slug)

	found, err := svc.GetBySlug("sculptures-en-fer")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCategoryUpdateKeepsExplicitSlug(t *testing.T) {
	svc := NewCategoryService(openTestDB(t))

	created, err := svc.Create(&models.Category{Name: "Collages", Slug: "collages"})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, &models.Category{Name: "Collages et dessins", Slug: "collages-dessins"})
	require.NoError(t, err)
	assert.Equal(t, "collages-dessins", updated.Slug)
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	db := openTestDB(t)
	categories := NewCategoryService(db)
	artworks := NewArtworkService(db)

	category, err := categories.Create(&models.Category{Name: "Peintures", Slug: "peintures"})
	require.NoError(t, err)

	_, err = artworks.Create(&models.Artwork{Title: "Sans titre", IsAvailable: true}, []uint{category.ID})
	require.NoError(t, err)

	err = categories.Delete(category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// still retrievable
	_, err = categories.GetByID(category.ID)
	assert.NoError(t, err)
}
