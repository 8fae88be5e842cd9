package postgres_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phenrril/crmgraph/internal/adapters/repo/postgres"
	"github.com/phenrril/crmgraph/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}, &domain.Product{}, &domain.Order{}))
	return db
}

// The unique index, not the usecase pre-check, is what ultimately rejects a
// duplicate email: two direct inserts must yield ErrDuplicateEmail on the
// second even though no pre-check ran.
func TestCreateDuplicateEmailHitsConstraint(t *testing.T) {
	repo := postgres.NewCustomerRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{ID: uuid.New(), Name: "A", Email: "dup@example.com"}))

	err := repo.Create(ctx, &domain.Customer{ID: uuid.New(), Name: "B", Email: "dup@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestExistsByEmailIsCaseInsensitive(t *testing.T) {
	repo := postgres.NewCustomerRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{ID: uuid.New(), Name: "A", Email: "Mixed@Example.com"}))

	exists, err := repo.ExistsByEmail(ctx, "mixed@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := postgres.NewCustomerRepo(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
