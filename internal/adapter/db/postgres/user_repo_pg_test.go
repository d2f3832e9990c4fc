package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	domain "bookshelf-service/internal/domain/user"
	apperrors "bookshelf-service/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{}, &SavedBookSchema{})
	require.NoError(t, err)

	return db
}

func setupRepo(t *testing.T) *UserRepoPG {
	return NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
}

func createUser(t *testing.T, repo *UserRepoPG, username, email string) int64 {
	id, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return id
}

func TestUserRepoPG_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Empty(t, u.SavedBooks)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, id, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, id, byEmail.ID)
}

func TestUserRepoPG_GetMisses(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 12345)
	var nferr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nferr)

	u, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepoPG_Create_DuplicateUsername(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	createUser(t, repo, "alice", "alice@x.com")

	_, err := repo.Create(ctx, &domain.User{
		Username:     "alice",
		Email:        "other@x.com",
		PasswordHash: "hash",
	})
	assert.Error(t, err)
}

func TestUserRepoPG_AddBookIfAbsent_Idempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	book := domain.Book{
		BookID:      "b1",
		Title:       "Dune",
		Description: "desert planet",
		Authors:     []string{"Frank Herbert"},
	}

	first, err := repo.AddBookIfAbsent(ctx, id, book)
	require.NoError(t, err)
	require.Len(t, first.SavedBooks, 1)

	// saving the same bookId again must not duplicate
	second, err := repo.AddBookIfAbsent(ctx, id, book)
	require.NoError(t, err)
	require.Len(t, second.SavedBooks, 1)
	assert.Equal(t, first.SavedBooks, second.SavedBooks)
}

func TestUserRepoPG_AddBookIfAbsent_DoesNotOverwrite(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	_, err := repo.AddBookIfAbsent(ctx, id, domain.Book{
		BookID:      "b1",
		Title:       "Dune",
		Description: "desert planet",
	})
	require.NoError(t, err)

	// a conflicting save with different fields keeps the original entry
	updated, err := repo.AddBookIfAbsent(ctx, id, domain.Book{
		BookID:      "b1",
		Title:       "Dune Messiah",
		Description: "a different description",
	})
	require.NoError(t, err)
	require.Len(t, updated.SavedBooks, 1)
	assert.Equal(t, "Dune", updated.SavedBooks[0].Title)
	assert.Equal(t, "desert planet", updated.SavedBooks[0].Description)
}

func TestUserRepoPG_AddBookIfAbsent_KeyUniqueness(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	saves := []string{"b1", "b2", "b1", "b3", "b2", "b1"}
	for _, bookID := range saves {
		_, err := repo.AddBookIfAbsent(ctx, id, domain.Book{
			BookID:      bookID,
			Title:       "title " + bookID,
			Description: "description " + bookID,
		})
		require.NoError(t, err)
	}

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, u.SavedBooks, 3)

	seen := map[string]bool{}
	for _, b := range u.SavedBooks {
		assert.False(t, seen[b.BookID], "duplicate bookId %s", b.BookID)
		seen[b.BookID] = true
	}
}

func TestUserRepoPG_RemoveBook_Idempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	_, err := repo.AddBookIfAbsent(ctx, id, domain.Book{
		BookID:      "b1",
		Title:       "Dune",
		Description: "desert planet",
	})
	require.NoError(t, err)

	removed, err := repo.RemoveBook(ctx, id, "b1")
	require.NoError(t, err)
	assert.Empty(t, removed.SavedBooks)

	// removing an absent key succeeds and changes nothing
	again, err := repo.RemoveBook(ctx, id, "b1")
	require.NoError(t, err)
	assert.Empty(t, again.SavedBooks)

	never, err := repo.RemoveBook(ctx, id, "never-saved")
	require.NoError(t, err)
	assert.Empty(t, never.SavedBooks)
}

func TestUserRepoPG_OwnershipIsolation(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	aliceID := createUser(t, repo, "alice", "alice@x.com")
	bobID := createUser(t, repo, "bob", "bob@x.com")

	_, err := repo.AddBookIfAbsent(ctx, aliceID, domain.Book{
		BookID:      "b1",
		Title:       "Dune",
		Description: "desert planet",
	})
	require.NoError(t, err)
	_, err = repo.AddBookIfAbsent(ctx, bobID, domain.Book{
		BookID:      "b1",
		Title:       "Dune",
		Description: "desert planet",
	})
	require.NoError(t, err)

	// alice removing b1 must not touch bob's copy
	alice, err := repo.RemoveBook(ctx, aliceID, "b1")
	require.NoError(t, err)
	assert.Empty(t, alice.SavedBooks)

	bob, err := repo.GetByID(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, bob.SavedBooks, 1)
	assert.Equal(t, "b1", bob.SavedBooks[0].BookID)
}

func TestUserRepoPG_SaveRemoveScenario(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	book := domain.Book{BookID: "b1", Title: "Dune", Description: "desert planet"}

	u, err := repo.AddBookIfAbsent(ctx, id, book)
	require.NoError(t, err)
	require.Len(t, u.SavedBooks, 1)

	u, err = repo.AddBookIfAbsent(ctx, id, book)
	require.NoError(t, err)
	require.Len(t, u.SavedBooks, 1)

	u, err = repo.RemoveBook(ctx, id, "b1")
	require.NoError(t, err)
	assert.Empty(t, u.SavedBooks)

	u, err = repo.RemoveBook(ctx, id, "b1")
	require.NoError(t, err)
	assert.Empty(t, u.SavedBooks)
}

func TestUserRepoPG_AuthorsRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id := createUser(t, repo, "alice", "alice@x.com")

	u, err := repo.AddBookIfAbsent(ctx, id, domain.Book{
		BookID:      "b1",
		Title:       "Good Omens",
		Description: "the apocalypse, mislaid",
		Authors:     []string{"Terry Pratchett", "Neil Gaiman"},
		Image:       "https://covers.example.com/b1.jpg",
		Link:        "https://books.example.com/b1",
	})
	require.NoError(t, err)

	require.Len(t, u.SavedBooks, 1)
	got := u.SavedBooks[0]
	assert.Equal(t, []string{"Terry Pratchett", "Neil Gaiman"}, got.Authors)
	assert.Equal(t, "https://covers.example.com/b1.jpg", got.Image)
	assert.Equal(t, "https://books.example.com/b1", got.Link)
}
