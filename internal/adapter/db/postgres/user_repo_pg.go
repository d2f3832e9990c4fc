package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "bookshelf-service/internal/domain/user"
	apperrors "bookshelf-service/pkg/errors"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           int64             `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Username     string            `gorm:"not null;unique"`          // Unique login name (required)
	Email        string            `gorm:"not null;unique"`          // Unique email address (required)
	PasswordHash string            `gorm:"not null"`                 // bcrypt hash (required)
	SavedBooks   []SavedBookSchema `gorm:"foreignKey:UserID"`        // Saved-book rows owned by this user
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// SavedBookSchema represents one saved book in a user's collection.
// The composite unique index on (user_id, book_id) is what enforces the
// at-most-one-entry-per-book invariant at the storage level.
type SavedBookSchema struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	UserID      int64    `gorm:"not null;uniqueIndex:idx_owner_book"`
	BookID      string   `gorm:"not null;uniqueIndex:idx_owner_book"`
	Title       string   `gorm:"not null"`
	Description string   `gorm:"not null"`
	Authors     []string `gorm:"serializer:json"`
	Image       string
	Link        string
}

// TableName specifies the table name for the SavedBookSchema model.
func (SavedBookSchema) TableName() string {
	return "saved_books"
}

// Create inserts a new user into the database.
func (r *UserRepoPG) Create(ctx context.Context, u *domain.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("username", u.Username))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a user and their saved books by unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Preload("SavedBooks").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toDomainUser(&model), nil
}

// GetByUsername retrieves a user by username. Returns nil without error on a miss.
func (r *UserRepoPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by username", zap.String("username", username))
			return nil, nil
		}
		r.log.Error("failed to get user by username from db", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return toDomainUser(&model), nil
}

// GetByEmail retrieves a user by email address. Returns nil without error on a miss.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toDomainUser(&model), nil
}

// AddBookIfAbsent inserts a book into the owner's collection as a single
// INSERT ... ON CONFLICT DO NOTHING against the (user_id, book_id) unique
// index. Re-saving an existing BookID is a no-op that leaves the stored
// fields untouched. Returns the owner's post-update state.
func (r *UserRepoPG) AddBookIfAbsent(ctx context.Context, ownerID int64, b domain.Book) (*domain.User, error) {
	row := SavedBookSchema{
		UserID:      ownerID,
		BookID:      b.BookID,
		Title:       b.Title,
		Description: b.Description,
		Authors:     b.Authors,
		Image:       b.Image,
		Link:        b.Link,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		r.log.Error("failed to add book in db", zap.Error(err),
			zap.Int64("owner_id", ownerID), zap.String("book_id", b.BookID))
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	r.log.Info("book saved in db", zap.Int64("owner_id", ownerID), zap.String("book_id", b.BookID))
	return r.GetByID(ctx, ownerID)
}

// RemoveBook deletes the owner's saved book matching bookID as a single
// DELETE statement. A missing key deletes zero rows and is still a success.
// Returns the owner's post-update state.
func (r *UserRepoPG) RemoveBook(ctx context.Context, ownerID int64, bookID string) (*domain.User, error) {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", ownerID, bookID).
		Delete(&SavedBookSchema{}).Error
	if err != nil {
		r.log.Error("failed to remove book in db", zap.Error(err),
			zap.Int64("owner_id", ownerID), zap.String("book_id", bookID))
		return nil, fmt.Errorf("failed to remove book: %w", err)
	}

	r.log.Info("book removed in db", zap.Int64("owner_id", ownerID), zap.String("book_id", bookID))
	return r.GetByID(ctx, ownerID)
}

// toDomainUser maps a schema row (with any preloaded books) to the domain entity.
func toDomainUser(model *UserSchema) *domain.User {
	books := make([]domain.Book, len(model.SavedBooks))
	for i, row := range model.SavedBooks {
		books[i] = domain.Book{
			BookID:      row.BookID,
			Title:       row.Title,
			Description: row.Description,
			Authors:     row.Authors,
			Image:       row.Image,
			Link:        row.Link,
		}
	}

	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		SavedBooks:   books,
	}
}
