package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "bookshelf-service/internal/domain/user"
	apperrors "bookshelf-service/pkg/errors"
	"bookshelf-service/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// AddBookIfAbsent and RemoveBook are the atomic set-update primitives: each
// must execute as a single conditional storage update, never as a
// read-modify-write sequence, so concurrent callers cannot lose updates or
// duplicate entries.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)                                    // Create a new user
	GetByID(ctx context.Context, id int64) (*domain.User, error)                                  // Retrieve user with saved books
	GetByUsername(ctx context.Context, username string) (*domain.User, error)                     // Retrieve user by username, nil if absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)                           // Retrieve user by email, nil if absent
	AddBookIfAbsent(ctx context.Context, ownerID int64, b domain.Book) (*domain.User, error)      // Atomic dedup-add keyed by BookID
	RemoveBook(ctx context.Context, ownerID int64, bookID string) (*domain.User, error)           // Atomic removal, no-op if absent
}

// TokenIssuer signs identity tokens for authenticated responses.
type TokenIssuer interface {
	Issue(userID int64, username, email string) (string, error)
}

// Usecase implements the business logic for account and collection operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository          // Repository for data access
	tokens   TokenIssuer         // Token service for register/login responses
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository,
// token issuer, and logger.
func New(r Repository, t TokenIssuer, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, tokens: t, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed validation error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		field := ""
		if len(validationErrors) == 1 {
			field = validationErrors[0].Field()
		}
		return apperrors.NewValidationError(field, strings.Join(messages, ", "))
	}
	return err
}

// Register creates a new account after validating the request and checking
// username and email uniqueness, then issues an identity token for it.
func (uc *Usecase) Register(ctx context.Context, in RegisterRequest) (*AuthResponse, error) {
	uc.log.Info("registering user", zap.String("username", in.Username), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		uc.log.Error("failed to check username uniqueness", zap.String("username", in.Username), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate username uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("username already exists", zap.String("username", in.Username))
		return nil, apperrors.NewValidationError("username", "already taken")
	}

	existing, err = uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check email uniqueness", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewValidationError("email", "already taken")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	u := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}

	id, err := uc.repo.Create(ctx, u)
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	u.ID = id

	signed, err := uc.tokens.Issue(u.ID, u.Username, u.Email)
	if err != nil {
		uc.log.Error("failed to issue token", zap.Int64("id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{Token: signed, User: toUserDTO(u)}, nil
}

// Login authenticates by username or email plus password and issues a token.
// A missing account and a wrong password both return ErrAuthenticationFailed
// so the response does not reveal which field was wrong.
func (uc *Usecase) Login(ctx context.Context, in LoginRequest) (*AuthResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}
	if in.Username == "" && in.Email == "" {
		return nil, apperrors.NewValidationError("", "username or email is required")
	}

	var u *domain.User
	var err error
	if in.Username != "" {
		u, err = uc.repo.GetByUsername(ctx, in.Username)
	} else {
		u, err = uc.repo.GetByEmail(ctx, in.Email)
	}
	if err != nil {
		uc.log.Error("failed to look up user for login", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		uc.log.Info("login failed", zap.String("username", in.Username), zap.String("email", in.Email))
		return nil, apperrors.ErrAuthenticationFailed
	}

	if !security.VerifyPassword(in.Password, u.PasswordHash) {
		uc.log.Info("login failed", zap.Int64("id", u.ID))
		return nil, apperrors.ErrAuthenticationFailed
	}

	signed, err := uc.tokens.Issue(u.ID, u.Username, u.Email)
	if err != nil {
		uc.log.Error("failed to issue token", zap.Int64("id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	uc.log.Info("user logged in", zap.Int64("id", u.ID))
	return &AuthResponse{Token: signed, User: toUserDTO(u)}, nil
}

// Me retrieves the authenticated user with their resolved saved books.
func (uc *Usecase) Me(ctx context.Context, identity domain.Identity) (*User, error) {
	u, err := uc.repo.GetByID(ctx, identity.ID)
	if err != nil {
		uc.log.Error("failed to get user", zap.Int64("id", identity.ID), zap.Error(err))
		return nil, err
	}

	dto := toUserDTO(u)
	return &dto, nil
}

// SaveBook adds a book to the authenticated user's collection with dedup-add
// semantics: saving an already-present BookID is a no-op that neither
// duplicates nor overwrites the stored entry. The owner is always the
// authenticated identity, never a caller-supplied id.
func (uc *Usecase) SaveBook(ctx context.Context, identity domain.Identity, in SaveBookRequest) (*User, error) {
	uc.log.Info("saving book", zap.Int64("owner_id", identity.ID), zap.String("book_id", in.BookID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	updated, err := uc.repo.AddBookIfAbsent(ctx, identity.ID, domain.Book{
		BookID:      in.BookID,
		Title:       in.Title,
		Description: in.Description,
		Authors:     in.Authors,
		Image:       in.Image,
		Link:        in.Link,
	})
	if err != nil {
		uc.log.Error("failed to save book", zap.Int64("owner_id", identity.ID), zap.String("book_id", in.BookID), zap.Error(err))
		return nil, err
	}

	dto := toUserDTO(updated)
	return &dto, nil
}

// RemoveBook removes a book from the authenticated user's collection.
// Removing an absent BookID is a successful no-op so client retries are safe.
func (uc *Usecase) RemoveBook(ctx context.Context, identity domain.Identity, in RemoveBookRequest) (*User, error) {
	uc.log.Info("removing book", zap.Int64("owner_id", identity.ID), zap.String("book_id", in.BookID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	updated, err := uc.repo.RemoveBook(ctx, identity.ID, in.BookID)
	if err != nil {
		uc.log.Error("failed to remove book", zap.Int64("owner_id", identity.ID), zap.String("book_id", in.BookID), zap.Error(err))
		return nil, err
	}

	dto := toUserDTO(updated)
	return &dto, nil
}

// toUserDTO maps a domain user to the response DTO, dropping the password hash.
func toUserDTO(u *domain.User) User {
	books := make([]Book, len(u.SavedBooks))
	for i, b := range u.SavedBooks {
		books[i] = Book{
			BookID:      b.BookID,
			Title:       b.Title,
			Description: b.Description,
			Authors:     b.Authors,
			Image:       b.Image,
			Link:        b.Link,
		}
	}
	return User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		SavedBooks: books,
	}
}
