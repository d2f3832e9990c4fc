package user

import (
	"context"

	domain "bookshelf-service/internal/domain/user"
)

// Service defines the interface for the public operation surface.
// Register and login are public; the remaining operations require an
// identity produced by the authorization gate.
type Service interface {
	Register(ctx context.Context, in RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, in LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, identity domain.Identity) (*User, error)
	SaveBook(ctx context.Context, identity domain.Identity, in SaveBookRequest) (*User, error)
	RemoveBook(ctx context.Context, identity domain.Identity, in RemoveBookRequest) (*User, error)
}
