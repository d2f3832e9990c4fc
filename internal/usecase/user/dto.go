package user

// RegisterRequest represents the request payload for creating a new account.
type RegisterRequest struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// LoginRequest represents the request payload for logging in.
// Either Username or Email identifies the account.
type LoginRequest struct {
	Username string `validate:"omitempty,max=50"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required"`
}

// AuthResponse represents the response payload for register and login:
// a signed identity token plus the user it identifies.
type AuthResponse struct {
	Token string
	User  User
}

// SaveBookRequest represents the book fields for a save-book operation.
type SaveBookRequest struct {
	BookID      string `validate:"required"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Authors     []string
	Image       string
	Link        string
}

// RemoveBookRequest represents the request payload for removing a saved book.
type RemoveBookRequest struct {
	BookID string `validate:"required"`
}

// User represents a user DTO (Data Transfer Object) for API responses.
// It never carries the password hash.
type User struct {
	ID         int64
	Username   string
	Email      string
	SavedBooks []Book
}

// Book represents a saved book DTO for API responses.
type Book struct {
	BookID      string
	Title       string
	Description string
	Authors     []string
	Image       string
	Link        string
}
