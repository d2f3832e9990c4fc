package user

// User represents a user account and their saved-book collection.
// SavedBooks holds at most one entry per BookID; the storage layer enforces
// the set semantics with a composite unique index.
type User struct {
	ID           int64  // ID is the unique identifier for the user
	Username     string // Username is the unique login name
	Email        string // Email is the unique email address
	PasswordHash string // PasswordHash is the bcrypt hash, never exposed outward
	SavedBooks   []Book // SavedBooks is the user's collection, keyed by BookID
}

// Book is a saved catalog entry embedded in a user's collection. It has no
// lifecycle of its own: it exists only as a member of SavedBooks.
type Book struct {
	BookID      string   // BookID is the external catalog identifier and dedup key
	Title       string   // Title is required
	Description string   // Description is required
	Authors     []string // Authors is an optional ordered list
	Image       string   // Image is an optional cover URL
	Link        string   // Link is an optional catalog URL
}

// Identity is the request-scoped identity derived from a verified token.
// It is produced by the authorization gate and passed explicitly to every
// protected operation.
type Identity struct {
	ID       int64
	Username string
	Email    string
}
