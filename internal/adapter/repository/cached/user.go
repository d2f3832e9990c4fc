package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"bookshelf-service/internal/adapter/cache"
	domain "bookshelf-service/internal/domain/user"
	"bookshelf-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation. Reads of
// the user aggregate go cache-first; every saved-books mutation invalidates
// the owner's cache entry before returning.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	// Try to get from cache first
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		// Only one request hits database
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Store in cache for future requests
		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// GetByUsername delegates to the DB repository.
func (r *CachedUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.dbRepo.GetByUsername(ctx, username)
}

// GetByEmail delegates to the DB repository.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// AddBookIfAbsent performs the atomic add in the DB and invalidates the
// owner's cached aggregate so the next read sees the new collection.
func (r *CachedUserRepository) AddBookIfAbsent(ctx context.Context, ownerID int64, b domain.Book) (*domain.User, error) {
	updated, err := r.dbRepo.AddBookIfAbsent(ctx, ownerID, b)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, ownerID)
	return updated, nil
}

// RemoveBook performs the atomic removal in the DB and invalidates the
// owner's cached aggregate.
func (r *CachedUserRepository) RemoveBook(ctx context.Context, ownerID int64, bookID string) (*domain.User, error) {
	updated, err := r.dbRepo.RemoveBook(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, ownerID)
	return updated, nil
}

// invalidate drops the cached aggregate after a successful mutation.
// Cache failures are logged, never surfaced.
func (r *CachedUserRepository) invalidate(ctx context.Context, id int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache after mutation", zap.Int64("id", id), zap.Error(err))
	}
}
