// Package service implements the business rules of the application on top of
// the repository and storage layers.
package service

import (
	"context"
	"log/slog"

	"photostream/internal/middleware"
	"photostream/internal/models"
	"photostream/internal/repository"
	"photostream/internal/storage"
)

// AnonymousName is the display name used when a user record is missing or
// carries neither a name nor an email.
const AnonymousName = "Anonymous"

// IdentityResolver produces display identities: the name/email/"Anonymous"
// fallback chain plus the resolved profile image URL.
type IdentityResolver struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	store       storage.ObjectStorage
}

// NewIdentityResolver creates a new IdentityResolver.
func NewIdentityResolver(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	store storage.ObjectStorage,
) *IdentityResolver {
	return &IdentityResolver{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		store:       store,
	}
}

// ResolveBatch resolves identities for a set of users in two queries plus at
// most one URL resolution per distinct storage key. Every requested ID gets
// an entry; deleted users resolve to the anonymous fallback.
func (r *IdentityResolver) ResolveBatch(ctx context.Context, userIDs []uint) (map[uint]models.Identity, error) {
	result := make(map[uint]models.Identity, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	unique := make([]uint, 0, len(userIDs))
	seen := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := r.userRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	profiles, err := r.profileRepo.GetByUserIDs(ctx, unique)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// Different users can share a profile image object in theory; more
	// importantly the memo avoids re-presigning when the same uploader
	// appears many times in one page.
	urlMemo := make(map[string]*string)

	for _, id := range unique {
		identity := models.Identity{DisplayName: displayName(users[id])}
		if p := profiles[id]; p != nil && p.StorageKey != "" {
			identity.ProfileImageURL = r.resolveMemo(ctx, p.StorageKey, urlMemo)
		}
		result[id] = identity
	}
	return result, nil
}

// Resolve resolves a single user's identity.
func (r *IdentityResolver) Resolve(ctx context.Context, userID uint) (models.Identity, error) {
	batch, err := r.ResolveBatch(ctx, []uint{userID})
	if err != nil {
		return models.Identity{}, err
	}
	return batch[userID], nil
}

// resolveMemo resolves a storage key to a URL at most once per assembly pass.
// Resolution failures degrade to a missing image rather than failing the
// whole view; a profile picture is decoration.
func (r *IdentityResolver) resolveMemo(ctx context.Context, key string, memo map[string]*string) *string {
	if cached, ok := memo[key]; ok {
		return cached
	}
	var resolved *string
	url, err := r.store.ResolveURL(ctx, key)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "profile image URL resolution failed",
			slog.String("storage_key", key),
			slog.String("error", err.Error()),
		)
	} else if url != "" {
		resolved = &url
	}
	memo[key] = resolved
	return resolved
}

func displayName(user *models.User) string {
	if user == nil {
		return AnonymousName
	}
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return AnonymousName
}
