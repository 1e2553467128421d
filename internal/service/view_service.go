package service

import (
	"context"
	"errors"
	"strings"

	"photostream/internal/cache"
	"photostream/internal/models"
	"photostream/internal/repository"
	"photostream/internal/storage"

	"gorm.io/gorm"
)

// DefaultPageSize is the feed page size when the client does not ask for one.
const DefaultPageSize = 20

// ViewService assembles hydrated image views: raw image rows joined with
// resolved storage URLs, uploader identities, like sets, and repost lineage.
type ViewService struct {
	imageRepo repository.ImageRepository
	identity  *IdentityResolver
	store     storage.ObjectStorage
}

// NewViewService creates a new ViewService.
func NewViewService(
	imageRepo repository.ImageRepository,
	identity *IdentityResolver,
	store storage.ObjectStorage,
) *ViewService {
	return &ViewService{
		imageRepo: imageRepo,
		identity:  identity,
		store:     store,
	}
}

// AssembleMany hydrates a page of images with batched lookups: one query for
// origins, one for likes, two for identities, and one URL resolution per
// distinct storage key. Output order follows input order.
func (s *ViewService) AssembleMany(ctx context.Context, images []*models.Image) ([]*models.ImageView, error) {
	views := make([]*models.ImageView, 0, len(images))
	if len(images) == 0 {
		return views, nil
	}

	imageIDs := make([]uint, 0, len(images))
	originIDs := make([]uint, 0)
	for _, img := range images {
		imageIDs = append(imageIDs, img.ID)
		if img.IsRepost && img.OriginalImageID != nil {
			originIDs = append(originIDs, *img.OriginalImageID)
		}
	}

	origins, err := s.imageRepo.GetByIDs(ctx, originIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	likes, err := s.imageRepo.LikesForImages(ctx, imageIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	userIDs := make([]uint, 0, len(images))
	for _, img := range images {
		userIDs = append(userIDs, img.UserID)
	}
	for _, origin := range origins {
		userIDs = append(userIDs, origin.UserID)
	}
	identities, err := s.identity.ResolveBatch(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	// Reposts share their origin's storage key, so memoize URL resolution
	// per key across the page.
	urlMemo := make(map[string]string)

	for _, img := range images {
		view := &models.ImageView{
			Image:    *img,
			URL:      s.resolveMemo(ctx, img.StorageKey, urlMemo),
			Likes:    []uint{},
			Uploader: identities[img.UserID].DisplayName,
		}
		view.UploaderProfileImageURL = identities[img.UserID].ProfileImageURL
		if liked := likes[img.ID]; liked != nil {
			view.Likes = liked
		}
		view.LikeCount = len(view.Likes)

		if img.IsRepost && img.OriginalImageID != nil {
			if origin, ok := origins[*img.OriginalImageID]; ok {
				originIdentity := identities[origin.UserID]
				view.OriginalUploader = &originIdentity.DisplayName
				view.OriginalUploaderProfileImageURL = originIdentity.ProfileImageURL
			}
			// Origin gone: lineage fields stay nil, the repost stays visible.
		}

		views = append(views, view)
	}
	return views, nil
}

// AssembleOne hydrates a single image.
func (s *ViewService) AssembleOne(ctx context.Context, image *models.Image) (*models.ImageView, error) {
	views, err := s.AssembleMany(ctx, []*models.Image{image})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *ViewService) resolveMemo(ctx context.Context, key string, memo map[string]string) string {
	if cached, ok := memo[key]; ok {
		return cached
	}
	url, err := s.store.ResolveURL(ctx, key)
	if err != nil {
		// Degrade to "object gone"; lists filter these out
		url = ""
	}
	memo[key] = url
	return url
}

// GetImage returns the hydrated view for one image, or nil when the image
// does not exist. A single-item lookup is not subject to the URL filter:
// the caller sees the record even if its object expired. Views are served
// cache-aside; a miss for an absent row is cached as null and cleared when
// the image is created.
func (s *ViewService) GetImage(ctx context.Context, id uint) (*models.ImageView, error) {
	var view *models.ImageView
	err := cache.Aside(ctx, cache.ImageKey(id), "image", &view, cache.ImageTTL, func() error {
		image, err := s.imageRepo.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		assembled, err := s.AssembleOne(ctx, image)
		if err != nil {
			return err
		}
		view = assembled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListGlobal returns the global feed newest-first, excluding items whose
// storage object no longer resolves. The front page is served cache-aside.
func (s *ViewService) ListGlobal(ctx context.Context, limit, offset int) ([]*models.ImageView, error) {
	limit = normalizeLimit(limit)

	fetch := func() ([]*models.ImageView, error) {
		images, err := s.imageRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		views, err := s.AssembleMany(ctx, images)
		if err != nil {
			return nil, err
		}
		return filterResolvable(views), nil
	}

	if offset == 0 && limit == DefaultPageSize {
		var views []*models.ImageView
		err := cache.Aside(ctx, cache.FeedKey(), "feed", &views, cache.FeedTTL, func() error {
			fetched, err := fetch()
			if err != nil {
				return err
			}
			views = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		if views == nil {
			views = []*models.ImageView{}
		}
		return views, nil
	}

	return fetch()
}

// ListByOwner returns one user's images newest-first, URL-filtered like the
// global feed.
func (s *ViewService) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.ImageView, error) {
	limit = normalizeLimit(limit)

	fetch := func() ([]*models.ImageView, error) {
		images, err := s.imageRepo.ListByUser(ctx, ownerID, limit, offset)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		views, err := s.AssembleMany(ctx, images)
		if err != nil {
			return nil, err
		}
		return filterResolvable(views), nil
	}

	if offset == 0 && limit == DefaultPageSize {
		var views []*models.ImageView
		err := cache.Aside(ctx, cache.UserImagesKey(ownerID), "user_images", &views, cache.UserImagesTTL, func() error {
			fetched, err := fetch()
			if err != nil {
				return err
			}
			views = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		if views == nil {
			views = []*models.ImageView{}
		}
		return views, nil
	}

	return fetch()
}

// Search runs the two field scans (title first, then description), merges
// them keeping the first occurrence of each image, hydrates, and applies the
// URL filter. A blank query returns an empty result without querying.
func (s *ViewService) Search(ctx context.Context, query string) ([]*models.ImageView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.ImageView{}, nil
	}

	titleMatches, err := s.imageRepo.SearchTitle(ctx, query, repository.SearchFieldLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	descMatches, err := s.imageRepo.SearchDescription(ctx, query, repository.SearchFieldLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	merged := make([]*models.Image, 0, len(titleMatches)+len(descMatches))
	seen := make(map[uint]struct{}, len(titleMatches)+len(descMatches))
	for _, img := range append(titleMatches, descMatches...) {
		if _, ok := seen[img.ID]; ok {
			continue
		}
		seen[img.ID] = struct{}{}
		merged = append(merged, img)
	}

	views, err := s.AssembleMany(ctx, merged)
	if err != nil {
		return nil, err
	}
	return filterResolvable(views), nil
}

// filterResolvable drops views whose storage object no longer resolves.
func filterResolvable(views []*models.ImageView) []*models.ImageView {
	filtered := make([]*models.ImageView, 0, len(views))
	for _, v := range views {
		if v.URL == "" {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > 100 {
		return 100
	}
	return limit
}
