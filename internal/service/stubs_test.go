package service

import (
	"context"
	"errors"
	"testing"

	"photostream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// imageRepoStub is a stub for repository.ImageRepository.
type imageRepoStub struct {
	createFn            func(context.Context, *models.Image) error
	getByIDFn           func(context.Context, uint) (*models.Image, error)
	getByIDsFn          func(context.Context, []uint) (map[uint]*models.Image, error)
	listFn              func(context.Context, int, int) ([]*models.Image, error)
	listByUserFn        func(context.Context, uint, int, int) ([]*models.Image, error)
	listByOriginFn      func(context.Context, uint) ([]*models.Image, error)
	findRepostFn        func(context.Context, uint, uint) (*models.Image, error)
	searchTitleFn       func(context.Context, string, int) ([]*models.Image, error)
	searchDescriptionFn func(context.Context, string, int) ([]*models.Image, error)
	patchFn             func(context.Context, uint, map[string]interface{}) error
	deleteFn            func(context.Context, uint) error
	incCommentCountFn   func(context.Context, uint) error
	incShareCountFn     func(context.Context, uint) error
	likeFn              func(context.Context, uint, uint) error
	unlikeFn            func(context.Context, uint, uint) error
	likeUserIDsFn       func(context.Context, uint) ([]uint, error)
	likesForImagesFn    func(context.Context, []uint) (map[uint][]uint, error)
}

func (s *imageRepoStub) Create(ctx context.Context, image *models.Image) error {
	return s.createFn(ctx, image)
}
func (s *imageRepoStub) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	return s.getByIDFn(ctx, id)
}
func (s *imageRepoStub) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Image, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *imageRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Image, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *imageRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Image, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *imageRepoStub) ListByOrigin(ctx context.Context, originalID uint) ([]*models.Image, error) {
	return s.listByOriginFn(ctx, originalID)
}
func (s *imageRepoStub) FindRepost(ctx context.Context, originalID, ownerID uint) (*models.Image, error) {
	return s.findRepostFn(ctx, originalID, ownerID)
}
func (s *imageRepoStub) SearchTitle(ctx context.Context, query string, limit int) ([]*models.Image, error) {
	return s.searchTitleFn(ctx, query, limit)
}
func (s *imageRepoStub) SearchDescription(ctx context.Context, query string, limit int) ([]*models.Image, error) {
	return s.searchDescriptionFn(ctx, query, limit)
}
func (s *imageRepoStub) Patch(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.patchFn(ctx, id, updates)
}
func (s *imageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *imageRepoStub) IncrementCommentCount(ctx context.Context, id uint) error {
	return s.incCommentCountFn(ctx, id)
}
func (s *imageRepoStub) IncrementShareCount(ctx context.Context, id uint) error {
	return s.incShareCountFn(ctx, id)
}
func (s *imageRepoStub) Like(ctx context.Context, userID, imageID uint) error {
	return s.likeFn(ctx, userID, imageID)
}
func (s *imageRepoStub) Unlike(ctx context.Context, userID, imageID uint) error {
	return s.unlikeFn(ctx, userID, imageID)
}
func (s *imageRepoStub) LikeUserIDs(ctx context.Context, imageID uint) ([]uint, error) {
	return s.likeUserIDsFn(ctx, imageID)
}
func (s *imageRepoStub) LikesForImages(ctx context.Context, imageIDs []uint) (map[uint][]uint, error) {
	return s.likesForImagesFn(ctx, imageIDs)
}

func noopImageRepo() *imageRepoStub {
	return &imageRepoStub{
		createFn:   func(_ context.Context, _ *models.Image) error { return nil },
		getByIDFn:  func(_ context.Context, _ uint) (*models.Image, error) { return &models.Image{}, nil },
		getByIDsFn: func(_ context.Context, _ []uint) (map[uint]*models.Image, error) { return map[uint]*models.Image{}, nil },
		listFn:     func(_ context.Context, _, _ int) ([]*models.Image, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Image, error) {
			return nil, nil
		},
		listByOriginFn: func(_ context.Context, _ uint) ([]*models.Image, error) { return nil, nil },
		findRepostFn:   func(_ context.Context, _, _ uint) (*models.Image, error) { return nil, nil },
		searchTitleFn:  func(_ context.Context, _ string, _ int) ([]*models.Image, error) { return nil, nil },
		searchDescriptionFn: func(_ context.Context, _ string, _ int) ([]*models.Image, error) {
			return nil, nil
		},
		patchFn:           func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		incCommentCountFn: func(_ context.Context, _ uint) error { return nil },
		incShareCountFn:   func(_ context.Context, _ uint) error { return nil },
		likeFn:            func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:          func(_ context.Context, _, _ uint) error { return nil },
		likeUserIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		likesForImagesFn:  func(_ context.Context, _ []uint) (map[uint][]uint, error) { return map[uint][]uint{}, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByIDsFn      func(context.Context, []uint) (map[uint]*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByIDsFn:      func(_ context.Context, _ []uint) (map[uint]*models.User, error) { return map[uint]*models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn  func(context.Context, uint) (*models.Profile, error)
	getByUserIDsFn func(context.Context, []uint) (map[uint]*models.Profile, error)
	upsertFn       func(context.Context, uint, string) (*models.Profile, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUserIDs(ctx context.Context, userIDs []uint) (map[uint]*models.Profile, error) {
	return s.getByUserIDsFn(ctx, userIDs)
}
func (s *profileRepoStub) Upsert(ctx context.Context, userID uint, storageKey string) (*models.Profile, error) {
	return s.upsertFn(ctx, userID, storageKey)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, _ uint) (*models.Profile, error) { return nil, nil },
		getByUserIDsFn: func(_ context.Context, _ []uint) (map[uint]*models.Profile, error) {
			return map[uint]*models.Profile{}, nil
		},
		upsertFn: func(_ context.Context, userID uint, key string) (*models.Profile, error) {
			return &models.Profile{UserID: userID, StorageKey: key}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByImageFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByImage(ctx context.Context, imageID uint) ([]*models.Comment, error) {
	return s.listByImageFn(ctx, imageID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		listByImageFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
