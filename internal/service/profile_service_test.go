package service

import (
	"context"
	"testing"

	"photostream/internal/models"
	"photostream/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetProfileImage_RequiresKey(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), testutil.NewStorageStub())

	_, err := svc.SetProfileImage(context.Background(), 1, "   ")
	assertAppError(t, err, models.CodeValidation)
}

func TestSetProfileImage_ReturnsResolvedURL(t *testing.T) {
	store := testutil.NewStorageStub()
	store.Seed("profiles/new", []byte("png"))

	current := &models.Profile{}
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		if current.StorageKey == "" {
			return nil, nil
		}
		return current, nil
	}
	profiles.upsertFn = func(_ context.Context, userID uint, key string) (*models.Profile, error) {
		current = &models.Profile{ID: 1, UserID: userID, StorageKey: key}
		return current, nil
	}
	svc := NewProfileService(profiles, store)

	url, err := svc.SetProfileImage(context.Background(), 1, "profiles/new")
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, "https://storage.test/profiles/new", *url)
}

func TestSetProfileImage_DeletesReplacedObject(t *testing.T) {
	store := testutil.NewStorageStub()
	store.Seed("profiles/old", []byte("png"))
	store.Seed("profiles/new", []byte("png"))

	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: userID, StorageKey: "profiles/old"}, nil
	}
	svc := NewProfileService(profiles, store)

	_, err := svc.SetProfileImage(context.Background(), 1, "profiles/new")
	require.NoError(t, err)
	assert.Equal(t, []string{"profiles/old"}, store.Deleted)
}

func TestSetProfileImage_SameKeyNotDeleted(t *testing.T) {
	store := testutil.NewStorageStub()
	store.Seed("profiles/same", []byte("png"))

	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: userID, StorageKey: "profiles/same"}, nil
	}
	svc := NewProfileService(profiles, store)

	_, err := svc.SetProfileImage(context.Background(), 1, "profiles/same")
	require.NoError(t, err)
	assert.Empty(t, store.Deleted)
}

func TestSetProfileImage_CleanupFailureIsSwallowed(t *testing.T) {
	store := testutil.NewStorageStub()
	store.FailDelete = true

	upserted := false
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		if !upserted {
			return &models.Profile{ID: 1, UserID: userID, StorageKey: "profiles/old"}, nil
		}
		return &models.Profile{ID: 1, UserID: userID, StorageKey: "profiles/new"}, nil
	}
	profiles.upsertFn = func(_ context.Context, userID uint, key string) (*models.Profile, error) {
		upserted = true
		return &models.Profile{ID: 1, UserID: userID, StorageKey: key}, nil
	}
	svc := NewProfileService(profiles, store)

	_, err := svc.SetProfileImage(context.Background(), 1, "profiles/new")
	require.NoError(t, err, "failing to clean up the old object must not block the replacement")
	assert.True(t, upserted)
}

func TestGetImageURL_NilCases(t *testing.T) {
	store := testutil.NewStorageStub()

	// No profile row at all.
	svc := NewProfileService(noopProfileRepo(), store)
	url, err := svc.GetImageURL(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, url)

	// Profile exists but the object is gone.
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: userID, StorageKey: "profiles/expired"}, nil
	}
	svc = NewProfileService(profiles, store)
	url, err = svc.GetImageURL(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, url)
}
