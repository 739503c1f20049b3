package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/interfaces/mock"
	"go-screenshot-cache/internal/models"
)

// fakeIndex is an in-memory LevelAwareIndex answering as L1
type fakeIndex struct {
	keys  map[string]time.Duration
	marks int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{keys: make(map[string]time.Duration)}
}

func (f *fakeIndex) Has(key string) bool {
	_, ok := f.keys[key]
	return ok
}

func (f *fakeIndex) Mark(key string, ttl time.Duration) {
	f.keys[key] = ttl
	f.marks++
}

func (f *fakeIndex) Lookup(key string) models.IndexLevel {
	if f.Has(key) {
		return models.IndexLevelL1
	}
	return models.IndexLevelMiss
}

func signedConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:         "shots",
		Region:         "eu-west-1",
		Access:         config.AccessSigned,
		RequestTimeout: 1000,
	}
}

func publicConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "shots",
		Region:            "eu-west-1",
		Access:            config.AccessPublic,
		PublicURLTemplate: "https://{bucket}.s3.{region}.amazonaws.com/{key}",
		RequestTimeout:    1000,
	}
}

const testKey = "screenshots/example.com/index.jpg"

func TestObjectCache_Exists_TierLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	index := mock.NewMockLevelAwareIndex(ctrl)
	oc := NewObjectCache(store, index, signedConfig(), time.Minute, zap.NewNop())

	index.EXPECT().Lookup(testKey).Return(models.IndexLevelL2)

	level, err := oc.Exists(context.Background(), testKey)

	require.NoError(t, err)
	assert.Equal(t, models.IndexLevelL2, level)
}

func TestObjectCache_Exists_IndexHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	index := newFakeIndex()
	index.keys[testKey] = time.Minute
	oc := NewObjectCache(store, index, signedConfig(), time.Minute, zap.NewNop())

	// No HEAD request expected
	level, err := oc.Exists(context.Background(), testKey)

	require.NoError(t, err)
	assert.Equal(t, models.IndexLevelL1, level)
}

func TestObjectCache_Exists_StorageHit_MarksIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	index := newFakeIndex()
	oc := NewObjectCache(store, index, signedConfig(), 5*time.Minute, zap.NewNop())

	store.EXPECT().HeadExists(gomock.Any(), testKey).Return(true, nil).Times(1)

	level, err := oc.Exists(context.Background(), testKey)

	require.NoError(t, err)
	assert.Equal(t, models.IndexLevelStorage, level)
	assert.Equal(t, 5*time.Minute, index.keys[testKey])
}

func TestObjectCache_Exists_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	index := newFakeIndex()
	oc := NewObjectCache(store, index, signedConfig(), time.Minute, zap.NewNop())

	store.EXPECT().HeadExists(gomock.Any(), testKey).Return(false, nil).Times(1)

	level, err := oc.Exists(context.Background(), testKey)

	require.NoError(t, err)
	assert.Equal(t, models.IndexLevelMiss, level)
	// Negative results are never memoised
	assert.Equal(t, 0, index.marks)
}

func TestObjectCache_Exists_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	oc := NewObjectCache(store, newFakeIndex(), signedConfig(), time.Minute, zap.NewNop())

	cause := errors.New("access denied")
	store.EXPECT().HeadExists(gomock.Any(), testKey).Return(false, cause).Times(1)

	level, err := oc.Exists(context.Background(), testKey)

	var storageErr *models.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "exists", storageErr.Op)
	assert.Equal(t, testKey, storageErr.Key)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, models.IndexLevelMiss, level)
}

func TestObjectCache_Exists_AppliesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	oc := NewObjectCache(store, newFakeIndex(), signedConfig(), time.Minute, zap.NewNop())

	store.EXPECT().HeadExists(gomock.Any(), testKey).DoAndReturn(
		func(ctx context.Context, key string) (bool, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "storage calls should carry a deadline")
			return false, nil
		},
	)

	_, err := oc.Exists(context.Background(), testKey)
	require.NoError(t, err)
}

func TestObjectCache_Store(t *testing.T) {
	tests := []struct {
		name           string
		cfg            *config.StorageConfig
		wantVisibility interfaces.Visibility
	}{
		{name: "signed policy stores private", cfg: signedConfig(), wantVisibility: interfaces.VisibilityPrivate},
		{name: "public policy stores public-read", cfg: publicConfig(), wantVisibility: interfaces.VisibilityPublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mock.NewMockObjectStore(ctrl)
			index := newFakeIndex()
			oc := NewObjectCache(store, index, tt.cfg, time.Minute, zap.NewNop())

			image := &models.CapturedImage{Data: []byte("jpeg"), MediaType: models.MediaTypeJPEG, Key: testKey}
			store.EXPECT().PutObject(gomock.Any(), testKey, []byte("jpeg"), "image/jpeg", tt.wantVisibility).Return(nil)

			require.NoError(t, oc.Store(context.Background(), image))
			assert.True(t, index.Has(testKey))
		})
	}
}

func TestObjectCache_Store_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	index := newFakeIndex()
	oc := NewObjectCache(store, index, signedConfig(), time.Minute, zap.NewNop())

	store.EXPECT().PutObject(gomock.Any(), testKey, gomock.Any(), "image/png", interfaces.VisibilityPrivate).Return(models.ErrAlreadyExists)

	err := oc.Store(context.Background(), &models.CapturedImage{Data: []byte("png"), MediaType: models.MediaTypePNG, Key: testKey})

	assert.NoError(t, err)
	assert.True(t, index.Has(testKey))
}

func TestObjectCache_Store_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	index := newFakeIndex()
	oc := NewObjectCache(store, index, signedConfig(), time.Minute, zap.NewNop())

	store.EXPECT().PutObject(gomock.Any(), testKey, gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("slow down"))

	err := oc.Store(context.Background(), &models.CapturedImage{Data: []byte("x"), MediaType: models.MediaTypeJPEG, Key: testKey})

	var storageErr *models.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "store", storageErr.Op)
	// A failed write must not be remembered as existing
	assert.False(t, index.Has(testKey))
}

func TestObjectCache_AccessReference_Signed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	oc := NewObjectCache(store, newFakeIndex(), signedConfig(), time.Minute, zap.NewNop())

	store.EXPECT().SignedURL(gomock.Any(), testKey, time.Hour).Return("https://signed/url", nil)

	ref, err := oc.AccessReference(context.Background(), testKey, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "https://signed/url", ref)
}

func TestObjectCache_AccessReference_SignedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockObjectStore(ctrl)
	oc := NewObjectCache(store, newFakeIndex(), signedConfig(), time.Minute, zap.NewNop())

	store.EXPECT().SignedURL(gomock.Any(), testKey, time.Hour).Return("", errors.New("no credentials"))

	ref, err := oc.AccessReference(context.Background(), testKey, time.Hour)

	var storageErr *models.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "reference", storageErr.Op)
	assert.Empty(t, ref)
}

func TestObjectCache_AccessReference_Public(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No signing call expected
	store := mock.NewMockObjectStore(ctrl)
	oc := NewObjectCache(store, newFakeIndex(), publicConfig(), time.Minute, zap.NewNop())

	ref, err := oc.AccessReference(context.Background(), testKey, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "https://shots.s3.eu-west-1.amazonaws.com/screenshots/example.com/index.jpg", ref)
}
