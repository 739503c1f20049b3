package multi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/interfaces/mock"
	"go-screenshot-cache/internal/models"
)

func newTiers(ctrl *gomock.Controller) (*mock.MockExistenceIndex, *mock.MockExistenceIndex, []Tier) {
	l1 := mock.NewMockExistenceIndex(ctrl)
	l2 := mock.NewMockExistenceIndex(ctrl)
	tiers := []Tier{
		{Level: models.IndexLevelL1, Index: l1, TTL: time.Minute},
		{Level: models.IndexLevelL2, Index: l2, TTL: time.Hour},
	}
	return l1, l2, tiers
}

func TestNewMultiIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, _, tiers := newTiers(ctrl)

	mi := NewMultiIndex(tiers, true, zap.NewNop())

	assert.NotNil(t, mi)
	assert.Equal(t, 2, mi.TierCount())
	assert.True(t, mi.enablePropagation)
}

func TestMultiIndex_Lookup_FirstTierHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1, _, tiers := newTiers(ctrl)
	mi := NewMultiIndex(tiers, true, zap.NewNop())

	l1.EXPECT().Has("test-key").Return(true).Times(1)
	// l2.Has should not be called since l1 knows the key

	assert.Equal(t, models.IndexLevelL1, mi.Lookup("test-key"))
}

func TestMultiIndex_Lookup_SecondTierHit_Propagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1, l2, tiers := newTiers(ctrl)
	mi := NewMultiIndex(tiers, true, zap.NewNop())

	l1.EXPECT().Has("test-key").Return(false).Times(1)
	l2.EXPECT().Has("test-key").Return(true).Times(1)
	l1.EXPECT().Mark("test-key", time.Minute).Times(1)

	assert.Equal(t, models.IndexLevelL2, mi.Lookup("test-key"))
}

func TestMultiIndex_Lookup_SecondTierHit_NoPropagation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1, l2, tiers := newTiers(ctrl)
	mi := NewMultiIndex(tiers, false, zap.NewNop())

	l1.EXPECT().Has("test-key").Return(false).Times(1)
	l2.EXPECT().Has("test-key").Return(true).Times(1)

	assert.True(t, mi.Has("test-key"))
}

func TestMultiIndex_Lookup_Miss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1, l2, tiers := newTiers(ctrl)
	mi := NewMultiIndex(tiers, true, zap.NewNop())

	l1.EXPECT().Has("test-key").Return(false).Times(1)
	l2.EXPECT().Has("test-key").Return(false).Times(1)

	assert.Equal(t, models.IndexLevelMiss, mi.Lookup("test-key"))
}

func TestMultiIndex_Mark_UsesTierTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l1 := mock.NewMockExistenceIndex(ctrl)
	l2 := mock.NewMockExistenceIndex(ctrl)
	tiers := []Tier{
		{Level: models.IndexLevelL1, Index: l1, TTL: time.Minute},
		{Level: models.IndexLevelL2, Index: l2}, // falls back to the Mark TTL
	}
	mi := NewMultiIndex(tiers, false, zap.NewNop())

	l1.EXPECT().Mark("test-key", time.Minute).Times(1)
	l2.EXPECT().Mark("test-key", 5*time.Minute).Times(1)

	mi.Mark("test-key", 5*time.Minute)
}

func TestMultiIndex_Empty(t *testing.T) {
	mi := NewMultiIndex(nil, true, zap.NewNop())

	mi.Mark("test-key", time.Minute)

	assert.False(t, mi.Has("test-key"))
	assert.Equal(t, 0, mi.TierCount())
}
