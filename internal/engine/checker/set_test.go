package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/core/domain"
	"go.trai.ch/compat/internal/core/ports/mocks"
	"go.trai.ch/compat/internal/engine/checker"
	"go.uber.org/mock/gomock"
)

func testDeps(t *testing.T) checker.Deps {
	t.Helper()
	ctrl := gomock.NewController(t)
	return checker.Deps{
		Store:  mocks.NewMockBlobStore(ctrl),
		Disk:   mocks.NewMockDiskCache(ctrl),
		Hasher: mocks.NewMockPathHasher(ctrl),
		Feeds:  mocks.NewMockFeedProvider(ctrl),
		Probe:  mocks.NewMockFeedProbe(ctrl),
		Lookup: mocks.NewMockCompatibilityLookup(ctrl),
		Logger: mocks.NewMockLogger(ctrl),
	}
}

func TestNewSet_DefaultOrder(t *testing.T) {
	set, err := checker.NewSet(domain.DefaultConfig(), testDeps(t))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCheckers(), set.Names())
}

func TestNewSet_ConfiguredOrder(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Checkers = []string{domain.CheckerPortability, domain.CheckerInternal}

	set, err := checker.NewSet(cfg, testDeps(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"portability", "internal"}, set.Names())
}

func TestNewSet_EmptyListUsesDefaults(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Checkers = nil

	set, err := checker.NewSet(cfg, testDeps(t))
	require.NoError(t, err)
	assert.Len(t, set, 4)
}

func TestNewSet_UnknownChecker(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Checkers = []string{domain.CheckerExternal, "nuget.org"}

	_, err := checker.NewSet(cfg, testDeps(t))
	require.ErrorIs(t, err, domain.ErrUnknownChecker)
}
