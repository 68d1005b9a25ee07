package sqlite

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SeriesRepository = (*Repository)(nil)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "series-kernel-test-*")
	require.NoError(t, err)

	repo, err := NewRepository(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func makePoints(name string, values ...float64) []domain.SeriesPoint {
	points := make([]domain.SeriesPoint, len(values))
	for i, v := range values {
		points[i] = domain.SeriesPoint{
			Symbol:   "ETHUSDT",
			Interval: "1h",
			Name:     name,
			OpenTime: baseTime.Add(time.Duration(i) * time.Hour),
			Value:    v,
		}
	}
	return points
}

func TestNewRepository_RequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: filepath.Join(t.TempDir(), "x.db")})
	assert.Error(t, err)
}

func TestRepository_SaveAndFindSeries(t *testing.T) {
	tests := []struct {
		name   string
		points []domain.SeriesPoint
	}{
		{name: "plain values", points: makePoints("EMA(3)", 1, 1.5, 2.25)},
		{name: "unavailable samples round-trip as NaN", points: makePoints("HIGHEST(3)", math.NaN(), math.NaN(), 5, 5)},
		{name: "infinity stored as unavailable", points: makePoints("DIV", math.Inf(1), 2)},
		{name: "empty", points: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cleanup := setupTestDB(t)
			defer cleanup()
			ctx := context.Background()

			require.NoError(t, repo.SavePoints(ctx, tt.points))
			if len(tt.points) == 0 {
				return
			}

			found, err := repo.FindSeries(ctx, "ETHUSDT", "1h", tt.points[0].Name)
			require.NoError(t, err)
			require.Len(t, found, len(tt.points))

			for i, want := range tt.points {
				got := found[i]
				assert.True(t, want.OpenTime.Equal(got.OpenTime), "open time %d", i)
				assert.Equal(t, want.Name, got.Name)
				if math.IsNaN(want.Value) || math.IsInf(want.Value, 0) {
					assert.False(t, got.Available(), "index %d should be unavailable", i)
					continue
				}
				assert.Equal(t, want.Value, got.Value)
			}
		})
	}
}

func TestRepository_SavePointsUpserts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SavePoints(ctx, makePoints("MA(2)", math.NaN(), 1.5)))
	require.NoError(t, repo.SavePoints(ctx, makePoints("MA(2)", 1, 1.5, 2.5)))

	found, err := repo.FindSeries(ctx, "ETHUSDT", "1h", "MA(2)")
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, 1.0, found[0].Value, "NULL replaced by recomputed value")
	assert.Equal(t, 2.5, found[2].Value)
}

func TestRepository_FindLatest(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	latest, err := repo.FindLatest(ctx, "ETHUSDT", "1h", "RSI(14)")
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, repo.SavePoints(ctx, makePoints("RSI(14)", 40, 55, 61)))
	latest, err = repo.FindLatest(ctx, "ETHUSDT", "1h", "RSI(14)")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 61.0, latest.Value)
	assert.True(t, baseTime.Add(2*time.Hour).Equal(latest.OpenTime))
}

func TestRepository_ListAndDeleteSeries(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SavePoints(ctx, makePoints("SMA(3)", 1, 2)))
	require.NoError(t, repo.SavePoints(ctx, makePoints("ATR(14)", 3)))

	names, err := repo.ListSeries(ctx, "ETHUSDT", "1h")
	require.NoError(t, err)
	assert.Equal(t, []string{"ATR(14)", "SMA(3)"}, names)

	n, err := repo.DeleteSeries(ctx, "ETHUSDT", "1h", "SMA(3)")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	names, err = repo.ListSeries(ctx, "ETHUSDT", "1h")
	require.NoError(t, err)
	assert.Equal(t, []string{"ATR(14)"}, names)

	found, err := repo.FindSeries(ctx, "ETHUSDT", "1h", "SMA(3)")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepository_ContextCanceled(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, repo.SavePoints(ctx, makePoints("EMA(3)", 1)))
}
