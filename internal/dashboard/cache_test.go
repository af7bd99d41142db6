package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchJSON(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, keyFinanceSummary(uuid.New()))
	require.NoError(t, err)

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return &FinanceSummary{
			Revenue:  decimal.RequireFromString("100.00"),
			Expense:  decimal.RequireFromString("40.00"),
			Profit:   decimal.RequireFromString("60.00"),
			Currency: "TRY",
		}, nil
	}

	var first FinanceSummary
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	assert.Equal(t, 1, calls)
	assert.True(t, first.Profit.Equal(decimal.RequireFromString("60.00")))

	var second FinanceSummary
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, 1, calls, "second fetch must hit the cache")
	assert.Equal(t, "TRY", second.Currency)
}

func TestCacheBumpInvalidates(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	orgID := uuid.New()

	keyBefore, err := cache.BuildKey(ctx, keyOperationsSummary(orgID))
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx))

	keyAfter, err := cache.BuildKey(ctx, keyOperationsSummary(orgID))
	require.NoError(t, err)
	assert.NotEqual(t, keyBefore, keyAfter)
}

func TestNilCachePassthrough(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, keyFinanceSummary(uuid.New()))
	require.NoError(t, err)

	calls := 0
	var out FinanceSummary
	loader := func(context.Context) (interface{}, error) {
		calls++
		return &FinanceSummary{Currency: "TRY"}, nil
	}
	require.NoError(t, cache.FetchJSON(ctx, key, &out, loader))
	require.NoError(t, cache.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, 2, calls, "nil cache always loads")
	assert.Equal(t, "TRY", out.Currency)
}

type stubSummaryRepo struct {
	financeCalls int
}

func (s *stubSummaryRepo) FinanceSummary(context.Context, uuid.UUID) (*FinanceSummary, error) {
	s.financeCalls++
	return &FinanceSummary{
		Revenue:  decimal.RequireFromString("1180.00"),
		Expense:  decimal.RequireFromString("200.00"),
		Profit:   decimal.RequireFromString("980.00"),
		Currency: "TRY",
	}, nil
}

func (s *stubSummaryRepo) OperationsSummary(context.Context, uuid.UUID) (*OperationsSummary, error) {
	return &OperationsSummary{OrdersPending: 2, StationsActive: 2}, nil
}

func TestServiceFinanceSummaryCaches(t *testing.T) {
	repo := &stubSummaryRepo{}
	service := NewService(repo, newTestCache(t))
	tenant := shared.Tenant{OrgID: uuid.New()}

	first, err := service.FinanceSummary(context.Background(), tenant)
	require.NoError(t, err)
	assert.True(t, first.Profit.Equal(decimal.RequireFromString("980.00")))

	_, err = service.FinanceSummary(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.financeCalls, "repeat call must come from cache")
}
