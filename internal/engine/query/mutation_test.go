package query_test

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/query"
	"go.uber.org/mock/gomock"
)

// categoryServer is an in-memory backend holding a flat category tree.
type categoryServer struct {
	mu    sync.Mutex
	tree  []domain.Category
	reads int
}

func (s *categoryServer) fetchTree(_ context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return slices.Clone(s.tree), nil
}

func (s *categoryServer) create(_ context.Context, in domain.CategoryInput) (*domain.Category, error) {
	time.Sleep(20 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Category{ID: in.Name, Name: in.Name}
	s.tree = append(s.tree, c)
	return &c, nil
}

func (s *categoryServer) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func TestMutation_SuccessInvalidatesThenNotifies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Success("Category created").Times(1)

		c := query.NewClient(query.WithDefaultPolicy(longLived))
		server := &categoryServer{}

		tree := query.Subscribe(c, query.K("categoryTree"), server.fetchTree)
		defer tree.Close()
		_, err := tree.Wait(context.Background())
		require.NoError(t, err)

		var steps []string
		create := query.NewMutation(c, server.create,
			query.Invalidates(func(_ domain.CategoryInput, _ *domain.Category) []query.Key {
				return []query.Key{query.K("categories"), query.K("categoryTree")}
			}),
			query.OnSuccess(func(_ context.Context, data *domain.Category, _ domain.CategoryInput) {
				steps = append(steps, "onSuccess")
				assert.True(t, c.IsStale(query.K("categoryTree")), "invalidation is visible inside the success handler")
				assert.Equal(t, 1, server.readCount(), "dependents are refetched after the success handler")
				assert.Equal(t, "Books", data.Name)
			}),
			query.WithFeedback[domain.CategoryInput, *domain.Category](query.Feedback{
				Notifier: notifier,
				Success:  "Category created",
				Failure:  "Could not create category",
			}),
		)

		created, err := create.MutateAsync(context.Background(), domain.CategoryInput{Name: "Books"})
		require.NoError(t, err)
		assert.Equal(t, "Books", created.Name)
		assert.Equal(t, []string{"onSuccess"}, steps)
		assert.Equal(t, query.MutationSuccess, create.State().Status)

		snap, err := tree.Wait(context.Background())
		require.NoError(t, err)
		_, found := domain.FindCategory(snap.Data, "Books")
		assert.True(t, found)
		assert.Equal(t, 2, server.readCount())
	})
}

func TestMutation_FailureNotifiesOnceAndReturnsError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Error("Could not create product").Times(1)

		c := query.NewClient(query.WithDefaultPolicy(longLived))
		query.SetData(c, query.K("products"), []string{"tea"})

		rejection := &domain.APIError{
			Status: 422,
			Fields: []domain.FieldError{{Field: "sku", Message: "SKU đã tồn tại"}},
		}
		var calls int
		create := query.NewMutation(c,
			func(_ context.Context, _ domain.ProductInput) (*domain.Product, error) {
				calls++
				return nil, rejection
			},
			query.Invalidates(func(domain.ProductInput, *domain.Product) []query.Key {
				return []query.Key{query.K("products")}
			}),
			query.WithFeedback[domain.ProductInput, *domain.Product](query.Feedback{
				Notifier: notifier,
				Success:  "Product created",
				Failure:  "Could not create product",
			}),
		)

		_, err := create.MutateAsync(context.Background(), domain.ProductInput{SKU: "TEA-1"})
		require.Error(t, err)
		assert.Same(t, rejection, err)
		assert.Equal(t, 1, calls, "mutations are never retried")
		assert.False(t, c.IsStale(query.K("products")), "failed mutations leave the cache untouched")
		assert.Equal(t, query.MutationError, create.State().Status)
	})
}

func TestMutation_OptimisticUpdateRollsBack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mocks.NewMockNotifier(ctrl)
		notifier.EXPECT().Error("warehouse is full").Times(1)

		c := query.NewClient(query.WithDefaultPolicy(longLived))
		key := query.K("warehouse", "w1")
		query.SetData(c, key, []string{"A-01"})

		var seen []string
		add := query.NewMutation(c,
			func(_ context.Context, _ string) (string, error) {
				snap, _ := query.Peek[[]string](c, key)
				seen = snap.Data
				time.Sleep(time.Second)
				return "", &domain.APIError{Status: 409, Message: "warehouse is full"}
			},
			query.WithOptimistic[string, string](func(code string) []query.Update {
				return []query.Update{query.Patch(key, func(old []string) []string {
					return append(slices.Clone(old), code)
				})}
			}),
			query.WithFeedback[string, string](query.Feedback{Notifier: notifier, Failure: "Could not add location"}),
		)

		_, err := add.MutateAsync(context.Background(), "A-02")
		require.Error(t, err)
		assert.Equal(t, []string{"A-01", "A-02"}, seen)

		snap, ok := query.Peek[[]string](c, key)
		require.True(t, ok)
		assert.Equal(t, []string{"A-01"}, snap.Data)
	})
}

func TestMutation_RollbackKeepsNewerWrites(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.NewClient(query.WithDefaultPolicy(longLived))
		key := query.K("customer", "9")
		query.SetData(c, key, "v1")

		rollback := c.SetOptimistic(query.Patch(key, func(string) string { return "optimistic" }))
		query.SetData(c, key, "server")
		rollback()

		snap, _ := query.Peek[string](c, key)
		assert.Equal(t, "server", snap.Data)

		noop := c.SetOptimistic(query.Patch(query.K("missing"), func(string) string { return "x" }))
		noop()
		_, ok := query.Peek[string](c, query.K("missing"))
		assert.False(t, ok)
	})
}

func TestMutation_MutateRunsInBackground(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.NewClient()
		m := query.NewMutation(c, func(_ context.Context, n int) (int, error) {
			time.Sleep(time.Second)
			return n * 2, nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		m.Mutate(ctx, 21)
		synctest.Wait()
		assert.True(t, m.IsLoading())

		cancel()
		time.Sleep(2 * time.Second)
		synctest.Wait()

		st := m.State()
		assert.Equal(t, query.MutationSuccess, st.Status, "cancellation does not abort a started mutation")
		assert.Equal(t, 42, st.Data)

		m.Reset()
		assert.Equal(t, query.MutationIdle, m.State().Status)
	})
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server message wins",
			err:  &domain.APIError{Status: 409, Message: "Mã nhà cung cấp đã tồn tại"},
			want: "Mã nhà cung cấp đã tồn tại",
		},
		{
			name: "field message is not repeated",
			err: &domain.APIError{
				Status:  422,
				Message: "SKU đã tồn tại",
				Fields:  []domain.FieldError{{Field: "sku", Message: "SKU đã tồn tại"}},
			},
			want: "fallback",
		},
		{
			name: "transport error uses fallback",
			err:  domain.ErrTransport,
			want: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.FailureMessage(tt.err, "fallback"))
		})
	}

	assert.Equal(t, domain.ErrTransport.Error(), query.FailureMessage(domain.ErrTransport, ""))
}

func TestMutation_FailedOptimisticUpdateResumesInvalidatedFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.NewClient(query.WithDefaultPolicy(longLived))
		key := query.K("customer", "42")

		var server atomic.Value
		server.Store("v1")
		fetch, _ := counter(100*time.Millisecond, func(int32) (string, error) {
			return server.Load().(string), nil
		})

		obs := query.Subscribe(c, key, fetch)
		defer obs.Close()
		_, err := obs.Wait(context.Background())
		require.NoError(t, err)

		server.Store("v2")
		c.Invalidate(key)

		rename := query.NewMutation(c,
			func(_ context.Context, _ string) (string, error) {
				return "", &domain.APIError{Status: 500, Message: "boom"}
			},
			query.WithOptimistic[string, string](func(name string) []query.Update {
				return []query.Update{query.Patch(key, func(string) string { return name })}
			}),
		)
		_, err = rename.MutateAsync(context.Background(), "renamed")
		require.Error(t, err)

		time.Sleep(5 * time.Second)
		synctest.Wait()

		snap := obs.Snapshot()
		assert.Equal(t, "v2", snap.Data)
		assert.False(t, snap.IsStale)
		assert.Equal(t, query.StatusSuccess, snap.Status)
	})
}

func TestMutation_SucceededOptimisticUpdateResumesInvalidatedFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := query.NewClient(query.WithDefaultPolicy(longLived))
		key := query.K("warehouse", "w1")

		var server atomic.Value
		server.Store("A-01")
		fetch, _ := counter(100*time.Millisecond, func(int32) (string, error) {
			return server.Load().(string), nil
		})

		obs := query.Subscribe(c, key, fetch)
		defer obs.Close()
		_, err := obs.Wait(context.Background())
		require.NoError(t, err)

		server.Store("A-01,A-02")
		c.Invalidate(key)

		add := query.NewMutation(c,
			func(_ context.Context, code string) (string, error) { return code, nil },
			query.WithOptimistic[string, string](func(code string) []query.Update {
				return []query.Update{query.Patch(key, func(old string) string { return old + "," + code })}
			}),
		)
		_, err = add.MutateAsync(context.Background(), "A-02")
		require.NoError(t, err)

		time.Sleep(5 * time.Second)
		synctest.Wait()

		snap := obs.Snapshot()
		assert.Equal(t, "A-01,A-02", snap.Data)
		assert.False(t, snap.IsStale)
	})
}
