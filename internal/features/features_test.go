package features_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/backend"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/form"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/features"
	"go.uber.org/mock/gomock"
)

type harness struct {
	server   *fakeServer
	client   *query.Client
	notifier *mocks.MockNotifier
	saver    *mocks.MockFileSaver
	features *features.Features
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		server:   newFakeServer(),
		client:   query.NewClient(query.WithDefaultPolicy(query.Policy{StaleAfter: time.Hour, GCAfter: time.Hour})),
		notifier: mocks.NewMockNotifier(ctrl),
		saver:    mocks.NewMockFileSaver(ctrl),
	}
	h.features = features.New(backend.New(h.server), features.Deps{
		Client:   h.client,
		Config:   domain.DefaultConfig(),
		Notifier: h.notifier,
		Saver:    h.saver,
	})
	return h
}

func TestCategories_CreateShowsInTree(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Category created").Times(1)

	var mu sync.Mutex
	var tree []domain.Category
	h.server.handle(http.MethodGet, "/categories/tree", func(*ports.Request) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		return tree, nil
	})
	h.server.handle(http.MethodPost, "/categories", func(req *ports.Request) (any, error) {
		in := req.Body.(domain.CategoryInput)
		mu.Lock()
		defer mu.Unlock()
		c := domain.Category{ID: "c1", Name: in.Name, Active: true}
		tree = append(tree, c)
		return c, nil
	})

	obs := h.features.Categories.Tree()
	defer obs.Close()
	snap, err := obs.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Data)

	created, err := h.features.Categories.Create.MutateAsync(context.Background(), domain.CategoryInput{Name: "Books"})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.ID)

	snap, err = obs.Wait(context.Background())
	require.NoError(t, err)
	_, found := domain.FindCategory(snap.Data, "Books")
	assert.True(t, found)
	assert.Equal(t, 2, h.server.count(http.MethodGet, "/categories/tree"))
}

func TestProducts_EditorMapsValidation(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Error("Could not create product").Times(1)

	h.server.handle(http.MethodPost, "/products", func(*ports.Request) (any, error) {
		return nil, &domain.APIError{
			Status: http.StatusUnprocessableEntity,
			Fields: []domain.FieldError{{Field: "sku", Message: "SKU đã tồn tại"}},
		}
	})

	editor := h.features.Products.Editor(form.WithDefaults[domain.Product](func() domain.ProductInput {
		return domain.ProductInput{Unit: "pcs", Active: true}
	}))
	editor.Open(nil)
	require.NoError(t, editor.Edit(func(d *domain.ProductInput) { d.SKU = "TEA-1" }))

	err := editor.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "SKU đã tồn tại", editor.FieldError("sku"))
	assert.True(t, editor.IsOpen())
	assert.Equal(t, query.MutationError, h.features.Products.Create.State().Status)
}

func TestProducts_UpdateInvalidatesDetailAndInventory(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Product updated").Times(1)

	h.server.handle(http.MethodGet, "/products/p1", func(*ports.Request) (any, error) {
		return domain.Product{ID: "p1", Name: "Tea"}, nil
	})
	h.server.handle(http.MethodPut, "/products/p1", func(req *ports.Request) (any, error) {
		in := req.Body.(domain.ProductInput)
		return domain.Product{ID: "p1", Name: in.Name}, nil
	})
	query.SetData(h.client, features.InventorySummaryKey, &domain.InventorySummary{Products: 1})

	p, err := h.features.Products.FetchDetail(context.Background(), "p1")
	require.NoError(t, err)

	editor := h.features.Products.Editor()
	editor.Open(p)
	require.NoError(t, editor.Edit(func(d *domain.ProductInput) { d.Name = "Green tea" }))
	require.NoError(t, editor.Submit(context.Background()))

	assert.Equal(t, form.Succeeded, editor.Phase())
	assert.True(t, h.client.IsStale(features.DetailKey(domain.EntityProduct, "p1")))
	assert.True(t, h.client.IsStale(features.InventorySummaryKey))
}

func TestCustomers_AddAddressRollsBackOnError(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Error("Không đủ quyền").Times(1)

	var seen []domain.Address
	h.server.handle(http.MethodPost, "/customers/c1/addresses", func(*ports.Request) (any, error) {
		snap, _ := query.Peek[*domain.Customer](h.client, features.DetailKey(domain.EntityCustomer, "c1"))
		seen = snap.Data.Addresses
		return nil, &domain.APIError{Status: http.StatusForbidden, Message: "Không đủ quyền"}
	})

	key := features.DetailKey(domain.EntityCustomer, "c1")
	query.SetData(h.client, key, &domain.Customer{ID: "c1", Addresses: []domain.Address{{ID: "a1", City: "Hà Nội"}}})

	_, err := h.features.Customers.AddAddress.MutateAsync(context.Background(), features.Child[domain.Address]{
		OwnerID: "c1",
		Value:   domain.Address{City: "Đà Nẵng"},
	})
	require.Error(t, err)

	require.Len(t, seen, 2, "the new address is shown while the request runs")
	assert.Equal(t, "Đà Nẵng", seen[1].City)

	snap, ok := query.Peek[*domain.Customer](h.client, key)
	require.True(t, ok)
	assert.Equal(t, []domain.Address{{ID: "a1", City: "Hà Nội"}}, snap.Data.Addresses)
	assert.False(t, snap.IsStale, "a rejected write leaves the entry fresh")
}

func TestCustomers_DeleteContactPatchesSubList(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Contact deleted").Times(1)

	h.server.handle(http.MethodDelete, "/customers/c1/contacts/k2", func(*ports.Request) (any, error) {
		return nil, nil
	})
	listKey := features.SubKey(domain.EntityCustomer, "c1", "contacts")
	query.SetData(h.client, listKey, []domain.Contact{{ID: "k1"}, {ID: "k2"}})

	_, err := h.features.Customers.DeleteContact.MutateAsync(context.Background(), features.Child[domain.Contact]{OwnerID: "c1", ID: "k2"})
	require.NoError(t, err)

	snap, ok := query.Peek[[]domain.Contact](h.client, listKey)
	require.True(t, ok)
	assert.Equal(t, []domain.Contact{{ID: "k1"}}, snap.Data)
	assert.True(t, snap.IsStale)
}

func TestInbounds_CompletingMovesStock(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Receipt status updated").Times(2)

	h.server.handle(http.MethodPatch, "/inbounds/r1/status", func(req *ports.Request) (any, error) {
		in := req.Body.(domain.InboundStatusInput)
		return domain.Inbound{ID: "r1", Status: in.Status}, nil
	})
	query.SetData(h.client, features.InventorySummaryKey, &domain.InventorySummary{})
	query.SetData(h.client, features.InboundOverviewKey, &domain.InboundOverview{})

	_, err := h.features.Inbounds.Transition.MutateAsync(context.Background(), features.Transition{ID: "r1", Status: domain.InboundApproved})
	require.NoError(t, err)
	assert.True(t, h.client.IsStale(features.InboundOverviewKey))
	assert.False(t, h.client.IsStale(features.InventorySummaryKey))

	_, err = h.features.Inbounds.Transition.MutateAsync(context.Background(), features.Transition{ID: "r1", Status: domain.InboundCompleted})
	require.NoError(t, err)
	assert.True(t, h.client.IsStale(features.InventorySummaryKey))
}

func TestInbounds_RemoveItemRecomputesTotal(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Error("Could not remove item").Times(1)

	key := features.DetailKey(domain.EntityInbound, "r1")
	items := []domain.InboundItem{
		{ID: "l1", Quantity: 2, UnitCost: mustDecimal(t, "10.5")},
		{ID: "l2", Quantity: 1, UnitCost: mustDecimal(t, "4")},
	}
	query.SetData(h.client, key, &domain.Inbound{ID: "r1", Items: items, Total: domain.InboundTotal(items)})

	var total string
	h.server.handle(http.MethodDelete, "/inbounds/r1/items/l1", func(*ports.Request) (any, error) {
		snap, _ := query.Peek[*domain.Inbound](h.client, key)
		total = snap.Data.Total.String()
		return nil, &domain.APIError{Status: http.StatusConflict}
	})

	_, err := h.features.Inbounds.RemoveItem.MutateAsync(context.Background(), features.Child[domain.InboundItem]{OwnerID: "r1", ID: "l1"})
	require.Error(t, err)
	assert.Equal(t, "4", total)

	snap, _ := query.Peek[*domain.Inbound](h.client, key)
	assert.Equal(t, "25", snap.Data.Total.String())
}

func TestResource_DeleteDropsDetail(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Warehouse deleted").Times(1)

	h.server.handle(http.MethodDelete, "/warehouses/w1", func(*ports.Request) (any, error) { return nil, nil })
	query.SetData(h.client, features.DetailKey(domain.EntityWarehouse, "w1"), &domain.Warehouse{ID: "w1"})
	query.SetData(h.client, features.ListKey(domain.EntityWarehouse, domain.ListParams{}), &domain.Page[domain.Warehouse]{})

	_, err := h.features.Warehouses.Delete.MutateAsync(context.Background(), "w1")
	require.NoError(t, err)

	_, ok := query.Peek[*domain.Warehouse](h.client, features.DetailKey(domain.EntityWarehouse, "w1"))
	assert.False(t, ok)
	assert.True(t, h.client.IsStale(features.ListKey(domain.EntityWarehouse, domain.ListParams{})))
}

func TestResource_ExportSavesFile(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Supplier list downloaded").Times(1)
	h.saver.EXPECT().Save("suppliers.xlsx", []byte("xlsx")).Return("/tmp/depot/suppliers.xlsx", nil)

	h.server.handle(http.MethodGet, "/suppliers/export", func(*ports.Request) (any, error) {
		return []byte("xlsx"), nil
	})

	path, err := h.features.Suppliers.Export.MutateAsync(context.Background(), domain.ListParams{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/depot/suppliers.xlsx", path)
}

func TestResource_FetchListUsesCache(t *testing.T) {
	h := newHarness(t)
	h.server.handle(http.MethodGet, "/warehouses", func(*ports.Request) (any, error) {
		return domain.Page[domain.Warehouse]{Items: []domain.Warehouse{{ID: "w1"}}, Total: 1}, nil
	})

	for range 3 {
		page, err := h.features.Warehouses.FetchList(context.Background(), domain.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
	}
	assert.Equal(t, 1, h.server.count(http.MethodGet, "/warehouses"), "warehouses stay fresh for minutes")
}

func TestResource_DetailWithoutIDIsDisabled(t *testing.T) {
	h := newHarness(t)

	obs := h.features.Suppliers.Detail("")
	defer obs.Close()

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, query.StatusIdle, obs.Snapshot().Status)
	assert.Zero(t, h.server.count(http.MethodGet, "/suppliers/"))
}

func TestInventory_AdjustInvalidatesSummary(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Success("Stock adjusted").Times(1)

	h.server.handle(http.MethodPost, "/inventory/i1/adjust", func(*ports.Request) (any, error) {
		return domain.InventoryItem{ID: "i1", Quantity: 5}, nil
	})
	query.SetData(h.client, features.InventorySummaryKey, &domain.InventorySummary{})
	query.SetData(h.client, features.DetailKey(domain.EntityInventory, "i2"), &domain.InventoryItem{ID: "i2"})

	_, err := h.features.Inventory.Adjust.MutateAsync(context.Background(), features.Adjust{ID: "i1", Adjustment: domain.Adjustment{Delta: 5, Reason: "count"}})
	require.NoError(t, err)

	assert.True(t, h.client.IsStale(features.InventorySummaryKey))
	assert.False(t, h.client.IsStale(features.DetailKey(domain.EntityInventory, "i2")))
}

func TestInbounds_TransitionChecksCachedStatus(t *testing.T) {
	h := newHarness(t)
	h.notifier.EXPECT().Error("Could not update receipt status").Times(1)

	query.SetData(h.client, features.DetailKey(domain.EntityInbound, "r1"), &domain.Inbound{ID: "r1", Status: domain.InboundCompleted})

	_, err := h.features.Inbounds.Transition.MutateAsync(context.Background(), features.Transition{ID: "r1", Status: domain.InboundDraft})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, h.server.count(http.MethodPatch, "/inbounds/r1/status"))
}
