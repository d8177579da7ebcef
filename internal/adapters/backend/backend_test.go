package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/backend"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// reply answers a request by JSON-decoding payload into its Result.
func reply(t *testing.T, payload string) func(context.Context, *ports.Request) (*ports.Response, error) {
	t.Helper()
	return func(_ context.Context, req *ports.Request) (*ports.Response, error) {
		if req.Result != nil {
			require.NoError(t, json.Unmarshal([]byte(payload), req.Result))
		}
		return &ports.Response{Status: http.StatusOK, Body: []byte(payload)}, nil
	}
}

func newAPI(t *testing.T) (*backend.API, *mocks.MockTransport) {
	t.Helper()
	transport := mocks.NewMockTransport(gomock.NewController(t))
	return backend.New(transport), transport
}

func TestResource_Routes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		method string
		path   string
		call   func(api *backend.API) error
	}{
		{"list", http.MethodGet, "/products", func(a *backend.API) error {
			_, err := a.Products.List(ctx, domain.ListParams{Page: 1})
			return err
		}},
		{"get", http.MethodGet, "/suppliers/s%2F1", func(a *backend.API) error {
			_, err := a.Suppliers.Get(ctx, "s/1")
			return err
		}},
		{"create", http.MethodPost, "/warehouses", func(a *backend.API) error {
			_, err := a.Warehouses.Create(ctx, domain.WarehouseInput{Name: "Kho Hà Nội"})
			return err
		}},
		{"update", http.MethodPut, "/customers/c1", func(a *backend.API) error {
			_, err := a.Customers.Update(ctx, "c1", domain.CustomerInput{Name: "ACME"})
			return err
		}},
		{"delete", http.MethodDelete, "/categories/7", func(a *backend.API) error {
			return a.Categories.Delete(ctx, "7")
		}},
		{"status", http.MethodPatch, "/products/p1/status", func(a *backend.API) error {
			_, err := a.Products.SetStatus(ctx, "p1", false)
			return err
		}},
		{"category tree", http.MethodGet, "/categories/tree", func(a *backend.API) error {
			_, err := a.Categories.Tree(ctx)
			return err
		}},
		{"customer overview", http.MethodGet, "/customers/overview", func(a *backend.API) error {
			_, err := a.Customers.Overview(ctx)
			return err
		}},
		{"update address", http.MethodPut, "/customers/c1/addresses/a2", func(a *backend.API) error {
			_, err := a.Customers.UpdateAddress(ctx, "c1", "a2", domain.Address{City: "Huế"})
			return err
		}},
		{"delete contact", http.MethodDelete, "/customers/c1/contacts/k3", func(a *backend.API) error {
			return a.Customers.DeleteContact(ctx, "c1", "k3")
		}},
		{"inbound item", http.MethodPost, "/inbounds/i1/items", func(a *backend.API) error {
			_, err := a.Inbounds.AddItem(ctx, "i1", domain.InboundItem{ProductID: "p1", Quantity: 2})
			return err
		}},
		{"inbound remove item", http.MethodDelete, "/inbounds/i1/items/l1", func(a *backend.API) error {
			_, err := a.Inbounds.RemoveItem(ctx, "i1", "l1")
			return err
		}},
		{"inbound transition", http.MethodPatch, "/inbounds/i1/status", func(a *backend.API) error {
			_, err := a.Inbounds.Transition(ctx, "i1", domain.InboundApproved)
			return err
		}},
		{"inventory adjust", http.MethodPost, "/inventory/v1/adjust", func(a *backend.API) error {
			_, err := a.Inventory.Adjust(ctx, "v1", domain.Adjustment{Delta: -3, Reason: "damaged"})
			return err
		}},
		{"inventory transfer", http.MethodPost, "/inventory/transfer", func(a *backend.API) error {
			_, err := a.Inventory.Transfer(ctx, domain.Transfer{ProductID: "p1", Quantity: 1})
			return err
		}},
		{"inventory movements", http.MethodGet, "/inventory/v1/movements", func(a *backend.API) error {
			_, err := a.Inventory.Movements(ctx, "v1", domain.ListParams{})
			return err
		}},
		{"inventory summary", http.MethodGet, "/inventory/summary", func(a *backend.API) error {
			_, err := a.Inventory.Summary(ctx)
			return err
		}},
		{"supplier contacts", http.MethodGet, "/suppliers/s1/contacts", func(a *backend.API) error {
			_, err := a.Suppliers.Contacts(ctx, "s1")
			return err
		}},
		{"warehouse location", http.MethodDelete, "/warehouses/w1/locations/A-01", func(a *backend.API) error {
			return a.Warehouses.DeleteLocation(ctx, "w1", "A-01")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, transport := newAPI(t)
			transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, req *ports.Request) (*ports.Response, error) {
					assert.Equal(t, tt.method, req.Method)
					assert.Equal(t, tt.path, req.Path)
					if strings.HasSuffix(tt.path, "tree") || strings.HasSuffix(tt.path, "contacts") || strings.HasSuffix(tt.path, "transfer") {
						return reply(t, `[]`)(ctx, req)
					}
					return reply(t, `{}`)(ctx, req)
				}).Times(1)

			require.NoError(t, tt.call(api))
		})
	}
}

func TestResource_DecodesPayload(t *testing.T) {
	api, transport := newAPI(t)
	transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, `{
		"items": [{"id": "p1", "sku": "TEA-1", "name": "Trà xanh", "price": "45000.50", "cost": "30000"}],
		"total": 41, "page": 2, "pageSize": 20
	}`))

	page, err := api.Products.List(context.Background(), domain.ListParams{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Items, 1)
	assert.True(t, decimal.RequireFromString("15000.50").Equal(page.Items[0].Margin()))
}

func TestResource_PassesErrorsThrough(t *testing.T) {
	api, transport := newAPI(t)
	apiErr := &domain.APIError{Status: 409, Message: "in use"}
	transport.EXPECT().Do(gomock.Any(), gomock.Any()).Return(nil, apiErr)

	err := api.Warehouses.Delete(context.Background(), "w1")
	assert.Same(t, apiErr, err)
}

func TestResource_MissingID(t *testing.T) {
	api, _ := newAPI(t)

	_, err := api.Customers.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingID)

	err = api.Suppliers.DeleteContact(context.Background(), "s1", "")
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestResource_BinaryAndUploads(t *testing.T) {
	api, transport := newAPI(t)

	gomock.InOrder(
		transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req *ports.Request) (*ports.Response, error) {
				assert.Equal(t, "/inbounds/i1/pdf", req.Path)
				assert.Equal(t, ports.ResponseBinary, req.ResponseType)
				return &ports.Response{Body: []byte("%PDF-1.7")}, nil
			}),
		transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req *ports.Request) (*ports.Response, error) {
				assert.Equal(t, "/products/export", req.Path)
				assert.Equal(t, "active", req.Query.Get("status"))
				return &ports.Response{Body: []byte("PK")}, nil
			}),
		transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req *ports.Request) (*ports.Response, error) {
				assert.Equal(t, "/customers/import", req.Path)
				require.NotNil(t, req.Upload)
				assert.Equal(t, "file", req.Upload.Field)
				return reply(t, `{"created": 3, "failed": 1}`)(ctx, req)
			}),
		transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req *ports.Request) (*ports.Response, error) {
				assert.Equal(t, "/products/p1/image", req.Path)
				assert.Equal(t, "image", req.Upload.Field)
				return reply(t, `{"id": "p1", "imageUrl": "/img/p1.png"}`)(ctx, req)
			}),
	)

	pdf, err := api.Inbounds.PrintPDF(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(pdf))

	xlsx, err := api.Products.Export(context.Background(), domain.ListParams{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "PK", string(xlsx))

	res, err := api.Customers.Import(context.Background(), ports.Upload{FileName: "c.xlsx", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)

	p, err := api.Products.UploadImage(context.Background(), "p1", ports.Upload{FileName: "p1.png", Reader: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "/img/p1.png", p.ImageURL)
}
