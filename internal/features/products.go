package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/query"
)

// Image is a picture uploaded for one product.
type Image struct {
	ID   string
	File ports.Upload
}

// Products is the product feature.
type Products struct {
	*Resource[domain.Product, domain.ProductInput]

	UploadImage *query.Mutation[Image, *domain.Product]
}

func newProducts(api *backend.ProductAPI, deps Deps) *Products {
	const e = domain.EntityProduct
	p := &Products{
		Resource: newResource(e, crudAPI[domain.Product, domain.ProductInput](api), deps,
			func(p domain.Product) domain.ProductInput {
				return domain.ProductInput{
					SKU:        p.SKU,
					Name:       p.Name,
					Barcode:    p.Barcode,
					CategoryID: p.CategoryID,
					SupplierID: p.SupplierID,
					Unit:       p.Unit,
					Price:      p.Price,
					Cost:       p.Cost,
					Active:     p.Active,
				}
			},
			func(p domain.Product) string { return p.ID },
		),
	}

	p.UploadImage = query.NewMutation(deps.Client,
		func(ctx context.Context, img Image) (*domain.Product, error) {
			return api.UploadImage(ctx, img.ID, img.File)
		},
		query.Invalidates(func(img Image, _ *domain.Product) []query.Key { return Invalidation(e, img.ID) }),
		query.WithFeedback[Image, *domain.Product](feedback(deps.Notifier, "product image", "uploaded", "upload")),
	)
	return p
}
