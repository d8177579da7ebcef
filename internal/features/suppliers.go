package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Suppliers is the supplier feature, including contacts.
type Suppliers struct {
	*Resource[domain.Supplier, domain.SupplierInput]
	api  *backend.SupplierAPI
	deps Deps

	AddContact    *query.Mutation[Child[domain.Contact], *domain.Contact]
	DeleteContact *query.Mutation[Child[domain.Contact], struct{}]
}

func newSuppliers(api *backend.SupplierAPI, deps Deps) *Suppliers {
	const e = domain.EntitySupplier
	s := &Suppliers{
		Resource: newResource(e, crudAPI[domain.Supplier, domain.SupplierInput](api), deps,
			func(s domain.Supplier) domain.SupplierInput {
				return domain.SupplierInput{
					Code:    s.Code,
					Name:    s.Name,
					Email:   s.Email,
					Phone:   s.Phone,
					TaxCode: s.TaxCode,
					Address: s.Address,
					Active:  s.Active,
				}
			},
			func(s domain.Supplier) string { return s.ID },
		),
		api:  api,
		deps: deps,
	}

	s.AddContact = childMutation(deps, e, feedback(deps.Notifier, "contact", "added", "add"),
		func(ctx context.Context, ch Child[domain.Contact]) (*domain.Contact, error) {
			return api.AddContact(ctx, ch.OwnerID, ch.Value)
		},
		func(ch Child[domain.Contact]) []query.Update {
			return supplierContactUpdates(ch.OwnerID, func(list []domain.Contact) []domain.Contact {
				return appended(list, ch.Value)
			})
		},
	)
	s.DeleteContact = childMutation(deps, e, feedback(deps.Notifier, "contact", "deleted", "delete"),
		func(ctx context.Context, ch Child[domain.Contact]) (struct{}, error) {
			return struct{}{}, api.DeleteContact(ctx, ch.OwnerID, ch.ID)
		},
		func(ch Child[domain.Contact]) []query.Update {
			return supplierContactUpdates(ch.OwnerID, func(list []domain.Contact) []domain.Contact {
				return removed(list, contactID, ch.ID)
			})
		},
	)
	return s
}

func supplierContactUpdates(supplierID string, fn func([]domain.Contact) []domain.Contact) []query.Update {
	return []query.Update{
		patchDetail(domain.EntitySupplier, supplierID, func(s domain.Supplier) domain.Supplier {
			s.Contacts = fn(s.Contacts)
			return s
		}),
		patchList(domain.EntitySupplier, supplierID, "contacts", fn),
	}
}

// Contacts observes the contacts of supplier id.
func (s *Suppliers) Contacts(id string) *query.Observer[[]domain.Contact] {
	return subList(s.deps, domain.EntitySupplier, id, "contacts", s.policy, s.api.Contacts)
}
