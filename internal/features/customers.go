package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/engine/query"
)

// Customers is the customer feature, including addresses and contacts.
type Customers struct {
	*Resource[domain.Customer, domain.CustomerInput]
	api  *backend.CustomerAPI
	deps Deps

	AddAddress    *query.Mutation[Child[domain.Address], *domain.Address]
	UpdateAddress *query.Mutation[Child[domain.Address], *domain.Address]
	DeleteAddress *query.Mutation[Child[domain.Address], struct{}]
	AddContact    *query.Mutation[Child[domain.Contact], *domain.Contact]
	UpdateContact *query.Mutation[Child[domain.Contact], *domain.Contact]
	DeleteContact *query.Mutation[Child[domain.Contact], struct{}]
}

func newCustomers(api *backend.CustomerAPI, deps Deps) *Customers {
	const e = domain.EntityCustomer
	c := &Customers{
		Resource: newResource(e, crudAPI[domain.Customer, domain.CustomerInput](api), deps,
			func(c domain.Customer) domain.CustomerInput {
				return domain.CustomerInput{
					Code:    c.Code,
					Name:    c.Name,
					Email:   c.Email,
					Phone:   c.Phone,
					TaxCode: c.TaxCode,
					Type:    c.Type,
					Active:  c.Active,
				}
			},
			func(c domain.Customer) string { return c.ID },
		),
		api:  api,
		deps: deps,
	}

	c.AddAddress = childMutation(deps, e, feedback(deps.Notifier, "address", "added", "add"),
		func(ctx context.Context, ch Child[domain.Address]) (*domain.Address, error) {
			return api.AddAddress(ctx, ch.OwnerID, ch.Value)
		},
		func(ch Child[domain.Address]) []query.Update {
			return addressUpdates(ch.OwnerID, func(list []domain.Address) []domain.Address {
				return appended(list, ch.Value)
			})
		},
	)
	c.UpdateAddress = childMutation(deps, e, feedback(deps.Notifier, "address", "updated", "update"),
		func(ctx context.Context, ch Child[domain.Address]) (*domain.Address, error) {
			return api.UpdateAddress(ctx, ch.OwnerID, ch.ID, ch.Value)
		},
		func(ch Child[domain.Address]) []query.Update {
			v := ch.Value
			v.ID = ch.ID
			return addressUpdates(ch.OwnerID, func(list []domain.Address) []domain.Address {
				return replaced(list, addressID, ch.ID, v)
			})
		},
	)
	c.DeleteAddress = childMutation(deps, e, feedback(deps.Notifier, "address", "deleted", "delete"),
		func(ctx context.Context, ch Child[domain.Address]) (struct{}, error) {
			return struct{}{}, api.DeleteAddress(ctx, ch.OwnerID, ch.ID)
		},
		func(ch Child[domain.Address]) []query.Update {
			return addressUpdates(ch.OwnerID, func(list []domain.Address) []domain.Address {
				return removed(list, addressID, ch.ID)
			})
		},
	)

	c.AddContact = childMutation(deps, e, feedback(deps.Notifier, "contact", "added", "add"),
		func(ctx context.Context, ch Child[domain.Contact]) (*domain.Contact, error) {
			return api.AddContact(ctx, ch.OwnerID, ch.Value)
		},
		func(ch Child[domain.Contact]) []query.Update {
			return customerContactUpdates(ch.OwnerID, func(list []domain.Contact) []domain.Contact {
				return appended(list, ch.Value)
			})
		},
	)
	c.UpdateContact = childMutation(deps, e, feedback(deps.Notifier, "contact", "updated", "update"),
		func(ctx context.Context, ch Child[domain.Contact]) (*domain.Contact, error) {
			return api.UpdateContact(ctx, ch.OwnerID, ch.ID, ch.Value)
		},
		func(ch Child[domain.Contact]) []query.Update {
			v := ch.Value
			v.ID = ch.ID
			return customerContactUpdates(ch.OwnerID, func(list []domain.Contact) []domain.Contact {
				return replaced(list, contactID, ch.ID, v)
			})
		},
	)
	c.DeleteContact = childMutation(deps, e, feedback(deps.Notifier, "contact", "deleted", "delete"),
		func(ctx context.Context, ch Child[domain.Contact]) (struct{}, error) {
			return struct{}{}, api.DeleteContact(ctx, ch.OwnerID, ch.ID)
		},
		func(ch Child[domain.Contact]) []query.Update {
			return customerContactUpdates(ch.OwnerID, func(list []domain.Contact) []domain.Contact {
				return removed(list, contactID, ch.ID)
			})
		},
	)
	return c
}

func addressUpdates(customerID string, fn func([]domain.Address) []domain.Address) []query.Update {
	return []query.Update{
		patchDetail(domain.EntityCustomer, customerID, func(c domain.Customer) domain.Customer {
			c.Addresses = fn(c.Addresses)
			return c
		}),
		patchList(domain.EntityCustomer, customerID, "addresses", fn),
	}
}

func customerContactUpdates(customerID string, fn func([]domain.Contact) []domain.Contact) []query.Update {
	return []query.Update{
		patchDetail(domain.EntityCustomer, customerID, func(c domain.Customer) domain.Customer {
			c.Contacts = fn(c.Contacts)
			return c
		}),
		patchList(domain.EntityCustomer, customerID, "contacts", fn),
	}
}

// Overview observes the customer dashboard counters.
func (c *Customers) Overview() *query.Observer[*domain.CustomerOverview] {
	return query.Subscribe(c.client, CustomerOverviewKey, c.api.Overview, query.WithPolicy[*domain.CustomerOverview](c.policy))
}

// FetchOverview returns the customer dashboard counters.
func (c *Customers) FetchOverview(ctx context.Context) (*domain.CustomerOverview, error) {
	return query.Fetch(ctx, c.client, CustomerOverviewKey, c.api.Overview, c.policy)
}

// Addresses observes the addresses of customer id.
func (c *Customers) Addresses(id string) *query.Observer[[]domain.Address] {
	return subList(c.deps, domain.EntityCustomer, id, "addresses", c.policy, c.api.Addresses)
}

// Contacts observes the contacts of customer id.
func (c *Customers) Contacts(id string) *query.Observer[[]domain.Contact] {
	return subList(c.deps, domain.EntityCustomer, id, "contacts", c.policy, c.api.Contacts)
}
