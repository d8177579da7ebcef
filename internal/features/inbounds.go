package features

import (
	"context"

	"go.trai.ch/depot/internal/adapters/backend" //nolint:depguard // Wired in feature wiring
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/zerr"
)

// Transition moves one receipt to another status.
type Transition struct {
	ID     string
	Status domain.InboundStatus
}

// Attachment is a file uploaded against one receipt.
type Attachment struct {
	ID   string
	File ports.Upload
}

// Inbounds is the goods receipt feature.
type Inbounds struct {
	*Resource[domain.Inbound, domain.InboundInput]
	api *backend.InboundAPI

	AddItem          *query.Mutation[Child[domain.InboundItem], *domain.Inbound]
	UpdateItem       *query.Mutation[Child[domain.InboundItem], *domain.Inbound]
	RemoveItem       *query.Mutation[Child[domain.InboundItem], *domain.Inbound]
	Transition       *query.Mutation[Transition, *domain.Inbound]
	UploadAttachment *query.Mutation[Attachment, *domain.Attachment]
	PrintPDF         *query.Mutation[string, string]
}

func newInbounds(api *backend.InboundAPI, deps Deps) *Inbounds {
	const e = domain.EntityInbound
	in := &Inbounds{
		Resource: newResource(e, crudAPI[domain.Inbound, domain.InboundInput](api), deps,
			func(r domain.Inbound) domain.InboundInput {
				return domain.InboundInput{
					SupplierID:  r.SupplierID,
					WarehouseID: r.WarehouseID,
					ExpectedAt:  r.ExpectedAt,
					Note:        r.Note,
					Items:       r.Items,
				}
			},
			func(r domain.Inbound) string { return r.ID },
		),
		api: api,
	}

	in.AddItem = childMutation(deps, e, feedback(deps.Notifier, "item", "added", "add"),
		func(ctx context.Context, ch Child[domain.InboundItem]) (*domain.Inbound, error) {
			return api.AddItem(ctx, ch.OwnerID, ch.Value)
		},
		func(ch Child[domain.InboundItem]) []query.Update {
			return itemUpdates(ch.OwnerID, func(items []domain.InboundItem) []domain.InboundItem {
				return appended(items, ch.Value)
			})
		},
	)
	in.UpdateItem = childMutation(deps, e, feedback(deps.Notifier, "item", "updated", "update"),
		func(ctx context.Context, ch Child[domain.InboundItem]) (*domain.Inbound, error) {
			return api.UpdateItem(ctx, ch.OwnerID, ch.ID, ch.Value)
		},
		func(ch Child[domain.InboundItem]) []query.Update {
			v := ch.Value
			v.ID = ch.ID
			return itemUpdates(ch.OwnerID, func(items []domain.InboundItem) []domain.InboundItem {
				return replaced(items, itemID, ch.ID, v)
			})
		},
	)
	in.RemoveItem = childMutation(deps, e, feedback(deps.Notifier, "item", "removed", "remove"),
		func(ctx context.Context, ch Child[domain.InboundItem]) (*domain.Inbound, error) {
			return api.RemoveItem(ctx, ch.OwnerID, ch.ID)
		},
		func(ch Child[domain.InboundItem]) []query.Update {
			return itemUpdates(ch.OwnerID, func(items []domain.InboundItem) []domain.InboundItem {
				return removed(items, itemID, ch.ID)
			})
		},
	)

	in.Transition = query.NewMutation(deps.Client,
		func(ctx context.Context, t Transition) (*domain.Inbound, error) {
			if cur, ok := query.Peek[*domain.Inbound](deps.Client, DetailKey(e, t.ID)); ok && cur.Data != nil {
				if !cur.Data.Status.CanTransition(t.Status) {
					return nil, zerr.With(
						zerr.With(zerr.Wrap(domain.ErrInvalidTransition, "receipt cannot move to "+string(t.Status)), "from", string(cur.Data.Status)),
						"id", t.ID,
					)
				}
			}
			return api.Transition(ctx, t.ID, t.Status)
		},
		query.Invalidates(func(t Transition, _ *domain.Inbound) []query.Key {
			keys := Invalidation(e, t.ID)
			if t.Status == domain.InboundCompleted {
				keys = append(keys, StockMoved()...)
			}
			return keys
		}),
		query.WithFeedback[Transition, *domain.Inbound](feedback(deps.Notifier, "receipt status", "updated", "update")),
	)
	in.UploadAttachment = query.NewMutation(deps.Client,
		func(ctx context.Context, a Attachment) (*domain.Attachment, error) {
			return api.UploadAttachment(ctx, a.ID, a.File)
		},
		query.Invalidates(func(a Attachment, _ *domain.Attachment) []query.Key {
			return []query.Key{DetailKey(e, a.ID)}
		}),
		query.WithFeedback[Attachment, *domain.Attachment](feedback(deps.Notifier, "attachment", "uploaded", "upload")),
	)
	in.PrintPDF = exportMutation(deps, "receipt PDF",
		func(id string) string { return "inbound-" + id + ".pdf" },
		api.PrintPDF,
	)
	return in
}

// itemUpdates rewrites the lines of a cached receipt and its total.
func itemUpdates(inboundID string, fn func([]domain.InboundItem) []domain.InboundItem) []query.Update {
	return []query.Update{
		patchDetail(domain.EntityInbound, inboundID, func(r domain.Inbound) domain.Inbound {
			r.Items = fn(r.Items)
			r.Total = domain.InboundTotal(r.Items)
			return r
		}),
	}
}

// Overview observes the receipt counters per status.
func (in *Inbounds) Overview() *query.Observer[*domain.InboundOverview] {
	return query.Subscribe(in.client, InboundOverviewKey, in.api.Overview, query.WithPolicy[*domain.InboundOverview](in.policy))
}

// FetchOverview returns the receipt counters per status.
func (in *Inbounds) FetchOverview(ctx context.Context) (*domain.InboundOverview, error) {
	return query.Fetch(ctx, in.client, InboundOverviewKey, in.api.Overview, in.policy)
}
