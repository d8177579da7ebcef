package features

import (
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/query"
)

var labels = map[domain.Entity]string{
	domain.EntityCategory:  "category",
	domain.EntityCustomer:  "customer",
	domain.EntityInbound:   "receipt",
	domain.EntityInventory: "stock",
	domain.EntityProduct:   "product",
	domain.EntitySupplier:  "supplier",
	domain.EntityWarehouse: "warehouse",
}

// Label is the human name of e used in notifications.
func Label(e domain.Entity) string {
	if l, ok := labels[e]; ok {
		return l
	}
	return string(e)
}

// feedback builds the notification pair of one action, such as
// "Product created" and "Could not create product".
func feedback(n ports.Notifier, subject, done, verb string) query.Feedback {
	return query.Feedback{
		Notifier: n,
		Success:  strings.ToUpper(subject[:1]) + subject[1:] + " " + done,
		Failure:  "Could not " + verb + " " + subject,
	}
}
