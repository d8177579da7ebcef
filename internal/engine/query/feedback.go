package query

import (
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Feedback is the user-facing side of a mutation, kept apart from its
// business effect. Exactly one message is shown per invocation.
type Feedback struct {
	Notifier ports.Notifier
	// Success is shown when the mutation resolves.
	Success string
	// Failure is shown when the server gave no usable message.
	Failure string
}

func (f Feedback) succeeded() {
	if f.Notifier == nil || f.Success == "" {
		return
	}
	f.Notifier.Success(f.Success)
}

func (f Feedback) failed(err error) {
	if f.Notifier == nil {
		return
	}
	f.Notifier.Error(FailureMessage(err, f.Failure))
}

// FailureMessage picks the message shown for a failed mutation: the server's
// own message when it sent one, otherwise fallback. Field-level validation
// messages belong to the form, so they are never repeated here.
func FailureMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = err.Error()
	}
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Message == "" {
		return fallback
	}
	for _, f := range apiErr.Fields {
		if f.Message == apiErr.Message {
			return fallback
		}
	}
	return apiErr.Message
}
