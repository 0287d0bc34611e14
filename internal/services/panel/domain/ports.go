package domain

import (
	"context"

	"verihub/internal/adapters/remote/verif"
)

// OpenerPort is the privileged surface that can raise the panel.
// Opening is expected to fail under some platform constraints
type OpenerPort interface {
	Open(ctx context.Context, tabID string) error
}

// ServicePort is the interface implemented by the panel service
type ServicePort interface {
	// Open raises the panel best effort. A failed open degrades to a
	// persistent badge and still returns nil
	Open(ctx context.Context, tabID string) error

	// PublishReport writes a completed report to the shared slot
	PublishReport(ctx context.Context, report *verif.Report, headers verif.Headers) error

	// PublishError writes a failure update to the shared slot
	PublishError(ctx context.Context, errName, message string, retryAfterSeconds int) error

	// SetCurrent records the update a surface is redisplaying
	SetCurrent(ctx context.Context, upd Update) error

	// Latest reads the current slot content, ok is false when empty
	Latest(ctx context.Context) (Update, bool, error)
}
