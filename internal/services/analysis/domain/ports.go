package domain

import (
	"context"

	"verihub/internal/adapters/remote/verif"
)

// ServicePort is the interface implemented by the analysis service
type ServicePort interface {
	// Submit runs one analysis for the tab, from cache when possible.
	// Failures of the taxonomy come back as *Descriptor
	Submit(ctx context.Context, tabID string, req Request) (Result, error)

	// Recall returns a recently completed report by analysis id
	Recall(ctx context.Context, analysisID string) (*verif.Report, bool)

	// ReleaseTab drops per tab limiter state when a tab goes away
	ReleaseTab(ctx context.Context, tabID string)
}
