// Package domain holds the display surface contracts
package domain

import (
	"verihub/internal/adapters/remote/verif"
)

// Update kinds stored in the latest report slot
const (
	KindReportReady = "REPORT_READY"
	KindReportError = "REPORT_ERROR"
)

// Update is what the panel reads from the shared slot, one of report or error
type Update struct {
	Type string `json:"type"`

	// REPORT_READY
	Report  *verif.Report  `json:"report,omitempty"`
	Headers *verif.Headers `json:"headers,omitempty"`

	// REPORT_ERROR
	Error             string `json:"error,omitempty"`
	Message           string `json:"message,omitempty"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// Badge is the persistent affordance written when the panel cannot be opened
type Badge struct {
	Pending bool   `json:"pending"`
	TabID   string `json:"tab_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
