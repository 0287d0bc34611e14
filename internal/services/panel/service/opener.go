package service

import (
	"context"
	"encoding/json"
	"time"

	perr "verihub/internal/platform/errors"
	"verihub/internal/platform/store"
)

// NotifyOpener asks an attached panel host to raise itself by pulsing the
// open slot. Hosts watch the slot and act on the request; when no host is
// attached the write still succeeds and the badge path takes over via
// staleness
type NotifyOpener struct {
	kv  store.KV
	now func() time.Time
}

// OpenRequest is the payload written to the open slot
type OpenRequest struct {
	TabID       string `json:"tab_id,omitempty"`
	RequestedAt int64  `json:"requested_at"`
}

// NewNotifyOpener constructs the store backed opener
func NewNotifyOpener(kv store.KV) *NotifyOpener {
	return &NotifyOpener{kv: kv, now: time.Now}
}

// Open writes the open request. It only fails when the store does
func (o *NotifyOpener) Open(ctx context.Context, tabID string) error {
	req := OpenRequest{TabID: tabID, RequestedAt: o.now().UnixMilli()}
	b, err := json.Marshal(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode open request")
	}
	if err := o.kv.Set(ctx, store.SlotPanelOpen, b); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "signal panel open")
	}
	return nil
}
