package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"verihub/internal/platform/store"
	"verihub/internal/services/panel/domain"
)

// DefaultReconcileInterval paces the fallback poll of the latest report slot
const DefaultReconcileInterval = 2 * time.Second

// Subscribe delivers slot updates over two paths: the store watch for
// immediacy and a reconciliation poll for watchers that fell behind or
// attached after the write. Duplicate deliveries are suppressed by
// fingerprint, so consumers see each distinct update once.
// The channel closes when ctx is done
func (s *Service) Subscribe(ctx context.Context, interval time.Duration) (<-chan domain.Update, error) {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}
	events, err := s.kv.Watch(ctx, store.SlotLatestReport)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Update, 4)
	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var seen string
		emit := func(raw []byte) {
			if len(raw) == 0 {
				return
			}
			var upd domain.Update
			if err := json.Unmarshal(raw, &upd); err != nil {
				s.log.Warn().Err(err).Msg("dropping undecodable slot update")
				return
			}
			fp := fingerprint(upd)
			if fp == seen {
				return
			}
			select {
			case out <- upd:
				seen = fp
			case <-ctx.Done():
			}
		}

		// catch up on whatever is already in the slot
		if raw, ok, err := s.kv.Get(ctx, store.SlotLatestReport); err == nil && ok {
			emit(raw)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				emit(ev.Value)
			case <-ticker.C:
				raw, ok, err := s.kv.Get(ctx, store.SlotLatestReport)
				if err != nil {
					s.log.Warn().Err(err).Msg("reconcile read failed")
					continue
				}
				if ok {
					emit(raw)
				}
			}
		}
	}()
	return out, nil
}

// fingerprint identifies an update for duplicate suppression. Reports are
// keyed by analysis id, errors by their full surface
func fingerprint(upd domain.Update) string {
	if upd.Type == domain.KindReportReady && upd.Report != nil {
		return fmt.Sprintf("%s:%s", upd.Type, upd.Report.AnalysisID)
	}
	return fmt.Sprintf("%s:%s:%s:%d", upd.Type, upd.Error, upd.Message, upd.RetryAfterSeconds)
}
