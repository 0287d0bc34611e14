// Package service implements the panel display surface
package service

import (
	"context"
	"encoding/json"

	"verihub/internal/adapters/remote/verif"
	perr "verihub/internal/platform/errors"
	"verihub/internal/platform/logger"
	"verihub/internal/platform/store"
	"verihub/internal/services/panel/domain"
)

// Service publishes analysis outcomes to the shared slot store and raises
// the panel through whatever opener the host provides
type Service struct {
	kv     store.KV
	opener domain.OpenerPort
	log    logger.Logger
}

// New constructs the panel service. A nil opener falls back to the
// store notify opener
func New(kv store.KV, opener domain.OpenerPort) *Service {
	if opener == nil {
		opener = NewNotifyOpener(kv)
	}
	return &Service{
		kv:     kv,
		opener: opener,
		log:    *logger.Named("panel"),
	}
}

// Open raises the panel. Open failures are expected under host gesture
// constraints, so they degrade to a persistent badge and return nil
func (s *Service) Open(ctx context.Context, tabID string) error {
	if err := s.opener.Open(ctx, tabID); err != nil {
		s.log.Warn().Err(err).Str("tab_id", tabID).Msg("panel open failed, setting badge")
		badge, merr := json.Marshal(domain.Badge{Pending: true, TabID: tabID, Reason: err.Error()})
		if merr != nil {
			return nil
		}
		if serr := s.kv.Set(ctx, store.SlotPanelBadge, badge); serr != nil {
			s.log.Error().Err(serr).Msg("writing panel badge failed")
		}
		return nil
	}
	// a successful open clears any stale badge
	if err := s.kv.Delete(ctx, store.SlotPanelBadge); err != nil {
		s.log.Warn().Err(err).Msg("clearing panel badge failed")
	}
	return nil
}

// PublishReport writes a completed report into the latest report slot
func (s *Service) PublishReport(ctx context.Context, report *verif.Report, headers verif.Headers) error {
	if report == nil {
		return perr.InvalidArgf("report is required")
	}
	return s.publish(ctx, domain.Update{
		Type:    domain.KindReportReady,
		Report:  report,
		Headers: &headers,
	})
}

// PublishError writes a failure update into the latest report slot
func (s *Service) PublishError(ctx context.Context, errName, message string, retryAfterSeconds int) error {
	return s.publish(ctx, domain.Update{
		Type:              domain.KindReportError,
		Error:             errName,
		Message:           message,
		RetryAfterSeconds: retryAfterSeconds,
	})
}

func (s *Service) publish(ctx context.Context, upd domain.Update) error {
	b, err := json.Marshal(upd)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode panel update")
	}
	if err := s.kv.Set(ctx, store.SlotLatestReport, b); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "publish panel update")
	}
	return nil
}

// Latest reads the current slot content. ok is false when the slot is empty
func (s *Service) Latest(ctx context.Context) (domain.Update, bool, error) {
	raw, ok, err := s.kv.Get(ctx, store.SlotLatestReport)
	if err != nil {
		return domain.Update{}, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read latest update")
	}
	if !ok || len(raw) == 0 {
		return domain.Update{}, false, nil
	}
	var upd domain.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		return domain.Update{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "decode latest update")
	}
	return upd, true, nil
}

// SetCurrent records the update the panel is actually displaying.
// Surfaces read it back to redisplay without a new analysis
func (s *Service) SetCurrent(ctx context.Context, upd domain.Update) error {
	if upd.Type != domain.KindReportReady && upd.Type != domain.KindReportError {
		return perr.InvalidArgf("unknown update type %q", upd.Type)
	}
	b, err := json.Marshal(upd)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode current update")
	}
	if err := s.kv.Set(ctx, store.SlotCurrentReport, b); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "store current update")
	}
	return nil
}

// Current reads what the panel is displaying. ok is false when nothing is
func (s *Service) Current(ctx context.Context) (domain.Update, bool, error) {
	raw, ok, err := s.kv.Get(ctx, store.SlotCurrentReport)
	if err != nil {
		return domain.Update{}, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read current update")
	}
	if !ok || len(raw) == 0 {
		return domain.Update{}, false, nil
	}
	var upd domain.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		return domain.Update{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "decode current update")
	}
	return upd, true, nil
}

// Badge reads the pending badge slot. ok is false when no badge is set
func (s *Service) Badge(ctx context.Context) (domain.Badge, bool, error) {
	raw, ok, err := s.kv.Get(ctx, store.SlotPanelBadge)
	if err != nil {
		return domain.Badge{}, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read panel badge")
	}
	if !ok || len(raw) == 0 {
		return domain.Badge{}, false, nil
	}
	var b domain.Badge
	if err := json.Unmarshal(raw, &b); err != nil {
		return domain.Badge{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "decode panel badge")
	}
	return b, true, nil
}

// ClearBadge removes the pending badge, used once the panel is shown
func (s *Service) ClearBadge(ctx context.Context) error {
	return s.kv.Delete(ctx, store.SlotPanelBadge)
}
