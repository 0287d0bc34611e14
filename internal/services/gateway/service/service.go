// Package service implements the gateway message router
package service

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"verihub/internal/adapters/remote/verif"
	"verihub/internal/platform/logger"
	pstrings "verihub/internal/platform/strings"
	adomain "verihub/internal/services/analysis/domain"
	"verihub/internal/services/gateway/domain"
	pdomain "verihub/internal/services/panel/domain"
)

// Service routes inbound messages to the right collaborator.
// Dispatch never panics and never returns an error: the caller always
// gets exactly one response envelope
type Service struct {
	analysis adomain.ServicePort
	panel    pdomain.ServicePort
	log      logger.Logger
	now      func() time.Time
}

// New constructs the router
func New(analysis adomain.ServicePort, panel pdomain.ServicePort) *Service {
	return &Service{
		analysis: analysis,
		panel:    panel,
		log:      *logger.Named("gateway"),
		now:      time.Now,
	}
}

// Dispatch handles one inbound message and produces its single response
func (s *Service) Dispatch(ctx context.Context, tabID string, msg domain.Message) (resp domain.Response) {
	defer func() {
		if v := recover(); v != nil {
			s.log.Error().
				Interface("panic", v).
				Str("type", string(msg.Type)).
				Msgf("dispatch panic recovered\n%s", debug.Stack())
			resp = domain.Response{
				Success: false,
				Error:   domain.ErrInternal,
				Message: domain.MsgInternalError,
			}
		}
	}()

	switch msg.Type {
	case domain.TypeAnalyzeRequest:
		return s.handleAnalyze(ctx, tabID, msg)
	case domain.TypeChatRequest:
		return s.handleChat(ctx, msg)
	case domain.TypeOpenPanel:
		return s.handleOpenPanel(ctx, pstrings.FirstNonEmpty(msg.TabID, tabID))
	case domain.TypeTabClosed:
		s.analysis.ReleaseTab(ctx, pstrings.FirstNonEmpty(msg.TabID, tabID))
		return domain.Response{Success: true}
	case domain.TypePing:
		return domain.Response{Success: true, Type: domain.TypePong, Timestamp: s.now().UnixMilli()}
	default:
		s.log.Warn().Str("type", string(msg.Type)).Msg("unknown message type")
		return domain.Response{
			Success: false,
			Error:   domain.ErrUnknownMessageType,
			Message: domain.MsgUnknownType,
		}
	}
}

func (s *Service) handleAnalyze(ctx context.Context, tabID string, msg domain.Message) domain.Response {
	tab := pstrings.FirstNonEmpty(msg.TabID, tabID)
	res, err := s.analysis.Submit(ctx, tab, msg.AnalysisRequest())
	if err != nil {
		var d *adomain.Descriptor
		if !errors.As(err, &d) {
			d = adomain.Classify(err)
		}
		userMsg := domain.UserMessage(d)
		s.log.Warn().
			Str("kind", string(d.Kind)).
			Str("tab_id", tab).
			Str("detail", pstrings.Truncate(d.Detail, 200)).
			Msg("analysis failed")

		if perr := s.panel.PublishError(ctx, string(d.Kind), userMsg, d.RetryAfterSeconds); perr != nil {
			s.log.Error().Err(perr).Msg("publishing error update failed")
		}
		return domain.Response{
			Success:           false,
			Error:             string(d.Kind),
			Message:           userMsg,
			RetryAfterSeconds: d.RetryAfterSeconds,
		}
	}

	// raising the panel is best effort, publication still happens
	if oerr := s.panel.Open(ctx, tab); oerr != nil {
		s.log.Warn().Err(oerr).Str("tab_id", tab).Msg("panel open degraded")
	}
	if perr := s.panel.PublishReport(ctx, res.Report, res.Headers); perr != nil {
		s.log.Error().Err(perr).Msg("publishing report failed")
	}

	headers := res.Headers
	if res.FromCache {
		// redisplay path, record what the surface shows again
		if cerr := s.panel.SetCurrent(ctx, pdomain.Update{
			Type:    pdomain.KindReportReady,
			Report:  res.Report,
			Headers: &headers,
		}); cerr != nil {
			s.log.Warn().Err(cerr).Msg("recording current report failed")
		}
	}

	return domain.Response{
		Success:    true,
		AnalysisID: res.Report.AnalysisID,
		Report:     res.Report,
		Headers:    &headers,
		Cached:     res.FromCache,
	}
}

// handleChat answers with the placeholder until the chat endpoint ships
func (s *Service) handleChat(ctx context.Context, msg domain.Message) domain.Response {
	if msg.AnalysisID != "" {
		if _, ok := s.analysis.Recall(ctx, msg.AnalysisID); !ok {
			s.log.Debug().Str("analysis_id", msg.AnalysisID).Msg("chat references unknown analysis")
		}
	}
	return domain.Response{
		Success:   true,
		Reply:     domain.MsgChatComingSoon,
		Citations: []verif.Citation{},
	}
}

func (s *Service) handleOpenPanel(ctx context.Context, tabID string) domain.Response {
	if err := s.panel.Open(ctx, tabID); err != nil {
		s.log.Warn().Err(err).Str("tab_id", tabID).Msg("panel open degraded")
	}
	return domain.Response{Success: true}
}
