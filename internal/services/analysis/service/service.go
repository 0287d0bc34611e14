// Package service implements the analysis orchestrator
package service

import (
	"context"
	"time"

	"verihub/internal/adapters/remote/verif"
	"verihub/internal/core/backoff"
	"verihub/internal/core/cache"
	"verihub/internal/core/ratelimit"
	perr "verihub/internal/platform/errors"
	"verihub/internal/platform/logger"
	"verihub/internal/services/analysis/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Client is the upstream surface the orchestrator needs, satisfied by verif.Client
type Client interface {
	AnalyzeText(ctx context.Context, text, platform string, meta verif.PostMetadata) (*verif.Report, verif.Headers, error)
	AnalyzeVideo(ctx context.Context, url, platform string, meta verif.PostMetadata) (*verif.Report, verif.Headers, error)
	AnalyzeImage(ctx context.Context, image []byte, platform string, meta verif.PostMetadata) (*verif.Report, verif.Headers, error)
}

// Options tunes retries, caches, and the per tab limiter.
// Video gets a longer base delay because the remote operation is slower,
// not because its failures differ
type Options struct {
	Text       backoff.Policy
	Video      backoff.Policy
	Screenshot backoff.Policy

	DedupTTL   time.Duration
	HistoryCap int
	HistoryTTL time.Duration

	Limiter ratelimit.Options
}

func (o *Options) applyDefaults() {
	if o.Text.Attempts <= 0 {
		o.Text = backoff.Policy{Attempts: 2, Base: 1000 * time.Millisecond}
	}
	if o.Video.Attempts <= 0 {
		o.Video = backoff.Policy{Attempts: 2, Base: 2000 * time.Millisecond}
	}
	if o.Screenshot.Attempts <= 0 {
		o.Screenshot = backoff.Policy{Attempts: 2, Base: 1500 * time.Millisecond}
	}
}

// Service coordinates rate limiting, dedup, retries, and result caching
type Service struct {
	client  Client
	limiter *ratelimit.Limiter
	dedup   *cache.Dedup[domain.Result]
	history *cache.History[*verif.Report]
	flights singleflight.Group
	opts    Options
	log     logger.Logger
}

// New constructs the orchestrator
func New(client Client, opts Options) *Service {
	opts.applyDefaults()
	return &Service{
		client:  client,
		limiter: ratelimit.New(opts.Limiter),
		dedup:   cache.NewDedup[domain.Result](opts.DedupTTL),
		history: cache.NewHistory[*verif.Report](opts.HistoryCap, opts.HistoryTTL),
		opts:    opts,
		log:     *logger.Named("analysis"),
	}
}

// Submit implements domain.ServicePort
func (s *Service) Submit(ctx context.Context, tabID string, req domain.Request) (domain.Result, error) {
	var zero domain.Result

	if !req.Mode.Valid() {
		return zero, perr.InvalidArgf("unknown analysis mode %q", req.Mode)
	}

	// pre-flight, no network attempted for a limited tab
	if tabID != "" && s.limiter.Limited(tabID) {
		s.log.Warn().Str("tab_id", tabID).Msg("analysis rejected by tab limit")
		return zero, domain.LocalRateLimited()
	}

	key, hasIdentity := req.Identity()
	if hasIdentity {
		if res, ok := s.dedup.Get(key); ok {
			s.log.Debug().Str("identity", key).Msg("analysis served from dedup cache")
			res.FromCache = true
			return res, nil
		}
	}

	// concurrent identical submissions share one upstream call
	flightKey := key
	if !hasIdentity {
		flightKey = uuid.NewString()
	}
	v, err, _ := s.flights.Do(flightKey, func() (any, error) {
		return s.analyze(ctx, req)
	})
	if err != nil {
		return zero, domain.Classify(err)
	}
	res := v.(domain.Result)

	if hasIdentity {
		s.dedup.Put(key, res)
	}
	if res.Report != nil && res.Report.AnalysisID != "" {
		s.history.Put(res.Report.AnalysisID, res.Report)
	}
	if tabID != "" {
		s.limiter.Record(tabID)
	}
	return res, nil
}

// analyze runs the mode specific upstream call under its retry policy
func (s *Service) analyze(ctx context.Context, req domain.Request) (domain.Result, error) {
	type callOut struct {
		report  *verif.Report
		headers verif.Headers
	}

	var pol backoff.Policy
	var call func(context.Context) (callOut, error)

	switch req.Mode {
	case domain.ModeText:
		pol = s.opts.Text
		call = func(ctx context.Context) (callOut, error) {
			r, h, err := s.client.AnalyzeText(ctx, req.Text, req.Platform, req.Metadata)
			return callOut{r, h}, err
		}
	case domain.ModeVideo:
		pol = s.opts.Video
		call = func(ctx context.Context) (callOut, error) {
			r, h, err := s.client.AnalyzeVideo(ctx, req.URL, req.Platform, req.Metadata)
			return callOut{r, h}, err
		}
	default:
		pol = s.opts.Screenshot
		call = func(ctx context.Context) (callOut, error) {
			r, h, err := s.client.AnalyzeImage(ctx, req.Image, req.Platform, req.Metadata)
			return callOut{r, h}, err
		}
	}

	out, err := backoff.Retry(ctx, pol, call)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Report: out.report, Headers: out.headers}, nil
}

// Recall implements domain.ServicePort
func (s *Service) Recall(_ context.Context, analysisID string) (*verif.Report, bool) {
	return s.history.Get(analysisID)
}

// ReleaseTab implements domain.ServicePort
func (s *Service) ReleaseTab(_ context.Context, tabID string) {
	if tabID == "" {
		return
	}
	s.limiter.Clear(tabID)
	s.log.Debug().Str("tab_id", tabID).Msg("tab limiter state released")
}
