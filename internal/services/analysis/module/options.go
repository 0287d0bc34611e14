package module

import (
	"time"

	"verihub/internal/adapters/remote/verif"
	"verihub/internal/core/backoff"
	"verihub/internal/core/ratelimit"
	"verihub/internal/platform/config"
	asvc "verihub/internal/services/analysis/service"
)

// Config is the env derived wiring for the analysis module
type Config struct {
	Client  verif.Options
	Service asvc.Options
}

// FromConfig reads the analysis knobs, prefix ANALYSIS_ plus VERIF_ for the client
func FromConfig(cfg config.Conf) Config {
	vc := cfg.Prefix("VERIF_")
	ac := cfg.Prefix("ANALYSIS_")

	return Config{
		Client: verif.Options{
			BaseURL:   vc.MayString("BASE_URL", ""),
			UserAgent: vc.MayString("USER_AGENT", ""),
			Timeout:   vc.MayDuration("TIMEOUT", 60*time.Second),
		},
		Service: asvc.Options{
			Text: backoff.Policy{
				Attempts: ac.MayInt("TEXT_ATTEMPTS", 2),
				Base:     ac.MayDuration("TEXT_BASE", 1000*time.Millisecond),
			},
			Video: backoff.Policy{
				Attempts: ac.MayInt("VIDEO_ATTEMPTS", 2),
				Base:     ac.MayDuration("VIDEO_BASE", 2000*time.Millisecond),
			},
			Screenshot: backoff.Policy{
				Attempts: ac.MayInt("SCREENSHOT_ATTEMPTS", 2),
				Base:     ac.MayDuration("SCREENSHOT_BASE", 1500*time.Millisecond),
			},
			DedupTTL:   ac.MayDuration("DEDUP_TTL", 5*time.Minute),
			HistoryCap: ac.MayInt("HISTORY_CAP", 10),
			HistoryTTL: ac.MayDuration("HISTORY_TTL", time.Hour),
			Limiter: ratelimit.Options{
				Max:    ac.MayInt("TAB_MAX_REQUESTS", 3),
				Window: ac.MayDuration("TAB_WINDOW", 60*time.Second),
			},
		},
	}
}
