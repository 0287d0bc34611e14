// Package domain holds the analysis orchestrator types
package domain

import (
	"verihub/internal/adapters/remote/verif"
	"verihub/internal/core/identity"
)

// Mode selects which upstream endpoint an analysis uses
type Mode string

// Analysis modes
const (
	ModeText       Mode = "text"
	ModeVideo      Mode = "video"
	ModeScreenshot Mode = "screenshot"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeText, ModeVideo, ModeScreenshot:
		return true
	}
	return false
}

// Request is one analysis submission
type Request struct {
	Mode     Mode
	Platform string

	// exactly one of these carries the payload, by mode
	Text  string
	URL   string
	Image []byte

	Metadata verif.PostMetadata
}

// Identity derives the content identity key for dedup. ok is false when
// the request carries nothing stable to key on
func (r Request) Identity() (key string, ok bool) {
	if r.Metadata.Permalink != "" {
		return identity.Key(string(r.Mode), identity.CanonicalURL(r.Metadata.Permalink)), true
	}
	switch r.Mode {
	case ModeText:
		if t := identity.CanonicalText(r.Text); t != "" {
			return identity.Key(string(r.Mode), t), true
		}
	case ModeVideo:
		if u := identity.CanonicalURL(r.URL); u != "" {
			return identity.Key(string(r.Mode), u), true
		}
	case ModeScreenshot:
		if len(r.Image) > 0 {
			return identity.Key(string(r.Mode), string(r.Image)), true
		}
	}
	return "", false
}

// Result is a completed analysis with its side channel metadata
type Result struct {
	Report  *verif.Report `json:"report"`
	Headers verif.Headers `json:"headers"`

	// FromCache marks results satisfied without a network call
	FromCache bool `json:"-"`
}
