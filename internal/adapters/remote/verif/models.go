package verif

import (
	"fmt"
	"net/http"
)

// Report is the analysis document returned by the verification backend
type Report struct {
	AnalysisID        string      `json:"analysis_id"`
	TaxonomyVersion   string      `json:"taxonomy_version,omitempty"`
	ModelCard         string      `json:"model_card,omitempty"`
	AnalyzedAt        string      `json:"analyzed_at,omitempty"`
	Platform          string      `json:"platform,omitempty"`
	Scores            Scores      `json:"scores"`
	Techniques        []Technique `json:"techniques,omitempty"`
	Claims            []Claim     `json:"claims,omitempty"`
	Summary           string      `json:"summary,omitempty"`
	TranscriptExcerpt string      `json:"transcript_excerpt,omitempty"`
	Metadata          *ReportMeta `json:"metadata,omitempty"`
}

// Scores are the 0-100 risk scores
type Scores struct {
	Propaganda  float64 `json:"propaganda"`
	Conspiracy  float64 `json:"conspiracy"`
	Misinfo     float64 `json:"misinfo"`
	OverallRisk float64 `json:"overall_risk"`
}

// Technique is one detected manipulation technique
type Technique struct {
	DimaCode      string         `json:"dima_code"`
	DimaFamily    string         `json:"dima_family,omitempty"`
	Name          string         `json:"name"`
	Evidence      string         `json:"evidence,omitempty"`
	Severity      string         `json:"severity,omitempty"`
	Explanation   string         `json:"explanation,omitempty"`
	EmbeddingHint *EmbeddingHint `json:"embedding_hint,omitempty"`
}

// EmbeddingHint carries semantic similarity data for a technique
type EmbeddingHint struct {
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"`
}

// Claim is one analyzed claim with its judgment
type Claim struct {
	Claim      string   `json:"claim"`
	Confidence string   `json:"confidence"`
	Issues     []string `json:"issues,omitempty"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// ReportMeta is processing metadata embedded in the report body
type ReportMeta struct {
	LatencyMs           float64  `json:"latency_ms,omitempty"`
	EmbeddingHintsCount int      `json:"embedding_hints_count,omitempty"`
	OCRConfidence       *float64 `json:"ocr_confidence,omitempty"`
}

// Header defaults applied when the backend omits its side channel headers
const (
	DefaultModelCard       = "gpt-4o-mini"
	DefaultTaxonomyVersion = "DIMA-M2.2-130"
	DefaultLatencyMs       = "0"
	DefaultBackendVersion  = "unknown"
)

// Headers is the side channel metadata extracted from response headers
type Headers struct {
	ModelCard       string `json:"modelCard"`
	TaxonomyVersion string `json:"taxonomyVersion"`
	LatencyMs       string `json:"latencyMs"`
	BackendVersion  string `json:"backendVersion"`
}

// ExtractHeaders reads the custom headers applying documented defaults
func ExtractHeaders(h http.Header) Headers {
	get := func(name, def string) string {
		if v := h.Get(name); v != "" {
			return v
		}
		return def
	}
	return Headers{
		ModelCard:       get("x-model-card", DefaultModelCard),
		TaxonomyVersion: get("x-taxonomy-version", DefaultTaxonomyVersion),
		LatencyMs:       get("x-latency-ms", DefaultLatencyMs),
		BackendVersion:  get("x-backend-version", DefaultBackendVersion),
	}
}

// ChatReply is the backend /chat response
type ChatReply struct {
	Reply     string     `json:"reply"`
	Citations []Citation `json:"citations"`
	LatencyMs float64    `json:"latency_ms,omitempty"`
}

// Citation references a technique quoted in a chat reply
type Citation struct {
	Technique string `json:"technique"`
	Evidence  string `json:"evidence"`
}

// StatusError is returned when the backend answers with a non-2xx status.
// Detail carries the backend's error detail when the body had one
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("verif backend status %d: %s", e.Status, e.Detail)
}
