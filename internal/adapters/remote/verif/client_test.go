package verif_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"verihub/internal/adapters/remote/verif"
	perr "verihub/internal/platform/errors"
)

func TestAnalyzeText_SendsJSONAndAppliesHeaderDefaults(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-text" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		// respond without any custom headers to exercise the defaults
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"analysis_id":"a1","scores":{"propaganda":10,"conspiracy":5,"misinfo":20,"overall_risk":15}}`))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	report, headers, err := c.AnalyzeText(context.Background(), "some claim", "twitter",
		verif.PostMetadata{Permalink: "https://x.com/u/status/1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["text"] != "some claim" || gotBody["platform"] != "twitter" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
	if report.AnalysisID != "a1" || report.Scores.OverallRisk != 15 {
		t.Fatalf("unexpected report %+v", report)
	}
	want := verif.Headers{
		ModelCard:       "gpt-4o-mini",
		TaxonomyVersion: "DIMA-M2.2-130",
		LatencyMs:       "0",
		BackendVersion:  "unknown",
	}
	if headers != want {
		t.Fatalf("unexpected headers %+v", headers)
	}
}

func TestAnalyzeText_ReadsCustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-model-card", "gpt-5")
		w.Header().Set("x-taxonomy-version", "DIMA-M3")
		w.Header().Set("x-latency-ms", "3500")
		w.Header().Set("x-backend-version", "2025-11-03")
		_, _ = w.Write([]byte(`{"analysis_id":"a2","scores":{}}`))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	_, headers, err := c.AnalyzeText(context.Background(), "t", "generic", verif.PostMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers.ModelCard != "gpt-5" || headers.LatencyMs != "3500" || headers.BackendVersion != "2025-11-03" {
		t.Fatalf("unexpected headers %+v", headers)
	}
}

func TestAnalyzeText_NonOKBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"slow down"}`))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	_, _, err := c.AnalyzeText(context.Background(), "t", "generic", verif.PostMetadata{})

	var se *verif.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError got %T %v", err, err)
	}
	if se.Status != http.StatusTooManyRequests || se.Detail != "slow down" {
		t.Fatalf("unexpected status error %+v", se)
	}
}

func TestAnalyzeText_NonJSONErrorBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	_, _, err := c.AnalyzeText(context.Background(), "t", "generic", verif.PostMetadata{})

	var se *verif.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError got %v", err)
	}
	if se.Status != http.StatusBadGateway || se.Detail == "" {
		t.Fatalf("unexpected status error %+v", se)
	}
}

func TestAnalyzeVideo_SendsMultipartFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-video" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("url"); got != "https://youtu.be/v1" {
			t.Fatalf("unexpected url field %q", got)
		}
		if got := r.FormValue("platform"); got != "youtube" {
			t.Fatalf("unexpected platform field %q", got)
		}
		var meta verif.PostMetadata
		if err := json.Unmarshal([]byte(r.FormValue("metadata")), &meta); err != nil {
			t.Fatalf("metadata field not json: %v", err)
		}
		if meta.Title != "clip" {
			t.Fatalf("unexpected metadata %+v", meta)
		}
		_, _ = w.Write([]byte(`{"analysis_id":"v1","scores":{}}`))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	report, _, err := c.AnalyzeVideo(context.Background(), "https://youtu.be/v1", "youtube",
		verif.PostMetadata{Title: "clip"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.AnalysisID != "v1" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestAnalyzeImage_SendsFileAndRejectsEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image file: %v", err)
		}
		defer func() { _ = f.Close() }()
		if hdr.Filename != "screenshot.png" {
			t.Fatalf("unexpected filename %q", hdr.Filename)
		}
		_, _ = w.Write([]byte(`{"analysis_id":"i1","scores":{}}`))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	if _, _, err := c.AnalyzeImage(context.Background(), []byte{0x89, 0x50}, "twitter", verif.PostMetadata{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := c.AnalyzeImage(context.Background(), nil, "twitter", verif.PostMetadata{})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument for empty image, got %v", err)
	}
}

func TestChat_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["analysis_id"] != "a1" || body["message"] != "explique" {
			t.Fatalf("unexpected request body %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"voici","citations":[{"technique":"T1","evidence":"e"}]}`))
	}))
	defer srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: srv.URL})
	reply, err := c.Chat(context.Background(), "a1", "explique")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Reply != "voici" || len(reply.Citations) != 1 || reply.Citations[0].Technique != "T1" {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	// closed server to force a connection error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := verif.NewClient(verif.Options{BaseURL: url})
	_, _, err := c.AnalyzeText(context.Background(), "t", "generic", verif.PostMetadata{})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable code got %v", err)
	}
	var se *verif.StatusError
	if errors.As(err, &se) {
		t.Fatal("transport failures must not look like status errors")
	}
}
