package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"verihub/internal/adapters/remote/verif"
	"verihub/internal/platform/store"
	"verihub/internal/services/panel/domain"
)

type fakeOpener struct {
	calls int
	err   error
}

func (f *fakeOpener) Open(ctx context.Context, tabID string) error {
	f.calls++
	return f.err
}

func report(id string) *verif.Report {
	return &verif.Report{
		AnalysisID: id,
		Scores:     verif.Scores{Propaganda: 40, Conspiracy: 10, Misinfo: 25, OverallRisk: 35},
		Summary:    "contenu à vérifier",
	}
}

func TestOpenFailureDegradesToBadge(t *testing.T) {
	kv := store.NewMemory()
	svc := New(kv, &fakeOpener{err: errors.New("no user gesture")})

	if err := svc.Open(context.Background(), "tab42"); err != nil {
		t.Fatalf("Open: %v (failed opens must not surface)", err)
	}

	badge, ok, err := svc.Badge(context.Background())
	if err != nil || !ok {
		t.Fatalf("Badge: ok=%v err=%v", ok, err)
	}
	if !badge.Pending || badge.TabID != "tab42" {
		t.Fatalf("badge = %+v", badge)
	}
}

func TestOpenSuccessClearsBadge(t *testing.T) {
	kv := store.NewMemory()
	opener := &fakeOpener{}
	svc := New(kv, opener)

	b, _ := json.Marshal(domain.Badge{Pending: true, TabID: "tab1"})
	if err := kv.Set(context.Background(), store.SlotPanelBadge, b); err != nil {
		t.Fatalf("seed badge: %v", err)
	}

	if err := svc.Open(context.Background(), "tab1"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opener.calls != 1 {
		t.Fatalf("opener calls = %d, want 1", opener.calls)
	}
	if _, ok, _ := svc.Badge(context.Background()); ok {
		t.Fatal("badge should be cleared after a successful open")
	}
}

func TestNotifyOpenerPulsesOpenSlot(t *testing.T) {
	kv := store.NewMemory()
	svc := New(kv, nil)

	if err := svc.Open(context.Background(), "tab9"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	raw, ok, err := kv.Get(context.Background(), store.SlotPanelOpen)
	if err != nil || !ok {
		t.Fatalf("open slot: ok=%v err=%v", ok, err)
	}
	var req OpenRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.TabID != "tab9" || req.RequestedAt == 0 {
		t.Fatalf("open request = %+v", req)
	}
}

func TestPublishReportRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	svc := New(kv, &fakeOpener{})

	if _, ok, err := svc.Latest(context.Background()); ok || err != nil {
		t.Fatalf("empty slot: ok=%v err=%v", ok, err)
	}

	headers := verif.Headers{ModelCard: "gpt-4o-mini", TaxonomyVersion: "DIMA-M2.2-130", LatencyMs: "812", BackendVersion: "1.4.0"}
	if err := svc.PublishReport(context.Background(), report("an-1"), headers); err != nil {
		t.Fatalf("PublishReport: %v", err)
	}

	upd, ok, err := svc.Latest(context.Background())
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	if upd.Type != domain.KindReportReady {
		t.Fatalf("type = %q", upd.Type)
	}
	if upd.Report == nil || upd.Report.AnalysisID != "an-1" {
		t.Fatalf("report = %+v", upd.Report)
	}
	if upd.Headers == nil || upd.Headers.LatencyMs != "812" {
		t.Fatalf("headers = %+v", upd.Headers)
	}
}

func TestPublishReportRequiresReport(t *testing.T) {
	svc := New(store.NewMemory(), &fakeOpener{})
	if err := svc.PublishReport(context.Background(), nil, verif.Headers{}); err == nil {
		t.Fatal("expected error for nil report")
	}
}

func TestCurrentRoundTripAndValidation(t *testing.T) {
	svc := New(store.NewMemory(), &fakeOpener{})

	if _, ok, err := svc.Current(context.Background()); ok || err != nil {
		t.Fatalf("empty current: ok=%v err=%v", ok, err)
	}
	if err := svc.SetCurrent(context.Background(), domain.Update{Type: "WHAT"}); err == nil {
		t.Fatal("expected rejection of unknown update type")
	}

	upd := domain.Update{Type: domain.KindReportReady, Report: report("an-3")}
	if err := svc.SetCurrent(context.Background(), upd); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	got, ok, err := svc.Current(context.Background())
	if err != nil || !ok {
		t.Fatalf("Current: ok=%v err=%v", ok, err)
	}
	if got.Report == nil || got.Report.AnalysisID != "an-3" {
		t.Fatalf("current = %+v", got)
	}
}

func TestPublishErrorRoundTrip(t *testing.T) {
	svc := New(store.NewMemory(), &fakeOpener{})

	if err := svc.PublishError(context.Background(), "rate_limit", "Trop de requêtes.", 60); err != nil {
		t.Fatalf("PublishError: %v", err)
	}

	upd, ok, err := svc.Latest(context.Background())
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	if upd.Type != domain.KindReportError || upd.Error != "rate_limit" || upd.RetryAfterSeconds != 60 {
		t.Fatalf("update = %+v", upd)
	}
}

func TestSubscribeDeliversAndDeduplicates(t *testing.T) {
	kv := store.NewMemory()
	svc := New(kv, &fakeOpener{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// pre-existing content is delivered on attach
	if err := svc.PublishReport(ctx, report("an-old"), verif.Headers{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updates, err := svc.Subscribe(ctx, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	first := recvUpdate(t, updates)
	if first.Report == nil || first.Report.AnalysisID != "an-old" {
		t.Fatalf("first = %+v", first)
	}

	if err := svc.PublishReport(ctx, report("an-new"), verif.Headers{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	second := recvUpdate(t, updates)
	if second.Report == nil || second.Report.AnalysisID != "an-new" {
		t.Fatalf("second = %+v", second)
	}

	// republishing the same analysis must not produce another delivery,
	// even with the reconcile poll running
	if err := svc.PublishReport(ctx, report("an-new"), verif.Headers{}); err != nil {
		t.Fatalf("republish: %v", err)
	}
	select {
	case upd, ok := <-updates:
		if ok {
			t.Fatalf("unexpected duplicate delivery: %+v", upd)
		}
	case <-time.After(60 * time.Millisecond):
	}

	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestSubscribeReconcilesMissedWrites(t *testing.T) {
	kv := store.NewMemory()
	svc := New(kv, &fakeOpener{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := svc.Subscribe(ctx, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// write directly to the slot so no watch event precedes the poll in
	// a guaranteed order; the reconcile pass must still pick it up
	upd := domain.Update{Type: domain.KindReportError, Error: "server_error", Message: "Erreur serveur. Réessayez plus tard."}
	b, _ := json.Marshal(upd)
	if err := kv.Set(ctx, store.SlotLatestReport, b); err != nil {
		t.Fatalf("set: %v", err)
	}

	got := recvUpdate(t, updates)
	if got.Type != domain.KindReportError || got.Error != "server_error" {
		t.Fatalf("got = %+v", got)
	}
}

func recvUpdate(t *testing.T, ch <-chan domain.Update) domain.Update {
	t.Helper()
	select {
	case upd, ok := <-ch:
		if !ok {
			t.Fatal("update channel closed early")
		}
		return upd
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	return domain.Update{}
}
