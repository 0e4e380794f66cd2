package notify

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ibnfzy/gizichain/internal/model"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func sampleNotifications() []model.Notification {
	return []model.Notification{
		{ID: "n1", Title: "Jadwal posyandu", Type: "schedule-reminder"},
		{ID: "n2", Title: "Insight mingguan", Type: "insight"},
		{ID: "n3", Title: "Pengingat kontrol", Type: "schedule-reminder"},
	}
}

func TestInitialLoadHappensOnce(t *testing.T) {
	t.Parallel()

	var fetches int64
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		atomic.AddInt64(&fetches, 1)
		return sampleNotifications(), nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()

	if got := s.Snapshot(); len(got.Notifications) != 0 || got.Loading {
		t.Fatalf("idle state must be empty, got %+v", got)
	}

	s.SetMotherID("m1")
	waitFor(t, "initial load", func() bool { return len(s.Snapshot().Notifications) == 3 })

	if got := atomic.LoadInt64(&fetches); got != 1 {
		t.Fatalf("expected exactly one loading-phase fetch, got %d", got)
	}
	snap := s.Snapshot()
	if snap.Loading || snap.Refreshing || snap.Err != "" {
		t.Fatalf("unexpected ready state: %+v", snap)
	}

	// Same id again is a no-op, not a reload.
	s.SetMotherID("m1")
	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt64(&fetches); got != 1 {
		t.Fatalf("expected no refetch for unchanged mother id, got %d", got)
	}
}

func TestClearingMotherIDStopsPolling(t *testing.T) {
	t.Parallel()

	var fetches int64
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		atomic.AddInt64(&fetches, 1)
		return sampleNotifications(), nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: 10 * time.Millisecond, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	waitFor(t, "a few poll cycles", func() bool { return atomic.LoadInt64(&fetches) >= 3 })

	s.SetMotherID("")
	if got := s.Snapshot(); len(got.Notifications) != 0 {
		t.Fatalf("cache must clear on session end, got %+v", got)
	}
	settled := atomic.LoadInt64(&fetches)
	time.Sleep(60 * time.Millisecond)
	// An already in-flight cycle may land, but the timer must be gone.
	if got := atomic.LoadInt64(&fetches); got > settled+1 {
		t.Fatalf("polling continued after session end: %d -> %d", settled, got)
	}
}

func TestRefreshFailureKeepsCacheAndSetsError(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		if fail.Load() {
			return nil, errors.New("backend down")
		}
		return sampleNotifications(), nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	waitFor(t, "initial load", func() bool { return len(s.Snapshot().Notifications) == 3 })

	fail.Store(true)
	s.Refresh(context.Background())

	snap := s.Snapshot()
	if len(snap.Notifications) != 3 {
		t.Fatalf("failed refresh must keep previous cache, got %d items", len(snap.Notifications))
	}
	if snap.Err == "" {
		t.Fatal("visible refresh failure must surface an error message")
	}

	fail.Store(false)
	s.Refresh(context.Background())
	if snap := s.Snapshot(); snap.Err != "" {
		t.Fatalf("successful refresh must clear the error, got %q", snap.Err)
	}
}

func TestSilentFailureNotSurfaced(t *testing.T) {
	t.Parallel()

	var calls int64
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			return sampleNotifications(), nil
		}
		return nil, errors.New("backend down")
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: 10 * time.Millisecond, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	waitFor(t, "failing poll cycles", func() bool { return atomic.LoadInt64(&calls) >= 3 })

	snap := s.Snapshot()
	if snap.Err != "" {
		t.Fatalf("silent poll failures must not surface, got %q", snap.Err)
	}
	if len(snap.Notifications) != 3 {
		t.Fatalf("silent failures must keep the cache, got %d items", len(snap.Notifications))
	}
}

func TestStaleSessionResponseDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		if motherID == "m1" {
			<-release
			return []model.Notification{{ID: "stale", Type: "insight"}}, nil
		}
		return []model.Notification{{ID: "fresh", Type: "insight"}}, nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	time.Sleep(10 * time.Millisecond) // let the m1 fetch start and block
	s.SetMotherID("m2")
	waitFor(t, "m2 load", func() bool {
		snap := s.Snapshot()
		return len(snap.Notifications) == 1 && snap.Notifications[0].ID == "fresh"
	})

	close(release) // late m1 response lands now
	time.Sleep(20 * time.Millisecond)
	snap := s.Snapshot()
	if len(snap.Notifications) != 1 || snap.Notifications[0].ID != "fresh" {
		t.Fatalf("stale response overwrote the cache: %+v", snap.Notifications)
	}
}

func TestMarkAsRead(t *testing.T) {
	t.Parallel()

	var markErr atomic.Value
	var marked []string
	markRead := func(ctx context.Context, id string) error {
		if err, _ := markErr.Load().(error); err != nil {
			return err
		}
		marked = append(marked, id)
		return nil
	}
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		return sampleNotifications(), nil
	}
	s := NewSynchronizer(fetch, markRead, Options{PollInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	waitFor(t, "initial load", func() bool { return len(s.Snapshot().Notifications) == 3 })

	// Full notification value as the Ref.
	s.MarkAsRead(context.Background(), model.Notification{ID: "n1"})
	if got := s.Snapshot().Notifications; len(got) != 2 {
		t.Fatalf("expected n1 removed, got %+v", got)
	}
	// Bare identifier as the Ref.
	s.MarkAsRead(context.Background(), ID("n2"))
	if got := s.Snapshot().Notifications; len(got) != 1 || got[0].ID != "n3" {
		t.Fatalf("expected only n3 left, got %+v", got)
	}
	if !reflect.DeepEqual(marked, []string{"n1", "n2"}) {
		t.Fatalf("unexpected remote calls: %v", marked)
	}

	// Remote failure: cache untouched, nothing panics or propagates.
	markErr.Store(errors.New("backend down"))
	s.MarkAsRead(context.Background(), ID("n3"))
	if got := s.Snapshot().Notifications; len(got) != 1 {
		t.Fatalf("failed mark-as-read must keep the cache, got %+v", got)
	}

	s.MarkAsRead(context.Background(), nil)
	s.MarkAsRead(context.Background(), ID(""))
}

func TestCountsByTypeAndScheduleReminders(t *testing.T) {
	t.Parallel()

	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		return []model.Notification{
			{ID: "1", Type: "schedule-reminder"},
			{ID: "2", Type: "insight"},
			{ID: "3", Type: ""},
			{ID: "4", Type: "schedule-reminder"},
			{ID: "", Type: "insight"}, // derived entry without an id still counts
		}, nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	waitFor(t, "initial load", func() bool { return len(s.Snapshot().Notifications) == 5 })

	want := map[string]int{"schedule-reminder": 2, "insight": 2, "general": 1}
	if got := s.CountsByType(); !reflect.DeepEqual(got, want) {
		t.Fatalf("counts = %v, want %v", got, want)
	}
	reminders := s.ScheduleReminders()
	if len(reminders) != 2 || reminders[0].ID != "1" || reminders[1].ID != "4" {
		t.Fatalf("unexpected reminders: %+v", reminders)
	}
}

func TestOnForegroundCoalesced(t *testing.T) {
	t.Parallel()

	var fetches int64
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		atomic.AddInt64(&fetches, 1)
		return sampleNotifications(), nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()

	s.SetMotherID("m1")
	waitFor(t, "initial load", func() bool { return atomic.LoadInt64(&fetches) == 1 })

	s.OnForeground(context.Background())
	waitFor(t, "resume refresh", func() bool { return atomic.LoadInt64(&fetches) == 2 })

	// Immediate second resume is rate-limited away.
	s.OnForeground(context.Background())
	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt64(&fetches); got != 2 {
		t.Fatalf("resume burst not coalesced: %d fetches", got)
	}
}

func TestCloseStopsCallbacks(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fetch := func(ctx context.Context, motherID string) ([]model.Notification, error) {
		<-release
		return sampleNotifications(), nil
	}
	s := NewSynchronizer(fetch, func(ctx context.Context, id string) error { return nil },
		Options{PollInterval: time.Hour, Logger: quietLogger()})

	s.SetMotherID("m1")
	time.Sleep(10 * time.Millisecond)
	s.Close()
	close(release)
	time.Sleep(20 * time.Millisecond)

	if got := s.Snapshot(); len(got.Notifications) != 0 {
		t.Fatalf("callback mutated state after Close: %+v", got)
	}
	s.SetMotherID("m2") // no-op after Close
	if got := s.Snapshot(); len(got.Notifications) != 0 {
		t.Fatalf("SetMotherID after Close must be inert, got %+v", got)
	}
}
