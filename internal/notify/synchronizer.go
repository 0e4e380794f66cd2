// Package notify maintains the locally cached set of unread notifications
// for the active mother session. The cache is refreshed by a poll timer, by
// explicit Refresh calls, and by foreground-resume events; consumers read
// immutable snapshots and derived aggregates.
//
// Concurrency policy: overlapping triggers (timer tick, resume, manual
// refresh) are collapsed into a single in-flight fetch per mother id via
// singleflight, and every fetch carries the session generation it was started
// under; a response arriving after the mother id changed or the synchronizer
// closed is discarded instead of overwriting the new session's cache.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/ibnfzy/gizichain/internal/model"
)

const (
	DefaultPollInterval = 12 * time.Second

	// TypeScheduleReminder is the derived type consumers filter for the
	// schedule badge.
	TypeScheduleReminder = "schedule-reminder"

	fetchErrorMessage = "Tidak dapat memuat notifikasi baru. Coba lagi nanti."
)

type FetchFunc func(ctx context.Context, motherID string) ([]model.Notification, error)

type MarkReadFunc func(ctx context.Context, notificationID string) error

// Ref identifies a notification either as a full value (model.Notification
// implements it) or as a bare ID.
type Ref interface {
	NotificationID() string
}

// ID is a bare notification identifier usable as a Ref.
type ID string

func (id ID) NotificationID() string { return string(id) }

type Options struct {
	// PollInterval defaults to DefaultPollInterval when zero.
	PollInterval time.Duration
	Logger       *log.Logger
}

// State is a point-in-time snapshot for consumers.
type State struct {
	Notifications []model.Notification
	Loading       bool
	Refreshing    bool
	Err           string
}

type Synchronizer struct {
	fetch    FetchFunc
	markRead MarkReadFunc
	interval time.Duration
	logger   *log.Logger

	group  singleflight.Group
	resume *rate.Limiter

	mu         sync.Mutex
	motherID   string
	generation uint64
	items      []model.Notification
	loading    bool
	refreshing bool
	errMsg     string
	hasLoaded  bool
	closed     bool
	stopPoll   context.CancelFunc
}

func NewSynchronizer(fetch FetchFunc, markRead MarkReadFunc, opts Options) *Synchronizer {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Synchronizer{
		fetch:    fetch,
		markRead: markRead,
		interval: interval,
		logger:   logger,
		// Resume events fire in bursts when the app thrashes between
		// foreground and background; one silent refresh per interval is
		// enough.
		resume: rate.NewLimiter(rate.Every(interval/2), 1),
	}
}

// SetMotherID transitions the session. A non-empty id starts a fresh load
// and the poll timer; empty clears the cache and stops polling. Setting the
// current id again is a no-op.
func (s *Synchronizer) SetMotherID(motherID string) {
	s.mu.Lock()
	if s.closed || motherID == s.motherID {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	if s.stopPoll != nil {
		s.stopPoll()
		s.stopPoll = nil
	}
	s.motherID = motherID
	s.items = nil
	s.loading = false
	s.refreshing = false
	s.errMsg = ""
	s.hasLoaded = false
	if motherID == "" {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopPoll = cancel
	s.mu.Unlock()

	go s.poll(ctx, gen, motherID)
}

func (s *Synchronizer) poll(ctx context.Context, gen uint64, motherID string) {
	s.runFetch(ctx, gen, motherID, false)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFetch(ctx, gen, motherID, true)
		}
	}
}

// runFetch performs one fetch cycle. Silent cycles never toggle the
// user-visible flags and never surface errors.
func (s *Synchronizer) runFetch(ctx context.Context, gen uint64, motherID string, silent bool) {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	showLoading := !silent && !s.hasLoaded
	showRefreshing := !silent && s.hasLoaded
	if showLoading {
		s.loading = true
	}
	if showRefreshing {
		s.refreshing = true
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(motherID, func() (any, error) {
		return s.fetch(ctx, motherID)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		// Superseded by a session switch; the result must not leak into
		// the new session's cache.
		return
	}
	if showLoading {
		s.loading = false
	}
	if showRefreshing {
		s.refreshing = false
	}
	s.hasLoaded = true
	if err != nil {
		s.logger.Printf("fetch unread notifications: %v", err)
		if !silent {
			s.errMsg = fetchErrorMessage
		}
		return
	}
	items, _ := v.([]model.Notification)
	if items == nil {
		items = []model.Notification{}
	}
	s.items = items
	s.errMsg = ""
}

// Refresh runs a user-visible refresh cycle. It never fails: on error the
// previous cache stays intact and State.Err carries a retryable message.
func (s *Synchronizer) Refresh(ctx context.Context) {
	s.mu.Lock()
	gen, motherID := s.generation, s.motherID
	s.mu.Unlock()
	if motherID == "" {
		return
	}
	s.runFetch(ctx, gen, motherID, false)
}

// OnForeground runs a silent refresh when the app returns to the foreground.
// Bursts are coalesced by the resume limiter.
func (s *Synchronizer) OnForeground(ctx context.Context) {
	if !s.resume.Allow() {
		return
	}
	s.mu.Lock()
	gen, motherID := s.generation, s.motherID
	s.mu.Unlock()
	if motherID == "" {
		return
	}
	s.runFetch(ctx, gen, motherID, true)
}

// MarkAsRead marks one notification read remotely and, only after the remote
// call succeeds, removes it from the cache. Failures are logged and swallowed;
// the cache is left untouched.
func (s *Synchronizer) MarkAsRead(ctx context.Context, ref Ref) {
	if ref == nil {
		return
	}
	id := ref.NotificationID()
	if id == "" {
		return
	}
	if err := s.markRead(ctx, id); err != nil {
		s.logger.Printf("mark notification %s read: %v", id, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	out := make([]model.Notification, 0, len(s.items))
	for _, n := range s.items {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.items = out
}

func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Notification, len(s.items))
	copy(items, s.items)
	return State{
		Notifications: items,
		Loading:       s.loading,
		Refreshing:    s.refreshing,
		Err:           s.errMsg,
	}
}

// CountsByType maps each derived notification type to its count in the
// current cache.
func (s *Synchronizer) CountsByType() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, n := range s.items {
		t := n.Type
		if t == "" {
			t = "general"
		}
		out[t]++
	}
	return out
}

// ScheduleReminders returns the cached notifications of the
// schedule-reminder type.
func (s *Synchronizer) ScheduleReminders() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, 0)
	for _, n := range s.items {
		if n.Type == TypeScheduleReminder {
			out = append(out, n)
		}
	}
	return out
}

// Close stops the poller and makes all pending callbacks no-ops.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.generation++
	if s.stopPoll != nil {
		s.stopPoll()
		s.stopPoll = nil
	}
	s.motherID = ""
	s.items = nil
}
