package scheduler

import (
	"context"
	"fmt"
	"time"

	"BuyOrWait/internal/advisor"
	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/config"
	"BuyOrWait/internal/logger"
	"BuyOrWait/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Sender delivers a message to a chat.
type Sender interface {
	SendWithRetry(ctx context.Context, chatID, text string, maxRetries int) error
}

// Scheduler runs the watchlist digest on a cron schedule and answers chat
// commands with one session per chat.
type Scheduler struct {
	Cron      *cron.Cron
	Table     *collector.Table
	Advisor   *advisor.Advisor
	Responder *assistant.Responder
	Sessions  *assistant.SessionStore
	Notifier  Sender
	ChatID    string
	Currency  string
	Watchlist []config.WatchlistEntry
	Ctx       context.Context
	now       func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, table *collector.Table, sender Sender, chatID, currency string, watchlist []config.WatchlistEntry) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Table:     table,
		Advisor:   advisor.New(table),
		Responder: assistant.NewResponder(currency),
		Sessions:  assistant.NewSessionStore(),
		Notifier:  sender,
		ChatID:    chatID,
		Currency:  currency,
		Watchlist: watchlist,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterAll registers the digest task.
func (s *Scheduler) RegisterAll(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Log.Info("scheduler stopped")
}

// RunDigestNow executes the digest task immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

// BuildDigest runs the pipeline for every watchlist entry. A failing entry is
// reported in place and does not stop the others.
func (s *Scheduler) BuildDigest() []notifier.DigestEntry {
	entries := make([]notifier.DigestEntry, 0, len(s.Watchlist))
	for _, w := range s.Watchlist {
		a, err := s.Advisor.Analyze(w.State, w.Commodity)
		if err != nil {
			logger.Log.Warnf("digest %s / %s: %v", w.State, w.Commodity, err)
		}
		entries = append(entries, notifier.DigestEntry{State: w.State, Commodity: w.Commodity, Analysis: a, Err: err})
	}
	return entries
}

func (s *Scheduler) digestTask() {
	if len(s.Watchlist) == 0 {
		return
	}
	logger.Log.Infof("running digest for %d selections", len(s.Watchlist))
	msg := notifier.FormatDigest(s.now().Format("2006-01-02"), s.BuildDigest(), s.Currency)
	s.trySend(s.ChatID, msg)
}

func (s *Scheduler) trySend(chatID, text string) {
	if s.Notifier == nil || chatID == "" {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, chatID, text, 3); err != nil {
		logger.Log.Errorf("send notification: %v", err)
	}
}
