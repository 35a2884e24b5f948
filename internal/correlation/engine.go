package correlation

import (
	"time"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/database"
	"github.com/Zickles/tanzanite/internal/logging"
	"github.com/Zickles/tanzanite/internal/metrics"
	"github.com/Zickles/tanzanite/internal/modlog"
)

// Trigger is a gateway event that looked like a manual punishment: the bot
// saw it happen but did not perform it through a command.
type Trigger struct {
	GuildID    string
	UserID     string
	Kind       cases.Type
	ObservedAt time.Time
}

// AuditEntry is one entry from the guild's audit log.
type AuditEntry struct {
	ExecutorID string
	TargetID   string
	Reason     string
	Time       time.Time
}

// AuditSource queries the guild audit log. Entries come back most-recent
// first, bounded, possibly empty; the log is written with a delay on
// Discord's side and carries no delivery guarantee.
type AuditSource interface {
	QueryRecentEntries(guildID string, kind cases.Type) ([]AuditEntry, error)
	CanReadAuditTrail(guildID string) bool
}

// GuildSettings exposes the per-guild manual-logging opt-in.
// Satisfied by *database.Database.
type GuildSettings interface {
	IsManualLoggingEnabled(guildID string) bool
}

// CaseCreator persists case records. Satisfied by *database.Database.
type CaseCreator interface {
	CreateCase(guildID, userID, moderatorID string, kind cases.Type, reason string, source cases.Source) (*database.CaseRecord, error)
}

// Publisher delivers resolved cases and operational warnings to the guild's
// modlog channel. Satisfied by *modlog.Publisher.
type Publisher interface {
	Publish(record *database.CaseRecord) modlog.Result
	PublishWarning(guildID, title, body string) modlog.Result
}

// windowState tracks a correlation window through its lifecycle. Nothing is
// persisted before stateResolved, so abandoning a window mid-flight (process
// shutdown) never leaves a partial case behind.
type windowState uint8

const (
	stateArmed windowState = iota
	stateWaiting
	stateQueried
	stateResolved
	stateUnmatched
	stateRejected
)

type Engine struct {
	// The bot's own user ID. Audit entries executed by this ID were already
	// logged through the command path and must not be logged again.
	botID string

	grace     time.Duration
	tolerance time.Duration

	audit     AuditSource
	guilds    GuildSettings
	store     CaseCreator
	publisher Publisher

	recent *triggerCache
}

type Options struct {
	BotID string
	// GraceDelay is how long a window waits before its single audit log
	// query, giving Discord's write-lagged audit log time to settle.
	GraceDelay time.Duration
	// MatchTolerance bounds |audit entry time - trigger time|. A best match
	// beyond it is rejected as clock skew instead of being attributed to the
	// wrong moderator.
	MatchTolerance time.Duration
}

func NewEngine(opts Options, audit AuditSource, guilds GuildSettings, store CaseCreator, publisher Publisher) *Engine {
	if opts.GraceDelay == 0 {
		opts.GraceDelay = 500 * time.Millisecond
	}
	if opts.MatchTolerance == 0 {
		opts.MatchTolerance = time.Minute
	}

	return &Engine{
		botID:     opts.BotID,
		grace:     opts.GraceDelay,
		tolerance: opts.MatchTolerance,
		audit:     audit,
		guilds:    guilds,
		store:     store,
		publisher: publisher,
		recent:    newTriggerCache(opts.GraceDelay + 5*time.Second),
	}
}

// HandleTrigger opens an independent correlation window for the event. Each
// window runs in its own goroutine; the only shared state between windows is
// the case store.
func (e *Engine) HandleTrigger(t Trigger) {
	if e.recent.suppress(t) {
		logging.Debug("[CORRELATION] Duplicate trigger suppressed: %s %s in guild %s",
			t.Kind, t.UserID, t.GuildID)
		return
	}
	go e.run(t)
}

func (e *Engine) run(t Trigger) windowState {
	state := e.resolve(t)

	switch state {
	case stateResolved:
		metrics.IncWindowResolved()
	case stateRejected:
		metrics.IncWindowRejected()
	default:
		metrics.IncWindowUnmatched()
	}
	return state
}

// resolve drives one correlation window from ARMED to a terminal state.
func (e *Engine) resolve(t Trigger) windowState {
	// ARMED: bail out before doing any work when correlation cannot apply.
	info := cases.Describe(t.Kind)
	if !info.Correlatable {
		return stateUnmatched
	}
	if !e.guilds.IsManualLoggingEnabled(t.GuildID) {
		return stateUnmatched
	}
	if !e.audit.CanReadAuditTrail(t.GuildID) {
		permErr := &cases.PermissionError{GuildID: t.GuildID, Missing: "View Audit Log"}
		logging.Warn("[CORRELATION] %v", permErr)
		e.publisher.PublishWarning(t.GuildID, "Manual punishment tracking degraded",
			"I can't record punishments done through Discord directly because I'm missing the **View Audit Log** permission.")
		return stateRejected
	}

	// WAITING: the audit log trails the gateway event, so give it a moment.
	// This is the window's only suspension point and holds nothing.
	time.Sleep(e.grace)

	// QUERIED: one best-effort query, no retry within this window.
	entries, err := e.audit.QueryRecentEntries(t.GuildID, t.Kind)
	if err != nil {
		logging.Warn("[CORRELATION] Audit log query failed for guild %s: %v", t.GuildID, err)
		return stateRejected
	}

	entry := bestMatch(entries, t)
	if entry == nil {
		return stateUnmatched
	}
	if entry.ExecutorID == e.botID {
		// The bot's own action, already recorded through the command path.
		return stateUnmatched
	}

	if drift := absDuration(entry.Time.Sub(t.ObservedAt)); drift > e.tolerance {
		skewErr := &cases.ClockSkewError{GuildID: t.GuildID, Drift: drift}
		logging.Warn("[CORRELATION] %v", skewErr)
		e.publisher.PublishWarning(t.GuildID, "Manual punishment not recorded",
			"The closest audit log entry was too far from the observed event time ("+drift.String()+"). This may indicate a monitoring problem.")
		return stateRejected
	}

	// RESOLVED: the first and only side effect of the window.
	record, err := e.store.CreateCase(t.GuildID, t.UserID, entry.ExecutorID,
		t.Kind, manualReason(entry.Reason), cases.SourceManual)
	if err != nil {
		logging.Error("[CORRELATION] Failed to create case for manual %s in guild %s: %v",
			t.Kind, t.GuildID, err)
		return stateRejected
	}
	metrics.IncCaseCreated()

	logging.Info("[CORRELATION] Recorded manual %s of %s by %s in guild %s as case #%d",
		t.Kind, t.UserID, entry.ExecutorID, t.GuildID, record.CaseID)
	e.publisher.Publish(record)
	return stateResolved
}

// bestMatch picks the entry targeting the trigger's user whose timestamp is
// closest to the observed event time.
func bestMatch(entries []AuditEntry, t Trigger) *AuditEntry {
	var best *AuditEntry
	var bestDrift time.Duration

	for i := range entries {
		entry := &entries[i]
		if entry.TargetID != t.UserID {
			continue
		}
		drift := absDuration(entry.Time.Sub(t.ObservedAt))
		if best == nil || drift < bestDrift {
			best = entry
			bestDrift = drift
		}
	}
	return best
}

func manualReason(reason string) string {
	if reason == "" {
		return "[Manual] No reason given"
	}
	return "[Manual] " + reason
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
