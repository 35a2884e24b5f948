package cases

import (
	"fmt"
	"time"
)

// PersistenceError wraps a case store failure. The case was not created;
// callers may retry at their own discretion.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("case store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PermissionError means the bot cannot read the guild's audit log, so manual
// punishments in that guild go unrecorded until an operator fixes it.
type PermissionError struct {
	GuildID string
	Missing string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("missing %s permission in guild %s", e.Missing, e.GuildID)
}

// ClockSkewError means the best audit log match was too far from the
// observed event time to be trusted. Reported rather than dropped: a wrong
// moderator attribution is worse than no case at all.
type ClockSkewError struct {
	GuildID string
	Drift   time.Duration
}

func (e *ClockSkewError) Error() string {
	return fmt.Sprintf("audit log entry for guild %s is off by %s, beyond tolerance", e.GuildID, e.Drift)
}

// DeliveryError marks a failed modlog channel send. The case itself is
// already persisted; delivery is single-attempt, best-effort.
type DeliveryError struct {
	ChannelID string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("modlog delivery to channel %s failed: %v", e.ChannelID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
