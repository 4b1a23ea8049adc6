package taskflow

import (
	"time"

	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

// DisplayStatus is the UI-facing bucket for one (task, user) pair. It is
// never stored, always derived, so every consumer sees the same precedence.
type DisplayStatus string

const (
	StatusActive    DisplayStatus = "active"
	StatusUpcoming  DisplayStatus = "upcoming"
	StatusCompleted DisplayStatus = "completed"
	StatusArchived  DisplayStatus = "archived"
	StatusRecovered DisplayStatus = "recovered"
)

// Resolve computes the authoritative display status for one user's view of a
// task. Precedence, first match wins:
//
//  1. a completion log exists -> completed, even if the record was archived
//     by a sweep that ran before the completion write was observed
//  2. recovered_at is set -> recovered (awaiting late completion)
//  3. archived_at is set, or the stored status says archived -> archived
//  4. due date strictly in the future -> upcoming
//  5. otherwise -> active
//
// A past-due record with no archival mark stays active: archival is an
// explicit transition owned by the sweep, never inferred from the clock here.
func Resolve(task *entity.Task, status *entity.TaskStatus, completion *entity.CompletionLog, now time.Time) DisplayStatus {
	if completion != nil {
		return StatusCompleted
	}
	if status.RecoveredAt != nil {
		return StatusRecovered
	}
	if status.ArchivedAt != nil || status.Status == string(StatusArchived) {
		return StatusArchived
	}
	if dueInFuture(task.DueDate, now) {
		return StatusUpcoming
	}
	return StatusActive
}

// ResolveView is Resolve over the typed (task, status, completion) pairing.
func ResolveView(v *entity.UserTaskView, now time.Time) DisplayStatus {
	return Resolve(&v.Task, &v.Status, v.Completion, now)
}

// CanComplete reports whether the complete action is available: only for
// active or recovered tasks with no completion recorded yet.
func CanComplete(s DisplayStatus, hasCompletion bool) bool {
	if hasCompletion {
		return false
	}
	return s == StatusActive || s == StatusRecovered
}

// CanRecover reports whether the recover action is available. Exactly the
// archived state qualifies, so a card never offers recover and complete at
// the same time.
func CanRecover(s DisplayStatus) bool {
	return s == StatusArchived
}

const (
	baseXPPerDifficulty = 100
	defaultDifficulty   = 3
)

// XP computes the points earned for a completion. Unrated completions earn
// as if difficulty 3; out-of-range ratings are clamped to [1, 5]. A penalty
// halves the base, rounding down.
func XP(difficultyRating int, penaltyApplied bool) int {
	rating := difficultyRating
	if rating == 0 {
		rating = defaultDifficulty
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	base := rating * baseXPPerDifficulty
	if penaltyApplied {
		return base / 2
	}
	return base
}

// PenaltyApplies reports whether a completion happening at completedAt takes
// the half-XP path: only when the task was recovered and the due date has
// already passed. Recovering early and completing before the due date is a
// full-XP completion.
func PenaltyApplies(status *entity.TaskStatus, dueDate, completedAt time.Time) bool {
	return status.RecoveredAt != nil && completedAt.After(dueDate)
}

// dueInFuture compares on calendar date alone when the due date carries no
// time-of-day component; a due date with an explicit time compares exactly.
func dueInFuture(due, now time.Time) bool {
	if due.Hour() == 0 && due.Minute() == 0 && due.Second() == 0 && due.Nanosecond() == 0 {
		local := now.In(due.Location())
		dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
		nowDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, due.Location())
		return dueDay.After(nowDay)
	}
	return due.After(now)
}
