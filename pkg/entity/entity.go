package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
	TotalXP      int
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"desc"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskType string

const (
	TaskTypeOneOff TaskType = "one_off"
	TaskTypeHabit  TaskType = "habit"
)

// Task is one schedulable unit of work. Habit instances generated from the
// same recurrence share SeriesID, title and description but are otherwise
// independent tasks with independent status records per participant.
type Task struct {
	ID                uuid.UUID  `json:"id"`
	ProjectID         uuid.UUID  `json:"project_id"`
	CreatorID         uuid.UUID  `json:"creator_id"`
	Title             string     `json:"title"`
	Description       string     `json:"desc"`
	DueDate           time.Time  `json:"due_date"`
	Type              TaskType   `json:"type"`
	RecurrencePattern string     `json:"recurrence_pattern,omitempty"`
	SeriesID          *uuid.UUID `json:"series_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TaskStatus is the per-(task, user) status record. Exactly one exists per
// participant assigned at task creation; it is cascade-deleted with the task.
type TaskStatus struct {
	ID          int        `json:"-"`
	TaskID      uuid.UUID  `json:"task_id"`
	UserID      uuid.UUID  `json:"user_id"`
	Status      string     `json:"status"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	RecoveredAt *time.Time `json:"recovered_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CompletionLog is the append-only completion event. At most one exists per
// (task, user), enforced by a unique constraint on the table.
type CompletionLog struct {
	ID               int       `json:"-"`
	TaskID           uuid.UUID `json:"task_id"`
	UserID           uuid.UUID `json:"user_id"`
	CreatedAt        time.Time `json:"completed_at"`
	DifficultyRating int       `json:"difficulty_rating,omitempty"`
	PenaltyApplied   bool      `json:"penalty_applied"`
	XPEarned         int       `json:"xp_earned"`
}

// UserTaskView pairs a task with one user's status record and completion log,
// fetched together by (taskID, userID). Consumers never assemble the pairing
// themselves, so a status record belonging to another user cannot end up next
// to the wrong task.
type UserTaskView struct {
	Task       Task           `json:"task"`
	Status     TaskStatus     `json:"status"`
	Completion *CompletionLog `json:"completion,omitempty"`
}
