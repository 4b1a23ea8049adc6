package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")

	ErrProjectNotFound = errors.New("project doesn't exist")
	ErrNotMember       = errors.New("user is not a member of this project")
	ErrMemberExists    = errors.New("user is already a member of this project")
	ErrWrongOwner      = errors.New("user doesn't own this resource")
	ErrOwnerNotFound   = errors.New("owner doesn't exist")

	ErrTaskNotFound      = errors.New("task doesn't exist")
	ErrNotParticipant    = errors.New("user has no status record for this task")
	ErrAlreadyCompleted  = errors.New("task already completed by this user")
	ErrNotCompletable    = errors.New("task is not in a completable state")
	ErrNotRecoverable    = errors.New("only archived tasks can be recovered")
	ErrNotArchivable     = errors.New("only past-due active tasks can be archived")
	ErrInvalidRecurrence = errors.New("invalid recurrence parameters")

	ErrInvalidToken = errors.New("invalid auth token")
)
