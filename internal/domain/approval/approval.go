// Package approval holds the single decision rule shared by the leave and
// overtime request lifecycles.
package approval

import (
	"errors"

	"github.com/haergo/workforce-backend-go/internal/domain/user"
)

// Outcome is a terminal decision on a pending request.
type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

// Level is the minimum authority required to decide a request.
type Level string

const (
	LevelManager Level = "manager"
	LevelHR      Level = "hr"
)

var ErrUnauthorized = errors.New("insufficient authority to decide this request")

// ValidOutcome reports whether s names a known outcome.
func ValidOutcome(s string) bool {
	o := Outcome(s)
	return o == OutcomeApprove || o == OutcomeReject
}

// CanDecide reports whether a role satisfies the required approval level.
// Manager-level requests are decidable by managers and above; HR-level
// requests only by HR and super admins.
func CanDecide(role user.Role, level Level) bool {
	switch level {
	case LevelHR:
		return role.IsHRLevel()
	case LevelManager:
		return role.IsApprover()
	}
	return false
}

// DecidableLevels returns the approval levels a role may decide. Used to
// scope pending-approval listings.
func DecidableLevels(role user.Role) []Level {
	var levels []Level
	if CanDecide(role, LevelManager) {
		levels = append(levels, LevelManager)
	}
	if CanDecide(role, LevelHR) {
		levels = append(levels, LevelHR)
	}
	return levels
}
