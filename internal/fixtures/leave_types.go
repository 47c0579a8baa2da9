// Package fixtures holds the built-in policy catalog the services run
// with when no overrides are configured.
package fixtures

import (
	"github.com/haergo/workforce-backend-go/internal/domain/approval"
	"github.com/haergo/workforce-backend-go/internal/domain/leave"
)

// LeaveTypes is the default leave policy catalog, keyed by type code.
func LeaveTypes() map[string]leave.TypePolicy {
	return map[string]leave.TypePolicy{
		"annual": {
			Code:          "annual",
			Name:          "Annual Leave",
			Allotted:      12,
			DeductsQuota:  true,
			ApprovalLevel: approval.LevelManager,
			MinLeadDays:   3,
			MaxDays:       14,
		},
		"sick": {
			Code:               "sick",
			Name:               "Sick Leave",
			DeductsQuota:       false,
			ApprovalLevel:      approval.LevelManager,
			MinLeadDays:        0,
			MaxDays:            14,
			RequiresAttachment: true,
		},
		"personal": {
			Code:          "personal",
			Name:          "Personal Leave",
			Allotted:      3,
			DeductsQuota:  true,
			ApprovalLevel: approval.LevelManager,
			MinLeadDays:   1,
			MaxDays:       3,
		},
		"maternity": {
			Code:          "maternity",
			Name:          "Maternity Leave",
			DeductsQuota:  false,
			ApprovalLevel: approval.LevelHR,
			MinLeadDays:   14,
			MaxDays:       90,
		},
		"marriage": {
			Code:          "marriage",
			Name:          "Marriage Leave",
			DeductsQuota:  false,
			ApprovalLevel: approval.LevelHR,
			MinLeadDays:   7,
			MaxDays:       3,
		},
		"bereavement": {
			Code:          "bereavement",
			Name:          "Bereavement Leave",
			DeductsQuota:  false,
			ApprovalLevel: approval.LevelManager,
			MinLeadDays:   0,
			MaxDays:       7,
		},
	}
}
