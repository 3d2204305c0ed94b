package domain

import (
	"slices"
	"time"
)

// Area is an organizational unit movements are recorded against.
type Area struct {
	AreaID      string `json:"areaID" db:"area_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// Department subdivides an area. Code is unique within its area.
type Department struct {
	DepartmentID string `json:"departmentID" db:"department_id"`
	AreaID       string `json:"areaID" db:"area_id"`
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// AreaRole defines the possible roles a user can have within an area.
type AreaRole string

const (
	AreaRoleMember  AreaRole = "MEMBER"
	AreaRoleManager AreaRole = "MANAGER"
	AreaRoleAdmin   AreaRole = "ADMIN"
)

func (r AreaRole) IsValid() bool {
	switch r {
	case AreaRoleMember, AreaRoleManager, AreaRoleAdmin:
		return true
	}
	return false
}

// UserArea represents the membership of a User in an Area.
type UserArea struct {
	UserID   string    `json:"userID" db:"user_id"`
	AreaID   string    `json:"areaID" db:"area_id"`
	Role     AreaRole  `json:"role" db:"role"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

// AreaScope limits a query to the areas a caller may see.
type AreaScope struct {
	All     bool
	AreaIDs []string
}

// Contains reports whether areaID is inside the scope.
func (s AreaScope) Contains(areaID string) bool {
	return s.All || slices.Contains(s.AreaIDs, areaID)
}

// IsEmpty is true when the scope admits no area at all.
func (s AreaScope) IsEmpty() bool {
	return !s.All && len(s.AreaIDs) == 0
}
