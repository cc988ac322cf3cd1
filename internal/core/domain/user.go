package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleAttendant  = "attendant"
	RoleTechnician = "technician"
	RoleHelper     = "helper"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAttendant, RoleTechnician, RoleHelper:
		return true
	}
	return false
}

// User models an actor in the system. Users are never deleted; deactivation
// flips Status to inactive, which blocks login and removes the user from
// active rosters.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	// MonthlyPoints accumulates completion points per month bucket,
	// keyed by MonthKey.
	MonthlyPoints map[string]int `json:"monthly_points,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Clone returns an independent copy of the user, including the point ledger.
func (u *User) Clone() *User {
	clone := *u
	if u.MonthlyPoints != nil {
		clone.MonthlyPoints = make(map[string]int, len(u.MonthlyPoints))
		for k, v := range u.MonthlyPoints {
			clone.MonthlyPoints[k] = v
		}
	}
	return &clone
}

// AddPoints credits pts to the user's bucket for the given month key.
func (u *User) AddPoints(monthKey string, pts int) {
	if u.MonthlyPoints == nil {
		u.MonthlyPoints = make(map[string]int)
	}
	u.MonthlyPoints[monthKey] += pts
}

// PointsFor returns the accumulated points for the given month key.
func (u *User) PointsFor(monthKey string) int {
	return u.MonthlyPoints[monthKey]
}

// Session is the ephemeral authenticated-identity record. It is not part of
// the durable snapshot: it lives in the session store and dies on expiry or
// explicit logout.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"login_time"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its validity window at now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
