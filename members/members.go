package members

import (
	"context"
	"strings"
)

// Points is a member's attendance record.
type Points struct {
	Email  string   `json:"email" bson:"email"`
	Total  int      `json:"points" bson:"points"`
	Events []string `json:"events,omitempty" bson:"events,omitempty"`
}

// Repo is the roster of registered members.
type Repo interface {
	// ListEmails returns every registered member email.
	ListEmails(ctx context.Context) ([]string, error)
	// Points returns the attendance record for email.
	Points(ctx context.Context, email string) (Points, error)
}

// NormalizeEmail lower-cases and trims an address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsMember reports whether email exactly matches an entry on the roster,
// ignoring case. Partial or domain matches do not count.
func IsMember(roster []string, email string) bool {
	email = NormalizeEmail(email)
	if email == "" {
		return false
	}
	for _, m := range roster {
		if NormalizeEmail(m) == email {
			return true
		}
	}
	return false
}
