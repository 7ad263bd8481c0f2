package members_test

import (
	"testing"

	"github.com/jrsteele09/diplomats-site/members"
	"github.com/stretchr/testify/assert"
)

func TestIsMember(t *testing.T) {
	roster := []string{"simon.woldemichael@ttu.edu", "President@TTU.edu"}

	tests := []struct {
		email string
		want  bool
	}{
		{"simon.woldemichael@ttu.edu", true},
		{"Simon.Woldemichael@TTU.EDU", true},
		{"  president@ttu.edu ", true},
		{"woldemichael@ttu.edu", false},
		{"ttu.edu", false},
		{"simon.woldemichael@ttu.edu.evil.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, members.IsMember(roster, tt.email), tt.email)
	}

	assert.False(t, members.IsMember(nil, "simon.woldemichael@ttu.edu"))
}
