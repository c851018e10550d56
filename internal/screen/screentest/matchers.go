package screentest

import (
	"fmt"

	"github.com/abhinav/screenctl/internal/screen"
	"github.com/golang/mock/gomock"
)

// NewSessionRequestMatcher is a gomock matcher that matches
// screen.NewSessionRequest objects by session name and mode.
type NewSessionRequestMatcher struct {
	Name     string
	Detached bool
}

var _ gomock.Matcher = NewSessionRequestMatcher{}

func (m NewSessionRequestMatcher) String() string {
	return fmt.Sprintf("NewSessionRequest{Name: %q, Detached: %v}", m.Name, m.Detached)
}

// Matches reports whether the provided NewSessionRequest matches.
func (m NewSessionRequestMatcher) Matches(x interface{}) bool {
	req, ok := x.(screen.NewSessionRequest)
	if !ok {
		return false
	}

	return req.Name == m.Name && req.Detached == m.Detached
}

// SessionListing renders records in the format printed by screen -ls,
// including the surrounding header and footer.
// Each record is a triple of identifier segment, timestamp, and status,
// e.g. {"1560.pts-0.host", "11/24/2021 03:28:10 PM", "Detached"}.
func SessionListing(records ...[3]string) []byte {
	if len(records) == 0 {
		return []byte("No Sockets found in /run/screen/S-user.\n\n")
	}

	out := []byte("There are screens on:\n")
	if len(records) == 1 {
		out = []byte("There is a screen on:\n")
	}
	for _, r := range records {
		out = fmt.Appendf(out, "\t%s\t(%s)\t(%s)\n", r[0], r[1], r[2])
	}
	socket := "Sockets"
	if len(records) == 1 {
		socket = "Socket"
	}
	return fmt.Appendf(out, "%d %s in /run/screen/S-user.\n\n", len(records), socket)
}
