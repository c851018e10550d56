// Package screenls decodes the output of screen -ls into session records.
//
// A session line has the form
//
//	<id>.<name>[.<host>]	(<MM/DD/YYYY hh:mm:ss AM|PM>)	(<status>)
//
// screen formats the timestamp for the local date conventions, so only its
// parentheses are required. Timestamps in other layouts are kept as text.
//
// screen surrounds session lines with a header and a footer
// ("There is a screen on:", "1 Socket in /run/screen/S-user."), which are
// recognized and skipped. Anything else that is not a well-formed session
// line is reported as a *ParseError, so that an empty listing can be told
// apart from one that could not be understood.
package screenls

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/abhinav/screenctl/internal/log"
)

// TimeLayout is the layout of the timestamp in a session line under the
// default US date conventions.
const TimeLayout = "01/02/2006 03:04:05 PM"

// Status is the attachment state of a session.
type Status int

// Supported session states.
const (
	Detached Status = iota + 1
	Attached
)

// ParseStatus parses the status text printed by screen, without the
// parentheses.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "Detached":
		return Detached, nil
	case "Attached":
		return Attached, nil
	default:
		return 0, fmt.Errorf("unknown status %q", s)
	}
}

func (s Status) String() string {
	switch s {
	case Detached:
		return "Detached"
	case Attached:
		return "Attached"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Record is a single session reported by screen -ls.
// Records are snapshots: the session may have changed state or terminated
// by the time the record is read.
type Record struct {
	// Identifier assigned by screen. This is the pid of the session's
	// screen process, but it should be treated as opaque.
	ID string

	// Name of the session.
	Name string

	// Host suffix of the session, if any. screen only adds this for
	// sessions started without an explicit name.
	Host string

	// Timestamp text printed by screen, without the parentheses.
	Stamp string

	// Time at which the session was started, in the local time zone.
	// Zero if Stamp is not in TimeLayout.
	Started time.Time

	Status Status
}

func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", r.ID),
		slog.String("name", r.Name),
		log.OmitEmpty(slog.String, "host", r.Host),
		slog.String("status", r.Status.String()),
	)
}

// ParseError is returned when a line of screen -ls output is not a
// well-formed session line.
type ParseError struct {
	// Line is the offending line, verbatim.
	Line string

	// Reason describes what was wrong with the line.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed session line %q: %v", e.Line, e.Reason)
}

// Header and footer lines printed by screen -ls.
var _framing = []*regexp.Regexp{
	regexp.MustCompile(`^There (?:is a screen|are screens) on:$`),
	regexp.MustCompile(`^No Sockets found in .+\.$`),
	regexp.MustCompile(`^\d+ Sockets? in .+\.$`),
}

func isFraming(line string) bool {
	for _, re := range _framing {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Parse parses the full output of screen -ls.
// Records are returned in the order they appear.
// Output with no session lines produces no records and no error.
func Parse(out []byte) ([]Record, error) {
	var records []Record
	scan := bufio.NewScanner(bytes.NewReader(out))
	for scan.Scan() {
		line := scan.Text()
		if trimmed := strings.TrimSpace(line); len(trimmed) == 0 || isFraming(trimmed) {
			continue
		}

		r, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("read session list: %w", err)
	}
	return records, nil
}

// ParseLine parses a single session line.
func ParseLine(line string) (Record, error) {
	fail := func(format string, args ...interface{}) (Record, error) {
		return Record{}, &ParseError{
			Line:   line,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	fields := strings.Fields(line)
	if len(fields) != 5 {
		return fail("expected 5 fields, got %d", len(fields))
	}
	info := fields[0]
	stamp := strings.Join(fields[1:4], " ")
	status := fields[4]

	stamp, ok := unparen(stamp)
	if !ok {
		return fail("timestamp is not parenthesized")
	}

	status, ok = unparen(status)
	if !ok {
		return fail("status is not parenthesized")
	}
	st, err := ParseStatus(status)
	if err != nil {
		return fail("%v", err)
	}

	r := Record{Stamp: stamp, Status: st}
	if started, err := time.ParseInLocation(TimeLayout, stamp, time.Local); err == nil {
		r.Started = started
	}
	tokens := strings.Split(info, ".")
	switch n := len(tokens); n {
	case 1:
		return fail("identifier %q has no session name", info)
	case 2:
		// Sessions named with -S don't have a host suffix.
		r.ID, r.Name = tokens[0], tokens[1]
	default:
		r.ID = tokens[0]
		r.Name = strings.Join(tokens[1:n-1], ".")
		r.Host = tokens[n-1]
	}

	if len(r.ID) == 0 {
		return fail("identifier %q has no id", info)
	}
	if len(r.Name) == 0 {
		return fail("identifier %q has no session name", info)
	}
	return r, nil
}

func unparen(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s, false
	}
	return s[1 : len(s)-1], true
}
