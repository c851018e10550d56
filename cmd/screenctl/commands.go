package main

import (
	"fmt"
	"io"
	"time"

	"github.com/abhinav/screenctl/internal/log"
	"github.com/abhinav/screenctl/internal/session"
)

type commandContext struct {
	Registry *session.Registry
	Log      *log.Logger
	Stdout   io.Writer
}

// command is a screenctl subcommand.
type command struct {
	Name  string
	Usage string // arguments, for error messages

	// Number of arguments accepted. MaxArgs < 0 means no limit.
	MinArgs, MaxArgs int

	Run func(*commandContext, []string) error
}

func (c *command) checkArgs(args []string) error {
	if len(args) < c.MinArgs || (c.MaxArgs >= 0 && len(args) > c.MaxArgs) {
		return fmt.Errorf("usage: %v %v", c.Name, c.Usage)
	}
	return nil
}

var _commands = make(map[string]*command)

func init() {
	for _, c := range []*command{
		{Name: "ls", Run: runList},
		{Name: "exists", Usage: "NAME", MinArgs: 1, MaxArgs: 1, Run: runExists},
		{Name: "status", Usage: "NAME", MinArgs: 1, MaxArgs: 1, Run: runStatus},
		{Name: "create", Usage: "NAME", MinArgs: 1, MaxArgs: 1, Run: runCreate},
		{Name: "kill", Usage: "NAME", MinArgs: 1, MaxArgs: 1, Run: runKill},
		{Name: "detach", Usage: "NAME", MinArgs: 1, MaxArgs: 1, Run: runDetach},
		{Name: "interrupt", Usage: "NAME", MinArgs: 1, MaxArgs: 1, Run: runInterrupt},
		{Name: "send", Usage: "NAME COMMAND...", MinArgs: 2, MaxArgs: -1, Run: runSend},
	} {
		_commands[c.Name] = c
	}
}

func runList(ctx *commandContext, _ []string) error {
	sessions, err := ctx.Registry.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		ctx.Log.Infof("no sessions")
		return nil
	}

	rows := [][]string{{"ID", "NAME", "STATUS", "STARTED"}}
	for _, s := range sessions {
		started := s.Stamp
		if !s.Started.IsZero() {
			started = s.Started.Format(time.DateTime)
		}
		rows = append(rows, []string{s.ID, s.Name, s.Status.String(), started})
	}
	return writeTable(ctx.Stdout, rows)
}

func runExists(ctx *commandContext, args []string) error {
	ok, err := ctx.Registry.Session(args[0]).Exists()
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Stdout, ok)
	if !ok {
		return exitCode(1)
	}
	return nil
}

func runStatus(ctx *commandContext, args []string) error {
	s := ctx.Registry.Session(args[0])
	if err := s.Refresh(); err != nil {
		return err
	}

	// Refresh resolved both of these.
	id, _ := s.ID()
	status, _ := s.Status()
	fmt.Fprintf(ctx.Stdout, "%v %v\n", id, status)
	return nil
}

func runCreate(ctx *commandContext, args []string) error {
	s := ctx.Registry.Session(args[0])
	if _, err := s.Create(); err != nil {
		return err
	}
	ctx.Log.Debugf("session %q is ready", s.Name())
	return nil
}

func runKill(ctx *commandContext, args []string) error {
	return ctx.Registry.Session(args[0]).Kill()
}

func runDetach(ctx *commandContext, args []string) error {
	return ctx.Registry.Session(args[0]).Detach()
}

func runInterrupt(ctx *commandContext, args []string) error {
	return ctx.Registry.Session(args[0]).Interrupt()
}

func runSend(ctx *commandContext, args []string) error {
	return ctx.Registry.Session(args[0]).SendCommands(args[1:]...)
}
