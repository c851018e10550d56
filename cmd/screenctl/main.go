package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abhinav/screenctl/internal/log"
	"github.com/abhinav/screenctl/internal/paniclog"
	"github.com/abhinav/screenctl/internal/screen"
	"github.com/abhinav/screenctl/internal/session"
	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _version = "dev"

var _main = mainCmd{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
	Getenv: os.Getenv,
}

func main() {
	err := _main.Run(os.Args[1:])

	var code exitCode
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return
	case errors.As(err, &code):
		os.Exit(int(code))
	default:
		fmt.Fprintln(_main.Stderr, err)
		os.Exit(1)
	}
}

// exitCode is returned by commands that fail without a message.
type exitCode int

func (c exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

const (
	_name = "screenctl"

	_configEnv  = "SCREENCTL_CONFIG"
	_logfileEnv = "SCREENCTL_LOG"
)

const _usage = `usage: %v [options] COMMAND [ARGS]

Creates and controls named GNU screen sessions.

The following commands are available:

	ls
		list live sessions.
	exists NAME
		print whether the session is live.
		Exits with status 1 if it isn't.
	status NAME
		print the identifier and status of the session.
	create NAME
		start the session if it isn't already live.
		The session attaches to this terminal and is detached
		after -detach-delay, unless -background is used.
	kill NAME
		terminate the session.
	detach NAME
		detach the session from its terminal.
	interrupt NAME
		send Ctrl-C to the session.
	send NAME COMMAND...
		type each COMMAND into the session followed by Enter.

The following flags are available:

	-screen COMMAND
		screen executable and global arguments.
			-screen '/usr/local/bin/screen -c /etc/screenrc.ctl'
		Searches $PATH for screen by default.
	-detach-delay DURATION
		time after which new sessions are detached.
		Defaults to 5s.
	-key-delay DURATION
		pause between keystrokes sent to a session.
		Use a negative duration to disable.
		Defaults to 20ms.
	-background
		start new sessions without attaching to them.
	-utf8
		start new sessions in UTF-8 mode.
	-config FILE
		file to read options from.
		Each line holds an option name and value, without the
		leading '-'.
			key-delay 50ms
		Uses $SCREENCTL_CONFIG if set.
		Options on the command line take precedence.
		Turn off a boolean option from the file with
		-NAME=false, e.g. -background=false.
	-log FILE
		file to write logs to.
		The file is rotated when it grows too large.
		Uses $SCREENCTL_LOG if set, and stderr otherwise.
	-verbose
		log more output.
	-version
		display version information.
`

type mainCmd struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Getenv func(string) string // == os.Getenv

	// Hooks for tests.
	newDriver func(*screen.ShellDriver) screen.Driver
	clock     clock.Clock
}

func (cmd *mainCmd) init() {
	if cmd.newDriver == nil {
		cmd.newDriver = func(d *screen.ShellDriver) screen.Driver { return d }
	}
}

func (cmd *mainCmd) Run(args []string) (err error) {
	cmd.init()

	var cfg config
	flag := flag.NewFlagSet(_name, flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		fmt.Fprintf(flag.Output(), _usage, flag.Name())
	}
	cfg.RegisterFlags(flag)
	version := flag.Bool("version", false, "")
	if err := flag.Parse(args); err != nil {
		return err
	}
	cfg.MarkFlags(flag)

	if *version {
		fmt.Fprintf(cmd.Stdout, "%v version %v\n", _name, _version)
		return nil
	}

	args = flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return errors.New("please provide a command")
	}
	sub, ok := _commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	args = args[1:]
	if err := sub.checkArgs(args); err != nil {
		return err
	}

	if err := cfg.Load(cmd.Getenv); err != nil {
		return err
	}

	logW := cmd.Stderr
	if file := cfg.LogFile; len(file) > 0 {
		lw := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		defer multierr.AppendInvoke(&err, multierr.Close(lw))
		logW = lw
	}

	defer paniclog.Recover(&err, logW)

	logger := log.New(logW)
	if cfg.Verbose {
		logger = logger.WithLevel(log.Debug)
	}

	path, screenArgs, err := cfg.ScreenCommand()
	if err != nil {
		return err
	}

	reg := &session.Registry{
		Screen: cmd.newDriver(&screen.ShellDriver{
			Path: path,
			Args: screenArgs,
			Log:  logger.WithName("screen"),
		}),
		Log:         logger.WithName("session"),
		Clock:       cmd.clock,
		DetachDelay: cfg.DetachDelay,
		KeyDelay:    cfg.KeyDelay,
		Detached:    cfg.Background,
		UTF8:        cfg.UTF8,
		Stdin:       cmd.Stdin,
		Stdout:      cmd.Stdout,
		Stderr:      cmd.Stderr,
	}
	defer multierr.AppendInvoke(&err, multierr.Close(reg))

	logger.Debug("run", "command", sub.Name, log.Args("args", args))
	return sub.Run(&commandContext{
		Registry: reg,
		Log:      logger,
		Stdout:   cmd.Stdout,
	}, args)
}
