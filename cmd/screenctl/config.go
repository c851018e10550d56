package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/abhinav/screenctl/internal/cfgfile"
	"github.com/abhinav/screenctl/internal/session"
	"github.com/mattn/go-shellwords"
)

var _defaultConfig = config{
	Screen:      "screen",
	DetachDelay: session.DefaultDetachDelay,
	KeyDelay:    session.DefaultKeyDelay,
}

type config struct {
	Screen      string
	DetachDelay time.Duration
	KeyDelay    time.Duration
	Background  bool
	UTF8        bool
	ConfigFile  string
	LogFile     string
	Verbose     bool

	// Names of boolean options that were set explicitly, whether true
	// or false. Others are filled from lower layers.
	explicit map[string]struct{}
}

// Boolean options, named as flags.
const (
	_backgroundOption = "background"
	_utf8Option       = "utf8"
	_verboseOption    = "verbose"
)

var _boolOptions = []string{_backgroundOption, _utf8Option, _verboseOption}

func (c *config) RegisterFlags(flag *flag.FlagSet) {
	// No help here because we put it all in _usage.
	flag.StringVar(&c.Screen, "screen", "", "")
	flag.DurationVar(&c.DetachDelay, "detach-delay", 0, "")
	flag.DurationVar(&c.KeyDelay, "key-delay", 0, "")
	flag.BoolVar(&c.Background, _backgroundOption, false, "")
	flag.BoolVar(&c.UTF8, _utf8Option, false, "")
	flag.StringVar(&c.ConfigFile, "config", "", "")
	flag.StringVar(&c.LogFile, "log", "", "")
	flag.BoolVar(&c.Verbose, _verboseOption, false, "")
}

// MarkExplicit records that the named option was set explicitly.
func (c *config) MarkExplicit(name string) {
	if c.explicit == nil {
		c.explicit = make(map[string]struct{})
	}
	c.explicit[name] = struct{}{}
}

// MarkFlags marks the flags set on the command line as explicit.
func (c *config) MarkFlags(fset *flag.FlagSet) {
	fset.Visit(func(f *flag.Flag) {
		c.MarkExplicit(f.Name)
	})
}

func (c *config) isExplicit(name string) bool {
	_, ok := c.explicit[name]
	return ok
}

// RegisterOptions registers the options that may be set in a configuration
// file. These match the flag names.
func (c *config) RegisterOptions(load *cfgfile.Loader) {
	load.StringVar(&c.Screen, "screen")
	load.Var((*durationValue)(&c.DetachDelay), "detach-delay")
	load.Var((*durationValue)(&c.KeyDelay), "key-delay")
	load.BoolVar(&c.Background, _backgroundOption)
	load.BoolVar(&c.UTF8, _utf8Option)
	load.StringVar(&c.LogFile, "log")
	load.BoolVar(&c.Verbose, _verboseOption)
}

// FillFrom updates this config object, filling empty values with values from
// the provided struct but not overwriting those that are already set.
// Boolean options set explicitly in either struct are treated as set, even
// when false.
func (c *config) FillFrom(o *config) {
	if len(c.Screen) == 0 {
		c.Screen = o.Screen
	}
	if c.DetachDelay == 0 {
		c.DetachDelay = o.DetachDelay
	}
	if c.KeyDelay == 0 {
		c.KeyDelay = o.KeyDelay
	}
	c.fillBool(&c.Background, o.Background, o, _backgroundOption)
	c.fillBool(&c.UTF8, o.UTF8, o, _utf8Option)
	if len(c.ConfigFile) == 0 {
		c.ConfigFile = o.ConfigFile
	}
	if len(c.LogFile) == 0 {
		c.LogFile = o.LogFile
	}
	c.fillBool(&c.Verbose, o.Verbose, o, _verboseOption)
}

func (c *config) fillBool(dst *bool, src bool, o *config, name string) {
	switch {
	case c.isExplicit(name):
		// keep
	case o.isExplicit(name):
		*dst = src
		c.MarkExplicit(name)
	default:
		*dst = *dst || src
	}
}

// Load fills unset values from the environment, the configuration file, and
// the defaults, in that order.
func (c *config) Load(getenv func(string) string) error {
	if len(c.ConfigFile) == 0 {
		c.ConfigFile = getenv(_configEnv)
	}
	if len(c.LogFile) == 0 {
		c.LogFile = getenv(_logfileEnv)
	}

	if path := c.ConfigFile; len(path) > 0 {
		var (
			fileCfg config
			loader  cfgfile.Loader
		)
		fileCfg.RegisterOptions(&loader)
		if err := loader.LoadFile(path, false); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		for _, name := range _boolOptions {
			if loader.Loaded(name) {
				fileCfg.MarkExplicit(name)
			}
		}
		c.FillFrom(&fileCfg)
	}

	c.FillFrom(&_defaultConfig)
	return nil
}

// ScreenCommand splits the screen command into the executable and its
// global arguments.
func (c *config) ScreenCommand() (path string, args []string, err error) {
	words, err := shellwords.Parse(c.Screen)
	if err != nil {
		return "", nil, fmt.Errorf("bad screen command %q: %w", c.Screen, err)
	}
	if len(words) == 0 {
		return "", nil, errors.New("screen command is empty")
	}
	return words[0], words[1:], nil
}

type durationValue time.Duration

var _ flag.Value = (*durationValue)(nil)

func (d *durationValue) String() string {
	return time.Duration(*d).String()
}

func (d *durationValue) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = durationValue(v)
	return nil
}
