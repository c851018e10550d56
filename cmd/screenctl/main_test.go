package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhinav/screenctl/internal/envtest"
	"github.com/abhinav/screenctl/internal/screen"
	"github.com/abhinav/screenctl/internal/screen/screentest"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const _stamp = "11/24/2021 03:28:10 PM"

type testCmd struct {
	mainCmd

	stdout, stderr bytes.Buffer
}

func newTestCmd(driver screen.Driver, env envtest.Env) *testCmd {
	cmd := new(testCmd)
	cmd.mainCmd = mainCmd{
		Stdin:  strings.NewReader(""),
		Stdout: &cmd.stdout,
		Stderr: &cmd.stderr,
		Getenv: env.Getenv,
		newDriver: func(*screen.ShellDriver) screen.Driver {
			return driver
		},
	}
	return cmd
}

func TestVersion(t *testing.T) {
	t.Parallel()

	cmd := newTestCmd(nil, nil)
	require.NoError(t, cmd.Run([]string{"-version"}))
	assert.Contains(t, cmd.stdout.String(), _version)
	assert.Empty(t, cmd.stderr.String(), "stderr should be empty")
}

func TestUsageHasAllConfigFlags(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	new(config).RegisterFlags(fset)
	fset.VisitAll(func(f *flag.Flag) {
		documented := strings.Contains(_usage, "\t-"+f.Name+" ") ||
			strings.Contains(_usage, "\t-"+f.Name+"\n")
		assert.True(t, documented, "flag %q is not documented", f.Name)
	})
	assert.Contains(t, _usage, "\t-version\n")
}

func TestUsageHasAllCommands(t *testing.T) {
	t.Parallel()

	for name, c := range _commands {
		assert.Contains(t, _usage, "\t"+strings.TrimSpace(name+" "+c.Usage)+"\n",
			"command %q is not documented", name)
	}
}

func TestMainUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		give    []string
		wantErr string
	}{
		{desc: "no command", wantErr: "please provide a command"},
		{desc: "unknown command", give: []string{"attach", "x"}, wantErr: `unknown command "attach"`},
		{desc: "missing name", give: []string{"kill"}, wantErr: "usage: kill NAME"},
		{desc: "extra args", give: []string{"exists", "a", "b"}, wantErr: "usage: exists NAME"},
		{desc: "nothing to send", give: []string{"send", "x"}, wantErr: "usage: send NAME COMMAND..."},
		{desc: "bad flag", give: []string{"-key-delay", "soon", "ls"}, wantErr: "invalid value"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			// No expectations: screen must not be called.
			mockScreen := screentest.NewMockDriver(gomock.NewController(t))

			cmd := newTestCmd(mockScreen, nil)
			err := cmd.Run(tt.give)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Empty(t, cmd.stdout.String())
		})
	}
}

func TestMainHelp(t *testing.T) {
	t.Parallel()

	cmd := newTestCmd(nil, nil)
	err := cmd.Run([]string{"-help"})
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, cmd.stderr.String(), "The following commands are available:")
}

func TestMainScreenCommand(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockScreen := screentest.NewMockDriver(ctrl)
	mockScreen.EXPECT().ListSessions().Return(screentest.SessionListing(), nil)

	cmd := newTestCmd(mockScreen, nil)
	var got *screen.ShellDriver
	cmd.newDriver = func(d *screen.ShellDriver) screen.Driver {
		got = d
		return mockScreen
	}

	require.NoError(t, cmd.Run([]string{
		"-screen", "/opt/bin/screen -c '/etc/my screenrc'", "ls",
	}))
	require.NotNil(t, got)
	assert.Equal(t, "/opt/bin/screen", got.Path)
	assert.Equal(t, []string{"-c", "/etc/my screenrc"}, got.Args)
}

func TestMainLogFile(t *testing.T) {
	t.Parallel()

	logfile := filepath.Join(t.TempDir(), "screenctl.log")

	ctrl := gomock.NewController(t)
	mockScreen := screentest.NewMockDriver(ctrl)
	mockScreen.EXPECT().ListSessions().Return(screentest.SessionListing(), nil)

	cmd := newTestCmd(mockScreen, envtest.Env{_logfileEnv: logfile})
	require.NoError(t, cmd.Run([]string{"-verbose", "ls"}))
	assert.Empty(t, cmd.stderr.String(), "logs must go to the file")

	body, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Contains(t, string(body), "run command=ls")
	assert.Contains(t, string(body), "no sessions")
}

func TestMainPanicWithLog(t *testing.T) {
	t.Parallel()

	logfile := filepath.Join(t.TempDir(), "screenctl.log")

	ctrl := gomock.NewController(t)
	mockScreen := screentest.NewMockDriver(ctrl)
	mockScreen.EXPECT().
		ListSessions().
		DoAndReturn(func() ([]byte, error) {
			panic("great sadness")
		})

	cmd := newTestCmd(mockScreen, nil)
	err := cmd.Run([]string{"-log", logfile, "ls"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "great sadness")

	body, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Contains(t, string(body), "panic: great sadness")
}

func TestMainConfigFile(t *testing.T) {
	t.Parallel()

	conf := filepath.Join(t.TempDir(), "screenctl.conf")
	require.NoError(t, os.WriteFile(conf, []byte(unlines(
		"background",
		"utf8 true",
	)), 0o644))

	ctrl := gomock.NewController(t)
	mockScreen := screentest.NewMockDriver(ctrl)
	gomock.InOrder(
		mockScreen.EXPECT().ListSessions().Return(screentest.SessionListing(), nil),
		mockScreen.EXPECT().
			NewSession(screentest.NewSessionRequestMatcher{Name: "build", Detached: true}).
			DoAndReturn(func(req screen.NewSessionRequest) error {
				assert.True(t, req.UTF8, "utf8 must be loaded from the file")
				return nil
			}),
	)

	cmd := newTestCmd(mockScreen, envtest.Env{_configEnv: conf})
	require.NoError(t, cmd.Run([]string{"create", "build"}))
}

func TestMainFlagOverridesConfigBool(t *testing.T) {
	t.Parallel()

	conf := filepath.Join(t.TempDir(), "screenctl.conf")
	require.NoError(t, os.WriteFile(conf, []byte(unlines(
		"background",
		"utf8 true",
	)), 0o644))

	ctrl := gomock.NewController(t)
	mockScreen := screentest.NewMockDriver(ctrl)
	gomock.InOrder(
		mockScreen.EXPECT().ListSessions().Return(screentest.SessionListing(), nil),
		mockScreen.EXPECT().
			NewSession(screentest.NewSessionRequestMatcher{Name: "build", Detached: true}).
			DoAndReturn(func(req screen.NewSessionRequest) error {
				assert.False(t, req.UTF8, "-utf8=false must win over the file")
				return nil
			}),
	)

	cmd := newTestCmd(mockScreen, envtest.Env{_configEnv: conf})
	require.NoError(t, cmd.Run([]string{"-utf8=false", "create", "build"}))
}

func TestMainCommandFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockScreen := screentest.NewMockDriver(ctrl)
	mockScreen.EXPECT().ListSessions().Return(nil, &screen.CommandError{
		Args: []string{"screen", "-ls"},
		Err:  errors.New("great sadness"),
	})

	cmd := newTestCmd(mockScreen, nil)
	err := cmd.Run([]string{"ls"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "list sessions: screen -ls: great sadness")

	var cmdErr *screen.CommandError
	assert.ErrorAs(t, err, &cmdErr)
}

func unlines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
