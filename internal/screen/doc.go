// Package screen provides APIs to interact with the GNU screen(1) terminal
// multiplexer.
//
// It provides a [Driver] interface and a [ShellDriver] implementation.
// These provide direct, low-level access to screen invocations.
// The output of [Driver.ListSessions] is decoded by the screenls package.
package screen

//go:generate mockgen -destination screentest/mock_driver.go -package screentest github.com/abhinav/screenctl/internal/screen Driver
