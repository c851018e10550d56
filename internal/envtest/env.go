// Package envtest provides a fake environment for tests.
package envtest

// Env is a fake set of environment variables.
// A nil Env is empty.
type Env map[string]string

// Getenv is an analog for os.Getenv.
func (e Env) Getenv(k string) string {
	return e[k]
}
