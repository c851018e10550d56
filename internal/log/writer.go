package log

import "bytes"

var (
	_newline = []byte("\n")
	_cr      = []byte("\r")
)

// Writer is an io.Writer that logs each line written to it. It captures the
// standard error of screen invocations.
//
// Lines end with "\n" or "\r\n". A partial line is held until the rest of it
// arrives or the Writer is closed.
type Writer struct {
	Log   *Logger
	Level Level

	partial []byte
}

func (w *Writer) Write(bs []byte) (int, error) {
	n := len(bs)
	for {
		line, rest, ok := bytes.Cut(bs, _newline)
		if !ok {
			w.partial = append(w.partial, bs...)
			return n, nil
		}

		if len(w.partial) > 0 {
			line = append(w.partial, line...)
			w.partial = w.partial[:0]
		}
		w.logLine(line)
		bs = rest
	}
}

// Close logs the partial line, if any.
// A trailing newline at the end of the stream does not produce an empty
// message.
func (w *Writer) Close() error {
	if len(w.partial) > 0 {
		w.logLine(w.partial)
		w.partial = nil
	}
	return nil
}

func (w *Writer) logLine(b []byte) {
	w.Log.Logf(w.Level, "%s", bytes.TrimSuffix(b, _cr))
}
