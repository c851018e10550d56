package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// handler is a slog.Handler that writes one line per record:
//
//	[name] message key=value key=value
type handler struct {
	W     io.Writer
	Level Level

	name  string
	attrs []byte
	group []byte

	mu *sync.Mutex // guards W; shared between derived handlers
}

var _ slog.Handler = (*handler)(nil)

func (h *handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return lvl >= h.Level
}

func (h *handler) Handle(ctx context.Context, rec slog.Record) error {
	buf := *getBuf()
	defer putBuf(&buf)

	if len(h.name) > 0 {
		buf = append(buf, '[')
		buf = append(buf, h.name...)
		buf = append(buf, "] "...)
	}
	buf = append(buf, strings.TrimRight(rec.Message, "\n")...)

	if len(h.attrs) > 0 {
		buf = append(buf, ' ')
		buf = append(buf, h.attrs...)
	}

	rec.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, h.group, a)
		return true
	})

	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.W.Write(buf)
	return err
}

func (h *handler) appendAttr(buf []byte, group []byte, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		group := group
		if len(group) > 0 {
			group = append(group, '.')
		}
		group = append(group, a.Key...)
		for _, a := range a.Value.Group() {
			buf = h.appendAttr(buf, group, a)
		}

		return buf
	}

	if len(buf) > 0 && buf[len(buf)-1] != ' ' {
		buf = append(buf, ' ')
	}

	if len(group) > 0 {
		buf = append(buf, group...)
		buf = append(buf, '.')
	}
	buf = append(buf, a.Key...)
	buf = append(buf, '=')

	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.ContainsAny(s, " \"=") || !strconv.CanBackquote(s) {
			buf = strconv.AppendQuote(buf, s)
		} else {
			buf = append(buf, s...)
		}

	case slog.KindInt64:
		buf = strconv.AppendInt(buf, a.Value.Int64(), 10)

	case slog.KindUint64:
		buf = strconv.AppendUint(buf, a.Value.Uint64(), 10)

	case slog.KindFloat64:
		buf = strconv.AppendFloat(buf, a.Value.Float64(), 'f', -1, 64)

	case slog.KindBool:
		buf = strconv.AppendBool(buf, a.Value.Bool())

	case slog.KindDuration:
		buf = append(buf, a.Value.Duration().String()...)

	case slog.KindTime:
		buf = append(buf, a.Value.Time().String()...)

	case slog.KindAny:
		buf = fmt.Appendf(buf, "%v", a.Value.Any())
	}

	return buf
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		out.attrs = out.appendAttr(out.attrs, h.group, a)
	}
	return &out
}

func (h *handler) WithGroup(name string) slog.Handler {
	out := *h
	out.group = append([]byte(nil), h.group...)
	if len(out.group) > 0 {
		out.group = append(out.group, '.')
	}
	out.group = append(out.group, name...)
	return &out
}

var _bufPool = sync.Pool{
	New: func() interface{} {
		bs := make([]byte, 0, 1024)
		return &bs
	},
}

func getBuf() *[]byte {
	return _bufPool.Get().(*[]byte)
}

func putBuf(bs *[]byte) {
	*bs = (*bs)[:0]
	_bufPool.Put(bs)
}
