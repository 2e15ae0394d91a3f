package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every record written through the package after the
// primary zap core, so logs can fan out to an external sink.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirrorFn atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the global log mirror. Passing nil removes it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirrorFn.Store(nil)
		return
	}
	mirrorFn.Store(&fn)
}

func mirror(ctx context.Context, level Level, msg string, args []any) {
	fn := mirrorFn.Load()
	if fn == nil {
		return
	}
	(*fn)(ctx, level, msg, args...)
}
