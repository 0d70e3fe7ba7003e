package core

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// Go runs fn in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword for engine-owned goroutines so a
// panicking worker is logged with its stack instead of killing the process.
func Go(log *zap.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("goroutine panic",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
