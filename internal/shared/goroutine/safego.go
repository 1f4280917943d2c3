// Package goroutine launches goroutines whose panics are logged instead
// of crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/moderation/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. The returned channel receives exactly
// one value: fn's error, or an error describing a recovered panic.
func SafeGo(log logger.Interface, name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				done <- fmt.Errorf("goroutine %s panicked: %v", name, r)
			}
		}()
		done <- fn()
	}()
	return done
}
