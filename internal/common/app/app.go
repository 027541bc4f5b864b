package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/armadaproject/bucketcheck/internal/common/runcontext"
)

// CreateContextWithShutdown returns a context derived from parent that is cancelled when SIGINT or SIGTERM is
// received. The returned stop function releases the signal handler.
func CreateContextWithShutdown(parent *runcontext.Context) (*runcontext.Context, func()) {
	ctx, cancel := parent.WithCancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-c:
			ctx.Log.Warnf("received %s, abandoning remaining trials", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(c)
		cancel()
	}
}
