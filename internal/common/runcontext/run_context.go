// Package runcontext provides a context.Context that also carries a logger, so that a benchmark run and each of its
// trials can log with their own fields without threading a logger through every call.
package runcontext

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Context is a context.Context together with the logger for whatever runs under it.
type Context struct {
	context.Context
	Log *logrus.Entry
}

// Background is context.Background() logging through the standard logrus logger.
func Background() *Context {
	return New(context.Background(), logrus.NewEntry(logrus.StandardLogger()))
}

func New(ctx context.Context, log *logrus.Entry) *Context {
	return &Context{Context: ctx, Log: log}
}

// WithCancel derives a context that is done when cancel is called or c is done. The logger is shared.
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	return New(ctx, c.Log), cancel
}

// WithFields derives a context whose logger adds fields to every entry.
func (c *Context) WithFields(fields logrus.Fields) *Context {
	return New(c.Context, c.Log.WithFields(fields))
}

// Group returns an errgroup running at most limit goroutines at once, or any number if limit is negative, and the
// context its goroutines should use. That context is cancelled by the first goroutine to fail.
func (c *Context) Group(limit int) (*errgroup.Group, *Context) {
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(limit)
	return g, New(ctx, c.Log)
}
