package runcontext

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/bucketcheck/internal/common/logging"
)

var defaultLogger = logging.Discard().WithField("hasher", "oneatatime")

func TestBackground(t *testing.T) {
	ctx := Background()
	require.Equal(t, context.Background(), ctx.Context)
	require.Equal(t, logrus.StandardLogger(), ctx.Log.Logger)
}

func TestWithFields(t *testing.T) {
	parent := New(context.Background(), defaultLogger)
	ctx := parent.WithFields(logrus.Fields{"trial": 3, "phase": "generate"})
	assert.Equal(t, logrus.Fields{"hasher": "oneatatime", "trial": 3, "phase": "generate"}, ctx.Log.Data)
	assert.Equal(t, logrus.Fields{"hasher": "oneatatime"}, parent.Log.Data)
}

func TestWithCancel(t *testing.T) {
	ctx, cancel := New(context.Background(), defaultLogger).WithCancel()
	assert.NoError(t, ctx.Err())
	cancel()
	<-ctx.Done()
	assert.Equal(t, context.Canceled, ctx.Err())
	assert.Equal(t, defaultLogger, ctx.Log)
}

func TestGroup_FirstFailureCancels(t *testing.T) {
	g, ctx := New(context.Background(), defaultLogger).Group(-1)
	assert.Equal(t, defaultLogger, ctx.Log)

	expected := errors.New("trial failed")
	g.Go(func() error { return expected })
	g.Go(func() error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.Equal(t, expected, g.Wait())
}

func TestGroup_Limit(t *testing.T) {
	g, _ := New(context.Background(), defaultLogger).Group(2)
	var running, peak int32
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}
