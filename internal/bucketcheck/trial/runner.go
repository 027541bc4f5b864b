// Package trial runs the generate, distribute and analyze pipeline once per trial, with trials in parallel.
package trial

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/analyzer"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/bucket"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/configuration"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/generator"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/hasher"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/metrics"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/report"
	"github.com/armadaproject/bucketcheck/internal/common/runcontext"
	"github.com/armadaproject/bucketcheck/internal/common/util"
)

type Runner struct {
	cfg      configuration.Config
	hash     hasher.Func
	strategy bucket.Strategy
	seed     int64
	// shared is set when every trial draws from one random source
	shared  *rand.Rand
	out     *report.Writer
	metrics *metrics.Metrics
}

type Results struct {
	// Summaries by trial index
	Summaries []analyzer.Summary
	// The master seed the trial seeds were derived from
	Seed     int64
	Duration time.Duration
}

// NewRunner resolves the configured hasher and strategy and fixes the master seed, drawing one from the operating
// system if none is configured.
func NewRunner(cfg configuration.Config, out *report.Writer, m *metrics.Metrics) (*Runner, error) {
	hash, err := hasher.Lookup(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	strategy, err := bucket.ForStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		if seed, err = util.RandomSeed(); err != nil {
			return nil, err
		}
	}
	r := &Runner{
		cfg:      cfg,
		hash:     hash,
		strategy: strategy,
		seed:     seed,
		out:      out,
		metrics:  m,
	}
	if cfg.SharedRandomSource {
		r.shared = util.SharedRand(seed)
	}
	return r, nil
}

// SeedForTrial derives the seed of a trial's random source from the master seed, using the splitmix64 finalizer so
// that neighbouring trials get unrelated seeds.
func SeedForTrial(masterSeed int64, trial int) int64 {
	z := uint64(masterSeed) + uint64(trial+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// Run writes the header, runs every trial and writes each summary as its trial completes. The first failing trial
// cancels the others.
func (r *Runner) Run(ctx *runcontext.Context) (*Results, error) {
	start := time.Now()
	parallelism := r.cfg.Parallelism
	if parallelism == 0 {
		parallelism = r.cfg.Iterations
	}
	ctx.Log.Infof(
		"running %d trials of %d strings, %d at a time, hasher %s, strategy %s, seed %d",
		r.cfg.Iterations, r.cfg.StringCount, parallelism, r.cfg.Hasher, r.cfg.Strategy, r.seed,
	)

	if err := r.out.WriteHeader(); err != nil {
		return nil, err
	}

	summaries := make([]analyzer.Summary, r.cfg.Iterations)
	g, ctx := ctx.Group(parallelism)
	for i := 0; i < r.cfg.Iterations; i++ {
		i := i
		g.Go(func() error {
			s, err := r.RunTrial(ctx.WithFields(logrus.Fields{"trial": i}), i)
			if err != nil {
				return errors.WithMessagef(err, "trial %d", i)
			}
			summaries[i] = s
			return r.out.Add(i, s)
		})
	}
	err := g.Wait()
	if flushErr := r.out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return nil, err
	}

	return &Results{
		Summaries: summaries,
		Seed:      r.seed,
		Duration:  time.Since(start),
	}, nil
}

// RunTrial generates, distributes and analyzes one trial's strings. The strings and buckets are dropped once the
// summary is computed.
func (r *Runner) RunTrial(ctx *runcontext.Context, index int) (analyzer.Summary, error) {
	gen := generator.New(r.cfg.Generator, r.randomSourceFor(index))

	start := time.Now()
	values, err := gen.Generate(ctx, r.cfg.StringCount)
	if err != nil {
		return analyzer.Summary{}, err
	}
	taken := time.Since(start)
	r.metrics.RecordGenerated(len(values), taken)
	ctx.Log.Debugf("generated %d strings in %s", len(values), taken)

	start = time.Now()
	buckets := r.strategy(values, r.cfg.ItemsPerBucket, r.hash)
	taken = time.Since(start)
	r.metrics.RecordDistributed(r.cfg.Hasher, len(values), taken)
	ctx.Log.Debugf("distributed into %d buckets in %s", len(buckets), taken)
	if err := ctx.Err(); err != nil {
		return analyzer.Summary{}, errors.WithStack(err)
	}

	summary := analyzer.Analyze(buckets)
	if summary.Total != len(values) {
		return analyzer.Summary{}, errors.Errorf("buckets hold %d strings but %d were distributed", summary.Total, len(values))
	}
	r.metrics.RecordTrial(r.cfg.Hasher, r.cfg.Strategy, summary)
	ctx.Log.Debugf("summary %s", summary)
	return summary, nil
}

func (r *Runner) randomSourceFor(trial int) *rand.Rand {
	if r.shared != nil {
		return r.shared
	}
	return rand.New(rand.NewSource(SeedForTrial(r.seed, trial)))
}
