package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/configuration"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/metrics"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/report"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/trial"
	"github.com/armadaproject/bucketcheck/internal/common/app"
	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
	"github.com/armadaproject/bucketcheck/internal/common/config"
	"github.com/armadaproject/bucketcheck/internal/common/logging"
	"github.com/armadaproject/bucketcheck/internal/common/runcontext"
)

const configFlag = "config"

// Viper keys of the flags that override configuration values.
var keysByFlag = map[string]string{
	"stringCount":        "stringCount",
	"itemsPerBucket":     "itemsPerBucket",
	"prefix":             "generator.prefix",
	"minChar":            "generator.minChar",
	"maxChar":            "generator.maxChar",
	"minLength":          "generator.minLength",
	"maxLength":          "generator.maxLength",
	"iterations":         "iterations",
	"parallelism":        "parallelism",
	"seed":               "seed",
	"sharedRandomSource": "sharedRandomSource",
	"hasher":             "hasher",
	"strategy":           "strategy",
	"format":             "output.format",
	"ordered":            "output.ordered",
	"metricsPort":        "metrics.port",
	"logLevel":           "logLevel",
}

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bucketcheck",
		Short: "Measure how evenly a string hash function spreads generated keys over buckets.",
		Long: `Generates prefixed random strings, distributes them over ceil(stringCount/itemsPerBucket) buckets by hash,
and prints the min, max, median and average bucket occupancy of each trial as one row on stdout.`,
		Args:          cobra.NoArgs,
		RunE:          runBenchmark,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaults := configuration.Default()
	flags := cmd.PersistentFlags()
	flags.StringSlice(configFlag, nil, "Configuration file, or glob pattern of files, to merge over the defaults. May be repeated; later files take precedence.")
	flags.Int("stringCount", defaults.StringCount, "Number of strings generated per trial.")
	flags.Int("itemsPerBucket", defaults.ItemsPerBucket, "Target occupancy used to size the bucket array.")
	flags.String("prefix", defaults.Generator.Prefix, "Prefix of every generated string.")
	flags.String("minChar", defaults.Generator.MinChar.String(), "Smallest filler character.")
	flags.String("maxChar", defaults.Generator.MaxChar.String(), "Largest filler character.")
	flags.Int("minLength", defaults.Generator.MinLength, "Smallest filler length.")
	flags.Int("maxLength", defaults.Generator.MaxLength, "Largest filler length.")
	flags.Int("iterations", defaults.Iterations, "Number of trials.")
	flags.Int("parallelism", defaults.Parallelism, "Maximum number of trials running at once. 0 runs every trial at once.")
	flags.Int64("seed", defaults.Seed, "Master random seed. 0 draws a seed from the operating system.")
	flags.Bool("sharedRandomSource", defaults.SharedRandomSource, "Draw every trial's strings from one shared random source.")
	flags.String("hasher", defaults.Hasher, "Hash function, see the hashers command.")
	flags.String("strategy", defaults.Strategy, "Bucket selection strategy: modulo or splitsign.")
	flags.String("format", defaults.Output.Format, "Output format: tsv or table.")
	flags.Bool("ordered", defaults.Output.Ordered, "Print rows in trial order rather than completion order.")
	flags.Uint16("metricsPort", defaults.Metrics.Port, "Port on which to serve prometheus metrics during the run. 0 disables the endpoint.")
	flags.String("logLevel", defaults.LogLevel, "Log level: debug, info, warn or error.")

	cmd.AddCommand(hashersCmd(), configCmd())
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := RootCmd().Execute()
	if err != nil {
		logging.WithStacktrace(logrus.NewEntry(logrus.StandardLogger()), err).Error(err)
	}
	return benchmarkerrors.ExitCodeFromError(err)
}

// loadConfig builds the effective configuration of cmd from defaults, config files, environment and flags.
func loadConfig(cmd *cobra.Command) (configuration.Config, error) {
	var cfg configuration.Config
	patterns, err := cmd.Flags().GetStringSlice(configFlag)
	if err != nil {
		return cfg, err
	}
	userConfigFiles, err := config.ExpandPatterns(patterns)
	if err != nil {
		return cfg, err
	}
	v := viper.New()
	if err := config.BindFlags(v, cmd.Flags(), keysByFlag); err != nil {
		return cfg, err
	}
	if err := config.LoadConfig(v, configuration.Default(), userConfigFiles, configuration.EnvPrefix, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validatedConfig(cmd *cobra.Command) (configuration.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		config.LogValidationErrors(logrus.NewEntry(logrus.StandardLogger()), err)
		return cfg, benchmarkerrors.ErrInvalidConfiguration
	}
	return cfg, nil
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	cfg, err := validatedConfig(cmd)
	if err != nil {
		return err
	}
	if err := configureLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	m := metrics.New()
	hook, err := logging.NewPrometheusHook(m.Registry(), "bucketcheck_")
	if err != nil {
		return err
	}
	logrus.AddHook(hook)

	ctx, stop := app.CreateContextWithShutdown(runcontext.Background())
	defer stop()

	if cfg.Metrics.Port > 0 {
		stopMetrics, err := m.ListenAndServe(cfg.Metrics.Port, ctx.Log)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	runner, err := trial.NewRunner(cfg, report.NewWriter(cmd.OutOrStdout(), format, cfg.Output.Ordered), m)
	if err != nil {
		return err
	}
	results, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	ctx.Log.Infof("completed %d trials in %s, seed %d", len(results.Summaries), results.Duration, results.Seed)
	return nil
}

// configureLogLevel keeps the bare command line format unless debug output is requested, in which case log lines
// are timestamped so that phase timings can be read off them.
func configureLogLevel(level string) error {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return &benchmarkerrors.ErrInvalidArgument{Name: "logLevel", Value: level, Message: err.Error()}
	}
	if lvl == logrus.DebugLevel {
		return logging.ConfigureLogging(level)
	}
	logrus.SetLevel(lvl)
	return nil
}
