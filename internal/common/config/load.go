package config

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"

	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
)

// LoadConfig fills config from, in increasing order of precedence: defaults, each of userConfigFiles in turn,
// environment variables named envPrefix_KEY (nested keys joined by underscores) and any flags already bound to v.
func LoadConfig(v *viper.Viper, defaults interface{}, userConfigFiles []string, envPrefix string, config interface{}) error {
	defaultYaml, err := yaml.Marshal(defaults)
	if err != nil {
		return errors.WithMessage(err, "marshalling default configuration")
	}
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultYaml)); err != nil {
		return errors.WithMessage(err, "reading default configuration")
	}

	for _, path := range userConfigFiles {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return errors.WithMessagef(err, "reading config file %s", path)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(config, CustomHooks...); err != nil {
		return errors.WithMessage(err, "unmarshalling configuration")
	}
	return nil
}

// BindFlags binds each flag to the viper key of the same name, so a flag overrides files and environment only
// when it is set on the command line.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keysByFlag map[string]string) error {
	for flagName, key := range keysByFlag {
		flag := flags.Lookup(flagName)
		if flag == nil {
			return errors.Errorf("no flag named %s", flagName)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.WithMessagef(err, "binding flag %s", flagName)
		}
	}
	return nil
}

// ExpandPatterns replaces each config file pattern containing glob characters, including "**", with the files it
// matches in lexical order. Plain paths are kept as they are so that a missing file is reported when it is read.
// A pattern that matches nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			paths = append(paths, pattern)
			continue
		}
		matches, err := zglob.Glob(pattern)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "expanding config pattern %s", pattern)
		}
		if len(matches) == 0 {
			return nil, &benchmarkerrors.ErrNotFound{Type: "config file pattern", Value: pattern, Message: "no files match"}
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}
