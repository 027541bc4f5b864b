package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
)

type testNested struct {
	Format string
}

type testConfig struct {
	Count  int `validate:"gte=1"`
	Letter Char
	Name   string `validate:"required"`
	Nested testNested
}

func defaultTestConfig() testConfig {
	return testConfig{Count: 10, Letter: 'a', Name: "default", Nested: testNested{Format: "tsv"}}
}

func TestParseChar(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Char
		wantErr  bool
	}{
		"digit":     {input: "1", expected: '1'},
		"multibyte": {input: "é", expected: 'é'},
		"empty":     {input: "", wantErr: true},
		"two chars": {input: "12", wantErr: true},
		"invalid":   {input: "\xff", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseChar(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestChar_TextRoundTrip(t *testing.T) {
	text, err := Char('4').MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "4", string(text))

	var c Char
	require.NoError(t, c.UnmarshalText([]byte("z")))
	assert.Equal(t, Char('z'), c)
	assert.Error(t, c.UnmarshalText([]byte("zz")))
}

func TestLoadConfig_Defaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig(viper.New(), defaultTestConfig(), nil, "TESTCFG", &cfg)
	require.NoError(t, err)
	assert.Equal(t, defaultTestConfig(), cfg)
}

func TestLoadConfig_Layering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 20\nletter: \"3\"\nnested:\n  format: table\n"), 0o644))
	t.Setenv("TESTCFG_NAME", "from-env")
	t.Setenv("TESTCFG_COUNT", "30")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("count", 0, "")
	flags.String("letter", "", "")
	require.NoError(t, flags.Parse([]string{"--letter", "9"}))

	v := viper.New()
	require.NoError(t, BindFlags(v, flags, map[string]string{"count": "count", "letter": "letter"}))

	var cfg testConfig
	require.NoError(t, LoadConfig(v, defaultTestConfig(), []string{path}, "TESTCFG", &cfg))

	// env beats file, an unset flag does not beat either, a set flag beats everything
	assert.Equal(t, 30, cfg.Count)
	assert.Equal(t, Char('9'), cfg.Letter)
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, "table", cfg.Nested.Format)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig(viper.New(), defaultTestConfig(), []string{"/does/not/exist.yaml"}, "TESTCFG", &cfg)
	assert.Error(t, err)
}

func TestLoadConfig_BadChar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("letter: \"ab\"\n"), 0o644))

	var cfg testConfig
	assert.Error(t, LoadConfig(viper.New(), defaultTestConfig(), []string{path}, "TESTCFG", &cfg))
}

func TestBindFlags_UnknownFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	assert.Error(t, BindFlags(viper.New(), flags, map[string]string{"nope": "nope"}))
}

func TestLogValidationErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	err := validator.New().Struct(testConfig{Count: 0})
	require.Error(t, err)
	LogValidationErrors(logrus.NewEntry(logger), err)
	assert.Contains(t, buf.String(), "Field Count has invalid value 0: gte")
	assert.Contains(t, buf.String(), "Field Name is required but was not found")

	buf.Reset()
	LogValidationErrors(logrus.NewEntry(logger), errors.New("minChar is after maxChar"))
	assert.Contains(t, buf.String(), "ConfigError: minChar is after maxChar")

	buf.Reset()
	LogValidationErrors(logrus.NewEntry(logger), multierror.Append(errors.New("first"), errors.New("second")))
	assert.Contains(t, buf.String(), "ConfigError: first")
	assert.Contains(t, buf.String(), "ConfigError: second")
	assert.NotContains(t, buf.String(), "2 errors occurred")

	buf.Reset()
	LogValidationErrors(logrus.NewEntry(logger), nil)
	assert.Empty(t, buf.String())
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yaml", "nested/c.yaml", "notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	paths, err := ExpandPatterns([]string{
		filepath.Join(dir, "*.yaml"),
		filepath.Join(dir, "explicit.yaml"),
		filepath.Join(dir, "**", "c.yaml"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "explicit.yaml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, paths)
}

func TestExpandPatterns_NoMatch(t *testing.T) {
	_, err := ExpandPatterns([]string{filepath.Join(t.TempDir(), "*.yaml")})
	var notFound *benchmarkerrors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}
