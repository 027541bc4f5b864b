package generator

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/configuration"
)

func newGenerator(cfg configuration.GeneratorConfig, seed int64) *Generator {
	return New(cfg, rand.New(rand.NewSource(seed)))
}

func TestGenerateRandomString_NoFiller(t *testing.T) {
	g := newGenerator(configuration.Default().Generator, 1)
	assert.Equal(t, "prefix0", g.GenerateRandomString(0))
	assert.Equal(t, "prefix49999999", g.GenerateRandomString(49999999))
}

func TestGenerateRandomString_Filler(t *testing.T) {
	cfg := configuration.GeneratorConfig{
		Prefix:    "p",
		MinChar:   '1',
		MaxChar:   '4',
		MinLength: 3,
		MaxLength: 6,
	}
	g := newGenerator(cfg, 7)
	for i := 0; i < 1000; i++ {
		s := g.GenerateRandomString(i)
		require.True(t, strings.HasPrefix(s, "p"))
		index := strconv.Itoa(i)
		require.True(t, strings.HasSuffix(s, index))

		filler := s[1 : len(s)-len(index)]
		require.GreaterOrEqual(t, len(filler), 3)
		require.LessOrEqual(t, len(filler), 6)
		// the final filler character is never drawn
		assert.Equal(t, byte(0), filler[len(filler)-1])
		for _, c := range filler[:len(filler)-1] {
			assert.True(t, c >= '1' && c <= '4', "unexpected filler character %q", c)
		}
	}
}

func TestGenerateRandomString_SingleCharFiller(t *testing.T) {
	cfg := configuration.GeneratorConfig{Prefix: "x", MinChar: 'a', MaxChar: 'a', MinLength: 1, MaxLength: 1}
	g := newGenerator(cfg, 1)
	assert.Equal(t, "x\x0012", g.GenerateRandomString(12))
}

func TestGenerateRandomString_SameSeedSameStrings(t *testing.T) {
	cfg := configuration.GeneratorConfig{Prefix: "p", MinChar: 'a', MaxChar: 'z', MinLength: 0, MaxLength: 8}
	a := newGenerator(cfg, 99)
	b := newGenerator(cfg, 99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.GenerateRandomString(i), b.GenerateRandomString(i))
	}
}

func TestGenerateRandomString_NonASCIIRange(t *testing.T) {
	cfg := configuration.GeneratorConfig{Prefix: "", MinChar: 'é', MaxChar: 'é', MinLength: 3, MaxLength: 3}
	g := newGenerator(cfg, 1)
	assert.Equal(t, "éé\x000", g.GenerateRandomString(0))
}

func TestGenerate(t *testing.T) {
	g := newGenerator(configuration.Default().Generator, 1)
	values, err := g.Generate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"prefix0", "prefix1", "prefix2"}, values)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := newGenerator(configuration.Default().Generator, 1)
	_, err := g.Generate(ctx, 10)
	assert.True(t, errors.Is(err, context.Canceled))
}
