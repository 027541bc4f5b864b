// Package generator produces the strings a benchmark trial distributes.
package generator

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/configuration"
)

// cancellationCheckInterval is how many strings are generated between checks of the context.
const cancellationCheckInterval = 1 << 16

// Generator builds strings of the form prefix + filler + index. It is not safe for concurrent use unless its random
// source is.
type Generator struct {
	prefix    string
	minChar   rune
	charRange int
	minLength int
	lenRange  int
	rnd       *rand.Rand
	sb        strings.Builder
}

func New(cfg configuration.GeneratorConfig, rnd *rand.Rand) *Generator {
	return &Generator{
		prefix:    cfg.Prefix,
		minChar:   rune(cfg.MinChar),
		charRange: int(cfg.MaxChar-cfg.MinChar) + 1,
		minLength: cfg.MinLength,
		lenRange:  cfg.MaxLength - cfg.MinLength + 1,
		rnd:       rnd,
	}
}

// GenerateRandomString returns prefix + filler + num. The filler length L is drawn from [MinLength, MaxLength].
// Its first L-1 characters are drawn from [MinChar, MaxChar] and its last character is always '\x00'.
func (g *Generator) GenerateRandomString(num int) string {
	length := g.minLength + g.rnd.Intn(g.lenRange)
	g.sb.Reset()
	g.sb.Grow(len(g.prefix) + length + 10)
	g.sb.WriteString(g.prefix)
	for i := 0; i < length-1; i++ {
		g.sb.WriteRune(g.minChar + rune(g.rnd.Intn(g.charRange)))
	}
	if length > 0 {
		g.sb.WriteByte(0)
	}
	g.sb.WriteString(strconv.Itoa(num))
	return g.sb.String()
}

// Generate returns the strings for indices 0 to count-1 in order. It stops early with the context's error if ctx is
// cancelled.
func (g *Generator) Generate(ctx context.Context, count int) ([]string, error) {
	values := make([]string, count)
	for i := range values {
		if i%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.WithStack(err)
			}
		}
		values[i] = g.GenerateRandomString(i)
	}
	return values, nil
}
