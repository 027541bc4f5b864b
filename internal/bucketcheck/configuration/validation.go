package configuration

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/bucket"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/hasher"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/report"
	"github.com/armadaproject/bucketcheck/internal/common/benchmarkerrors"
)

// Validate checks struct tags first and returns validator.ValidationErrors if any fail. Otherwise, every
// cross-field and name check is run and the failures are returned together as a *multierror.Error.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	var result *multierror.Error
	if c.Generator.MinLength > c.Generator.MaxLength {
		result = multierror.Append(result, &benchmarkerrors.ErrInvalidArgument{
			Name:    "generator.minLength",
			Value:   c.Generator.MinLength,
			Message: fmt.Sprintf("must not exceed generator.maxLength (%d)", c.Generator.MaxLength),
		})
	}
	if c.Generator.MinChar > c.Generator.MaxChar {
		result = multierror.Append(result, &benchmarkerrors.ErrInvalidArgument{
			Name:    "generator.minChar",
			Value:   fmt.Sprintf("%q", c.Generator.MinChar.String()),
			Message: fmt.Sprintf("must not come after generator.maxChar (%q)", c.Generator.MaxChar.String()),
		})
	}
	result = checkName(result, "hasher", c.Hasher, hasher.Names())
	result = checkName(result, "strategy", c.Strategy, bucket.Strategies())
	result = checkName(result, "output.format", c.Output.Format, report.Formats())
	return result.ErrorOrNil()
}

func checkName(result *multierror.Error, field, value string, known []string) *multierror.Error {
	if slices.Contains(known, value) {
		return result
	}
	return multierror.Append(result, &benchmarkerrors.ErrInvalidArgument{
		Name:    field,
		Value:   value,
		Message: "must be one of " + strings.Join(known, ", "),
	})
}
