package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/bucket"
	"github.com/armadaproject/bucketcheck/internal/bucketcheck/hasher"
)

func hashersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hashers",
		Short: "List the available hash functions and bucket strategies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range hasher.Names() {
				suffix := ""
				if name == hasher.Default {
					suffix = " (default)"
				}
				if _, err := fmt.Fprintf(out, "hasher\t%s%s\n", name, suffix); err != nil {
					return err
				}
			}
			for _, name := range bucket.Strategies() {
				if _, err := fmt.Fprintf(out, "strategy\t%s\n", name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
