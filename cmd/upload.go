package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studymate/internal/validate"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload documents for indexing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd)
		if err != nil {
			return err
		}

		for _, path := range args {
			if err := validate.DocumentExt(path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}

			result, err := client.Upload(cmd.Context(), filepath.Base(path), f)
			f.Close()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d chunks indexed\n", result.Filename, result.ChunksCreated)
		}
		return nil
	},
}
