package main

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/polezero/internal/cli"
	"github.com/aretw0/polezero/internal/presentation/tui"
	"github.com/aretw0/polezero/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a configuration file interactively",
	Long: `Opens the configuration stored in <file> (a missing file is empty) in a
line editor. "publish" writes the file and prints the page URL; "close",
end of input or Ctrl+C leave the file untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		bundle, err := cli.NewEditor(sigCtx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer bundle.Close()

		err = cli.RunEdit(sigCtx, bundle.Editor, file.NewSource(args[0]), cli.EditOptions{
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
			Interactive: tui.IsTerminal(os.Stdin),
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
