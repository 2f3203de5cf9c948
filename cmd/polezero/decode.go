package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/polezero/internal/presentation/graph"
	"github.com/aretw0/polezero/internal/presentation/tui"
	httpAdapter "github.com/aretw0/polezero/pkg/adapters/http"
	"github.com/aretw0/polezero/pkg/adapters/query"
	"github.com/aretw0/polezero/pkg/codec"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [value]",
	Short: "Decode a configuration from a value or a page URL",
	Long: `Decodes a pole-zero configuration the way the page does: anything invalid
becomes the empty configuration. The reason is reported on stderr.

The value is read from the argument, from --url, or from stdin when neither is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rawURL, _ := cmd.Flags().GetString("url")
		format, _ := cmd.Flags().GetString("format")

		var raw string
		switch {
		case rawURL != "":
			src, err := query.Parse(rawURL, cfg.Publisher())
			if err != nil {
				return fmt.Errorf("invalid url: %w", err)
			}
			raw, _ = src.Load(cmd.Context())
		case len(args) == 1:
			raw = args[0]
		default:
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			raw = string(data)
		}

		decoded, decodeErr := codec.DecodeStrict(raw)
		if decodeErr != nil && raw != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "invalid configuration, using empty: %v\n", decodeErr)
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			resp := httpAdapter.ConfigResponse{
				Config:  decoded,
				Encoded: codec.Encode(decoded),
				Valid:   decodeErr == nil,
			}
			if decodeErr != nil {
				resp.Error = decodeErr.Error()
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		case "mermaid":
			_, err := fmt.Fprint(out, graph.GenerateMermaid(decoded, nil))
			return err
		case "table":
			rendered, err := tui.NewRenderer(out).Configuration(decoded)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		default:
			return fmt.Errorf("unknown format %q (want table, json or mermaid)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("url", "", "Page URL carrying the configuration in its query string")
	decodeCmd.Flags().StringP("format", "f", "table", "Output format: table, json or mermaid")
}
