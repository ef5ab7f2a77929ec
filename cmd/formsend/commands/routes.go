package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsend/pkg/echo"
)

func routesCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the documented echo endpoints, or write the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := echo.Document(cmd.Context())
			if err != nil {
				return err
			}

			if output != "" {
				raw, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("encode openapi document: %w", err)
				}
				if err := os.WriteFile(output, raw, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OpenAPI document written to %s\n", output)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tOPERATION\tREQUEST")
			for _, r := range echo.Routes(doc) {
				media := strings.Join(r.MediaTypes, ", ")
				if media == "" {
					media = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Method, r.Path, r.OperationID, media)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "write the OpenAPI JSON document to this file")
	return cmd
}
