package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/cli/formatter"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/intelligence"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var jsonOnly bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Mostra a instrução de sistema e o esquema de resposta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := intelligence.TicketSchema()
			doc, err := schema.JSON()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOnly {
				fmt.Fprintln(out, doc)
				return nil
			}

			fmt.Fprintln(out, formatter.Header("Instrução de sistema"))
			fmt.Fprintln(out, formatter.Wrap(intelligence.SystemInstruction, 78))
			fmt.Fprintln(out)

			fmt.Fprintln(out, formatter.Header("Campos obrigatórios"))
			rows := make([][]string, 0, len(domain.RequiredFields))
			for _, name := range domain.RequiredFields {
				prop := schema.Properties[name]
				values := formatter.Dim("livre")
				if len(prop.Enum) > 0 {
					values = fmt.Sprintf("%d opções", len(prop.Enum))
				}
				required := "não"
				if slices.Contains(schema.Required, name) {
					required = "sim"
				}
				rows = append(rows, []string{name, required, values, prop.Description})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"CAMPO", "OBRIG.", "VALORES", "DESCRIÇÃO"}, rows))
			fmt.Fprintln(out)

			fmt.Fprintln(out, formatter.Header("Esquema JSON"))
			fmt.Fprintln(out, strings.TrimRight(doc, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOnly, "json", false, "print only the JSON schema")
	return cmd
}
