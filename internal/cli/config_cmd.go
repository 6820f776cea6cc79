package cli

import (
	"fmt"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/cli/formatter"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Gerencia o arquivo de configuração",
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigShowCmd(app),
		newConfigPathCmd(app),
	)

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Cria um arquivo de configuração com os valores padrão",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("criado"), path)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("defina llm.api_key ou a variável GEMINI_API_KEY antes de analisar"))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "destination file (default $MAC_CONFIG or ~/.mac/config.toml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Mostra a configuração efetiva com segredos mascarados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.EncodeTOML(app.Config.Redacted())
			if err != nil {
				return err
			}
			source := app.Config.FilePath
			if source == "" {
				source = "apenas variáveis de ambiente"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("# origem: "+source))
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Mostra o caminho do arquivo de configuração",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config.FilePath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão e o provedor configurado",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version := app.Version
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mac %s\n", version)
			if app.Provider != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "provider: %s\n", app.Provider)
			}
		},
	}
}
