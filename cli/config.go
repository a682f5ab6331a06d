package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"readme_gen/apperr"
	"readme_gen/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect readme-gen configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show [path]",
		Short: "Show the merged configuration with credentials redacted",
		Args:  maxOnePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return apperr.New(apperr.KindInternal, "marshal config", err)
			}
			if _, err := fmt.Fprintf(a.stdout, "# Merged configuration (defaults, files, environment)\n%s", data); err != nil {
				return apperr.IOWrite("stdout", err)
			}
			return nil
		},
	})
	return cmd
}

func maxOnePath(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return apperr.Usage("expected at most one path argument")
	}
	return nil
}
