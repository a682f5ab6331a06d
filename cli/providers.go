package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"readme_gen/apperr"
	"readme_gen/config"
	"readme_gen/generator"
)

func newProvidersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and whether their credentials are set",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return apperr.Usage("providers takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tDEFAULT MODEL\tTIMEOUT\tCREDENTIAL")
			for _, name := range generator.Names() {
				f, _ := generator.Lookup(name)
				cred := "not required"
				if f.CredentialEnv != "" {
					cred = f.CredentialEnv + " missing"
					if cfg.Credentials.For(name) != "" {
						cred = f.CredentialEnv + " set"
					}
				}
				marker := ""
				if name == cfg.Provider {
					marker = " *"
				}
				fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n", name, marker, f.DefaultModel, f.DefaultTimeout, cred)
			}
			if err := tw.Flush(); err != nil {
				return apperr.IOWrite("stdout", err)
			}
			return nil
		},
	}
}
