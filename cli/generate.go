package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"readme_gen/apperr"
	"readme_gen/config"
	"readme_gen/output"
	"readme_gen/scanner"
)

func (a *app) generate(cmd *cobra.Command, opts *rootOptions, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	scanOpts := cfg.ScanOptions()
	if cmd.Flags().Changed("max-chars") {
		if opts.maxChars <= 0 {
			return apperr.Usage("--max-chars must be positive")
		}
		scanOpts.MaxChars = opts.maxChars
	}

	pc, err := scanner.Build(path, scanOpts)
	if err != nil {
		return err
	}
	profile := pc.Profile()
	log.Info().
		Str("path", pc.Root()).
		Int("files", pc.Len()).
		Int("chars", pc.TotalChars()).
		Msg("context built")

	if opts.dryRun {
		log.Info().
			Str("name", profile.Name).
			Str("type", profile.Type).
			Strs("languages", profile.Languages).
			Strs("dependencies", profile.Dependencies).
			Msg("dry run, no request sent")
		_, err := fmt.Fprint(a.stdout, pc.Blob())
		if err != nil {
			return apperr.IOWrite("stdout", err)
		}
		return nil
	}

	gen, err := a.newGenerator(cfg.Settings())
	if err != nil {
		return err
	}
	log.Info().
		Str("provider", gen.ProviderName()).
		Str("model", gen.Model()).
		Msg("generating README")

	res, err := gen.Generate(cmd.Context(), pc)
	if err != nil {
		return err
	}

	dest := output.ResolvePath(pc.Root(), opts.output)
	written, err := output.Write(a.stdout, res.Text, dest, format)
	if err != nil {
		return err
	}

	ev := log.Info().
		Str("provider", res.Provider).
		Dur("elapsed", res.Elapsed)
	if res.Title != "" {
		ev = ev.Str("title", res.Title)
	}
	if written != "" {
		ev = ev.Str("path", written)
	}
	ev.Msg("README generated")
	return nil
}
