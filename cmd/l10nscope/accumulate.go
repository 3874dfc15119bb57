package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-l10nmgr"
	"github.com/goliatone/go-l10nmgr/cmd/l10nscope/internal/bootstrap"
)

type accumulateOptions struct {
	configuration    string
	root             int64
	languages        string
	preview          int
	previewLanguages string
	actor            string
	format           string
	parallel         int
}

func newAccumulateCmd(root *rootOptions) *cobra.Command {
	opts := &accumulateOptions{}
	cmd := &cobra.Command{
		Use:   "accumulate",
		Short: "Accumulate translation details for one or more target languages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAccumulate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configuration, "config", "k", "", "configuration key")
	cmd.Flags().Int64VarP(&opts.root, "root", "r", 0, "root page id")
	cmd.Flags().StringVarP(&opts.languages, "lang", "l", "", "comma separated target language ids")
	cmd.Flags().IntVar(&opts.preview, "preview", -1, "forced preview language id")
	cmd.Flags().StringVar(&opts.previewLanguages, "preview-languages", "", "comma separated preview languages of the actor")
	cmd.Flags().StringVar(&opts.actor, "actor", "", "actor UUID recorded on activity events")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table or json)")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", 2, "number of languages accumulated concurrently")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func runAccumulate(cmd *cobra.Command, root *rootOptions, opts *accumulateOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	languages, err := bootstrap.SplitLanguages(opts.languages)
	if err != nil {
		return err
	}
	if len(languages) == 0 {
		return fmt.Errorf("at least one target language is required")
	}
	previewLanguages, err := bootstrap.SplitLanguages(opts.previewLanguages)
	if err != nil {
		return err
	}
	actorID, err := bootstrap.ParseUUIDPointer(opts.actor)
	if err != nil {
		return fmt.Errorf("parse actor: %w", err)
	}

	ctx := cmd.Context()
	module, err := moduleBuilder(ctx, root.bootstrap())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	results := make([]*l10nmgr.Result, len(languages))
	group, groupCtx := errgroup.WithContext(ctx)
	if opts.parallel > 0 {
		group.SetLimit(opts.parallel)
	}
	for i, language := range languages {
		msg := l10nmgr.AccumulateCommand{
			ConfigurationKey: opts.configuration,
			TargetLanguage:   language,
			RootPageID:       opts.root,
			PreviewLanguages: previewLanguages,
			ActorID:          actorID,
		}
		if opts.preview >= 0 {
			preview := opts.preview
			msg.ForcedPreviewLanguage = &preview
		}
		group.Go(func() error {
			result, err := module.Module.Accumulate(groupCtx, msg)
			if err != nil {
				return fmt.Errorf("language %d: %w", language, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(out, results)
	}
	for _, result := range results {
		renderResult(out, result)
	}
	return nil
}

func writeJSON(out io.Writer, results []*l10nmgr.Result) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
