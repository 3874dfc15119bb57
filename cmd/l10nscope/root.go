package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-l10nmgr/cmd/l10nscope/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

type rootOptions struct {
	dsn       string
	dialect   string
	configDir string
	pattern   string
	logLevel  string
	logFormat string
}

func (o *rootOptions) bootstrap() bootstrap.Options {
	return bootstrap.Options{
		DSN:       o.dsn,
		Dialect:   o.dialect,
		ConfigDir: o.configDir,
		Pattern:   o.pattern,
		LogLevel:  o.logLevel,
		LogFormat: o.logFormat,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "l10nscope",
		Short: "Resolve localization job scope and accumulate translation details",
		Long: `l10nscope walks the page tree below a root page, applies a localization
job configuration and reports the records that would be exported for
translation, grouped per page.

Configurations are read from the database or loaded from Markdown documents
with YAML front matter (see --configs).`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dsn, "dsn", "", "database DSN; empty keeps every store in memory")
	flags.StringVar(&opts.dialect, "dialect", "sqlite", "database dialect (sqlite or postgres)")
	flags.StringVarP(&opts.configDir, "configs", "c", "", "directory of configuration documents to load")
	flags.StringVar(&opts.pattern, "pattern", "*.md", "glob applied when discovering configuration documents")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log format (console, json or pretty)")

	cmd.AddCommand(newAccumulateCmd(opts), newConfigsCmd(opts), newRestrictCmd(opts))
	return cmd
}
