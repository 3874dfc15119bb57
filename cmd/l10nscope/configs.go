package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

func newConfigsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "List stored localization job configurations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			module, err := moduleBuilder(ctx, root.bootstrap())
			if err != nil {
				return fmt.Errorf("bootstrap module: %w", err)
			}
			defer module.Close()

			configurations, err := module.Module.Configurations().List(ctx)
			if err != nil {
				return fmt.Errorf("list configurations: %w", err)
			}

			var buffer bytes.Buffer
			table := tablewriter.NewWriter(&buffer)
			table.SetHeader([]string{"Key", "Title", "Tables", "Updated"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(false)
			for _, configuration := range configurations {
				updated := "-"
				if !configuration.UpdatedAt.IsZero() {
					updated = humanize.Time(configuration.UpdatedAt)
				}
				table.Append([]string{
					configuration.Key,
					configuration.Title,
					strings.Join(domain.SplitList(configuration.TableList), ", "),
					updated,
				})
			}
			table.SetFooter([]string{"", "", fmt.Sprintf("%d configurations", len(configurations)), ""})
			table.Render()
			fmt.Fprint(cmd.OutOrStdout(), buffer.String())
			return nil
		},
	}
}

type restrictOptions struct {
	language int
	table    string
}

func newRestrictCmd(root *rootOptions) *cobra.Command {
	opts := &restrictOptions{}
	cmd := &cobra.Command{
		Use:   "restrict",
		Short: "Bar records carrying a language restriction from a target language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			module, err := moduleBuilder(ctx, root.bootstrap())
			if err != nil {
				return fmt.Errorf("bootstrap module: %w", err)
			}
			defer module.Close()

			rule, err := module.Module.Restrictions().Restrict(ctx, opts.language, opts.table, domain.FieldRestriction)
			if err != nil {
				return fmt.Errorf("restrict: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restricted %s for language %d\n", rule.TableName, rule.LanguageID)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.language, "lang", "l", 0, "target language id")
	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "table name")
	_ = cmd.MarkFlagRequired("lang")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}
