package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/fieldsort/fieldsort"
	"github.com/arthur-debert/fieldsort/fieldsort/comparator"
	"github.com/arthur-debert/fieldsort/fieldsort/dataset"
	"github.com/arthur-debert/fieldsort/fieldsort/report"
	"github.com/arthur-debert/fieldsort/types"
	"github.com/spf13/cobra"
)

// addSortCommand adds the sort command
func (cli *CLI) addSortCommand() {
	cmd := &cobra.Command{
		Use:   "sort FILE",
		Short: "Sort a record file and print the tie report",
		Long: `Sort the records of FILE by the --by attributes and print each record's
distinguishing values. The file is left alone unless --write or --output is
given.

Examples:
  fieldsort sort people.yaml --by -age,name
  fieldsort sort people.yaml --by name --output sorted.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runSort(cmd, args[0])
		},
	}

	addByFlag(cmd.Flags())
	cmd.Flags().BoolP("write", "w", false, "Rewrite FILE in sorted order")
	cmd.Flags().StringP("output", "o", "", "Write the sorted records to this file (format from its extension)")

	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) runSort(cmd *cobra.Command, path string) error {
	store := cli.store()
	ds, err := store.Load(path)
	if err != nil {
		return NewFileError("load "+path, err, CommonSuggestions.CheckPerms)
	}
	cli.logger.Debug("loaded records", "path", path, "format", ds.Format.Name, "records", len(ds.Rows))

	tokens := cli.precedenceTokens(cmd.Flags())
	acc := ds.Accessor()
	before := slices.Clone(ds.Rows)

	if _, err := fieldsort.SortAndReportTo(cli.out, ds.Rows, acc, tokens); err != nil {
		return NewSortError("sort "+ds.Name(), err, acc)
	}
	if err := dataset.SamePermutation(before, ds.Rows); err != nil {
		return &CLIError{Operation: "sort " + ds.Name(), Cause: "sort lost records", Details: err.Error(), Underlying: err}
	}
	cli.logger.Debug("sorted records",
		"path", path,
		"precedence", tokens,
		"moved", dataset.Moved(before, ds.Rows))

	write, _ := cmd.Flags().GetBool("write")
	output, _ := cmd.Flags().GetString("output")

	var targets []string
	if write {
		targets = append(targets, path)
	}
	if output != "" {
		targets = append(targets, output)
	}
	for _, target := range targets {
		if err := cli.save(cmd.Context(), store, target, ds.Rows); err != nil {
			return err
		}
	}
	return nil
}

func (cli *CLI) save(ctx context.Context, store *dataset.Store, path string, rows []*dataset.Row) error {
	if err := store.Save(ctx, path, rows); err != nil {
		return NewFileError("write "+path, err, CommonSuggestions.CheckPerms)
	}
	cli.logger.Info("wrote records", "path", path, "records", len(rows))
	return nil
}

// addCheckCommand adds the check command
func (cli *CLI) addCheckCommand() {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Verify a record file is already sorted",
		Long: `Exit with an error naming the first adjacent pair of records that is out
of order for the --by attributes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runCheck(cmd, args[0])
		},
	}

	addByFlag(cmd.Flags())
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) runCheck(cmd *cobra.Command, path string) error {
	ds, err := cli.store().Load(path)
	if err != nil {
		return NewFileError("load "+path, err, CommonSuggestions.CheckPerms)
	}

	acc := ds.Accessor()
	operation := "check " + ds.Name()
	c, err := comparator.Parse(acc, cli.precedenceTokens(cmd.Flags()))
	if err != nil {
		return NewSortError(operation, err, acc)
	}

	i, err := c.IsSorted(ds.Rows)
	if err != nil {
		return NewSortError(operation, err, acc)
	}
	if i < 0 {
		_, err := fmt.Fprintf(cli.out, "%s is sorted by %s (%d records)\n", ds.Name(), c.Precedence(), len(ds.Rows))
		return WrapError(operation, err)
	}

	cli.logger.Debug("records out of order", "path", path, "index", i)
	return &CLIError{
		Operation: operation,
		Cause:     fmt.Sprintf("records %d and %d are out of order by %s", i-1, i, c.Precedence()),
		Details:   describePair(acc, c.Precedence(), ds.Rows[i-1], ds.Rows[i]),
		Suggestions: []string{
			fmt.Sprintf("Run 'fieldsort sort %s --by %s --write' to fix the order",
				path, strings.Join(c.Precedence().Tokens(), ",")),
		},
	}
}

// describePair renders the two records' values for the precedence list
func describePair(acc *dataset.Accessor, precedence types.Precedence, a, b *dataset.Row) string {
	r, err := report.New(acc, precedence)
	if err != nil {
		return ""
	}
	lines, err := r.Lines([]*dataset.Row{a, b})
	if err != nil {
		return ""
	}
	return strings.Join(lines, " > ")
}

// addFieldsCommand adds the fields command
func (cli *CLI) addFieldsCommand() {
	cmd := &cobra.Command{
		Use:   "fields FILE",
		Short: "List the attributes of a record file",
		Long: `List every attribute name found in FILE with the kinds of value it holds
and how many records lack it or hold null.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runFields(args[0])
		},
	}

	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) runFields(path string) error {
	ds, err := cli.store().Load(path)
	if err != nil {
		return NewFileError("load "+path, err, CommonSuggestions.CheckPerms)
	}

	acc := ds.Accessor()
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKINDS\tMISSING\tNULL")
	for _, s := range acc.Describe(ds.Rows) {
		kinds := make([]string, len(s.Kinds))
		for i, k := range s.Kinds {
			kinds[i] = k.String()
		}
		kindList := strings.Join(kinds, ",")
		if kindList == "" {
			kindList = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.Name, kindList, s.Missing, s.Null)
	}
	return WrapError("list fields of "+path, tw.Flush())
}
