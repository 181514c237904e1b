package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/job/providers/fixture"
	"github.com/honeycarbs/careerhub/internal/domain/jobquery"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a local job dataset",
	Long:  "Runs the query engine over a YAML or JSON dataset file, or the builtin sample when --dataset is omitted.",
	RunE:  runQuery,
}

var (
	queryFlags   filterFlags
	queryDataset string
)

func init() {
	queryFlags.register(queryCmd)
	queryCmd.Flags().StringVarP(&queryDataset, "dataset", "d", fixture.Builtin, "Path to a dataset file")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	f, err := queryFlags.filters()
	if err != nil {
		return err
	}

	dataset, err := fixture.Load(queryDataset)
	if err != nil {
		return err
	}

	res := jobquery.Query(dataset.Postings(), f.Spec(max(queryFlags.page, 1), queryFlags.pageSize))
	return printResult(cmd.OutOrStdout(), res, queryFlags.output)
}

func printResult(w io.Writer, res domain.QueryResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tPOSTED\t")
	for _, j := range res.Results {
		title := j.Title
		if j.Featured {
			title += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", j.ID, title, j.Company, j.Location, j.Salary, j.PostedAt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d match(es), page %d of %d\n", res.Total, res.Page, res.TotalPages)
	return err
}
