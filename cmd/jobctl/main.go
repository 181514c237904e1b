// Package main implements jobctl, a command line client for the job listings.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/careerhub/internal/domain"
)

var rootCmd = &cobra.Command{
	Use:           "jobctl",
	Short:         "Query job listings",
	Long:          "jobctl filters, sorts and paginates job listings, either over a local dataset or through a running careerhub server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// filterFlags are shared by query and remote
type filterFlags struct {
	search      string
	location    string
	industry    string
	datePosted  string
	levels      []string
	jobTypes    []string
	salaryRange []int
	sortBy      string
	page        int
	pageSize    int
	output      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Text matched against title, company and description")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "Location substring")
	cmd.Flags().StringVar(&f.industry, "industry", "", "Exact industry")
	cmd.Flags().StringVar(&f.datePosted, "date-posted", domain.DatePostedAny, "Recency bucket: any, 24h, 7d, 14d, 30d")
	cmd.Flags().StringSliceVar(&f.levels, "level", nil, "Experience levels matched against tags")
	cmd.Flags().StringSliceVar(&f.jobTypes, "type", nil, "Employment types")
	cmd.Flags().IntSliceVar(&f.salaryRange, "salary", nil, "Salary range in thousands, e.g. 80,150")
	cmd.Flags().StringVar(&f.sortBy, "sort", domain.SortRelevant, "Sort mode: relevant or newest")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", domain.DefaultPageSize, "Results per page")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "Output format: table or json")
}

// filters builds the validated filter state from the flags
func (f *filterFlags) filters() (domain.SavedFilters, error) {
	sf := domain.DefaultSavedFilters()
	sf.SearchTerm = f.search
	sf.Location = f.location
	sf.Industry = f.industry
	sf.DatePosted = f.datePosted
	sf.SortBy = f.sortBy
	if f.levels != nil {
		sf.ExperienceLevels = f.levels
	}
	if f.jobTypes != nil {
		sf.JobTypes = f.jobTypes
	}
	if f.salaryRange != nil {
		if len(f.salaryRange) != 2 {
			return sf, fmt.Errorf("--salary wants min,max")
		}
		sf.SalaryRange = domain.SalaryRange{MinK: f.salaryRange[0], MaxK: f.salaryRange[1]}
	}
	if err := sf.Validate(); err != nil {
		return sf, err
	}
	if f.output != "table" && f.output != "json" {
		return sf, fmt.Errorf("unknown output format %q", strings.TrimSpace(f.output))
	}
	return sf, nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
