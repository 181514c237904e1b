package main

import (
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/careerhub/internal/domain"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Query a running server over MCP",
	Long:  "Calls the job_query tool of a careerhub server, optionally starting from a user's saved filters.",
	RunE:  runRemote,
}

var (
	remoteFlags    filterFlags
	remoteEndpoint string
	remoteUserID   string
)

func init() {
	remoteFlags.register(remoteCmd)
	remoteCmd.Flags().StringVar(&remoteEndpoint, "endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	remoteCmd.Flags().StringVarP(&remoteUserID, "user", "u", "", "Apply flags over this user's saved filters")

	rootCmd.AddCommand(remoteCmd)
}

func runRemote(cmd *cobra.Command, _ []string) error {
	f, err := remoteFlags.filters()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "jobctl", Version: "0.2.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: remoteEndpoint}, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", remoteEndpoint, err)
	}
	defer func() { _ = session.Close() }()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "job_query",
		Arguments: remoteArguments(f, remoteUserID, remoteFlags.page, remoteFlags.pageSize, cmd.Flags().Changed),
	})
	if err != nil {
		return fmt.Errorf("job_query: %w", err)
	}
	if res.IsError {
		return fmt.Errorf("job_query: %s", contentText(res))
	}

	var out domain.QueryResult
	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode job_query result: %w", err)
	}
	return printResult(cmd.OutOrStdout(), out, remoteFlags.output)
}

// remoteArguments sends only the flags the user set, so a saved filter
// state on the server is not overwritten by flag defaults
func remoteArguments(f domain.SavedFilters, userID string, page, pageSize int, changed func(string) bool) map[string]any {
	filters := map[string]any{}
	set := func(flag, key string, v any) {
		if changed(flag) {
			filters[key] = v
		}
	}
	set("search", "searchTerm", f.SearchTerm)
	set("location", "location", f.Location)
	set("industry", "industry", f.Industry)
	set("date-posted", "datePosted", f.DatePosted)
	set("level", "experienceLevels", f.ExperienceLevels)
	set("type", "jobTypes", f.JobTypes)
	set("salary", "salaryRange", []int{f.SalaryRange.MinK, f.SalaryRange.MaxK})
	set("sort", "sortBy", f.SortBy)

	args := map[string]any{
		"filters":  filters,
		"page":     page,
		"pageSize": pageSize,
	}
	if userID != "" {
		args["userId"] = userID
	}
	return args
}

func contentText(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if t, ok := c.(*sdkmcp.TextContent); ok {
			return t.Text
		}
	}
	return "tool error"
}
