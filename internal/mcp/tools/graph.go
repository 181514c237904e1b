package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	pkgneo4j "github.com/honeycarbs/careerhub/pkg/neo4j"
)

const graphRowLimit = 50

// GraphInspectParams defines the arguments for the graph_inspect tool
type GraphInspectParams struct {
	Cypher string         `json:"cypher,omitempty" jsonschema:"Read-only Cypher query to run"`
	Params map[string]any `json:"params,omitempty" jsonschema:"Parameters for the cypher query"`
	JobID  string         `json:"job_id,omitempty" jsonschema:"Show one job with its company and tags"`
	Tag    string         `json:"tag,omitempty" jsonschema:"List jobs carrying this tag"`
}

type graphHandler struct {
	client *pkgneo4j.Client
}

// WithGraphInspect registers graph_inspect. It is skipped without a Neo4j client.
func WithGraphInspect(client *pkgneo4j.Client) Option {
	return func(reg *registry) {
		if client == nil {
			return
		}
		h := graphHandler{client: client}
		addTool(reg, &sdkmcp.Tool{
			Name:        "graph_inspect",
			Description: "Developer tool for inspecting the job graph stored in Neo4j",
		}, h.handle)
	}
}

func (h graphHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params GraphInspectParams) (*sdkmcp.CallToolResult, any, error) {
	query, args := graphQuery(params)

	out, err := h.run(ctx, query, args)
	if err != nil {
		return toolError("graph_inspect", err)
	}
	return textResult(out), nil, nil
}

// graphQuery picks the statement for params: an explicit cypher query wins,
// then job_id, then tag, else a label overview
func graphQuery(params GraphInspectParams) (string, map[string]any) {
	switch {
	case params.Cypher != "":
		return params.Cypher, params.Params
	case params.JobID != "":
		return `
			MATCH (j:Job {id: $jobId})
			OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
			OPTIONAL MATCH (j)-[:TAGGED]->(t:Tag)
			RETURN j, c, collect(DISTINCT t.name) AS tags
		`, map[string]any{"jobId": params.JobID}
	case params.Tag != "":
		return `
			MATCH (j:Job)-[:TAGGED]->(:Tag {name: $tag})
			OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
			RETURN j.id AS id, j.title AS title, c.name AS company
			ORDER BY j.postedAt DESC
			LIMIT $limit
		`, map[string]any{"tag": strings.ToLower(strings.TrimSpace(params.Tag)), "limit": graphRowLimit}
	}
	return "MATCH (n) RETURN labels(n) AS labels, count(n) AS count ORDER BY count DESC LIMIT 20", nil
}

func (h graphHandler) run(ctx context.Context, query string, args map[string]any) (string, error) {
	session := h.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	var (
		records []*neo4j.Record
		keys    []string
	)
	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, args)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) && len(records) < graphRowLimit {
			rec := res.Record()
			if keys == nil {
				keys = rec.Keys
			}
			records = append(records, rec)
		}
		return nil, res.Err()
	})
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}

	return formatRecords(records, keys), nil
}

func formatRecords(records []*neo4j.Record, keys []string) string {
	if len(records) == 0 {
		return "no rows"
	}

	var sb strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&sb, "row %d:\n", i+1)
		for _, key := range keys {
			val, _ := rec.Get(key)
			fmt.Fprintf(&sb, "  %s: %s\n", key, formatValue(val))
		}
	}
	if len(records) == graphRowLimit {
		fmt.Fprintf(&sb, "(truncated at %d rows)\n", graphRowLimit)
	}
	return sb.String()
}

func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "null"
	case neo4j.Node:
		props, _ := json.Marshal(v.Props)
		return fmt.Sprintf("(%s %s)", strings.Join(v.Labels, ":"), props)
	case neo4j.Relationship:
		props, _ := json.Marshal(v.Props)
		return fmt.Sprintf("[%s %s]", v.Type, props)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", v)
	}

	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Sprintf("%v", val)
	}
	return string(data)
}
