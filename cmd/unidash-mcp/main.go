package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// dashboardResponse mirrors the unidash API response model.
type dashboardResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Mission         string            `json:"mission"`
		MissionMarkdown string            `json:"mission_markdown"`
		CoreValues      []string          `json:"core_values"`
		Stats           map[string]string `json:"stats"`
		Colleges        map[string]int    `json:"colleges"`
		UsedFallback    bool              `json:"used_fallback"`
		Source          string            `json:"source"`
		FetchedAt       time.Time         `json:"fetched_at"`
	} `json:"data"`
	CacheStatus string `json:"cache_status"`
	Error       *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("UNIDASH_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("UNIDASH_API_KEY")

	s := server.NewMCPServer(
		"unidash",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	getDashboardTool := mcp.NewTool("get_dashboard",
		mcp.WithDescription("Get the university institutional dashboard dataset: mission statement, core values, headline statistics and colleges with program counts. Served from cache when fresh."),
	)
	s.AddTool(getDashboardTool, handleGetDashboard(apiURL, apiKey))

	refreshDashboardTool := mcp.NewTool("refresh_dashboard",
		mcp.WithDescription("Invalidate the dashboard cache and re-scrape the university site synchronously. Returns the fresh dataset."),
	)
	s.AddTool(refreshDashboardTool, handleRefreshDashboard(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleGetDashboard(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return callDashboardAPI(ctx, client, http.MethodGet, apiURL+"/api/v1/dashboard", apiKey)
	}
}

func handleRefreshDashboard(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return callDashboardAPI(ctx, client, http.MethodPost, apiURL+"/api/v1/refresh", apiKey)
	}
}

// callDashboardAPI performs the HTTP call and renders the dataset as text.
func callDashboardAPI(ctx context.Context, client *http.Client, method, url, apiKey string) (*mcp.CallToolResult, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
	}

	var dr dashboardResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
	}

	if !dr.Success || dr.Data == nil {
		errMsg := "dashboard request failed"
		if dr.Error != nil {
			errMsg = fmt.Sprintf("[%s] %s", dr.Error.Code, dr.Error.Message)
		}
		return mcp.NewToolResultError(errMsg), nil
	}

	return mcp.NewToolResultText(formatDashboard(&dr)), nil
}

// formatDashboard renders the dataset in a stable, readable layout. Map keys
// are sorted so repeated calls produce identical output.
func formatDashboard(dr *dashboardResponse) string {
	d := dr.Data
	var b strings.Builder

	fmt.Fprintf(&b, "Source: %s (cache: %s, fetched %s)\n", d.Source, dr.CacheStatus, d.FetchedAt.Format(time.RFC3339))
	if d.UsedFallback {
		b.WriteString("Note: one or more fields were filled from the curated fallback dataset.\n")
	}

	b.WriteString("\nMission:\n" + d.Mission + "\n")

	b.WriteString("\nCore Values:\n")
	for _, v := range d.CoreValues {
		b.WriteString("- " + v + "\n")
	}

	b.WriteString("\nStatistics:\n")
	for _, k := range sortedKeys(d.Stats) {
		fmt.Fprintf(&b, "- %s: %s\n", k, d.Stats[k])
	}

	b.WriteString("\nColleges (programs):\n")
	names := make([]string, 0, len(d.Colleges))
	for name := range d.Colleges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %d\n", name, d.Colleges[name])
	}

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
