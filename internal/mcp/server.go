package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tst/internal/models"
	"tst/internal/tracker"
)

// Server wraps the tracker and exposes its operations as MCP tools, so an
// agent can log and query sprint time through the same core the CLI uses.
type Server struct {
	tracker *tracker.Tracker
}

// NewServer creates the MCP server wrapper around a loaded tracker.
func NewServer(t *tracker.Tracker) *Server {
	return &Server{tracker: t}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("tst", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.statusTool())
	srv.AddTool(s.createSprintTool())
	srv.AddTool(s.listSprintsTool())
	srv.AddTool(s.useSprintTool())
	srv.AddTool(s.addEntryTool())
	srv.AddTool(s.listEntriesTool())
	srv.AddTool(s.deleteEntryTool())
	srv.AddTool(s.summaryTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// tst_status
func (s *Server) statusTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_status",
		mcp.WithDescription("Get the current sprint's summary: name, entry count, total hours, active working days, average hours per active day, working days remaining, and progress percentage toward the 80-hour goal."),
	)
	return tool, s.handleStatus
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := s.tracker.CurrentSprintSummary()

	result := map[string]any{
		"summary":       summary,
		"today":         s.tracker.Today(),
		"sprint_over":   s.tracker.IsCurrentSprintOver(),
		"hours_goal":    tracker.HoursPerSprint,
		"hours_per_day": tracker.HoursPerDay,
	}
	if sp := s.tracker.CurrentSprint(); sp != nil {
		result["sprint"] = sp
	}

	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_create_sprint
func (s *Server) createSprintTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_create_sprint",
		mcp.WithDescription("Create a new sprint and select it as the current one. When end_date is omitted it is computed as exactly 10 working days from start_date inclusive, which then must fall on a Monday-Friday."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Sprint name")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date, YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD; omit to auto-calculate")),
	)
	return tool, s.handleCreateSprint
}

func (s *Server) handleCreateSprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	startDate, err := request.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: start_date"), nil
	}
	endDate := request.GetString("end_date", "")

	sp, err := s.tracker.CreateSprint(name, startDate, endDate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create sprint: %v", err)), nil
	}

	data, err := json.Marshal(sp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal sprint: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_list_sprints
func (s *Server) listSprintsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_list_sprints",
		mcp.WithDescription("List all sprints. Returns a JSON array with id, name, startDate, endDate, plus a current flag."),
	)
	return tool, s.handleListSprints
}

func (s *Server) handleListSprints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current := s.tracker.CurrentSprint()

	type sprintOut struct {
		models.Sprint
		Current bool `json:"current"`
	}

	sprints := s.tracker.Sprints()
	out := make([]sprintOut, len(sprints))
	for i, sp := range sprints {
		out[i] = sprintOut{
			Sprint:  sp,
			Current: current != nil && current.ID == sp.ID,
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal sprints: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_use_sprint
func (s *Server) useSprintTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_use_sprint",
		mcp.WithDescription("Select a sprint by id as the current context for new entries and progress."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Sprint id")),
	)
	return tool, s.handleUseSprint
}

func (s *Server) handleUseSprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	ok, err := s.tracker.SetCurrentSprint(int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to select sprint: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("sprint not found: %d", id)), nil
	}

	data, err := json.Marshal(s.tracker.CurrentSprint())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal sprint: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_add_entry
func (s *Server) addEntryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_add_entry",
		mcp.WithDescription("Log hours against the current sprint. The date must be a working day (Mon-Fri) inside the sprint's period. Set allow_past to acknowledge logging into a sprint whose end date has passed."),
		mcp.WithString("jira_id", mcp.Required(), mcp.Description("Task identifier, e.g. PROJ-123")),
		mcp.WithNumber("time_spent", mcp.Required(), mcp.Description("Hours spent, positive, typically in 0.25 steps")),
		mcp.WithString("work_done", mcp.Required(), mcp.Description("Description of the work done")),
		mcp.WithString("date", mcp.Description("Entry date, YYYY-MM-DD; defaults to today")),
		mcp.WithBoolean("allow_past", mcp.Description("Acknowledge that the sprint is over")),
	)
	return tool, s.handleAddEntry
}

func (s *Server) handleAddEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jiraID, err := request.RequireString("jira_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: jira_id"), nil
	}
	timeSpent, err := request.RequireFloat("time_spent")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: time_spent"), nil
	}
	workDone, err := request.RequireString("work_done")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: work_done"), nil
	}
	date := request.GetString("date", s.tracker.Today())
	allowPast := request.GetBool("allow_past", false)

	// Logging into a finished sprint needs an explicit acknowledgement.
	if s.tracker.IsCurrentSprintOver() && !allowPast {
		return mcp.NewToolResultError("the current sprint is over; set allow_past to log into it"), nil
	}

	entry, err := s.tracker.AddEntry(date, jiraID, timeSpent, workDone, allowPast)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add entry: %v", err)), nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal entry: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_list_entries
func (s *Server) listEntriesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_list_entries",
		mcp.WithDescription("List time entries, optionally filtered by exact date or sprint id. Without filters, lists the current sprint's entries."),
		mcp.WithString("date", mcp.Description("Filter by entry date, YYYY-MM-DD")),
		mcp.WithNumber("sprint_id", mcp.Description("Filter by owning sprint id")),
	)
	return tool, s.handleListEntries
}

func (s *Server) handleListEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := request.GetString("date", "")
	sprintID := request.GetInt("sprint_id", 0)

	var entries []models.Entry
	switch {
	case date != "":
		entries = s.tracker.EntriesForDate(date)
	case sprintID != 0:
		entries = s.tracker.EntriesForSprint(int64(sprintID))
	default:
		current := s.tracker.CurrentSprint()
		if current == nil {
			return mcp.NewToolResultError("no sprint is selected; pass date or sprint_id"), nil
		}
		entries = s.tracker.EntriesForSprint(current.ID)
	}

	if entries == nil {
		entries = []models.Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal entries: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_delete_entry
func (s *Server) deleteEntryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_delete_entry",
		mcp.WithDescription("Delete a time entry by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Entry id")),
	)
	return tool, s.handleDeleteEntry
}

func (s *Server) handleDeleteEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	removed, err := s.tracker.DeleteEntry(int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete entry: %v", err)), nil
	}

	data, err := json.Marshal(map[string]any{"removed": removed})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tst_summary
func (s *Server) summaryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tst_summary",
		mcp.WithDescription("Get totals across all entries regardless of sprint: entry count, total hours, active working days, average hours per active day, and sprint count."),
	)
	return tool, s.handleSummary
}

func (s *Server) handleSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(s.tracker.OverallSummary())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
