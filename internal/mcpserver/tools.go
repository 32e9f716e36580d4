package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the CalmMind MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolListRiskEvents = mcp.NewTool("list_risk_events",
	mcp.WithDescription(
		"List recent risk assessment events from the CalmMind audit log. "+
			"Each event carries the user, source (chat or journal), risk level, "+
			"score, sentiment, and matched crisis keywords. Newest first."),
	mcp.WithString("minimum_level",
		mcp.Description("Only return events at or above this severity"),
		mcp.Enum("low", "moderate", "high")),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of events to return (default 50)")),
)

var ToolHighRiskAlerts = mcp.NewTool("high_risk_alerts",
	mcp.WithDescription(
		"List journal entries whose stored risk score is at or above a threshold. "+
			"Use this to find clients who may need follow-up."),
	mcp.WithNumber("threshold",
		mcp.Description("Risk score threshold between 0 and 1 (default 0.6)")),
)

var ToolRecommendResources = mcp.NewTool("recommend_resources",
	mcp.WithDescription(
		"Get coping resource suggestions matched to a message's content. "+
			"Categories cover anxiety, depression, stress, and sleep; acute "+
			"distress adds a crisis escalation suggestion."),
	mcp.WithString("user_id",
		mcp.Required(),
		mcp.Description("The client identifier the suggestions are for")),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The message text to match suggestions against")),
)

var ToolLogMood = mcp.NewTool("log_mood",
	mcp.WithDescription(
		"Record a mood snapshot for a client. Mood is a free-form label "+
			"(e.g. 'anxious', 'hopeful'); intensity is 1-10."),
	mcp.WithString("user_id",
		mcp.Required(),
		mcp.Description("The client identifier")),
	mcp.WithString("mood",
		mcp.Required(),
		mcp.Description("Mood label, e.g. 'anxious'")),
	mcp.WithNumber("intensity",
		mcp.Required(),
		mcp.Description("Intensity on a 1-10 scale")),
	mcp.WithString("notes",
		mcp.Description("Optional free-form notes")),
)

var ToolMoodHistory = mcp.NewTool("mood_history",
	mcp.WithDescription(
		"Retrieve a client's recorded moods, newest first. "+
			"Useful for spotting trends before a session."),
	mcp.WithString("user_id",
		mcp.Required(),
		mcp.Description("The client identifier")),
)
