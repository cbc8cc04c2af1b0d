package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(sessions SessionSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftcalc", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftcalc fitness calculator. Compute circle geometry, macro/calorie conversions, BMI, BMR, TDEE, protein targets and weight trends. Log strength sets into a workout session and query volume and estimated one-rep max. Weights are in pounds, heights in inches."),
	)

	h := &handlers{sessions: sessions, log: log}

	// Calculators
	s.AddTools(
		server.ServerTool{Tool: toolCircle, Handler: h.circle},
		server.ServerTool{Tool: toolCaloriesFromMacros, Handler: h.caloriesFromMacros},
		server.ServerTool{Tool: toolMacrosFromCalories, Handler: h.macrosFromCalories},
		server.ServerTool{Tool: toolBMI, Handler: h.bmi},
		server.ServerTool{Tool: toolBMRMifflin, Handler: h.bmrMifflin},
		server.ServerTool{Tool: toolTDEE, Handler: h.tdee},
		server.ServerTool{Tool: toolProteinTarget, Handler: h.proteinTarget},
		server.ServerTool{Tool: toolWeeklyWeightChange, Handler: h.weeklyWeightChange},
	)

	// Workout sessions
	s.AddTools(
		server.ServerTool{Tool: toolStartSession, Handler: h.startSession},
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolAddSet, Handler: h.addSet},
		server.ServerTool{Tool: toolTotalVolume, Handler: h.totalVolume},
		server.ServerTool{Tool: toolBest1RM, Handler: h.best1RM},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolResetSession, Handler: h.resetSession},
		server.ServerTool{Tool: toolSessionSummary, Handler: h.sessionSummary},
	)

	s.AddResources(
		server.ServerResource{Resource: resReferenceTables, Handler: h.referenceTables},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	sessions SessionSource
	log      *slog.Logger
}

// --- Resource definitions ---

var resReferenceTables = mcp.NewResource(
	"liftcalc://reference_tables",
	"Reference Tables",
	mcp.WithResourceDescription("Activity multipliers, protein coefficients per goal, and calories per gram of each macronutrient"),
	mcp.WithMIMEType("application/json"),
)
