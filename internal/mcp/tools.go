package mcp

import (
	"context"
	"errors"
	"math"

	"github.com/claude/liftcalc/internal/body"
	"github.com/claude/liftcalc/internal/geometry"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/nutrition"
	"github.com/claude/liftcalc/internal/session"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolError reports err to the client. Input and lookup errors are passed
// through; anything else is logged as a backend failure.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, models.ErrInvalidArgument) || errors.Is(err, session.ErrSessionNotFound) {
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("query failed: " + err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

// requireFloats reads several required number arguments in order.
func requireFloats(req mcp.CallToolRequest, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := req.RequireFloat(name)
		if err != nil {
			return nil, models.InvalidArgument(name + " parameter is required")
		}
		out[i] = v
	}
	return out, nil
}

func requireSessionID(req mcp.CallToolRequest) (uuid.UUID, error) {
	s, err := req.RequireString("session_id")
	if err != nil {
		return uuid.Nil, models.InvalidArgument("session_id parameter is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, models.InvalidArgument("session_id is not a valid UUID")
	}
	return id, nil
}

// --- Tool definitions ---

var toolCircle = mcp.NewTool("circle",
	mcp.WithDescription("Area and circumference of a circle. A negative radius is accepted as given; pass new_radius to try the validated resize, which refuses negative values."),
	mcp.WithNumber("radius", mcp.Required(), mcp.Description("Initial radius")),
	mcp.WithNumber("new_radius", mcp.Description("Optional radius to set after construction")),
)

var toolCaloriesFromMacros = mcp.NewTool("calories_from_macros",
	mcp.WithDescription("Total kilocalories from grams of protein, carbs, fat and alcohol (4/4/9/7 kcal per gram)."),
	mcp.WithNumber("protein_g", mcp.Required(), mcp.Description("Protein grams")),
	mcp.WithNumber("carbs_g", mcp.Required(), mcp.Description("Carbohydrate grams")),
	mcp.WithNumber("fat_g", mcp.Required(), mcp.Description("Fat grams")),
	mcp.WithNumber("alcohol_g", mcp.Description("Alcohol grams. Defaults to 0.")),
)

var toolMacrosFromCalories = mcp.NewTool("macros_from_calories",
	mcp.WithDescription("Split a calorie budget into macro grams. Fractions must be non-negative and sum to 1."),
	mcp.WithNumber("calories", mcp.Required(), mcp.Description("Total kilocalories")),
	mcp.WithNumber("protein_fraction", mcp.Required(), mcp.Description("Share of calories from protein (0-1)")),
	mcp.WithNumber("carbs_fraction", mcp.Required(), mcp.Description("Share of calories from carbohydrate (0-1)")),
	mcp.WithNumber("fat_fraction", mcp.Required(), mcp.Description("Share of calories from fat (0-1)")),
	mcp.WithNumber("alcohol_fraction", mcp.Description("Share of calories from alcohol (0-1). Defaults to 0.")),
)

var toolBMI = mcp.NewTool("bmi",
	mcp.WithDescription("Body mass index from weight in pounds and height in inches."),
	mcp.WithNumber("weight_lb", mcp.Required(), mcp.Description("Body weight in pounds")),
	mcp.WithNumber("height_in", mcp.Required(), mcp.Description("Height in inches")),
)

var toolBMRMifflin = mcp.NewTool("bmr_mifflin",
	mcp.WithDescription("Basal metabolic rate (kcal/day) by the Mifflin-St Jeor equation."),
	mcp.WithString("sex", mcp.Required(), mcp.Description("male or female"), mcp.Enum("male", "female")),
	mcp.WithNumber("weight_lb", mcp.Required(), mcp.Description("Body weight in pounds")),
	mcp.WithNumber("height_in", mcp.Required(), mcp.Description("Height in inches")),
	mcp.WithNumber("age_years", mcp.Required(), mcp.Description("Age in years")),
)

var toolTDEE = mcp.NewTool("tdee",
	mcp.WithDescription("Total daily energy expenditure: BMR scaled by an activity multiplier."),
	mcp.WithNumber("bmr", mcp.Required(), mcp.Description("Basal metabolic rate in kcal/day")),
	mcp.WithString("activity", mcp.Required(), mcp.Description("Activity level"), mcp.Enum("sedentary", "light", "moderate", "active", "very_active")),
)

var toolProteinTarget = mcp.NewTool("protein_target",
	mcp.WithDescription("Daily protein target in grams for a body weight and goal."),
	mcp.WithNumber("weight_lb", mcp.Required(), mcp.Description("Body weight in pounds")),
	mcp.WithString("goal", mcp.Description("Training goal. Defaults to maintain."), mcp.Enum("cut", "maintain", "bulk")),
)

var toolWeeklyWeightChange = mcp.NewTool("weekly_weight_change",
	mcp.WithDescription("Signed rate of body-weight change in pounds per week between two weigh-ins. Negative means loss."),
	mcp.WithNumber("start_lb", mcp.Required(), mcp.Description("First weigh-in in pounds")),
	mcp.WithNumber("end_lb", mcp.Required(), mcp.Description("Last weigh-in in pounds")),
	mcp.WithNumber("days", mcp.Required(), mcp.Description("Days between weigh-ins")),
)

var toolStartSession = mcp.NewTool("start_session",
	mcp.WithDescription("Start a new, empty workout session. Returns its id for the other session tools."),
	mcp.WithString("name", mcp.Description("Optional label, e.g. 'push day'")),
)

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List workout sessions, oldest first."),
)

var toolAddSet = mcp.NewTool("add_set",
	mcp.WithDescription("Log one set of an exercise in a session."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_session")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name, e.g. 'Squat'")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions, a positive whole number")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Load in pounds, zero or more")),
)

var toolTotalVolume = mcp.NewTool("total_volume",
	mcp.WithDescription("Sum of reps × weight across the session, or for one exercise when given. Unknown exercises report 0."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
	mcp.WithString("exercise", mcp.Description("Restrict to this exercise")),
)

var toolBest1RM = mcp.NewTool("best_1rm",
	mcp.WithDescription("Highest estimated one-rep max (Epley) among an exercise's sets. 0 when none were logged."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("Exercises logged in a session, in the order first logged."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
)

var toolResetSession = mcp.NewTool("reset_session",
	mcp.WithDescription("Remove every logged set from a session."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
)

var toolSessionSummary = mcp.NewTool("session_summary",
	mcp.WithDescription("Per-exercise sets, reps, volume and best estimated 1RM for a session."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
)

// --- Calculator handlers ---

func (h *handlers) circle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	radius, err := req.RequireFloat("radius")
	if err != nil {
		return mcp.NewToolResultError("radius parameter is required"), nil
	}

	c := geometry.NewCircle(radius)
	result := map[string]any{}
	if next, err := req.RequireFloat("new_radius"); err == nil {
		result["resized"] = c.SetRadius(next)
	}
	result["radius"] = c.Radius()
	result["area"] = c.Area()
	result["circumference"] = c.Circumference()
	return jsonResult(result), nil
}

func (h *handlers) caloriesFromMacros(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "protein_g", "carbs_g", "fat_g")
	if err != nil {
		return h.toolError("calories_from_macros", err), nil
	}

	kcal, err := nutrition.CaloriesFromMacros(nutrition.Macros{
		ProteinG: v[0],
		CarbsG:   v[1],
		FatG:     v[2],
		AlcoholG: req.GetFloat("alcohol_g", 0),
	})
	if err != nil {
		return h.toolError("calories_from_macros", err), nil
	}
	return jsonResult(map[string]float64{"calories": kcal}), nil
}

func (h *handlers) macrosFromCalories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "calories", "protein_fraction", "carbs_fraction", "fat_fraction")
	if err != nil {
		return h.toolError("macros_from_calories", err), nil
	}

	m, err := nutrition.MacrosFromCalories(v[0], nutrition.Split{
		Protein: v[1],
		Carbs:   v[2],
		Fat:     v[3],
		Alcohol: req.GetFloat("alcohol_fraction", 0),
	})
	if err != nil {
		return h.toolError("macros_from_calories", err), nil
	}
	return jsonResult(m), nil
}

func (h *handlers) bmi(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "weight_lb", "height_in")
	if err != nil {
		return h.toolError("bmi", err), nil
	}
	bmi, err := body.BMI(v[0], v[1])
	if err != nil {
		return h.toolError("bmi", err), nil
	}
	return jsonResult(map[string]float64{"bmi": bmi}), nil
}

func (h *handlers) bmrMifflin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sex, err := body.ParseSex(req.GetString("sex", ""))
	if err != nil {
		return h.toolError("bmr_mifflin", err), nil
	}
	v, err := requireFloats(req, "weight_lb", "height_in", "age_years")
	if err != nil {
		return h.toolError("bmr_mifflin", err), nil
	}
	bmr, err := body.BMRMifflin(sex, v[0], v[1], v[2])
	if err != nil {
		return h.toolError("bmr_mifflin", err), nil
	}
	return jsonResult(map[string]float64{"bmr": bmr}), nil
}

func (h *handlers) tdee(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bmr, err := req.RequireFloat("bmr")
	if err != nil {
		return mcp.NewToolResultError("bmr parameter is required"), nil
	}
	level, err := body.ParseActivityLevel(req.GetString("activity", ""))
	if err != nil {
		return h.toolError("tdee", err), nil
	}
	tdee, err := body.TDEE(bmr, level)
	if err != nil {
		return h.toolError("tdee", err), nil
	}
	return jsonResult(map[string]float64{"tdee": tdee}), nil
}

func (h *handlers) proteinTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight_lb")
	if err != nil {
		return mcp.NewToolResultError("weight_lb parameter is required"), nil
	}
	goal, err := body.ParseGoal(req.GetString("goal", body.GoalMaintain.String()))
	if err != nil {
		return h.toolError("protein_target", err), nil
	}
	grams, err := body.ProteinTarget(weight, goal)
	if err != nil {
		return h.toolError("protein_target", err), nil
	}
	return jsonResult(map[string]any{"goal": goal.String(), "protein_g": grams}), nil
}

func (h *handlers) weeklyWeightChange(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "start_lb", "end_lb", "days")
	if err != nil {
		return h.toolError("weekly_weight_change", err), nil
	}
	rate, err := body.WeeklyWeightChange(v[0], v[1], v[2])
	if err != nil {
		return h.toolError("weekly_weight_change", err), nil
	}
	return jsonResult(map[string]float64{"lb_per_week": rate}), nil
}

// --- Session handlers ---

func (h *handlers) startSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	row, err := h.sessions.CreateSession(ctx, req.GetString("name", ""))
	if err != nil {
		return h.toolError("start_session", err), nil
	}
	return jsonResult(row), nil
}

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.sessions.ListSessions(ctx)
	if err != nil {
		return h.toolError("list_sessions", err), nil
	}
	if rows == nil {
		rows = []models.SessionRow{}
	}
	return jsonResult(rows), nil
}

func (h *handlers) addSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return h.toolError("add_set", err), nil
	}
	exercise := req.GetString("exercise", "")
	v, err := requireFloats(req, "reps", "weight")
	if err != nil {
		return h.toolError("add_set", err), nil
	}
	if v[0] != math.Trunc(v[0]) {
		return mcp.NewToolResultError("reps must be a whole number"), nil
	}
	if math.Abs(v[0]) > math.MaxInt32 {
		return mcp.NewToolResultError("reps out of range"), nil
	}
	reps := int(v[0])

	if err := h.sessions.AddSet(ctx, id, exercise, reps, v[1]); err != nil {
		return h.toolError("add_set", err), nil
	}
	return jsonResult(map[string]any{"exercise": exercise, "reps": reps, "weight": v[1]}), nil
}

func (h *handlers) totalVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return h.toolError("total_volume", err), nil
	}
	exercise := req.GetString("exercise", "")
	vol, err := h.sessions.Volume(ctx, id, exercise)
	if err != nil {
		return h.toolError("total_volume", err), nil
	}

	result := map[string]any{"volume": vol}
	if exercise != "" {
		result["exercise"] = exercise
	}
	return jsonResult(result), nil
}

func (h *handlers) best1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return h.toolError("best_1rm", err), nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	best, err := h.sessions.Best1RM(ctx, id, exercise)
	if err != nil {
		return h.toolError("best_1rm", err), nil
	}
	return jsonResult(map[string]any{"exercise": exercise, "best_1rm": best}), nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return h.toolError("list_exercises", err), nil
	}
	names, err := h.sessions.Exercises(ctx, id)
	if err != nil {
		return h.toolError("list_exercises", err), nil
	}
	if names == nil {
		names = []string{}
	}
	return jsonResult(names), nil
}

func (h *handlers) resetSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return h.toolError("reset_session", err), nil
	}
	if err := h.sessions.Reset(ctx, id); err != nil {
		return h.toolError("reset_session", err), nil
	}
	return mcp.NewToolResultText("session " + id.String() + " reset"), nil
}

func (h *handlers) sessionSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return h.toolError("session_summary", err), nil
	}
	summary, err := h.sessions.Summary(ctx, id)
	if err != nil {
		return h.toolError("session_summary", err), nil
	}
	return jsonResult(summary), nil
}
