package server

import (
	"net/http"

	"github.com/claude/liftcalc/internal/body"
	"github.com/claude/liftcalc/internal/geometry"
	"github.com/claude/liftcalc/internal/nutrition"
)

type circleResponse struct {
	Radius        float64 `json:"radius"`
	Area          float64 `json:"area"`
	Circumference float64 `json:"circumference"`
	Resized       *bool   `json:"resized,omitempty"`
}

// handleCircle builds a circle from ?radius= and, when ?set= is given, tries
// to resize it through the validated setter before reporting.
func (s *Server) handleCircle(w http.ResponseWriter, r *http.Request) {
	radius, err := queryFloat(r, "radius")
	if err != nil {
		s.writeError(w, err)
		return
	}
	c := geometry.NewCircle(radius)

	resp := circleResponse{}
	if r.URL.Query().Get("set") != "" {
		next, err := queryFloat(r, "set")
		if err != nil {
			s.writeError(w, err)
			return
		}
		ok := c.SetRadius(next)
		resp.Resized = &ok
	}

	resp.Radius = c.Radius()
	resp.Area = c.Area()
	resp.Circumference = c.Circumference()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalories(w http.ResponseWriter, r *http.Request) {
	v, err := queryFloats(r, "protein", "carbs", "fat")
	if err != nil {
		s.writeError(w, err)
		return
	}
	alcohol, err := optionalFloat(r, "alcohol", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m := nutrition.Macros{ProteinG: v[0], CarbsG: v[1], FatG: v[2], AlcoholG: alcohol}
	kcal, err := nutrition.CaloriesFromMacros(m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"macros": m, "calories": kcal})
}

func (s *Server) handleMacros(w http.ResponseWriter, r *http.Request) {
	v, err := queryFloats(r, "calories", "protein", "carbs", "fat")
	if err != nil {
		s.writeError(w, err)
		return
	}
	alcohol, err := optionalFloat(r, "alcohol", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}

	split := nutrition.Split{Protein: v[1], Carbs: v[2], Fat: v[3], Alcohol: alcohol}
	m, err := nutrition.MacrosFromCalories(v[0], split)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	v, err := queryFloats(r, "weight_lb", "height_in")
	if err != nil {
		s.writeError(w, err)
		return
	}
	bmi, err := body.BMI(v[0], v[1])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"bmi": bmi})
}

func (s *Server) handleBMR(w http.ResponseWriter, r *http.Request) {
	v, err := queryFloats(r, "weight_lb", "height_in", "age")
	if err != nil {
		s.writeError(w, err)
		return
	}
	sex, err := body.ParseSex(r.URL.Query().Get("sex"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	bmr, err := body.BMRMifflin(sex, v[0], v[1], v[2])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sex": sex.String(), "bmr": bmr})
}

func (s *Server) handleTDEE(w http.ResponseWriter, r *http.Request) {
	bmr, err := queryFloat(r, "bmr")
	if err != nil {
		s.writeError(w, err)
		return
	}
	level, err := body.ParseActivityLevel(r.URL.Query().Get("activity"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	tdee, err := body.TDEE(bmr, level)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": level.String(), "tdee": tdee})
}

func (s *Server) handleProtein(w http.ResponseWriter, r *http.Request) {
	weight, err := queryFloat(r, "weight_lb")
	if err != nil {
		s.writeError(w, err)
		return
	}
	goalName := r.URL.Query().Get("goal")
	if goalName == "" {
		goalName = body.GoalMaintain.String()
	}
	goal, err := body.ParseGoal(goalName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	grams, err := body.ProteinTarget(weight, goal)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": goal.String(), "protein_g": grams})
}

func (s *Server) handleWeightChange(w http.ResponseWriter, r *http.Request) {
	v, err := queryFloats(r, "start_lb", "end_lb", "days")
	if err != nil {
		s.writeError(w, err)
		return
	}
	rate, err := body.WeeklyWeightChange(v[0], v[1], v[2])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"lb_per_week": rate})
}
