// Package alpha imports Alpha Progression CSV exports into workout sessions.
package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// lbPerKg converts the export's kilograms to the pounds the tracker uses.
const lbPerKg = 1 / 0.45359237

var (
	// sessionHeaderRe matches: "Session Name";"2026-02-19 4:54 h";"1:02 hr"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// exerciseHeaderRe matches: "1. Exercise Name · Equipment · 8 reps[· modifiers]"[;"warmup info"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// setDataRe matches: 1;115;8;1
	setDataRe = regexp.MustCompile(`^(\d+);(.+);(\d+);(.+)$`)

	// warmupRe matches: WU1 · 37,5 kg · 9 reps
	warmupRe = regexp.MustCompile(`WU(\d+)\s+·\s+(.+?)\s+kg\s+·\s+(\d+)\s+reps`)

	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS;RIR$`)
)

// Session is one workout from the export.
type Session struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []Exercise
}

// Exercise groups the sets logged for one movement, warmups first.
type Exercise struct {
	Name      string
	Equipment string
	Sets      []Set
}

// Set is one logged set. Bodyweight-plus sets carry only the added load.
type Set struct {
	Reps       int
	WeightLb   float64
	Warmup     bool
	Bodyweight bool
}

// Parse reads an Alpha Progression CSV export. Blank lines separate
// sessions; lines it does not recognize (notes) are skipped.
func Parse(r io.Reader) ([]Session, error) {
	scanner := bufio.NewScanner(r)
	var sessions []Session
	var current *Session
	var exercise *Exercise

	flushExercise := func() {
		if current != nil && exercise != nil {
			current.Exercises = append(current.Exercises, *exercise)
		}
		exercise = nil
	}
	flushSession := func() {
		flushExercise()
		if current != nil {
			sessions = append(sessions, *current)
		}
		current = nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			flushSession()

		case columnHeaderRe.MatchString(line):
			// column header, no data

		case sessionHeaderRe.MatchString(line):
			m := sessionHeaderRe.FindStringSubmatch(line)
			flushSession()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = &Session{Name: m[1], Date: date, Duration: m[3]}

		case exerciseHeaderRe.MatchString(line):
			m := exerciseHeaderRe.FindStringSubmatch(line)
			if current == nil {
				return nil, fmt.Errorf("line %d: exercise without session: %q", lineNo, line)
			}
			flushExercise()
			exercise = &Exercise{
				Name:      strings.TrimSpace(m[2]),
				Equipment: strings.TrimSpace(m[3]),
			}
			if m[6] != "" {
				warmups, err := parseWarmups(m[6])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				exercise.Sets = append(exercise.Sets, warmups...)
			}

		case setDataRe.MatchString(line):
			m := setDataRe.FindStringSubmatch(line)
			if exercise == nil {
				return nil, fmt.Errorf("line %d: set data without exercise: %q", lineNo, line)
			}
			set, err := parseSet(m[2], m[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			exercise.Sets = append(exercise.Sets, set)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	flushSession()
	return sessions, nil
}

// parseSessionDate parses "2026-02-19 4:54" or "2026-02-19 16:54".
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse session date %q", s)
}

func parseSet(weight, reps string) (Set, error) {
	kg, bw, err := parseWeight(weight)
	if err != nil {
		return Set{}, err
	}
	n, err := strconv.Atoi(reps)
	if err != nil {
		return Set{}, fmt.Errorf("invalid reps %q", reps)
	}
	return Set{Reps: n, WeightLb: kg * lbPerKg, Bodyweight: bw}, nil
}

// parseWarmups extracts warmup sets from the exercise header's second field.
// Example: "WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
func parseWarmups(s string) ([]Set, error) {
	var sets []Set
	for _, part := range strings.Split(s, "<br>") {
		m := warmupRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		set, err := parseSet(m[2], m[3])
		if err != nil {
			return nil, fmt.Errorf("warmup: %w", err)
		}
		set.Warmup = true
		sets = append(sets, set)
	}
	return sets, nil
}

// parseWeight handles European decimals and bodyweight-plus notation.
// "+35" -> (35, true), "102,5" -> (102.5, false), "+0" -> (0, true)
func parseWeight(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	bw := strings.HasPrefix(s, "+")
	if bw {
		s = s[1:]
	}
	w, err := parseEuropeanFloat(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid weight %q", s)
	}
	return w, bw, nil
}

// parseEuropeanFloat converts a decimal-comma string: "102,5" -> 102.5.
func parseEuropeanFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
