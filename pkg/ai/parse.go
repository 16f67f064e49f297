package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"resume-optimizer/internal/model"
	"resume-optimizer/pkg/ai/formatters"
)

// ParseOptimizationResult turns raw model output into a well-typed result.
// It never fails: output that does not carry a usable JSON object is
// recovered with a text heuristic plus default score and suggestions.
func ParseOptimizationResult(text string, labels formatters.Labels) model.OptimizationResult {
	res, err := parseStructured(text)
	if err == nil {
		return res
	}
	slog.Warn("ai: structured parse failed, using fallback", "error", err)
	return model.OptimizationResult{
		OptimizedResume: FallbackResume(text, labels.SectionMarkers),
		MatchScore:      model.DefaultMatchScore,
		Suggestions:     append([]string(nil), labels.DefaultSuggestions...),
	}
}

func parseStructured(text string) (model.OptimizationResult, error) {
	obj, ok := formatters.ExtractObject(formatters.StripCodeFences(text))
	if !ok {
		return model.OptimizationResult{}, fmt.Errorf("no JSON object in model output")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(obj), &m); err != nil {
		return model.OptimizationResult{}, fmt.Errorf("decode model output: %w", err)
	}
	if err := model.ValidateOptimization(m); err != nil {
		return model.OptimizationResult{}, err
	}
	resume, _ := m["optimizedResume"].(string)
	score, _ := m["matchScore"].(float64)
	return model.OptimizationResult{
		OptimizedResume: resume,
		MatchScore:      model.ClampScore(score),
		Suggestions:     coerceSuggestions(m["suggestions"]),
	}, nil
}

// coerceSuggestions keeps list values only; anything else becomes an empty
// list. Non-string items are stringified so one odd entry doesn't drop the rest.
func coerceSuggestions(raw interface{}) []string {
	arr, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, it := range arr {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case nil:
			continue
		default:
			b, err := json.Marshal(v)
			if err != nil {
				out = append(out, fmt.Sprintf("%v", v))
				continue
			}
			out = append(out, string(b))
		}
	}
	return out
}

// FallbackResume returns the non-blank lines of text starting at the first
// line that contains a section marker. Without a marker the text is returned
// unchanged.
func FallbackResume(text string, markers []string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	for i, line := range lines {
		for _, m := range markers {
			if strings.Contains(line, m) {
				return strings.Join(lines[i:], "\n")
			}
		}
	}
	return text
}

var firstInteger = regexp.MustCompile(`\d+`)

// parseScore reads the first integer in a score-only reply.
func parseScore(text string) (int, bool) {
	digits := firstInteger.FindString(text)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// overflow: more digits than an int holds is still "above 100"
		return model.MaxMatchScore, true
	}
	return model.ClampScore(float64(n)), true
}
