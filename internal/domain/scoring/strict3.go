package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fallback is returned whenever a score cannot be obtained or parsed. By
// contract it is indistinguishable from a genuine zero-relevance rating.
const Fallback = "000"

var digitRun = regexp.MustCompile(`\d+`)

// Strict3 coerces free-form model output into a 3-digit score code.
//
// Two passes over the reply lines, in reply order: lines mentioning "score"
// are scanned first so that a label ("Score: 85") beats numbers appearing
// incidentally elsewhere; only if no labelled line yields digits does any
// line's first digit run count. No digits anywhere means Fallback.
func Strict3(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "score") {
			continue
		}
		if run := digitRun.FindString(line); run != "" {
			return formatScore(clampRun(run))
		}
	}

	for _, line := range lines {
		if run := digitRun.FindString(line); run != "" {
			return formatScore(clampRun(run))
		}
	}

	return Fallback
}

// clampRun converts a run of decimal digits into an integer in [0,100].
func clampRun(run string) int {
	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		return 0
	}
	if len(trimmed) > 3 {
		return 100
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n > 100 {
		return 100
	}
	return n
}

func formatScore(val int) string {
	return fmt.Sprintf("%03d", val)
}
