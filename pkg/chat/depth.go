package chat

import (
	"regexp"
	"strings"
)

// Conversation depth scoring. Four coarse signals are bucketed and summed,
// and the sum maps to depth levels 1..5. Shallow exchanges (depth <= 2 and
// a short message) take the fast generation path. The buckets and
// thresholds are tunable constants, not a correctness contract.

var reflectivePattern = regexp.MustCompile(`(?i)\b(why|feel|feeling|felt|meaning|wonder|wondering|understand|realize|myself|believe|think about|reflect)\b`)

func lengthBucket(input string) int {
	words := len(strings.Fields(input))
	switch {
	case words < 8:
		return 1
	case words < 25:
		return 2
	default:
		return 3
	}
}

func questionBucket(input string) int {
	switch strings.Count(input, "?") {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return 3
	}
}

func reflectiveBucket(input string) int {
	switch len(reflectivePattern.FindAllString(input, -1)) {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return 3
	}
}

func continuityBucket(history []Turn) int {
	recent := history
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}
	if len(recent) > 0 {
		return 2
	}
	return 1
}

// Depth maps a message and its recent history to a 1..5 conversation depth.
func Depth(input string, history []Turn) int {
	score := lengthBucket(input) + questionBucket(input) + reflectiveBucket(input) + continuityBucket(history)
	switch {
	case score <= 5:
		return 1
	case score <= 7:
		return 2
	case score <= 9:
		return 3
	case score <= 11:
		return 4
	default:
		return 5
	}
}

// FastMode decides the latency/quality trade-off when the caller does not
// force it: shallow depth and a short message.
func FastMode(input string, history []Turn, maxChars int) bool {
	if maxChars <= 0 {
		maxChars = 160
	}
	return Depth(input, history) <= 2 && len(input) < maxChars
}
