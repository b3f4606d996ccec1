package stock

import (
	"regexp"
	"strconv"
)

const (
	DefaultRefreshSeconds = 300
	MinRefreshSeconds     = 30
)

var countdownPattern = regexp.MustCompile(`(?i)(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?\s*(?:(\d+)\s*s)?`)

// ParseUpdateSeconds converts an "updates in" text like "03m 56s" to seconds.
// Text without any h/m/s component yields DefaultRefreshSeconds; anything
// shorter than MinRefreshSeconds is raised to it.
func ParseUpdateSeconds(text string) int {
	if text == "" {
		return DefaultRefreshSeconds
	}
	for _, m := range countdownPattern.FindAllStringSubmatch(text, -1) {
		if m[1] == "" && m[2] == "" && m[3] == "" {
			continue
		}
		total := 3600*atoiOrZero(m[1]) + 60*atoiOrZero(m[2]) + atoiOrZero(m[3])
		if total < MinRefreshSeconds {
			return MinRefreshSeconds
		}
		return total
	}
	return DefaultRefreshSeconds
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
