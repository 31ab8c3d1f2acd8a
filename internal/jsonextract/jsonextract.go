// Package jsonextract recovers a JSON object from free-form language
// model output. Models asked for JSON frequently wrap it in fenced code
// blocks or surround it with prose; this package tries an explicit,
// ordered list of extraction strategies and reports which one matched.
package jsonextract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// Strategy names, in preference order.
const (
	StrategyFencedTagged = "fenced-with-tag"
	StrategyFenced       = "fenced-without-tag"
	StrategyBraceScan    = "brace-scan"
)

var (
	fencedTagged = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	fenced       = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// Extract returns the JSON payload found in response and the name of
// the strategy that matched. The strategies run in preference order:
// a ```json fenced block, then any fenced block, then a scan from the
// first '{' to the last '}'. Returns an error wrapping domain.ErrParse
// when nothing resembling JSON is present; callers are expected to
// fall back to a defined default rather than propagate it.
func Extract(response string) (payload, strategy string, err error) {
	if m := fencedTagged.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1]), StrategyFencedTagged, nil
	}

	if m := fenced.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1]), StrategyFenced, nil
	}

	first := strings.Index(response, "{")
	last := strings.LastIndex(response, "}")
	if first >= 0 && last > first {
		return strings.TrimSpace(response[first : last+1]), StrategyBraceScan, nil
	}

	return "", "", domain.ErrParse
}
