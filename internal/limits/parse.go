package limits

import (
	"strconv"
	"strings"
)

// byLabel resolves a block label to its resource.
var byLabel = func() map[string]Resource {
	m := make(map[string]Resource, resourceCount)
	for i := Resource(0); i < resourceCount; i++ {
		m[resourceInfo[i].label] = i
	}
	return m
}()

// ParseBlock reads the multi-line body of a usage block. Each line carries
// "<label>: <used> out of <limit>"; lines with unknown labels or malformed
// numbers are skipped. The returned count is the number of resources parsed.
func ParseBlock(text string) (Usage, int) {
	var u Usage
	matched := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		label, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		res, ok := byLabel[strings.TrimSpace(label)]
		if !ok {
			continue
		}
		usedPart, limitPart, ok := strings.Cut(rest, " out of ")
		if !ok {
			continue
		}
		used, err := strconv.ParseInt(strings.TrimSpace(usedPart), 10, 64)
		if err != nil {
			continue
		}
		limit, err := strconv.ParseInt(strings.TrimSpace(limitPart), 10, 64)
		if err != nil {
			continue
		}
		u[res] = Value{Used: used, Limit: limit}
		matched++
	}
	return u, matched
}
