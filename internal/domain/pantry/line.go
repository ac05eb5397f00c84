package pantry

import (
	"strconv"
	"strings"
	"unicode"
)

// knownUnits are the measurement tokens the extractor recognizes when a unit
// stands apart from its quantity. A standalone word outside this set stays
// part of the name ("chicken breast" never loses "breast" to a unit).
var knownUnits = map[string]bool{
	"pcs":  true,
	"pc":   true,
	"g":    true,
	"kg":   true,
	"ml":   true,
	"l":    true,
	"tbsp": true,
	"tsp":  true,
	"cup":  true,
	"cups": true,
}

// ParsedLine is the three-field result of the bulk-add grammar.
type ParsedLine struct {
	Name string
	Qty  float64
	Unit string
}

// ParseLine tokenizes one bulk-add line of the form `name [qty][unit]`.
// Accepted shapes, by example:
//
//	chicken breast 500g
//	paneer 200 g
//	eggs 6pcs
//	rice 2.5 kg
//	tomato 3
//	tomato
//
// Quantity defaults to 1 and unit to defaultUnit when absent. Units are
// lowercased and "cup" normalizes to "cups". Returns false for blank lines
// and lines with no name.
func ParseLine(line, defaultUnit string) (ParsedLine, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParsedLine{}, false
	}

	qty := 1.0
	unit := defaultUnit
	nameEnd := len(fields)

	last := fields[len(fields)-1]
	switch {
	case isNumber(last):
		// bare quantity, e.g. "tomato 3"
		qty, _ = strconv.ParseFloat(last, 64)
		nameEnd--
	case knownUnits[strings.ToLower(last)] && len(fields) >= 2 && isNumber(fields[len(fields)-2]):
		// separated quantity and unit, e.g. "paneer 200 g"
		qty, _ = strconv.ParseFloat(fields[len(fields)-2], 64)
		unit = normalizeUnit(last)
		nameEnd -= 2
	default:
		// fused quantity and unit, e.g. "500g"
		if num, suffix, ok := splitFused(last); ok {
			qty = num
			unit = normalizeUnit(suffix)
			nameEnd--
		}
	}

	name := NormalizeName(strings.Join(fields[:nameEnd], " "))
	if name == "" {
		return ParsedLine{}, false
	}

	return ParsedLine{Name: name, Qty: qty, Unit: unit}, true
}

// SplitBulkText breaks pasted bulk-add input into candidate lines, accepting
// commas and newlines as separators.
func SplitBulkText(text string) []string {
	var lines []string
	for _, part := range strings.Split(strings.ReplaceAll(text, ",", "\n"), "\n") {
		if s := strings.TrimSpace(part); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// isNumber reports whether the token is a plain decimal quantity.
func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil && !strings.ContainsAny(tok, "eExXpP+-")
}

// splitFused splits tokens like "500g" or "2.5kg" into quantity and unit.
// The token must be digits (with optional decimal point) followed by letters.
func splitFused(tok string) (float64, string, bool) {
	split := -1
	for i, r := range tok {
		if unicode.IsLetter(r) {
			split = i
			break
		}
		if !unicode.IsDigit(r) && r != '.' {
			return 0, "", false
		}
	}
	if split <= 0 {
		return 0, "", false
	}
	for _, r := range tok[split:] {
		if !unicode.IsLetter(r) {
			return 0, "", false
		}
	}
	num, err := strconv.ParseFloat(tok[:split], 64)
	if err != nil {
		return 0, "", false
	}
	return num, tok[split:], true
}

// normalizeUnit lowercases a unit token and maps the singular "cup" onto
// "cups" so stored units stay uniform.
func normalizeUnit(u string) string {
	u = strings.ToLower(u)
	if u == "cup" {
		return "cups"
	}
	return u
}
