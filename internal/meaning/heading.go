package meaning

import "regexp"

// Reading headings link two houses in the fixed textual pattern
//
//	"<ThaiNameA> (<ElementA>) สัมพันธ์กับ <ThaiNameB> (<ElementB>)"
//
// The element names are the parenthesized tokens. This is a versioned
// mini-grammar: the parser is the only place the pattern lives.
var elementPattern = regexp.MustCompile(`\(([^)]+)\)`)

// ParseHeading extracts the two element names from a reading heading.
// Returns ("", "") when the heading does not carry two parenthesized
// tokens; callers must tolerate the absent pair.
func ParseHeading(heading string) (string, string) {
	elements := elementPattern.FindAllStringSubmatch(heading, 2)
	if len(elements) < 2 {
		return "", ""
	}
	return elements[0][1], elements[1][1]
}
