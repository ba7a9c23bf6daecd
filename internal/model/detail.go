package model

import "fmt"

// DetailLevel controls how much of the chart a response carries.
type DetailLevel string

const (
	DetailSimple   DetailLevel = "simple"
	DetailNormal   DetailLevel = "normal"
	DetailDetailed DetailLevel = "detailed"
)

// ParseDetailLevel validates a detail-level string; empty means normal.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch DetailLevel(s) {
	case "":
		return DetailNormal, nil
	case DetailSimple, DetailNormal, DetailDetailed:
		return DetailLevel(s), nil
	}
	return "", fmt.Errorf("invalid detail level %q (use simple, normal or detailed)", s)
}

// PairCount is how many top pairs each detail level reports.
func (d DetailLevel) PairCount() int {
	switch d {
	case DetailSimple:
		return 3
	case DetailDetailed:
		return 10
	default:
		return 5
	}
}

// IncludePositions reports whether position-indexed views are included.
func (d DetailLevel) IncludePositions() bool {
	return d != DetailSimple
}
