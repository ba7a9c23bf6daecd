// Package ranker derives the strongest houses and cross-base category pairs
// from a computed chart.
package ranker

// Influence classifications used throughout the readings.
const (
	InfluenceGood    = "ดี"
	InfluenceNeutral = "กลาง"
	InfluenceBad     = "ร้าย"
	InfluenceSame    = "เดิม"
)

// InfluenceOf maps a house type to its base influence.
func InfluenceOf(houseType string) string {
	switch houseType {
	case "กาลปักษ์":
		return InfluenceGood
	case "เกณฑ์ชะตา", "จร":
		return InfluenceNeutral
	default:
		return InfluenceSame
	}
}

// CombineInfluence merges the influences of two houses appearing together.
func CombineInfluence(a, b string) string {
	switch {
	case a == InfluenceGood && b == InfluenceGood:
		return InfluenceGood
	case a == InfluenceBad && b == InfluenceBad:
		return InfluenceBad
	case (a == InfluenceGood && b == InfluenceBad) || (a == InfluenceBad && b == InfluenceGood):
		return InfluenceNeutral
	case a == InfluenceGood || b == InfluenceGood:
		return InfluenceGood
	default:
		return InfluenceNeutral
	}
}
