// Package model defines the core fortune-engine data types.
package model

import "time"

// BirthInfo holds the derived birth metadata for one request.
type BirthInfo struct {
	Date            time.Time `json:"date"`
	Day             string    `json:"day"`
	DayValue        int       `json:"day_value"`
	Month           int       `json:"month"`
	YearAnimal      string    `json:"year_animal"`
	YearStartNumber int       `json:"year_start_number"`
}

// Bases are the four 7-element sequences of the 7N9B chart.
// Base1-3 are rotations of 1..7; Base4 is the elementwise sum and may exceed 7.
type Bases struct {
	Base1 []int `json:"base1"`
	Base2 []int `json:"base2"`
	Base3 []int `json:"base3"`
	Base4 []int `json:"base4"`
}

// Sequence returns the base numbered 1-4, or nil for anything else.
func (b Bases) Sequence(base int) []int {
	switch base {
	case 1:
		return b.Base1
	case 2:
		return b.Base2
	case 3:
		return b.Base3
	case 4:
		return b.Base4
	}
	return nil
}

// BasesResult is the calculator output: birth metadata plus the chart.
type BasesResult struct {
	BirthInfo BirthInfo `json:"birth_info"`
	Bases     Bases     `json:"bases"`
}

// Category is a life-domain concept from the catalogue. Read-only reference data.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ThaiName    string `json:"thai_name"`
	HouseNumber int    `json:"house_number,omitempty"`
	HouseType   string `json:"house_type,omitempty"`
}

// Reading is a stored interpretation keyed by (base, position).
type Reading struct {
	ID         int64  `json:"id"`
	Base       int    `json:"base"`
	Position   int    `json:"position"`
	CategoryID int64  `json:"category_id"`
	Heading    string `json:"heading"`
	Content    string `json:"content"`
	Influence  string `json:"influence"`
}

// CategoryCombination is a stored interpretation keyed by two or three
// category identities. Category order is significant.
type CategoryCombination struct {
	ID          int64  `json:"id"`
	Category1ID int64  `json:"category1_id"`
	Category2ID int64  `json:"category2_id"`
	Category3ID *int64 `json:"category3_id,omitempty"`
	Heading     string `json:"heading"`
	Content     string `json:"content"`
	Influence   string `json:"influence"`
}

// Meaning is one resolved cell of the chart. Ephemeral, never persisted.
type Meaning struct {
	Base       int     `json:"base"`
	Position   int     `json:"position"`
	Value      int     `json:"value"`
	Category   string  `json:"category"`
	Heading    string  `json:"heading"`
	Meaning    string  `json:"meaning"`
	MatchScore float64 `json:"match_score"`
}

// MeaningCollection preserves base-then-position scan order.
type MeaningCollection struct {
	Items []Meaning `json:"items"`
}

// TopicResult is the classifier output for a free-text question.
type TopicResult struct {
	PrimaryTopic    string   `json:"primary_topic"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	SecondaryTopics []string `json:"secondary_topics"`
}

// RAGInterpretation is a supplementary interpretation retrieved by
// semantic similarity. Ephemeral, attached to the final payload only.
type RAGInterpretation struct {
	Category       string  `json:"category"`
	Value          int     `json:"value"`
	Interpretation string  `json:"interpretation"`
	Source         string  `json:"source"`
	Score          float64 `json:"score"`
}

// TopCategory reports the strongest house of one base.
type TopCategory struct {
	Base     int    `json:"base"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	ThaiName string `json:"thai_name"`
	Meaning  string `json:"meaning"`
	Value    int    `json:"value"`
}

// TopPair is one ranked cross-base category pair.
type TopPair struct {
	Rank      int    `json:"rank"`
	Heading   string `json:"heading"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
	Value1    int    `json:"value1"`
	Value2    int    `json:"value2"`
	Score     int    `json:"score"`
	Meaning   string `json:"meaning"`
	Influence string `json:"influence"`
}

// PositionDetail is one labeled cell of a base, for position-indexed views.
type PositionDetail struct {
	Position    int    `json:"position"`
	Label       string `json:"label"`
	ThaiMeaning string `json:"thai_meaning"`
	HouseType   string `json:"house_type,omitempty"`
	Value       int    `json:"value"`
	ValueName   string `json:"value_name,omitempty"`
}

// BaseMeanings groups the resolved meanings of one base under its Thai name.
type BaseMeanings struct {
	Name     string    `json:"name"`
	Meanings []Meaning `json:"meanings"`
}

// FortuneResult is the engine's single output contract.
type FortuneResult struct {
	BirthInfo          BirthInfo                   `json:"birth_info"`
	Bases              Bases                       `json:"bases"`
	TopCategories      map[string]TopCategory      `json:"top_categories"`
	TopPairs           []TopPair                   `json:"top_pairs"`
	EnrichedBases      map[string][]PositionDetail `json:"enriched_bases,omitempty"`
	PositionsSummary   []PositionDetail            `json:"positions_summary,omitempty"`
	GeneralMeanings    map[string]BaseMeanings     `json:"general_meanings,omitempty"`
	FocusMeanings      []Meaning                   `json:"focus_meanings"`
	RAGInterpretations []RAGInterpretation         `json:"rag_interpretations,omitempty"`
	Topic              *TopicResult                `json:"topic,omitempty"`
	Summary            string                      `json:"summary"`
	DetailLevel        DetailLevel                 `json:"detail_level"`
}
