// Package topic classifies free-text questions into a fixed Thai taxonomy.
package topic

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/model"
)

// Classifier assigns a question a primary topic with confidence in [0,1].
type Classifier interface {
	Classify(ctx context.Context, text string) (*model.TopicResult, error)
}

// FallbackTopic is reported when nothing in the question matches.
const FallbackTopic = "อนาคต"

// topicOrder fixes iteration order so scoring is deterministic.
var topicOrder = []string{
	"การเงิน", "ความรัก", "สุขภาพ", "การงาน", "การศึกษา",
	"ครอบครัว", "โชคลาภ", FallbackTopic, "การเดินทาง",
}

var topicKeywords = map[string][]string{
	"การเงิน":    {"เงิน", "ทรัพย์", "รายได้", "ธุรกิจ", "การเงิน", "เศรษฐกิจ", "ค้าขาย", "ลงทุน", "หุ้น", "กำไร", "ขาดทุน"},
	"ความรัก":    {"รัก", "แฟน", "คู่ครอง", "สามี", "ภรรยา", "แต่งงาน", "หมั้น", "จีบ", "ความสัมพันธ์", "คนรัก", "รักใคร่"},
	"สุขภาพ":     {"สุขภาพ", "ป่วย", "โรค", "หมอ", "รักษา", "ผ่าตัด", "ยา", "แข็งแรง", "ร่างกาย", "จิตใจ", "การรักษา"},
	"การงาน":     {"งาน", "อาชีพ", "เลื่อนตำแหน่ง", "เงินเดือน", "หัวหน้า", "ลูกน้อง", "บริษัท", "องค์กร", "สมัครงาน", "ตำแหน่ง"},
	"การศึกษา":   {"เรียน", "สอบ", "โรงเรียน", "มหาวิทยาลัย", "วิชา", "การศึกษา", "ปริญญา", "จบ", "วิทยาลัย", "นักเรียน"},
	"ครอบครัว":   {"ครอบครัว", "พ่อ", "แม่", "ลูก", "พี่", "น้อง", "ญาติ", "บ้าน", "ชีวิตครอบครัว"},
	"โชคลาภ":     {"โชค", "ลาภ", "หวย", "ล็อตเตอรี่", "ถูกรางวัล", "ดวง", "โชคลาภ", "เสี่ยงโชค", "สลาก"},
	FallbackTopic: {"อนาคต", "ชะตา", "ดวงชะตา", "คำทำนาย", "โหราศาสตร์", "ชีวิต", "ลิขิต", "เคราะห์"},
	"การเดินทาง": {"เดินทาง", "ท่องเที่ยว", "ต่างประเทศ", "ต่างถิ่น", "ทริป", "ย้ายถิ่นฐาน", "ย้ายบ้าน", "ย้ายที่อยู่"},
}

// topicPatterns boost question-shaped phrasings over bare keyword mentions.
var topicPatterns = map[string][]*regexp.Regexp{
	"การเงิน": compilePatterns("จะรวย", "การเงิน.*เป็นอย่างไร", "เงิน.*ไหม", "ธุรกิจ.*ไหม", "ค้าขาย.*ไหม"),
	"ความรัก": compilePatterns("จะได้แต่งงาน", "ความรัก.*เป็นอย่างไร", "แฟน.*ไหม", "คู่ครอง.*ไหม"),
	"สุขภาพ":  compilePatterns("สุขภาพ.*เป็นอย่างไร", "สุขภาพ.*ไหม", "ป่วย.*ไหม", "โรค.*ไหม"),
	"การงาน":  compilePatterns("งาน.*เป็นอย่างไร", "ได้เลื่อนตำแหน่ง.*ไหม", "เปลี่ยนงาน.*ไหม"),
	"โชคลาภ":  compilePatterns("จะมีโชค.*ไหม", "ถูกหวย.*ไหม", "เสี่ยงโชค.*ไหม"),
	FallbackTopic: compilePatterns("อนาคต.*เป็นอย่างไร", "ชะตาชีวิต.*อย่างไร", "ชีวิต.*ไหม"),
}

// contextIndicators are weaker signals consulted only when no keyword hits.
var contextIndicators = map[string][]string{
	"การเงิน": {"จ่าย", "ซื้อ", "ขาย", "ตังค์", "เงินเดือน", "หนี้", "ขายของ", "ตลาด"},
	"ความรัก": {"ชอบ", "รัก", "คนรู้ใจ", "ผูกพัน", "อกหัก", "จริงใจ", "เข้ากันได้"},
	"สุขภาพ":  {"เจ็บ", "ปวด", "อ่อนแรง", "เหนื่อย", "นอน", "พักผ่อน", "ตรวจ", "หมอ"},
	"การงาน":  {"ทำงาน", "บริษัท", "หัวหน้า", "เพื่อนร่วมงาน", "ออฟฟิศ", "ประชุม"},
	FallbackTopic: {"ชีวิต", "ดวง", "ชะตา", "ทำนาย", "หมอดู", "แนวทาง", "ข้างหน้า"},
}

// Keywords returns the keyword list of a taxonomy topic, nil for unknown.
func Keywords(topic string) []string {
	kws := topicKeywords[topic]
	if kws == nil {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Scoring weights.
const (
	exactWeight    = 1.5
	boundaryWeight = 1.0
	patternWeight  = 2.0
	contextWeight  = 0.5

	secondaryRatio = 0.4
	maxRawScore    = 10.0
)

// KeywordClassifier scores a question against the fixed taxonomy. It never
// errors and is safe for concurrent use: all its state is immutable.
type KeywordClassifier struct {
	logger *zap.Logger
}

func NewKeywordClassifier(logger *zap.Logger) *KeywordClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeywordClassifier{logger: logger}
}

type topicScore struct {
	topic   string
	weight  float64
	matched []string
	total   int
}

// Classify scores every topic and reports the strongest with its secondary
// topics (at least 40% of the primary weight). A question that matches
// nothing falls back to the general topic at low confidence.
func (c *KeywordClassifier) Classify(_ context.Context, text string) (*model.TopicResult, error) {
	lower := strings.ToLower(text)

	var scores []topicScore
	for _, topic := range topicOrder {
		s := scoreTopic(topic, lower)
		if s.weight > 0 {
			scores = append(scores, s)
		}
	}

	// No keyword hits: consult the weaker context indicators.
	if len(scores) == 0 {
		for _, topic := range topicOrder {
			indicators, ok := contextIndicators[topic]
			if !ok {
				continue
			}
			hits := 0
			for _, w := range indicators {
				if strings.Contains(lower, w) {
					hits++
				}
			}
			if hits > 0 {
				scores = append(scores, topicScore{
					topic:  topic,
					weight: float64(hits) * contextWeight,
					total:  len(indicators),
				})
			}
		}
	}

	if len(scores) == 0 {
		return &model.TopicResult{
			PrimaryTopic:    FallbackTopic,
			Confidence:      0.1,
			Reasoning:       "ไม่พบคำสำคัญที่เกี่ยวข้องกับหัวข้อเฉพาะ ใช้การทำนายแบบทั่วไป",
			SecondaryTopics: []string{},
		}, nil
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].weight > scores[j].weight })
	primary := scores[0]

	raw := primary.weight
	if raw > maxRawScore {
		raw = maxRawScore
	}
	confidence := raw
	if primary.total > 0 {
		ratio := float64(len(primary.matched)) / float64(primary.total)
		confidence = raw * (0.5 + 0.5*ratio)
	}
	confidence /= maxRawScore

	var secondary []string
	threshold := primary.weight * secondaryRatio
	for _, s := range scores[1:] {
		if s.weight >= threshold {
			secondary = append(secondary, s.topic)
		}
	}
	if secondary == nil {
		secondary = []string{}
	}

	reasoning := fmt.Sprintf("คำถามของคุณน่าจะเกี่ยวข้องกับ%s", primary.topic)
	if len(primary.matched) > 0 {
		shown := primary.matched
		if len(shown) > 3 {
			shown = shown[:3]
		}
		reasoning = fmt.Sprintf("คำถามของคุณเกี่ยวข้องกับ%s (พบคำสำคัญ: %s)",
			primary.topic, strings.Join(shown, ", "))
	}
	if len(secondary) > 0 {
		reasoning += fmt.Sprintf(" และอาจเกี่ยวข้องกับ %s", strings.Join(secondary, ", "))
	}

	c.logger.Debug("classified question",
		zap.String("topic", primary.topic),
		zap.Float64("confidence", confidence))

	return &model.TopicResult{
		PrimaryTopic:    primary.topic,
		Confidence:      confidence,
		Reasoning:       reasoning,
		SecondaryTopics: secondary,
	}, nil
}

var boundaryRunes = " ,.?!:;"

// scoreTopic weighs one topic's keywords and question patterns against the
// lowercased text. Exact space-delimited hits beat boundary hits.
func scoreTopic(topic, lower string) topicScore {
	s := topicScore{topic: topic, total: len(topicKeywords[topic])}
	padded := " " + lower + " "

	for _, kw := range topicKeywords[topic] {
		switch {
		case strings.Contains(padded, " "+kw+" "):
			s.weight += exactWeight
			s.matched = append(s.matched, kw)
		case strings.Contains(lower, kw) && atBoundary(lower, kw):
			s.weight += boundaryWeight
			s.matched = append(s.matched, kw)
		}
	}

	for _, p := range topicPatterns[topic] {
		if p.MatchString(lower) {
			s.weight += patternWeight
		}
	}
	return s
}

// atBoundary reports whether the keyword appears at the text edge or next to
// a punctuation/space rune, approximating a word-boundary for unspaced Thai.
func atBoundary(lower, kw string) bool {
	if strings.HasPrefix(lower, kw) || strings.HasSuffix(lower, kw) {
		return true
	}
	for _, c := range boundaryRunes {
		if strings.Contains(lower, kw+string(c)) || strings.Contains(lower, string(c)+kw) {
			return true
		}
	}
	return false
}
