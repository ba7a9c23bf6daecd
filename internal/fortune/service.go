// Package fortune orchestrates the full reading pipeline: bases, meanings,
// ranking, classification, enrichment.
package fortune

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/astro"
	"github.com/peeranat/chedthan/internal/meaning"
	"github.com/peeranat/chedthan/internal/model"
	"github.com/peeranat/chedthan/internal/rag"
	"github.com/peeranat/chedthan/internal/ranker"
	"github.com/peeranat/chedthan/internal/topic"
)

// Request is one reading request. Weekday and Question are optional;
// DetailLevel defaults to normal.
type Request struct {
	Date        time.Time
	Weekday     string
	Question    string
	DetailLevel model.DetailLevel
}

// Service runs the pipeline. The classifier and index are optional
// collaborators: a nil classifier skips topic analysis, a nil index skips
// enrichment.
type Service struct {
	calc       *astro.Calculator
	resolver   *meaning.Resolver
	ranker     *ranker.Ranker
	classifier topic.Classifier
	index      *rag.Index
	topK       int
	logger     *zap.Logger
}

func NewService(calc *astro.Calculator, resolver *meaning.Resolver, rk *ranker.Ranker,
	classifier topic.Classifier, index *rag.Index, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		calc:       calc,
		resolver:   resolver,
		ranker:     rk,
		classifier: classifier,
		index:      index,
		topK:       topK,
		logger:     logger,
	}
}

// Reading produces a full fortune payload. Only a calculation failure is
// fatal: every downstream stage degrades to a reduced payload on error.
func (s *Service) Reading(ctx context.Context, req Request) (*model.FortuneResult, error) {
	level := req.DetailLevel
	if level == "" {
		level = model.DetailNormal
	}

	chart, err := s.calc.Calculate(req.Date, req.Weekday)
	if err != nil {
		return nil, err
	}
	bases := chart.Bases

	col, err := s.resolver.Extract(ctx, bases)
	if err != nil {
		if !errors.Is(err, model.ErrMeaningExtraction) && !errors.Is(err, model.ErrRepository) {
			return nil, err
		}
		s.logger.Warn("meaning extraction degraded", zap.Error(err))
		col = &model.MeaningCollection{}
	}

	var topicResult *model.TopicResult
	if req.Question != "" && s.classifier != nil {
		topicResult, err = s.classifier.Classify(ctx, req.Question)
		if err != nil {
			s.logger.Warn("topic classification failed", zap.Error(err))
			topicResult = &model.TopicResult{
				PrimaryTopic:    topic.FallbackTopic,
				Confidence:      0.1,
				Reasoning:       "ไม่สามารถวิเคราะห์หัวข้อได้ ใช้การทำนายทั่วไป",
				SecondaryTopics: []string{},
			}
		}
	}

	topCategories, err := s.ranker.TopCategories(ctx, bases)
	if err != nil {
		s.logger.Warn("top-category ranking degraded", zap.Error(err))
		topCategories = map[string]model.TopCategory{}
	}

	topPairs, err := s.ranker.TopPairs(ctx, bases, level.PairCount())
	if err != nil {
		s.logger.Warn("pair ranking degraded", zap.Error(err))
		topPairs = nil
	}

	result := &model.FortuneResult{
		BirthInfo:     chart.BirthInfo,
		Bases:         bases,
		TopCategories: topCategories,
		TopPairs:      topPairs,
		FocusMeanings: s.focusMeanings(col, topicResult),
		Topic:         topicResult,
		Summary:       s.summary(ctx, bases),
		DetailLevel:   level,
	}

	if level.IncludePositions() {
		result.EnrichedBases = s.enrichedBases(ctx, bases)
		result.PositionsSummary = s.positionsSummary(ctx, bases)
		result.GeneralMeanings = s.generalMeanings(col)
	}

	if s.index != nil {
		result.RAGInterpretations = s.index.Enrich(ctx, col, req.Question, s.topK)
	}

	return result, nil
}

// focusMeanings filters the collection down to cells relevant to the
// classified topic. Without a topic there is nothing to focus on.
func (s *Service) focusMeanings(col *model.MeaningCollection, t *model.TopicResult) []model.Meaning {
	out := []model.Meaning{}
	if t == nil || col == nil {
		return out
	}
	keywords := topic.Keywords(t.PrimaryTopic)
	for _, m := range col.Items {
		if matchesAny(m, keywords) {
			m.MatchScore = t.Confidence
			out = append(out, m)
		}
	}
	return out
}

func matchesAny(m model.Meaning, keywords []string) bool {
	for _, kw := range keywords {
		if contains(m.Heading, kw) || contains(m.Meaning, kw) || contains(m.Category, kw) {
			return true
		}
	}
	return false
}
