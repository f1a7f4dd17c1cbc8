// ABOUTME: Intent classification engine dispatching to per-intent scoring strategies
// ABOUTME: Selects the dominant strategy with epsilon tie-break and fixed precedence

package intent

import (
	"serp-insights-api/core/domain"
	"serp-insights-api/core/interfaces"
)

// DefaultEpsilon is the tie-break window between strategy scores.
const DefaultEpsilon = 0.02

// NoSignalsTag marks a classification where no strategy found any evidence.
const NoSignalsTag = "no_signals"

// precedence orders intent types by practical actionability; it breaks ties
// between strategies scoring within epsilon of each other and names the
// fallback (last entry) when nothing scores at all.
var precedence = []domain.IntentType{
	domain.IntentTransactional,
	domain.IntentInformational,
	domain.IntentExploratory,
	domain.IntentNavigational,
}

// Engine classifies search intent by running all registered strategies and
// selecting the dominant one. Safe for concurrent use once built.
type Engine struct {
	strategies map[domain.IntentType]Strategy
	epsilon    float64
	logger     interfaces.Logger
}

// NewEngine creates an engine with the four default strategies over vocab.
// A non-positive epsilon falls back to DefaultEpsilon.
func NewEngine(vocab domain.Vocabulary, epsilon float64, logger interfaces.Logger) *Engine {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	e := &Engine{
		strategies: make(map[domain.IntentType]Strategy, len(precedence)),
		epsilon:    epsilon,
		logger:     logger,
	}

	e.Register(NewTransactionalStrategy(vocab))
	e.Register(NewInformationalStrategy(vocab))
	e.Register(NewExploratoryStrategy(vocab))
	e.Register(NewNavigationalStrategy(vocab))

	return e
}

// Register adds or replaces the strategy for its intent type.
func (e *Engine) Register(s Strategy) {
	e.strategies[s.Intent()] = s
}

// Classify runs every strategy over the entries and features, picks the one
// with the strictly highest confidence (precedence breaks scores within
// epsilon), and attaches independently extracted keywords. It never fails:
// a page with no signals at all classifies as exploratory with confidence
// zero and the low-confidence flag set.
func (e *Engine) Classify(term domain.SearchTerm, entries []domain.ResultEntry, features []domain.PageFeature) domain.IntentAnalysis {
	bestScore := -1.0
	var bestIntent domain.IntentType
	var bestSignals []string

	for _, it := range precedence {
		strategy, ok := e.strategies[it]
		if !ok {
			continue
		}

		score, signals := strategy.Score(term, entries, features)
		if e.logger != nil {
			e.logger.Debug("intent strategy scored", map[string]interface{}{
				"intent":     string(it),
				"confidence": score,
				"signals":    len(signals),
			})
		}

		// Earlier precedence wins unless a later strategy clears it by
		// more than epsilon.
		if score > bestScore+e.epsilon {
			bestScore = score
			bestIntent = it
			bestSignals = signals
		}
	}

	main, secondaries := ExtractKeywords(term, entries)

	if bestScore <= 0 {
		if e.logger != nil {
			e.logger.Warn("no intent signals found", map[string]interface{}{
				"term": term.Text,
			})
		}
		return domain.IntentAnalysis{
			Intent:            domain.IntentExploratory,
			Confidence:        0,
			MainKeyword:       main,
			SecondaryKeywords: secondaries,
			Signals:           []string{NoSignalsTag},
			LowConfidence:     true,
		}
	}

	return domain.IntentAnalysis{
		Intent:            bestIntent,
		Confidence:        bestScore,
		MainKeyword:       main,
		SecondaryKeywords: secondaries,
		Signals:           bestSignals,
	}
}
