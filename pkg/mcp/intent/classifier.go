package intent

import (
	"math"
	"strings"

	"github.com/hugohenrick/emceep/pkg/logger"
)

// Classifier pontua textos livres contra a tabela de intenções. Não guarda
// estado entre chamadas e pode ser usado por várias goroutines.
type Classifier struct {
	definitions []Definition
	logger      logger.Logger
}

// NewClassifier cria um classificador com a tabela padrão de intenções
func NewClassifier(log logger.Logger) *Classifier {
	return &Classifier{
		definitions: definitions,
		logger:      logger.OrNop(log),
	}
}

// Scores returns every intent with a non-zero score, in declaration order.
func (c *Classifier) Scores(text string) []Score {
	lower := strings.ToLower(text)

	scores := make([]Score, 0, len(c.definitions))
	for _, def := range c.definitions {
		if s := def.score(lower); s > 0 {
			scores = append(scores, Score{Intent: def.Name, Score: s})
		}
	}
	return scores
}

// Classify detecta a intenção de um comando e extrai seus parâmetros
func (c *Classifier) Classify(text string) Classification {
	scores := c.Scores(text)
	if len(scores) == 0 {
		c.logger.Debug("no intent matched", "text", text)
		return Classification{
			Intent:          Unknown,
			Confidence:      0,
			Parameters:      map[string]string{},
			SuggestedAction: suggestAction(Unknown, nil),
		}
	}

	// strictly greater keeps the first declared intent on ties
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	params := extractParameters(best.Intent, strings.ToLower(text))
	result := Classification{
		Intent:          best.Intent,
		Confidence:      math.Min(best.Score, 1.0),
		Parameters:      params,
		SuggestedAction: suggestAction(best.Intent, params),
	}

	c.logger.Info("intent classified",
		"intent", result.Intent,
		"confidence", result.Confidence,
		"score", best.Score,
		"candidates", len(scores))
	return result
}
