package sentiment

import (
	"math"
	"strings"
	"unicode"

	"stock-verdict/internal/types"
)

const (
	// Label thresholds. Boundary values fall into the non-neutral bucket.
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05

	boostIncr       = 0.293
	boostDecr       = -0.293
	capsIncr        = 0.733
	negationScalar  = -0.74
	exclaimIncr     = 0.292
	maxExclaims     = 4
	normalizeAlpha  = 15.0
	negationWindow  = 3
	beforeButWeight = 0.5
	afterButWeight  = 1.5
)

// Scorer maps a short text to a polarity in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// LexiconScorer is a deterministic rule-and-lexicon scorer. It holds no
// mutable state and is safe for concurrent use.
type LexiconScorer struct{}

func NewLexiconScorer() LexiconScorer {
	return LexiconScorer{}
}

// Label buckets a score using the fixed thresholds.
func Label(score float64) types.SentimentLabel {
	switch {
	case score >= PositiveThreshold:
		return types.Positive
	case score <= NegativeThreshold:
		return types.Negative
	default:
		return types.Neutral
	}
}

// Score returns the compound polarity of text. Empty input scores 0.
func (LexiconScorer) Score(text string) float64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	mixedCase := hasMixedCase(words)

	valences := make([]float64, len(words))
	butAt := -1
	for i, w := range lower {
		if w == "but" && butAt < 0 {
			butAt = i
		}
		v, ok := lexicon[w]
		if !ok {
			continue
		}

		if mixedCase && isShouting(words[i]) {
			v += math.Copysign(capsIncr, v)
		}

		for back := 1; back <= negationWindow && i-back >= 0; back++ {
			if b, ok := boosters[lower[i-back]]; ok {
				b *= 1 - 0.05*float64(back-1)
				if v > 0 {
					v += b
				} else {
					v -= b
				}
			}
		}

		for back := 1; back <= negationWindow && i-back >= 0; back++ {
			if negations[lower[i-back]] {
				v *= negationScalar
				break
			}
		}

		valences[i] = v
	}

	var sum float64
	for i, v := range valences {
		switch {
		case butAt < 0:
		case i < butAt:
			v *= beforeButWeight
		case i > butAt:
			v *= afterButWeight
		}
		sum += v
	}

	if sum != 0 {
		exclaims := strings.Count(text, "!")
		if exclaims > maxExclaims {
			exclaims = maxExclaims
		}
		sum += math.Copysign(float64(exclaims)*exclaimIncr, sum)
	}

	return normalize(sum)
}

func normalize(sum float64) float64 {
	score := sum / math.Sqrt(sum*sum+normalizeAlpha)
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(-1, math.Min(1, score))
}

// tokenize splits text into words, keeping inner apostrophes so
// contractions like "isn't" survive.
func tokenize(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.Trim(current.String(), "'"))
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(r)
		case (r == '\'' || r == '’') && current.Len() > 0:
			current.WriteRune('\'')
		default:
			flush()
		}
	}
	flush()

	return words
}

func isShouting(w string) bool {
	if len([]rune(w)) < 2 {
		return false
	}
	return strings.ToUpper(w) == w && strings.ToLower(w) != w
}

// hasMixedCase reports whether some but not all words are upper case, so a
// headline typed entirely in caps gets no emphasis.
func hasMixedCase(words []string) bool {
	shouting := 0
	for _, w := range words {
		if isShouting(w) {
			shouting++
		}
	}
	return shouting > 0 && shouting < len(words)
}
