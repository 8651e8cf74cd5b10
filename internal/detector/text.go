package detector

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum number of characters accepted for analysis.
const MinTextLength = 50

// ErrTextTooShort is returned when the input is below MinTextLength.
var ErrTextTooShort = errors.New("text too short for analysis")

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	wordTokenRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Phrases that machine-generated prose leans on heavily.
var formalTransitions = []string{
	"furthermore", "moreover", "in addition", "consequently",
	"therefore", "subsequently", "nevertheless", "additionally",
	"in conclusion", "it is important to note", "it should be noted",
}

var hedgingWords = []string{"may", "might", "could", "possibly", "perhaps", "generally"}

// Matched case-sensitively against the raw text.
var contractionMarkers = []string{"n't", "'ll", "'re", "'ve", "'d", "'m", "'s"}

// TextDetector labels free text using linguistic pattern heuristics.
type TextDetector struct {
	jitter JitterFunc
}

// NewTextDetector constructs a text detector. A nil jitter falls back to
// UniformJitter.
func NewTextDetector(jitter JitterFunc) *TextDetector {
	if jitter == nil {
		jitter = UniformJitter
	}
	return &TextDetector{jitter: jitter}
}

// Analyze scores the given text. Inputs shorter than MinTextLength
// characters are rejected with ErrTextTooShort before any scoring.
func (d *TextDetector) Analyze(text string) (Result, error) {
	if utf8.RuneCountInString(text) < MinTextLength {
		return Result{}, ErrTextTooShort
	}
	ai, human := textIndicators(text)
	return finalize(ai, human, 0.45, d.jitter, 60, 90), nil
}

// textIndicators evaluates the ten linguistic signals and returns the raw
// indicator tallies. Length thresholds count runes, substring counts are
// non-overlapping.
func textIndicators(text string) (aiIndicators, humanIndicators int) {
	lower := strings.ToLower(text)
	runeLen := utf8.RuneCountInString(text)
	sentences := splitSentences(text)

	// 1. Sentence length uniformity. Machine text keeps word counts per
	// sentence unusually even.
	if len(sentences) >= 3 {
		lengths := make([]float64, len(sentences))
		var sum float64
		for i, s := range sentences {
			lengths[i] = float64(len(strings.Fields(s)))
			sum += lengths[i]
		}
		mean := sum / float64(len(lengths))
		var variance float64
		for _, l := range lengths {
			variance += (l - mean) * (l - mean)
		}
		variance /= float64(len(lengths))
		if variance < 20 {
			aiIndicators += 2
		} else {
			humanIndicators++
		}
	}

	// 2. Formal transition phrases.
	formalCount := 0
	for _, phrase := range formalTransitions {
		if strings.Contains(lower, phrase) {
			formalCount++
		}
	}
	if formalCount >= 2 {
		aiIndicators += 2
	}

	// 3. Repeated two-word sentence openers.
	openers := make(map[string]int)
	for _, s := range sentences {
		words := strings.Fields(s)
		if len(words) >= 2 {
			openers[strings.ToLower(words[0]+" "+words[1])]++
		}
	}
	for _, count := range openers {
		if count >= 3 {
			aiIndicators += 2
			break
		}
	}

	// 4. Hedging words, matched as space-delimited substrings.
	hedging := 0
	for _, word := range hedgingWords {
		hedging += strings.Count(lower, " "+word+" ")
	}
	if hedging >= 3 {
		aiIndicators++
	}

	// 5. First-person markers.
	personal := strings.Count(lower, " i ") + strings.Count(lower, " my ") +
		strings.Count(lower, " me ") + strings.Count(lower, "i'm")
	switch {
	case personal >= 2:
		humanIndicators += 2
	case personal == 0 && runeLen > 200:
		aiIndicators++
	}

	// 6. Contractions, case-sensitive against the raw text.
	contractions := 0
	for _, marker := range contractionMarkers {
		contractions += strings.Count(text, marker)
	}
	switch {
	case contractions >= 2:
		humanIndicators += 2
	case contractions == 0 && runeLen > 150:
		aiIndicators++
	}

	// 7. Exclamations and questions.
	if strings.Count(text, "!")+strings.Count(text, "?") >= 2 {
		humanIndicators++
	}

	// 8. List formatting.
	if strings.Count(text, "\n-") >= 2 || strings.Count(text, "\n*") >= 2 ||
		strings.Count(text, "\n1.") >= 1 {
		aiIndicators++
	}

	// 9. Typo-adjacent words. This also matches correct uses of "there"
	// and "their"; kept as-is to stay faithful to the deployed behavior.
	if strings.Contains(lower, " alot ") || strings.Contains(lower, " there ") ||
		strings.Contains(lower, " their ") {
		humanIndicators++
	}

	// 10. Vocabulary diversity.
	tokens := wordTokenRe.FindAllString(lower, -1)
	if len(tokens) > 0 {
		unique := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			unique[token] = struct{}{}
		}
		diversity := float64(len(unique)) / float64(len(tokens))
		if diversity > 0.7 {
			humanIndicators++
		} else if diversity < 0.5 {
			aiIndicators++
		}
	}

	return aiIndicators, humanIndicators
}

// splitSentences breaks text on runs of sentence-ending punctuation and
// drops empty fragments.
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
