// Package detector implements the pattern-based scoring used to label
// content as human-written ("real") or machine-made ("ai-generated").
// Both scorers are stateless: each call tallies independent signals,
// turns the tally ratio into a probability, perturbs it with jitter and
// maps it to a label plus a clamped confidence value.
package detector

// Labels returned by both scorers.
const (
	LabelAIGenerated = "ai-generated"
	LabelReal        = "real"
)

// Result is the outcome of a single analysis.
type Result struct {
	Status     string `json:"status"`
	Confidence int    `json:"confidence"`
}

// finalize converts raw indicator tallies into a labeled result.
// inconclusive is the probability used when no signal fired at all.
// Confidence is truncated, not rounded, and clamped to [minConf, maxConf].
func finalize(aiScore, humanScore int, inconclusive float64, jitter JitterFunc, minConf, maxConf int) Result {
	total := aiScore + humanScore
	probability := inconclusive
	if total > 0 {
		probability = float64(aiScore) / float64(total)
	}

	probability += jitter()
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}

	isAI := probability > 0.5
	confidence := int(probability * 100)
	if !isAI {
		confidence = int((1 - probability) * 100)
	}
	if confidence < minConf {
		confidence = minConf
	}
	if confidence > maxConf {
		confidence = maxConf
	}

	status := LabelReal
	if isAI {
		status = LabelAIGenerated
	}
	return Result{Status: status, Confidence: confidence}
}
