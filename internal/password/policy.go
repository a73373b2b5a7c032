package password

import "github.com/ddrozdov/gatehouse-server/internal/model"

// DefaultMinScore is the policy default on the scorer's 0-4 scale.
const DefaultMinScore = 3

// Scorer rates password strength as an integer score.
type Scorer interface {
	Score(password string) int
}

// Policy rejects candidate passwords scoring below a minimum. It holds
// no state and has no side effects.
type Policy struct {
	scorer   Scorer
	minScore int
}

// NewPolicy creates a policy around the given scorer. A non-positive
// minScore falls back to DefaultMinScore.
func NewPolicy(scorer Scorer, minScore int) *Policy {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Policy{scorer: scorer, minScore: minScore}
}

// Check returns ErrWeakPassword if the password scores below the
// configured minimum. The score itself is not surfaced to callers.
func (p *Policy) Check(password string) error {
	if password == "" {
		return model.ErrWeakPassword
	}
	if p.scorer.Score(password) < p.minScore {
		return model.ErrWeakPassword
	}
	return nil
}
