package password

import "github.com/nbutton23/zxcvbn-go"

// ZxcvbnScorer scores passwords with the zxcvbn estimator (0-4).
type ZxcvbnScorer struct{}

// NewZxcvbnScorer creates the default strength scorer.
func NewZxcvbnScorer() *ZxcvbnScorer {
	return &ZxcvbnScorer{}
}

// Score returns the zxcvbn strength score for the password.
func (s *ZxcvbnScorer) Score(password string) int {
	return zxcvbn.PasswordStrength(password, nil).Score
}
