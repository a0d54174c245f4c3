package domain

import "math/rand/v2"

var answers = []string{
	"Yes ʘ‿ʘ",
	"No ಠ_ಠ",
	"Sure (｡◕‿◕｡)",
	"Without a doubt, yes ♥‿♥",
	"Yeh, oke ( ˇ෴ˇ )",
	"no... (╯°□°）╯︵ ┻━┻",
	"no... 눈_눈",
	"senpai, pls no ;-;",
	"Nah ⊙_⊙",
	"Yas!!",
}

// DecisionResult represents a yes/no verdict for a question.
type DecisionResult struct {
	Answer string
}

// NewDecisionResult picks a random verdict.
func NewDecisionResult() *DecisionResult {
	return &DecisionResult{
		Answer: answers[rand.IntN(len(answers))],
	}
}
