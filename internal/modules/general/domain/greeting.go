package domain

import "math/rand/v2"

var greetings = []string{
	"Hewo °‿‿°",
	"Moin",
	"Heyy ( ˘ ³˘)♥",
}

// GreetingResult represents a greeting aimed at a user.
type GreetingResult struct {
	Message string
}

// NewGreetingResult picks a random greeting for the mentioned user.
func NewGreetingResult(mention string) *GreetingResult {
	greeting := greetings[rand.IntN(len(greetings))]
	return &GreetingResult{
		Message: greeting + " " + mention,
	}
}
