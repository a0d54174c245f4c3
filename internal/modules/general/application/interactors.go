package application

import (
	"time"

	"github.com/kvisuru/musicbox/internal/modules/general/domain"
)

// PingInteractor handles the ping use case.
type PingInteractor struct{}

// NewPingInteractor creates a new PingInteractor.
func NewPingInteractor() *PingInteractor {
	return &PingInteractor{}
}

// Execute performs the ping operation and returns the result.
func (p *PingInteractor) Execute(latency time.Duration) *domain.PingResult {
	return domain.NewPingResult(latency)
}

// GreetingInteractor handles the hello use case.
type GreetingInteractor struct{}

// NewGreetingInteractor creates a new GreetingInteractor.
func NewGreetingInteractor() *GreetingInteractor {
	return &GreetingInteractor{}
}

// Execute returns a greeting for the mentioned user.
func (g *GreetingInteractor) Execute(mention string) *domain.GreetingResult {
	return domain.NewGreetingResult(mention)
}

// DecisionInteractor handles the decide use case.
type DecisionInteractor struct{}

// NewDecisionInteractor creates a new DecisionInteractor.
func NewDecisionInteractor() *DecisionInteractor {
	return &DecisionInteractor{}
}

// Execute returns a yes/no verdict.
func (d *DecisionInteractor) Execute() *domain.DecisionResult {
	return domain.NewDecisionResult()
}
