package experts

import (
	"fmt"
	"log/slog"
	"sync"
)

// Panel is the fixed set of five evaluators.
type Panel struct {
	members []Evaluator
	log     *slog.Logger
}

// NewPanel assembles the five-member panel.
func NewPanel(log *slog.Logger) *Panel {
	if log == nil {
		log = slog.Default()
	}
	return &Panel{
		members: []Evaluator{
			NewUXDesigner(),
			NewProductDesigner(),
			NewConversionStrategist(),
			NewSEOSpecialist(),
			NewBrandAnalyst(),
		},
		log: log,
	}
}

// Run evaluates all members concurrently and returns exactly five
// evaluations in fixed member order. A member that fails or panics is
// substituted with its neutral default; the panel itself never fails.
func (p *Panel) Run(in Inputs) []Evaluation {
	out := make([]Evaluation, len(p.members))

	var wg sync.WaitGroup
	for i, m := range p.members {
		wg.Add(1)
		go func(i int, m Evaluator) {
			defer wg.Done()
			out[i] = p.evaluate(m, in)
		}(i, m)
	}
	wg.Wait()

	return out
}

// evaluate runs one member with panic and error isolation.
func (p *Panel) evaluate(m Evaluator, in Inputs) (ev Evaluation) {
	agent := m.Agent()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("experts: evaluator panicked",
				"agent", string(agent), "panic", fmt.Sprint(r))
			ev = Neutral(agent)
		}
	}()

	ev, err := m.Evaluate(in)
	if err != nil {
		p.log.Error("experts: evaluator failed",
			"agent", string(agent), "error", err)
		return Neutral(agent)
	}
	return ev
}
