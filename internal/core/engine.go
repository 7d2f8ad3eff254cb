package core

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Applyable is one reconcilable item prepared by the config layer.
// Apply must honor sess.DryRun: report the pending change without
// executing it.
type Applyable interface {
	ID() string
	Condition() string
	Apply(sess *Session) (Result, error)
}

// Change is a pending action discovered during planning.
type Change struct {
	ID      string
	Message string
}

// PlanResult summarizes a dry pass over all items.
type PlanResult struct {
	Changes []Change
	Skipped int // items whose `when:` condition was false
}

// Engine walks the configured items strictly sequentially: one lookup and
// at most one mutating call per item, no concurrency (the cluster is the
// sole source of truth and nothing coordinates parallel writers).
type Engine struct {
	Session *Session
}

// NewEngine creates a new engine bound to a session.
func NewEngine(sess *Session) *Engine {
	return &Engine{Session: sess}
}

// Run applies every item in order and renders a status line for each.
// A failed item does not stop the run; the error count is returned at the
// end so the CLI can exit non-zero.
func (e *Engine) Run(items []Applyable) error {
	errCount := 0

	for _, item := range items {
		ok, err := EvaluateCondition(item.Condition(), e.Session)
		if err != nil {
			pterm.Error.Printfln("[%s] condition error: %v", item.ID(), err)
			errCount++
			continue
		}
		if !ok {
			pterm.Info.Printfln("[%s] skipped (condition not met)", item.ID())
			continue
		}

		result, err := item.Apply(e.Session)
		if err != nil {
			pterm.Error.Printfln("[%s] failed: %v", item.ID(), err)
			errCount++
			continue
		}

		if result.Changed {
			pterm.Success.Printfln("[%s] %s", item.ID(), result.Message)
		} else {
			pterm.Printfln("%s [%s] %s", pterm.FgGray.Sprint("ok"), item.ID(), result.Message)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("encountered %d errors during execution", errCount)
	}
	return nil
}

// Plan performs a read-only pass and collects the changes that Run would
// make. The session's dry-run flag is forced for the duration.
func (e *Engine) Plan(items []Applyable) (*PlanResult, error) {
	prevDryRun := e.Session.DryRun
	e.Session.DryRun = true
	defer func() { e.Session.DryRun = prevDryRun }()

	plan := &PlanResult{}
	for _, item := range items {
		ok, err := EvaluateCondition(item.Condition(), e.Session)
		if err != nil {
			return nil, fmt.Errorf("condition error for %s: %w", item.ID(), err)
		}
		if !ok {
			plan.Skipped++
			continue
		}

		result, err := item.Apply(e.Session)
		if err != nil {
			return nil, err
		}
		if result.Changed {
			plan.Changes = append(plan.Changes, Change{ID: item.ID(), Message: result.Message})
		}
	}
	return plan, nil
}
