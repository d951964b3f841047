package engine

import (
	"context"
	"strings"

	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/state"
)

// SetIncome replaces the monthly income.
func (e *Engine) SetIncome(ctx context.Context, income float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.commit(ctx, state.SetIncome(e.state, income), state.KeyBudget)
}

// SetAllocation sets the planned spend for a category.
func (e *Engine) SetAllocation(ctx context.Context, category string, amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := state.SetAllocation(e.state, category, amount)
	if err != nil {
		return err
	}
	return e.commit(ctx, next, state.KeyBudget)
}

// AddCustomCategory adds a user-defined category. Blank names are ignored
// and reported with ok false. A category with the same name is replaced.
func (e *Engine) AddCustomCategory(ctx context.Context, name string) (model.Category, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, existed := e.state.Categories.Get(strings.TrimSpace(name))
	next, c, ok := state.AddCustomCategory(e.state, name)
	if !ok {
		return model.Category{}, false, nil
	}
	if err := e.commit(ctx, next, state.KeyBudget); err != nil {
		return model.Category{}, false, err
	}

	if existed {
		e.logger.Debug("Replaced category", "name", c.Name)
	}
	e.logger.Info("Added category", "name", c.Name, "icon", c.Icon, "color", c.Color)
	return c, true, nil
}

// AddGoal creates a savings goal starting at zero. A blank name or a
// non-positive target is ignored and reported with ok false.
func (e *Engine) AddGoal(ctx context.Context, name string, target float64) (model.Goal, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || target <= 0 {
		return model.Goal{}, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	g := model.Goal{ID: e.newID(), Name: name, Target: target}
	if err := e.commit(ctx, state.AddGoal(e.state, g), state.KeyBudget); err != nil {
		return model.Goal{}, false, err
	}
	return g, true, nil
}

// AdjustGoal moves a goal's progress by delta, never below zero.
func (e *Engine) AdjustGoal(ctx context.Context, id string, delta float64) (model.Goal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := state.AdjustGoal(e.state, id, delta)
	if err != nil {
		return model.Goal{}, err
	}
	if err := e.commit(ctx, next, state.KeyBudget); err != nil {
		return model.Goal{}, err
	}

	g, _ := next.Goal(id)
	if g.IsComplete() {
		e.logger.Info("Goal reached", "goal", g.Name, "target", g.Target)
	}
	return g, nil
}
