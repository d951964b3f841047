// Package categories holds the budget categories, their allocations, and
// the icon and color derivation for user-defined ones.
package categories

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

// UnknownIcon marks a category name that is not in the store.
const UnknownIcon = "❔"

var builtins = []model.Category{
	{ID: "housing", Name: "Housing", Color: "from-blue-500 to-blue-600", Icon: "🏠"},
	{ID: "food", Name: "Food", Color: "from-green-500 to-emerald-600", Icon: "🍽️"},
	{ID: "transportation", Name: "Transportation", Color: "from-yellow-500 to-orange-500", Icon: "🚗"},
	{ID: "utilities", Name: "Utilities", Color: "from-purple-500 to-violet-600", Icon: "⚡"},
	{ID: "entertainment", Name: "Entertainment", Color: "from-pink-500 to-rose-500", Icon: "🎬"},
	{ID: "healthcare", Name: "Healthcare", Color: "from-red-500 to-pink-500", Icon: "🏥"},
	{ID: "savings", Name: "Savings", Color: "from-indigo-500 to-purple-600", Icon: "💎"},
	{ID: "other", Name: model.DefaultCategory, Color: "from-gray-500 to-slate-600", Icon: "📦"},
}

// Store maps category names to their allocation and display metadata.
// Methods that change the store return a new value and leave the receiver
// untouched.
type Store struct {
	byName map[string]model.Category
	order  []string
}

// Defaults returns a store seeded with the built-in categories, all
// allocated zero.
func Defaults() Store {
	s := Store{byName: make(map[string]model.Category, len(builtins))}
	for _, c := range builtins {
		c.Gradient = GradientFor(c.Color)
		s.byName[c.Name] = c
		s.order = append(s.order, c.Name)
	}
	return s
}

// IsBuiltin reports whether name is one of the predefined categories.
func IsBuiltin(name string) bool {
	for _, c := range builtins {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (s Store) clone() Store {
	out := Store{
		byName: make(map[string]model.Category, len(s.byName)+1),
		order:  make([]string, len(s.order), len(s.order)+1),
	}
	for k, v := range s.byName {
		out.byName[k] = v
	}
	copy(out.order, s.order)
	return out
}

// Len returns the number of categories.
func (s Store) Len() int {
	return len(s.order)
}

// Names returns every category name, built-ins first and then custom
// categories in the order they were added.
func (s Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// CustomNames returns the user-defined category names in insertion order.
func (s Store) CustomNames() []string {
	var out []string
	for _, name := range s.order {
		if s.byName[name].IsCustom {
			out = append(out, name)
		}
	}
	return out
}

// All returns every category in Names order.
func (s Store) All() []model.Category {
	out := make([]model.Category, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Get returns the category stored under name.
func (s Store) Get(name string) (model.Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Lookup returns the category for display. Names that are not in the store
// come back as a placeholder so callers can render them without checking.
func (s Store) Lookup(name string) model.Category {
	if c, ok := s.byName[name]; ok {
		return c
	}
	return model.Category{
		Name:     name,
		Icon:     UnknownIcon,
		Color:    "from-gray-500 to-slate-600",
		Gradient: GradientFor("from-gray-500 to-slate-600"),
	}
}

// AddCustom adds a user-defined category with a derived icon and color.
// Blank names are ignored. A category that already has the name is replaced.
func (s Store) AddCustom(name string) (Store, model.Category, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return s, model.Category{}, false
	}

	color := ColorFor(trimmed)
	c := model.Category{
		Name:     trimmed,
		Icon:     IconFor(trimmed),
		Color:    color,
		Gradient: GradientFor(color),
		IsCustom: true,
	}

	out := s.clone()
	if _, exists := out.byName[trimmed]; !exists {
		out.order = append(out.order, trimmed)
	}
	out.byName[trimmed] = c
	return out, c, true
}

// SetAllocation records the planned spend for a category.
func (s Store) SetAllocation(name string, amount float64) (Store, error) {
	c, ok := s.byName[name]
	if !ok {
		return s, fmt.Errorf("set allocation for %q: %w", name, common.ErrUnknownCategory)
	}
	out := s.clone()
	c.Allocated = amount
	out.byName[name] = c
	return out, nil
}

// MarshalJSON writes the categories as an ordered list.
func (s Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.All())
}

// UnmarshalJSON restores a store written by MarshalJSON. Built-ins missing
// from the input are added back at their allocation of zero.
func (s *Store) UnmarshalJSON(data []byte) error {
	var list []model.Category
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode categories: %w", err)
	}

	restored := Defaults()
	for _, c := range list {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		if _, exists := restored.byName[c.Name]; !exists {
			restored.order = append(restored.order, c.Name)
		}
		if c.Gradient == "" && c.Color != "" {
			c.Gradient = GradientFor(c.Color)
		}
		restored.byName[c.Name] = c
	}
	*s = restored
	return nil
}
