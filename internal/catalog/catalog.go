// Package catalog holds the immutable module table rendered by the hero tile.
package catalog

import (
	"fmt"
	"sort"

	"github.com/kingrea/stackhero/internal/config"
)

// Module is one decorative unit of the tile. Values are copied out of the
// table so callers cannot mutate it.
type Module struct {
	ID          string
	Label       string
	Icon        string
	Color       string
	Description string
	// Index is the module's slot in the stack layout.
	Index int
	// ChaosX, ChaosY and ChaosR place the module in the scattered layout.
	ChaosX float64
	ChaosY float64
	ChaosR float64
}

// Table is the fixed, ordered set of modules. Modules are stored by stack
// index.
type Table struct {
	modules []Module
	byID    map[string]int
}

// FromConfig builds the table from validated configuration entries.
func FromConfig(entries []config.ModuleEntry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog: no modules configured")
	}
	modules := make([]Module, 0, len(entries))
	for i, e := range entries {
		idx := i
		if e.Order != nil {
			idx = *e.Order
		}
		modules = append(modules, Module{
			ID:          e.ID,
			Label:       e.Label,
			Icon:        e.Icon,
			Color:       e.Color,
			Description: e.Description,
			Index:       idx,
			ChaosX:      e.Chaos.X,
			ChaosY:      e.Chaos.Y,
			ChaosR:      e.Chaos.R,
		})
	}
	sort.SliceStable(modules, func(a, b int) bool { return modules[a].Index < modules[b].Index })
	t := &Table{modules: modules, byID: make(map[string]int, len(modules))}
	for i, m := range modules {
		if m.Index != i {
			return nil, fmt.Errorf("catalog: stack order must cover 0..%d, missing %d", len(modules)-1, i)
		}
		if _, dup := t.byID[m.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate module id %q", m.ID)
		}
		t.byID[m.ID] = i
	}
	return t, nil
}

// Len returns the number of modules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.modules)
}

// At returns the module in stack slot i.
func (t *Table) At(i int) (Module, bool) {
	if t == nil || i < 0 || i >= len(t.modules) {
		return Module{}, false
	}
	return t.modules[i], true
}

// Lookup finds a module by its stable key.
func (t *Table) Lookup(id string) (Module, bool) {
	if t == nil {
		return Module{}, false
	}
	i, ok := t.byID[id]
	if !ok {
		return Module{}, false
	}
	return t.modules[i], true
}

// Modules returns a copy of the table in stack order.
func (t *Table) Modules() []Module {
	if t == nil {
		return nil
	}
	out := make([]Module, len(t.modules))
	copy(out, t.modules)
	return out
}
