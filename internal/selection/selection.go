// Package selection tracks which module, if any, the details modal shows.
package selection

import (
	"fmt"

	"github.com/kingrea/stackhero/internal/catalog"
)

// Selection is a nullable reference into a catalog table. It stores the
// module's stack index, never a copy of the module.
type Selection struct {
	table *catalog.Table
	index int
	set   bool
}

// New returns an empty selection over table.
func New(table *catalog.Table) *Selection {
	return &Selection{table: table}
}

// Select makes the module in stack slot index the selection, replacing any
// previous one.
func (s *Selection) Select(index int) error {
	if _, ok := s.table.At(index); !ok {
		return fmt.Errorf("selection: unknown module index %d", index)
	}
	s.index = index
	s.set = true
	return nil
}

// SelectID selects by stable key.
func (s *Selection) SelectID(id string) error {
	m, ok := s.table.Lookup(id)
	if !ok {
		return fmt.Errorf("selection: unknown module %q", id)
	}
	return s.Select(m.Index)
}

// Clear drops the selection. Clearing an empty selection is a no-op.
func (s *Selection) Clear() {
	s.index = 0
	s.set = false
}

// Active reports whether a module is selected.
func (s *Selection) Active() bool {
	return s.set
}

// Index returns the selected stack slot, or -1.
func (s *Selection) Index() int {
	if !s.set {
		return -1
	}
	return s.index
}

// Current resolves the selection against the table.
func (s *Selection) Current() (catalog.Module, bool) {
	if !s.set {
		return catalog.Module{}, false
	}
	return s.table.At(s.index)
}
