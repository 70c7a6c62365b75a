package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/config"
)

func newSelection(t *testing.T) *Selection {
	t.Helper()
	table, err := catalog.FromConfig(config.Default().Modules)
	require.NoError(t, err)
	return New(table)
}

func TestSelectReplaceAndClear(t *testing.T) {
	sel := newSelection(t)
	_, ok := sel.Current()
	assert.False(t, ok)
	assert.Equal(t, -1, sel.Index())

	require.NoError(t, sel.Select(2))
	m, ok := sel.Current()
	require.True(t, ok)
	assert.Equal(t, "mod-2", m.ID)

	require.NoError(t, sel.Select(5))
	m, _ = sel.Current()
	assert.Equal(t, "mod-5", m.ID, "a new selection replaces the old one")
	assert.Equal(t, 5, sel.Index())

	sel.Clear()
	assert.False(t, sel.Active())
	_, ok = sel.Current()
	assert.False(t, ok)
	sel.Clear()
	assert.False(t, sel.Active())
}

func TestSelectRejectsUnknownModules(t *testing.T) {
	sel := newSelection(t)
	require.NoError(t, sel.Select(1))

	assert.Error(t, sel.Select(7))
	assert.Error(t, sel.Select(-1))
	assert.Error(t, sel.SelectID("mod-42"))
	assert.Equal(t, 1, sel.Index(), "failed selects keep the previous selection")

	require.NoError(t, sel.SelectID("mod-4"))
	assert.Equal(t, 4, sel.Index())
}
