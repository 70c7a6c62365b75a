package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/config"
	"github.com/kingrea/stackhero/internal/layout"
	"github.com/kingrea/stackhero/internal/phase"
	"github.com/kingrea/stackhero/internal/sequencer"
)

func TestWriteTimeline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTimeline(&buf, sequencer.DefaultSchedule, 2))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[1], "0s")
	assert.Contains(t, lines[1], "CHAOS")
	assert.Contains(t, lines[2], "3s")
	assert.Contains(t, lines[2], "ROUTES")
	assert.Contains(t, lines[3], "5.5s")
	assert.Contains(t, lines[3], "STACK")
	assert.Contains(t, lines[4], "10.5s")
	assert.True(t, strings.HasPrefix(lines[4], "1 "))
	assert.Contains(t, lines[7], "period 10.5s")

	assert.Error(t, writeTimeline(&buf, sequencer.DefaultSchedule, 0))
}

func TestWriteLayout(t *testing.T) {
	table, err := catalog.FromConfig(config.Default().Modules)
	require.NoError(t, err)

	var buf bytes.Buffer
	writeLayout(&buf, layout.DefaultGeometry, table, phase.Stack)
	out := buf.String()
	assert.Contains(t, out, "STACK layout")
	assert.Contains(t, out, "334.0")
	assert.NotContains(t, out, "route ")

	buf.Reset()
	writeLayout(&buf, layout.DefaultGeometry, table, phase.Routes)
	assert.Contains(t, buf.String(), "route mod-6 → mod-0")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("modules: [{label: A, icon: zap, color: rose}]\n"), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("modules: [{icon: zap, color: rose}]\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"validate", good})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "OK: "+good+" (1 modules")

	rootCmd.SetArgs([]string{"validate", bad})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label is required")
}
