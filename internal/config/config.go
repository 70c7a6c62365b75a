// internal/config/config.go
//
// This package loads the hero tile configuration: phase timings, the layout
// geometry and the static module table. A default document is compiled in;
// a YAML file may override any part of it.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDescription is shown in the details modal for modules that do not
// carry their own description.
const DefaultDescription = `This module provides a comprehensive solution for its designated function within the GTMStack ecosystem. It integrates seamlessly with other stack components to deliver actionable insights and streamline operations.

By leveraging this component, teams can achieve unprecedented alignment, accelerate key processes, and drive predictable outcomes. The system is designed for scalability and can be customized to fit unique business requirements.`

const defaultConfigYAML = `# stackhero configuration
version: 1
title: From Chaos to Clarity
caption: GTMStack Strategic Visualization

timing:
  chaos: 3000ms
  routes: 2500ms
  stack: 5000ms
  stagger: 80ms
  fps: 30

geometry:
  canvas: 600
  stack_width: 320
  stack_height: 48
  stack_top: 160
  stack_gap: 10
  stack_radius: 8
  chaos_size: 44
  chaos_radius: 12
  anchor: {x: 300, y: 300}

modules:
  - {label: Unified Data Layer,   icon: database, color: blue,    chaos: {x: 100, y: 140, r: 12}}
  - {label: Global Reach Network, icon: globe,    color: violet,  chaos: {x: 440, y: 110, r: -8}}
  - {label: Deep Integrations,    icon: share,    color: emerald, chaos: {x: 70,  y: 340, r: 35}}
  - {label: GTM Automation,       icon: zap,      color: amber,   chaos: {x: 480, y: 380, r: -15}}
  - {label: Stack Orchestration,  icon: layers,   color: cyan,    chaos: {x: 180, y: 480, r: 8}}
  - {label: Precision Targeting,  icon: target,   color: rose,    chaos: {x: 340, y: 70,  r: -12}}
  - {label: Predictive Analytics, icon: chart,    color: purple,  chaos: {x: 460, y: 240, r: 25}}
`

// Timing holds the phase hold durations and animation pacing.
type Timing struct {
	Chaos   time.Duration `yaml:"chaos"`
	Routes  time.Duration `yaml:"routes"`
	Stack   time.Duration `yaml:"stack"`
	Stagger time.Duration `yaml:"stagger"`
	FPS     int           `yaml:"fps"`
}

// Point is a coordinate in the square design space.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Geometry captures the fixed box sizes and anchors of both layouts.
type Geometry struct {
	Canvas      float64 `yaml:"canvas"`
	StackWidth  float64 `yaml:"stack_width"`
	StackHeight float64 `yaml:"stack_height"`
	StackTop    float64 `yaml:"stack_top"`
	StackGap    float64 `yaml:"stack_gap"`
	StackRadius float64 `yaml:"stack_radius"`
	ChaosSize   float64 `yaml:"chaos_size"`
	ChaosRadius float64 `yaml:"chaos_radius"`
	Anchor      Point   `yaml:"anchor"`
}

// Placement is a module's scattered position and rotation in degrees.
type Placement struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	R float64 `yaml:"r"`
}

// ModuleEntry declares one row of the module table.
type ModuleEntry struct {
	ID          string    `yaml:"id,omitempty"`
	Label       string    `yaml:"label"`
	Icon        string    `yaml:"icon"`
	Color       string    `yaml:"color"`
	Description string    `yaml:"description,omitempty"`
	Order       *int      `yaml:"order,omitempty"`
	Chaos       Placement `yaml:"chaos"`
}

// Config models a stackhero YAML document.
type Config struct {
	Version  int           `yaml:"version"`
	Title    string        `yaml:"title"`
	Caption  string        `yaml:"caption"`
	LogFile  string        `yaml:"log_file,omitempty"`
	Timing   Timing        `yaml:"timing"`
	Geometry Geometry      `yaml:"geometry"`
	Modules  []ModuleEntry `yaml:"modules"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	cfg, err := Parse([]byte(defaultConfigYAML))
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults are invalid: %v", err))
	}
	return cfg
}

// DefaultYAML returns the compiled-in document, useful as a starting point
// for a custom configuration file.
func DefaultYAML() string {
	return defaultConfigYAML
}

// Load reads the configuration at path. An empty path yields the defaults.
// Values missing from the file fall back to the defaults, except for the
// module table which is replaced wholesale when present.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %s does not exist", path)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes a YAML document on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Title == "" {
		c.Title = "From Chaos to Clarity"
	}
	if c.Caption == "" {
		c.Caption = "GTMStack Strategic Visualization"
	}
	t := &c.Timing
	if t.Chaos == 0 {
		t.Chaos = 3000 * time.Millisecond
	}
	if t.Routes == 0 {
		t.Routes = 2500 * time.Millisecond
	}
	if t.Stack == 0 {
		t.Stack = 5000 * time.Millisecond
	}
	if t.Stagger == 0 {
		t.Stagger = 80 * time.Millisecond
	}
	if t.FPS == 0 {
		t.FPS = 30
	}
	g := &c.Geometry
	setDefault(&g.Canvas, 600)
	setDefault(&g.StackWidth, 320)
	setDefault(&g.StackHeight, 48)
	setDefault(&g.StackTop, 160)
	setDefault(&g.StackGap, 10)
	setDefault(&g.StackRadius, 8)
	setDefault(&g.ChaosSize, 44)
	setDefault(&g.ChaosRadius, 12)
	if g.Anchor == (Point{}) {
		g.Anchor = Point{X: g.Canvas / 2, Y: g.Canvas / 2}
	}
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func (c *Config) normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Caption = strings.TrimSpace(c.Caption)
	c.LogFile = strings.TrimSpace(c.LogFile)
	for i := range c.Modules {
		m := &c.Modules[i]
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			m.ID = fmt.Sprintf("mod-%d", i)
		}
		m.Label = strings.TrimSpace(m.Label)
		m.Icon = strings.ToLower(strings.TrimSpace(m.Icon))
		m.Color = strings.ToLower(strings.TrimSpace(m.Color))
		m.Description = strings.TrimSpace(m.Description)
		if m.Description == "" {
			m.Description = DefaultDescription
		}
		if m.Order == nil {
			order := i
			m.Order = &order
		}
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	t := c.Timing
	if t.Chaos < 0 || t.Routes < 0 || t.Stack < 0 {
		return fmt.Errorf("timing: phase durations must be positive")
	}
	if t.Stagger < 0 {
		return fmt.Errorf("timing: stagger must not be negative")
	}
	if t.FPS < 1 || t.FPS > 120 {
		return fmt.Errorf("timing: fps must be between 1 and 120, got %d", t.FPS)
	}
	g := c.Geometry
	if g.Canvas <= 0 || g.StackWidth <= 0 || g.StackHeight <= 0 || g.ChaosSize <= 0 {
		return fmt.Errorf("geometry: sizes must be positive")
	}
	if g.StackWidth > g.Canvas {
		return fmt.Errorf("geometry: stack_width %.0f exceeds canvas %.0f", g.StackWidth, g.Canvas)
	}
	if g.StackGap < 0 {
		return fmt.Errorf("geometry: stack_gap must not be negative")
	}
	if len(c.Modules) == 0 {
		return fmt.Errorf("at least one module is required")
	}
	ids := make(map[string]int, len(c.Modules))
	orders := make(map[int]string, len(c.Modules))
	for i, m := range c.Modules {
		if err := m.validate(len(c.Modules)); err != nil {
			return fmt.Errorf("modules[%d]: %w", i, err)
		}
		if prev, ok := ids[m.ID]; ok {
			return fmt.Errorf("modules[%d]: id %q already used by modules[%d]", i, m.ID, prev)
		}
		ids[m.ID] = i
		if prev, ok := orders[*m.Order]; ok {
			return fmt.Errorf("modules[%d]: order %d already used by %s", i, *m.Order, prev)
		}
		orders[*m.Order] = m.ID
	}
	return nil
}

func (m ModuleEntry) validate(count int) error {
	if m.Label == "" {
		return fmt.Errorf("label is required")
	}
	if m.Icon == "" {
		return fmt.Errorf("icon is required")
	}
	if m.Color == "" {
		return fmt.Errorf("color is required")
	}
	if m.Order != nil && (*m.Order < 0 || *m.Order >= count) {
		return fmt.Errorf("order %d out of range [0,%d)", *m.Order, count)
	}
	return nil
}
