// Package config loads batch job files for the celpaint command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/celpaint"
)

// ErrUnknownExtension is returned for job files that are neither TOML nor YAML.
var ErrUnknownExtension = errors.New("config: unknown job file extension")

// Step kinds.
const (
	KindColorSwap  = "colorswap"
	KindGuideCheck = "guidecheck"
	KindAlphaCheck = "alphacheck"
	KindUndo       = "undo"
	KindRedo       = "redo"
)

// Scope names.
const (
	ScopeCurrent = "current"
	ScopeAll     = "all"
)

// Job describes one batch run: which frames to load, what to do with them
// and where to write the result.
type Job struct {
	// Inputs are frame paths or glob patterns, relative to the job file.
	Inputs []string `toml:"inputs" yaml:"inputs"`

	// Output is the export directory, relative to the job file.
	Output string `toml:"output" yaml:"output"`

	// Format is the export encoder: png, jpeg, gif, bmp or tiff.
	Format string `toml:"format" yaml:"format"`

	// UndoLimit caps the undo history. 0 means unlimited.
	UndoLimit int `toml:"undo_limit" yaml:"undo_limit"`

	// Steps run in order.
	Steps []Step `toml:"steps" yaml:"steps"`

	dir string
}

// Step is one operation of a job.
type Step struct {
	Kind  string `toml:"kind" yaml:"kind"`
	Scope string `toml:"scope" yaml:"scope"`

	// Frame selects the current frame before the step runs.
	Frame *int `toml:"frame" yaml:"frame"`

	// colorswap
	Rules []SwapRule `toml:"rules" yaml:"rules"`

	// guidecheck; no guides means the default red, blue and green guides.
	Guides    []GuideRule `toml:"guides" yaml:"guides"`
	Radius    int         `toml:"radius" yaml:"radius"`
	Thickness int         `toml:"thickness" yaml:"thickness"`

	// alphacheck
	CrossColor string `toml:"cross_color" yaml:"cross_color"`
	CrossSize  int    `toml:"cross_size" yaml:"cross_size"`

	// undo, redo
	Count int `toml:"count" yaml:"count"`
}

// SwapRule is a color swap rule with colors written as hex strings.
type SwapRule struct {
	Source    string    `toml:"source" yaml:"source"`
	Dest      string    `toml:"dest" yaml:"dest"`
	Tolerance Tolerance `toml:"tolerance" yaml:"tolerance"`
	Enabled   *bool     `toml:"enabled" yaml:"enabled"`
}

// GuideRule is a guide check rule with colors written as hex strings.
type GuideRule struct {
	Source    string    `toml:"source" yaml:"source"`
	Mark      string    `toml:"mark" yaml:"mark"`
	Tolerance Tolerance `toml:"tolerance" yaml:"tolerance"`
	Enabled   *bool     `toml:"enabled" yaml:"enabled"`
}

// Tolerance is a per-channel match tolerance. It decodes from a number or a
// string; anything that is not an integer in [0, 255] becomes 0.
type Tolerance uint8

// UnmarshalTOML implements toml.Unmarshaler.
func (t *Tolerance) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		*t = Tolerance(celpaint.ClampTolerance(int(max(min(v, 256), -1))))
	case string:
		*t = Tolerance(celpaint.ParseTolerance(v))
	default:
		*t = 0
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tolerance) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*t = 0
		return nil
	}
	*t = Tolerance(celpaint.ParseTolerance(node.Value))
	return nil
}

// DefaultJob returns a job with no inputs or steps that exports PNG files
// into "out".
func DefaultJob() *Job {
	return &Job{
		Output: "out",
		Format: string(celpaint.FormatPNG),
	}
}

// Load reads the job file at path. The format is chosen by extension:
// .toml, or .yaml and .yml. The job is validated before it is returned.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}

	job := DefaultJob()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), job); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, job); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, filepath.Ext(path))
	}

	job.dir = filepath.Dir(path)
	job.applyDefaults()

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return job, nil
}

// applyDefaults fills step fields left at zero.
func (j *Job) applyDefaults() {
	def := celpaint.DefaultAlphaCheckParams()
	for i := range j.Steps {
		s := &j.Steps[i]
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		s.Scope = strings.ToLower(strings.TrimSpace(s.Scope))
		if s.Scope == "" {
			s.Scope = ScopeAll
		}
		if s.Radius == 0 {
			s.Radius = celpaint.DefaultGuideRadius
		}
		if s.Thickness == 0 {
			s.Thickness = celpaint.DefaultGuideThickness
		}
		if s.CrossColor == "" {
			s.CrossColor = def.CrossColor.Hex()
		}
		if s.CrossSize == 0 {
			s.CrossSize = def.CrossSize
		}
		if s.Count == 0 {
			s.Count = 1
		}
	}
}

// Dir returns the directory relative paths of the job are resolved against.
func (j *Job) Dir() string {
	if j.dir == "" {
		return "."
	}
	return j.dir
}

func (j *Job) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(j.Dir(), p)
}

// OutputDir returns the export directory.
func (j *Job) OutputDir() string {
	return j.resolve(j.Output)
}

// ExportFormat returns the parsed export format.
func (j *Job) ExportFormat() (celpaint.Format, error) {
	return celpaint.ParseFormat(j.Format)
}

// ExpandInputs resolves every input and expands glob patterns. The result is
// sorted and free of duplicates; patterns matching nothing contribute
// nothing.
func (j *Job) ExpandInputs() ([]string, error) {
	var paths []string
	for _, in := range j.Inputs {
		p := j.resolve(in)
		if !strings.ContainsAny(in, "*?[") {
			paths = append(paths, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", in, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// ScopeValue returns the scope of the step.
func (s *Step) ScopeValue() celpaint.Scope {
	return celpaint.ScopeOf(s.Scope == ScopeAll)
}

// SwapRules converts the step's color swap rules.
func (s *Step) SwapRules() ([]celpaint.ColorSwapRule, error) {
	rules := make([]celpaint.ColorSwapRule, 0, len(s.Rules))
	for i, r := range s.Rules {
		src, err := celpaint.ParseHex(r.Source)
		if err != nil {
			return nil, fmt.Errorf("rules[%d].source: %w", i, err)
		}
		dest, err := celpaint.ParseHex(r.Dest)
		if err != nil {
			return nil, fmt.Errorf("rules[%d].dest: %w", i, err)
		}
		rules = append(rules, celpaint.ColorSwapRule{
			Source:    src,
			Dest:      dest,
			Enabled:   enabled(r.Enabled),
			Tolerance: uint8(r.Tolerance),
		})
	}
	return rules, nil
}

// GuideRules converts the step's guide rules. Without explicit guides the
// default guide list is used.
func (s *Step) GuideRules() ([]celpaint.GuideCheckRule, error) {
	if len(s.Guides) == 0 {
		return celpaint.NewGuideList().Rules(), nil
	}
	rules := make([]celpaint.GuideCheckRule, 0, len(s.Guides))
	for i, g := range s.Guides {
		src, err := celpaint.ParseHex(g.Source)
		if err != nil {
			return nil, fmt.Errorf("guides[%d].source: %w", i, err)
		}
		mark := celpaint.Yellow
		if g.Mark != "" {
			if mark, err = celpaint.ParseHex(g.Mark); err != nil {
				return nil, fmt.Errorf("guides[%d].mark: %w", i, err)
			}
		}
		rules = append(rules, celpaint.GuideCheckRule{
			Source:    src,
			Mark:      mark,
			Tolerance: uint8(g.Tolerance),
			Enabled:   enabled(g.Enabled),
		})
	}
	return rules, nil
}

// AlphaParams converts the step's alpha check settings.
func (s *Step) AlphaParams() (celpaint.AlphaCheckParams, error) {
	c, err := celpaint.ParseHex(s.CrossColor)
	if err != nil {
		return celpaint.AlphaCheckParams{}, fmt.Errorf("cross_color: %w", err)
	}
	return celpaint.AlphaCheckParams{
		CrossColor: c,
		CrossSize:  s.CrossSize,
		Thickness:  s.Thickness,
		ApplyToAll: s.Scope == ScopeAll,
	}, nil
}

// String describes the step for logs.
func (s *Step) String() string {
	if s.Kind == KindUndo || s.Kind == KindRedo {
		return s.Kind + " x" + strconv.Itoa(s.Count)
	}
	return s.Kind + " (" + s.Scope + ")"
}

func enabled(b *bool) bool {
	return b == nil || *b
}
