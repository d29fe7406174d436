// Package ruleset implements a declarative, YAML-driven front end for
// seeding the typemap engine (spec §1: the actual directive parser is out
// of scope; this supplements it the way the teacher's internal/ext
// package supplements funxy's core language with a YAML-configured Go
// interop layer). A ruleset file lists rules, apply directives, and clear
// directives; Load drives them straight into a *tm.Store via
// Register/Copy/ApplyMulti/Clear/ClearApplyMulti.
package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/param"
	"github.com/funvibe/typemap/internal/tm"
)

// File is the top-level shape of a *.typemap.yaml ruleset file.
type File struct {
	Typedefs []Typedef `yaml:"typedefs"`
	Rules    []Rule    `yaml:"rules"`
	Applies  []Apply   `yaml:"applies"`
	Clears   []Clear   `yaml:"clears,omitempty"`
}

// Typedef seeds the engine's type-utilities registry before any rule is
// registered, so rules can rely on typedef_resolve fallback (spec §4.4).
type Typedef struct {
	Name       string `yaml:"name"`
	Underlying string `yaml:"underlying"`
}

// Param is one parameter in a rule's signature or an apply's src/dst list.
type Param struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`
}

// Local is a local-variable declaration a rule asks the wrapper builder
// to inject (spec §3 "Local").
type Local struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// KwArg is one keyword-argument pair attached alongside a rule's code.
type KwArg struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Rule declares a single register() call (spec §4.3).
type Rule struct {
	Op     string  `yaml:"op"`
	Parms  []Param `yaml:"parms"`
	Code   string  `yaml:"code"`
	Locals []Local `yaml:"locals,omitempty"`
	Kwargs []KwArg `yaml:"kwargs,omitempty"`
}

// Apply declares a %apply-style copy (spec §4.3 "copy"/"apply_multi").
// A Src list with more than one parameter routes the directive to
// ApplyMulti (which ignores Op) instead of Copy.
type Apply struct {
	Op  string  `yaml:"op"`
	Src []Param `yaml:"src"`
	Dst []Param `yaml:"dst"`
}

// Clear declares a clear()/clear_apply_multi() call (spec §4.3). A
// single-parameter signature clears the code in place under Op (the shell
// node is left behind); a multi-parameter signature instead routes to
// ClearApplyMulti, which ignores Op and matches purely on the last
// parameter's node, arity, and signature suffix.
type Clear struct {
	Op    string  `yaml:"op,omitempty"`
	Parms []Param `yaml:"parms"`
}

func toParamList(ps []Param) *param.Param {
	nodes := make([]*param.Param, len(ps))
	for i, p := range ps {
		nodes[i] = param.New(ctype.T(p.Type), p.Name)
	}
	return param.FromSlice(nodes)
}

func toLocals(ls []Local) []*tm.Local {
	if len(ls) == 0 {
		return nil
	}
	out := make([]*tm.Local, len(ls))
	for i, l := range ls {
		out[i] = &tm.Local{Name: l.Name, Type: ctype.T(l.Type)}
	}
	return out
}

func toKwargs(ks []KwArg) []tm.KwArg {
	if len(ks) == 0 {
		return nil
	}
	out := make([]tm.KwArg, len(ks))
	for i, k := range ks {
		out[i] = tm.KwArg{Name: k.Name, Value: k.Value}
	}
	return out
}

// Apply drives f into s section by section: typedefs first, then register
// rules, then apply directives, then clear directives (matching spec §5's
// ordering guarantee that register calls must precede the copy they
// feed).
func (f *File) Apply(s *tm.Store) {
	for _, td := range f.Typedefs {
		s.Registry().DefineTypedef(td.Name, ctype.T(td.Underlying))
	}
	for _, r := range f.Rules {
		s.Register(r.Op, toParamList(r.Parms), r.Code, toLocals(r.Locals), toKwargs(r.Kwargs))
	}
	for _, a := range f.Applies {
		src, dst := toParamList(a.Src), toParamList(a.Dst)
		if len(a.Src) > 1 {
			if err := s.ApplyMulti(src, dst); err != nil {
				continue
			}
			continue
		}
		if _, err := s.Copy(a.Op, src, dst); err != nil {
			continue
		}
	}
	for _, c := range f.Clears {
		parms := toParamList(c.Parms)
		if len(c.Parms) > 1 {
			s.ClearApplyMulti(parms)
			continue
		}
		s.Clear(c.Op, parms)
	}
}

// Parse decodes raw YAML bytes into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ruleset: parse: %w", err)
	}
	return &f, nil
}

// Load reads path, parses it, and applies it to s.
func Load(path string, s *tm.Store) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return err
	}
	f.Apply(s)
	return nil
}
