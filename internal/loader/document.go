// Package loader reads verification programs from YAML documents.
//
// A document lists domains, fields, functions, predicates and methods.
// Expressions and statements are nested YAML values; see the package tests
// for complete examples.
package loader

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/predterm/internal/ir"
)

// Error is a problem in a program document, located at a YAML node.
type Error struct {
	Pos ir.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type document struct {
	Domains    []domainDoc    `yaml:"domains"`
	Fields     []fieldDoc     `yaml:"fields"`
	Functions  []functionDoc  `yaml:"functions"`
	Predicates []predicateDoc `yaml:"predicates"`
	Methods    []methodDoc    `yaml:"methods"`
}

type paramDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// located records where a declaration starts.
type located struct {
	line, column int
}

func (l located) at(file string) ir.Position {
	return ir.Position{File: file, Line: l.line, Column: l.column}
}

type domainDoc struct {
	Name       string          `yaml:"name"`
	TypeParams []string        `yaml:"type_params"`
	Functions  []domainFuncDoc `yaml:"functions"`

	loc located
}

func (d *domainDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain domainDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.loc = located{n.Line, n.Column}
	return nil
}

type domainFuncDoc struct {
	Name   string     `yaml:"name"`
	Params []paramDoc `yaml:"params"`
	Result string     `yaml:"result"`

	loc located
}

func (d *domainFuncDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain domainFuncDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.loc = located{n.Line, n.Column}
	return nil
}

type fieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	loc located
}

func (d *fieldDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain fieldDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.loc = located{n.Line, n.Column}
	return nil
}

type functionDoc struct {
	Name     string      `yaml:"name"`
	Params   []paramDoc  `yaml:"params"`
	Result   string      `yaml:"result"`
	Requires []yaml.Node `yaml:"requires"`
	Ensures  []yaml.Node `yaml:"ensures"`
	Body     yaml.Node   `yaml:"body"`

	loc located
}

func (d *functionDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain functionDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.loc = located{n.Line, n.Column}
	return nil
}

type predicateDoc struct {
	Name   string     `yaml:"name"`
	Params []paramDoc `yaml:"params"`
	Body   yaml.Node  `yaml:"body"`

	loc located
}

func (d *predicateDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain predicateDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.loc = located{n.Line, n.Column}
	return nil
}

type methodDoc struct {
	Name     string      `yaml:"name"`
	Params   []paramDoc  `yaml:"params"`
	Returns  []paramDoc  `yaml:"returns"`
	Requires []yaml.Node `yaml:"requires"`
	Ensures  []yaml.Node `yaml:"ensures"`
	Body     yaml.Node   `yaml:"body"`

	loc located
}

func (d *methodDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain methodDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.loc = located{n.Line, n.Column}
	return nil
}

// Load reads the program document at path.
func Load(path string) (*ir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a program document. file is recorded in every position.
func Parse(data []byte, file string) (*ir.Program, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	d := newDecoder(file)
	prog, err := d.program(&doc)
	if err != nil {
		var le *Error
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}
	return prog, nil
}

// present reports whether an optional node was given in the document.
func present(n *yaml.Node) bool {
	return n != nil && n.Kind != 0
}
