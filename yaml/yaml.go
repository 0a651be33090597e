// Package yaml loads site preset rules from YAML files.
//
// A rule file is a list of rules:
//
//	- name: docs
//	  patterns: [docs.example.com]
//	  selectors: [main .content, article]
//	  priority: 5
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagesnip"
	"gopkg.in/yaml.v3"
)

// file accepts either a bare list or a document with a top-level rules key.
type file struct {
	Rules []*pagesnip.PresetRule `yaml:"rules"`
}

// LoadPresetRules decodes and validates the rules in r.
func LoadPresetRules(r io.Reader) ([]*pagesnip.PresetRule, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "invalid preset file: %v", err)
	}

	var rules []*pagesnip.PresetRule
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&rules); err != nil {
			return nil, pagesnip.Errorf(pagesnip.EINVALID, "invalid preset file: %v", err)
		}
	case yaml.MappingNode:
		var f file
		if err := root.Decode(&f); err != nil {
			return nil, pagesnip.Errorf(pagesnip.EINVALID, "invalid preset file: %v", err)
		}
		rules = f.Rules
	default:
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "preset file must contain a list of rules")
	}

	for i, rule := range rules {
		if rule == nil {
			return nil, pagesnip.Errorf(pagesnip.EINVALID, "preset %d is empty", i)
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// LoadPresetFile reads rules from the file at path.
func LoadPresetFile(path string) ([]*pagesnip.PresetRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset file: %w", err)
	}
	defer f.Close()

	return LoadPresetRules(f)
}
