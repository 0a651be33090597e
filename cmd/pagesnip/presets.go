package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/yaml"
)

// Run executes the presets list command.
func (c *PresetsListCmd) Run(deps *Dependencies) error {
	rules, err := deps.Presets.FindPresetRules(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	if len(rules) == 0 {
		fmt.Fprintln(deps.Stdout, "No preset rules found. Use 'pagesnip presets add' to create one.")
		return nil
	}

	for _, r := range rules {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d  %s  %s\n",
			r.ID, r.Name, r.Priority, strings.Join(r.Patterns, ","), strings.Join(r.Selectors, ", "))
	}
	return nil
}

// Run executes the presets add command.
func (c *PresetsAddCmd) Run(deps *Dependencies) error {
	rule := &pagesnip.PresetRule{
		Name:      c.Name,
		Patterns:  c.Patterns,
		Selectors: c.Selectors,
		Priority:  c.Priority,
	}
	if err := deps.Presets.CreatePresetRule(deps.Ctx, rule); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added preset %q (%s)\n", rule.Name, rule.ID)
	return nil
}

// Run executes the presets delete command.
func (c *PresetsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Presets.DeletePresetRule(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted preset %s\n", c.ID)
	return nil
}

// Run executes the presets import command.
func (c *PresetsImportCmd) Run(deps *Dependencies) error {
	rules, err := yaml.LoadPresetFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	for _, rule := range rules {
		if err := deps.Presets.CreatePresetRule(deps.Ctx, rule); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %d preset rules from %s\n", len(rules), c.File)
	return nil
}
