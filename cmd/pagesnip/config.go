package main

import (
	"fmt"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/selection"
)

// Run executes the config get command.
func (c *ConfigGetCmd) Run(deps *Dependencies) error {
	value, err := deps.Settings.GetSetting(deps.Ctx, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, value)
	return nil
}

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	if c.Key == pagesnip.SettingDebounceMillis {
		if _, err := selection.ParseDebounce(c.Value); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
			return err
		}
	}

	if err := deps.Settings.SetSetting(deps.Ctx, c.Key, c.Value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s = %s\n", c.Key, c.Value)
	return nil
}
