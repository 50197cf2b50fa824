// Package config provides configuration management for the ulink-setup CLI.
//
// This package handles loading and validating the installer's own
// configuration file. It is distinct from the host tool configs that the
// install package merges into.
//
// # Configuration File
//
// The configuration file lives at $XDG_CONFIG_HOME/ulink-setup/config.yaml:
//
//	version: 1
//	skill_source: /opt/ulink/skills/setup-ulink  # optional
//	picker: checkbox                             # checkbox, fuzzy or lines
//	disabled_platforms:
//	  - antigravity
//
// Every key can be overridden with a ULINK_SETUP_ environment variable, for
// example ULINK_SETUP_PICKER=lines. Command-line flags take precedence over
// both.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if errs := config.Validate(cfg, registry.IDs()); len(errs) > 0 {
//	    return errs[0]
//	}
package config
