// Package config loads pricecalc settings.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/pricecalc/config.toml or an
//     explicit path
//  3. PRICECALC_* environment variables, e.g. PRICECALC_MARKUP_INDENT=4
//  4. overrides passed by the caller, usually from command-line flags
package config
