// Package config provides configuration loading, defaults, and validation
// for Atlas.
//
// Configuration is loaded from a single YAML file, with unset fields filled
// from defaults and optional environment variable overrides using the
// ATLAS_SECTION_FIELD naming convention.
package config
