// Package config decodes target and probe definitions.
//
// Definitions arrive either as a YAML file (--config) or as single-target
// JSON values on the command line (--target); both share the same schema.
// The pipeline is Load/ParseTarget, then Normalize to apply the probe
// defaults, then Validate, then Build for the runtime types. All
// configuration errors are fatal at load time.
package config
