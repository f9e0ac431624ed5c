// Package config defines the monitor settings and loads, validates and saves
// them as YAML.
//
// Zero values are replaced by the factory defaults during validation, so a
// config file only needs the fields that differ from them.
package config
