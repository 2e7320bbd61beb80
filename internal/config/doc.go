// Package config provides application configuration loaded from environment
// variables (FORMD_* prefix) and YAML files, plus the externally-supplied
// thesis and mapping tables consumed by the pipeline stages. The thesis and
// mappings are immutable once loaded: they are passed by value into stage
// constructors rather than referenced as global state.
package config
