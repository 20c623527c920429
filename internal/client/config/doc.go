// Package config loads runtime settings for the Daily Notes CLI.
//
// Values are resolved in three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (LoadDefaults).
//  2. A JSON file referenced by -c/-config.
//  3. Command-line flags (-a, -t).
package config
