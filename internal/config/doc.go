// Package config loads, normalizes, and validates filmstrip's TOML
// configuration. Loading never fails on a missing file; defaults apply and
// the resolved path is reported so the CLI can tell users where a config
// would be read from.
package config
