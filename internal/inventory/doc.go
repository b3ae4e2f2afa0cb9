// Package inventory provides the data model shared by the tick engine.
//
// This package contains types and their validation only. The engine, the
// rules compiler and the stock file codecs import inventory; inventory
// imports nothing internal.
//
// Key design constraints:
//   - Quality and sellIn are plain ints; sellIn may go negative after expiry
//   - Category is a tag set once at classification time, never re-derived
//     from the name on every tick
//   - Config and Catalog are read-only once handed to an engine
//   - All JSON/YAML/TOML tags use snake_case
package inventory
