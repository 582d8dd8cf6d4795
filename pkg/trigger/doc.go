// Package trigger synthesizes trigger_multiple brush entities over
// classified faces and exposes the single pipeline entry point, Generate.
package trigger
