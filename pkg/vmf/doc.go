// Package vmf parses and serializes the Valve Map Format block structure.
// The format is a tree of named blocks holding ordered "key" "value" pairs
// and nested child blocks. The package has no geometric knowledge; it
// preserves every key and block it does not understand.
package vmf
