// Package version contains information on the current version of the program.
// It is split from the main program so cmd/kushc's --version flag and any
// future caller can read it without importing main.
package version

// Current is the version kushc reports for --version. Bump it by hand;
// there is no release automation here.
const Current = "0.1.0"
