// Package cli parses the command line of the synthesis tool into an
// app.Config and defines the process exit codes: 2 for usage errors, 1 for
// runtime failures and 3 for unrealizable problems when requested.
package cli
