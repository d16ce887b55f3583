// Package logs reads the storyshort log file for `storyshort logs`.
//
// Last returns the final lines with bounded memory, and Follow polls for
// appended lines until its context ends, restarting from the top when the
// file is truncated or replaced.
package logs
