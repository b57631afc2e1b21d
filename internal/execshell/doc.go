// Package execshell provides structured helpers for invoking git.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions pagepush uses to run
// git commands in a testable manner.
package execshell
