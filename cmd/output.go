package cmd

import (
	"fmt"
	"io"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout sememe's CLI output.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (callers pass stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change

// printSection prints a top-level section header, e.g. "=== Data ===".
func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

// printBullet prints a grouped-section bullet, e.g. "● No.3 apple".
func printBullet(w io.Writer, title string) {
	fmt.Fprintf(w, "\n● %s\n", title)
}

// printLine prints one icon line.
//
//	name = "" → "  ✓  msg"
//	name set  → "  ✓  [name] msg"
func printLine(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

func printOK(w io.Writer, name, msg string)   { printLine(w, "✓", name, msg) }
func printErr(w io.Writer, name, msg string)  { printLine(w, "✗", name, msg) }
func printWarn(w io.Writer, name, msg string) { printLine(w, "⚠", name, msg) }
func printSkip(w io.Writer, name, msg string) { printLine(w, "○", name, msg) }
func printMiss(w io.Writer, name, msg string) { printLine(w, "-", name, msg) }
func printInfo(w io.Writer, name, msg string) { printLine(w, "~", name, msg) }
