// Package diag defines the diagnostic model shared by the front end, the
// binder and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: numeric identifier with a stable string form (codes.go). Semantic
//     codes keep the numbers fxc uses, so X3004 here is X3004 there.
//   - Message: short human text.
//   - Primary: the source.Span the squiggle goes under.
//   - Notes: optional secondary spans ("previous declaration is here").
//
// # Producing diagnostics
//
// Phases talk to a Reporter rather than to a Bag directly:
//
//	diag.ReportError(r, diag.SemaUndeclaredIdentifier, span,
//		fmt.Sprintf("undeclared identifier '%s'", name)).Emit()
//
// BagReporter stores into a Bag, DedupReporter drops exact repeats and
// NopReporter discards everything.
//
// # Ordering
//
// A Bag keeps emission order. Bag.Sort gives positional order for output;
// semantic model queries return the unsorted order.
//
// Rendering lives in internal/diagfmt. FormatShortDiagnostics is the one
// formatter kept here because tests across the tree compare against it.
package diag
