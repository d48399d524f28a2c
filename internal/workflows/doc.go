// Package workflows implements the operations behind vellum CLI commands.
//
// Each workflow is a function taking a context and an Options struct and
// returning a Result struct, keeping command files thin: they translate
// flags into options and results into formatted output. Workflows return
// sentinel errors from internal/errors so the CLI layer can map each
// failure to exactly one user-facing message.
package workflows
