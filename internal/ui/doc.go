// Package ui provides semantic text formatting for CLI output.
//
// Formatters pair a color (for capable terminals) with a plain-text
// decoration (for NO_COLOR environments), so output stays readable in both.
// Commands compose them into final messages:
//
//	msg := ui.Success.Sprint("✓") + " Scene exported\n" +
//	    ui.Info.Sprint("→") + " Share it: " + ui.Link.Sprint(result.URL)
//
// The NO_COLOR environment variable (https://no-color.org/) and fatih/color's
// own terminal detection are both respected.
package ui
