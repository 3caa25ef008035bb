package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bumpkit/pkg/corpus"
	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleChanged = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// maxListedFailures caps the failed records printed after a pass.
const maxListedFailures = 20

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next action to stderr, keeping stdout
// free for command output.
func printNextStep(description, cmd string) {
	fmt.Fprintln(os.Stderr, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Reports
// =============================================================================

// printReport prints the outcome of a corpus pass.
func printReport(r *corpus.Report, dryRun bool) {
	verb := "updated"
	if dryRun {
		verb = "would update"
	}
	msg := fmt.Sprintf("%s: %s records, %s %s", r.Step,
		StyleNumber.Render(fmt.Sprint(r.Processed())), verb,
		styleChanged.Render(fmt.Sprint(r.Changed())))
	if r.Failed() == 0 {
		printSuccess("%s", msg)
	} else {
		printError("%s, %s failed", msg, styleFailed.Render(fmt.Sprint(r.Failed())))
	}
	printStats(r)

	for i, f := range r.Failures() {
		if i == maxListedFailures {
			printDetail("... and %d more", r.Failed()-maxListedFailures)
			break
		}
		if code := bkerrors.GetCode(f.Err); code != "" {
			printDetail("%s: [%s] %s", f.Path, code, bkerrors.UserMessage(f.Err))
			continue
		}
		printDetail("%s: %v", f.Path, f.Err)
	}
}

// printStats prints the remaining counters of a pass on a single line.
func printStats(r *corpus.Report) {
	parts := []string{
		fmt.Sprintf("%d unchanged", r.Processed()-r.Changed()-r.Skipped()-r.Failed()),
		fmt.Sprintf("%d skipped", r.Skipped()),
		r.Duration().Round(1e6).String(),
		"run " + r.RunID.String()[:8],
	}
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}
