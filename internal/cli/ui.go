package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// styleTitle for section headings.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleHighlight for emphasized values.
	styleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// styleDim for secondary/muted text.
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
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

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printSection prints a styled section heading.
func printSection(title string) {
	fmt.Println()
	fmt.Println(styleTitle.Render("===== " + title + " ====="))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Metric Value Rendering
// =============================================================================

// inlineArrayLimit is the largest scalar array rendered on one line.
const inlineArrayLimit = 10

// renderValue formats an arbitrary metric payload for terminal display.
// Scalars render on one line; small arrays of scalars render inline;
// larger arrays and objects render across multiple indented lines.
// Object keys are sorted for deterministic output.
func renderValue(v any, indent int) string {
	pad := strings.Repeat(" ", indent)

	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	case string:
		return fmt.Sprintf("%q", val)
	case []any:
		switch {
		case len(val) == 0:
			return "[]"
		case len(val) == 1:
			return "[ " + renderValue(val[0], 0) + " ]"
		case len(val) <= inlineArrayLimit && isScalar(val[0]):
			parts := make([]string, len(val))
			for i, e := range val {
				parts[i] = renderValue(e, 0)
			}
			return "[ " + strings.Join(parts, ", ") + " ]"
		default:
			var b strings.Builder
			b.WriteString("[\n")
			for i, e := range val {
				b.WriteString(pad + "  " + renderValue(e, indent+2))
				if i < len(val)-1 {
					b.WriteString(",")
				}
				b.WriteString("\n")
			}
			b.WriteString(pad + "]")
			return b.String()
		}
	case map[string]any:
		if len(val) == 0 {
			return "{}"
		}
		ks := make([]string, 0, len(val))
		for k := range val {
			ks = append(ks, k)
		}
		sort.Strings(ks)

		var b strings.Builder
		b.WriteString("{\n")
		for i, k := range ks {
			b.WriteString(fmt.Sprintf("%s  %q: %s", pad, k, renderValue(val[k], indent+2)))
			if i < len(ks)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(pad + "}")
		return b.String()
	default:
		// float64 or other types reachable when a caller bypassed the
		// number-preserving decoder.
		return fmt.Sprintf("%v", val)
	}
}

// isScalar reports whether v renders on a single line by itself.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, json.Number, string, float64, int:
		return true
	}
	return false
}
