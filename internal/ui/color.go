package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	genStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle    = lipgloss.NewStyle().Faint(true)
	staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

func GenLine(w io.Writer, path string) {
	fmt.Fprintln(w, genStyle.Render("gen")+"  "+path)
}

func ErrLine(w io.Writer, err error) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+err.Error())
}

func OkLine(w io.Writer, label string) {
	fmt.Fprintln(w, okStyle.Render("ok")+"   "+label)
}

// StatusLine prints a ledger freshness line; status is "ok", "stale" or "missing".
func StatusLine(w io.Writer, status, label string) {
	var tag string
	switch status {
	case "ok":
		tag = okStyle.Render("ok     ")
	case "stale":
		tag = staleStyle.Render("stale  ")
	default:
		tag = errStyle.Render("missing")
	}
	fmt.Fprintln(w, tag+"  "+label)
}

func SummaryLine(w io.Writer, generated, total int) {
	fmt.Fprintf(w, "generated %d of %d definitions\n", generated, total)
}

func ShowField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), value)
}

// ListRow prints one ledger row padded to the given column widths.
func ListRow(w io.Writer, day int, testName, source, output string, nameWidth, sourceWidth int) {
	fmt.Fprintf(w, "%s  %-*s  %-*s  %s\n",
		labelStyle.Render(fmt.Sprintf("day %02d", day)),
		nameWidth, testName,
		sourceWidth, source,
		okStyle.Render(output))
}
