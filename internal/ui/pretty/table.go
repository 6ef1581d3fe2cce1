package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // NAME, KIND, HOTKEY, DESCRIPTION
	minNameWidth     = 6
	minKindWidth     = 5
	minHotkeyWidth   = 8
	minDescWidth     = 20
	heavySeparator   = "="
)

// CommandRow is one row of the command table.
type CommandRow struct {
	Name        string
	Kind        string
	Hotkey      string
	Aliases     []string
	Description string
}

// CommandTable formats command listings as a styled table.
type CommandTable struct {
	styles    *Styles
	termWidth int
}

// NewCommandTable creates a new command table formatter.
func NewCommandTable(styles *Styles, termWidth int) *CommandTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &CommandTable{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	name   int
	kind   int
	hotkey int
	desc   int
}

// Format renders rows as a table. Aliases are listed under the description.
func (t *CommandTable) Format(rows []CommandRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
		if len(row.Aliases) > 0 {
			indent := strings.Repeat(" ", 1+widths.name+widths.kind+widths.hotkey+3*tablePadding)
			builder.WriteString(strings.TrimRight(indent+t.styles.Dim.Render("aliases: "+strings.Join(row.Aliases, ", ")), " "))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	return builder.String()
}

func (t *CommandTable) calculateColumnWidths(rows []CommandRow) columnWidths {
	widths := columnWidths{
		name:   minNameWidth,
		kind:   minKindWidth,
		hotkey: minHotkeyWidth,
		desc:   minDescWidth,
	}
	for _, row := range rows {
		widths.name = max(widths.name, len(row.Name))
		widths.kind = max(widths.kind, len(row.Kind))
		widths.hotkey = max(widths.hotkey, len(row.Hotkey))
		widths.desc = max(widths.desc, len(row.Description))
	}

	total := widths.name + widths.kind + widths.hotkey + widths.desc + tablePadding*tableColumnCount
	if total > t.termWidth {
		widths.desc = max(minDescWidth, widths.desc-(total-t.termWidth))
	}
	return widths
}

func (t *CommandTable) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		widths.name, "NAME",
		widths.kind, "KIND",
		widths.hotkey, "HOTKEY",
		"DESCRIPTION",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *CommandTable) formatSeparator(widths columnWidths) string {
	total := widths.name + widths.kind + widths.hotkey + widths.desc + tablePadding*tableColumnCount
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total))
}

func (t *CommandTable) formatRow(row CommandRow, widths columnWidths) string {
	hotkey := row.Hotkey
	if hotkey == "" {
		hotkey = "-"
	}
	return fmt.Sprintf(" %-*s  %-*s  %s%s  %s",
		widths.name, row.Name,
		widths.kind, row.Kind,
		t.styles.Hotkey.Render(hotkey),
		strings.Repeat(" ", widths.hotkey-len(hotkey)),
		truncateString(row.Description, widths.desc),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
