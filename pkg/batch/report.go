package batch

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatReport formats a Report for terminal output.
func FormatReport(report *Report) string {
	var builder strings.Builder

	builder.WriteString("\nSection Build Report\n")
	builder.WriteString(strings.Repeat("═", 60) + "\n")
	builder.WriteString(fmt.Sprintf("Run: %s\n", report.RunID))
	builder.WriteString(fmt.Sprintf("Attempted: %d | Succeeded: %d | Skipped: %d | Failed: %d (%.1f%% built)\n",
		report.TotalAttempted, report.Succeeded, report.Skipped, report.Failed, report.SuccessRate()))
	builder.WriteString(strings.Repeat("─", 60) + "\n")

	for _, entry := range report.Entries {
		status := entry.Status
		switch status {
		case StatusBuilt:
			status = "[OK]"
		case StatusSkipped:
			status = "[SKIP]"
		case StatusFailed:
			status = "[FAIL]"
		}

		line := fmt.Sprintf("  %-8s %-12s", status, sectionLabel(entry))
		if entry.Nodes > 0 {
			line += fmt.Sprintf(" (%d nodes)", entry.Nodes)
		}
		if len(entry.Unresolved) > 0 {
			line += fmt.Sprintf(" unresolved footnotes: %s", strings.Join(entry.Unresolved, ", "))
		}
		if entry.Error != "" {
			line += fmt.Sprintf(" %s error: %s", entry.Category, entry.Error)
		}
		builder.WriteString(line + "\n")
	}

	failures := report.Failures()
	if len(failures) > 0 {
		categories := make([]string, 0, len(failures))
		for category := range failures {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		builder.WriteString(strings.Repeat("─", 60) + "\n")
		for _, category := range categories {
			builder.WriteString(fmt.Sprintf("  %-16s %d\n", category+":", len(failures[category])))
		}
	}

	builder.WriteString(fmt.Sprintf("\nTotal nodes: %d | Duration: %s\n", report.TotalNodes, report.Duration))
	return builder.String()
}

func sectionLabel(entry Entry) string {
	if entry.Section != "" {
		return "§ " + entry.Section
	}
	return fmt.Sprintf("#%d", entry.Index)
}

// FormatReportJSON formats a Report as JSON.
func FormatReportJSON(report *Report) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
