// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

// FormatItem formats an item line.
// Format: "{ID:>4}  {NAME}\n" (4-wide right-aligned id, two spaces, name)
func FormatItem(w io.Writer, item service.Item) {
	fmt.Fprintf(w, "%4d  %s\n", item.ID, normalizeName(item.Name))
}

// FormatList formats a list line, same layout as FormatItem.
func FormatList(w io.Writer, list service.List) {
	fmt.Fprintf(w, "%4d  %s\n", list.ID, normalizeName(list.Name))
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, listID int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "list %d\n", listID)
	fmt.Fprintln(w, ListSeparator)
}

// FormatUser formats the signed-in user.
// Format: "{FIRST} {LAST} <{EMAIL}>\n", or just the email when no name is set.
func FormatUser(w io.Writer, user service.User) {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		fmt.Fprintln(w, user.Email)
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", name, user.Email)
}

// normalizeName normalizes an item or list name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
