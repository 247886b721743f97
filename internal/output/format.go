// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"rem/internal/service"
	"rem/internal/task"
)

const (
	// MarkDone prefixes a completed task.
	MarkDone = "[x]"

	// MarkOpen prefixes an open task.
	MarkOpen = "[ ]"
)

// Formats accepted by FormatDocument.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Task renders a single task as of today.
// Scheduled:  "[ ] pay rent (scheduled: 2024-04-01, due)"
// Daily:      "[x] stretch (daily, streak: 4, longest: 5) (last done: 2024-03-10)"
func Task(t task.Task, today task.Date) (string, error) {
	switch t := t.(type) {
	case *task.Simple:
		return fmt.Sprintf("%s %s", mark(t.Done), normalizeContent(t.Content)), nil

	case *task.Scheduled:
		overdue, err := t.Overdue(today)
		if err != nil {
			return "", fmt.Errorf("cannot format scheduled task %q: %w", t.Content, err)
		}
		status := "due"
		if overdue {
			status = "overdue"
		}
		return fmt.Sprintf("%s %s (scheduled: %s, %s)", mark(t.Done), normalizeContent(t.Content), t.Due, status), nil

	case *task.Recurring:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s (daily, streak: %d", mark(t.CompletedOn(today)), normalizeContent(t.Content), t.Streak)
		if t.Streak < t.LongestStreak {
			fmt.Fprintf(&b, ", longest: %d", t.LongestStreak)
		}
		b.WriteString(")")
		if t.LastMarkedDone != nil {
			fmt.Fprintf(&b, " (last done: %s)", t.LastMarkedDone)
		}
		return b.String(), nil

	default:
		panic(fmt.Sprintf("output: unknown task kind %T", t))
	}
}

// FormatEntry writes a numbered task line.
// Format: "{N:>4}  {TASK}\n" (4-wide right-aligned position, two spaces, task)
func FormatEntry(w io.Writer, e task.Entry, today task.Date) error {
	line, err := Task(e.Task, today)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%4d  %s\n", e.Position, line)
	return nil
}

// FormatEntries writes numbered task lines. Nothing is written if any task
// fails to render.
func FormatEntries(w io.Writer, entries []task.Entry, today task.Date) error {
	var b strings.Builder
	for _, e := range entries {
		if err := FormatEntry(&b, e, today); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatDocument writes the store in its persisted shape as JSON or YAML.
func FormatDocument(w io.Writer, doc service.Document, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func mark(done bool) string {
	if done {
		return MarkDone
	}
	return MarkOpen
}

// normalizeContent normalizes task text for display.
// - Newlines are replaced with spaces
// - Text is NFC-normalized
// - Empty or whitespace-only content becomes "(untitled)"
func normalizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r", " ")
	content = strings.ReplaceAll(content, "\n", " ")
	content = norm.NFC.String(content)

	if strings.TrimSpace(content) == "" {
		return "(untitled)"
	}
	return content
}
