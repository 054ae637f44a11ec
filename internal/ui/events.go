package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// EventPrinter writes one styled line per motion event
type EventPrinter struct {
	w io.Writer
}

// NewEventPrinter creates a printer writing to w
func NewEventPrinter(w io.Writer) *EventPrinter {
	return &EventPrinter{w: w}
}

func (p *EventPrinter) NotifyMotion(ev input.MotionEvent) error {
	_, err := fmt.Fprintln(p.w, FormatEvent(ev))
	return err
}

// FormatEvent renders a single event line
func FormatEvent(ev input.MotionEvent) string {
	action := ev.Action.String()
	if ev.Action == input.ActionPointerDown || ev.Action == input.ActionPointerUp {
		action = fmt.Sprintf("%s(%d)", action, ev.ActionIndex)
	}

	var sb strings.Builder
	sb.WriteString(TimeStyle.Render(fmt.Sprintf("%10s", ev.EventTime)))
	sb.WriteString("  ")
	action = fmt.Sprintf("%-15s", action)
	if ev.Classification == input.ClassificationNone {
		sb.WriteString(CursorActionStyle.Render(action))
	} else {
		sb.WriteString(ActionStyle.Render(action))
	}

	if ev.Classification != input.ClassificationNone {
		sb.WriteString(" " + ClassStyle.Render(ev.Classification.String()))
	}
	if ev.ActionButton != 0 {
		sb.WriteString(" " + Muted("button=") + ev.ActionButton.String())
	}
	if ev.ButtonState != 0 {
		sb.WriteString(" " + Muted("buttons=") + ev.ButtonState.String())
	}
	if ev.Flags&input.FlagMomentumEnd != 0 {
		sb.WriteString(" " + WarningStyle.Render("momentum-end"))
	}

	pointers := make([]string, len(ev.Pointers))
	for i, ptr := range ev.Pointers {
		pointers[i] = fmt.Sprintf("%d:(%.1f,%.1f)", ptr.ID, ptr.Coords.Pos.X, ptr.Coords.Pos.Y)
	}
	sb.WriteString(" " + strings.Join(pointers, " "))

	if ev.Action == input.ActionScroll && len(ev.Pointers) > 0 {
		s := ev.Pointers[0].Coords.Scroll
		sb.WriteString(Muted(fmt.Sprintf(" scroll=(%.2f,%.2f)", s.X, s.Y)))
	}
	return sb.String()
}

// FormatDump boxes a converter state dump
func FormatDump(title, dump string) string {
	body := Bold(title) + "\n" + strings.TrimRight(dump, "\n")
	return BoxStyle.Render(body)
}

// FormatRanges renders the advertised axis ranges as an aligned table
func FormatRanges(ranges []input.MotionRange) string {
	width := 0
	for _, r := range ranges {
		if n := len(r.Axis.String()); n > width {
			width = n
		}
	}
	var sb strings.Builder
	sb.WriteString(Bold("Motion ranges") + "\n")
	for _, r := range ranges {
		line := strings.TrimPrefix(r.String(), r.Axis.String()+": ")
		fmt.Fprintf(&sb, "  %s%s\n", SubtitleStyle.Render(fmt.Sprintf("%-*s", width+2, r.Axis)), Muted(line))
	}
	return sb.String()
}

// PrintReplaySummary prints the outcome of a replay
func PrintReplaySummary(steps, events int, tracePath string) {
	fmt.Println()
	fmt.Println(Success("Replay complete"))
	fmt.Printf("  %s %d\n", Muted("Steps:"), steps)
	fmt.Printf("  %s %d\n", Muted("Events:"), events)
	if tracePath != "" {
		fmt.Printf("  %s %s\n", Muted("Trace:"), tracePath)
	}
	fmt.Println()
}
