// ABOUTME: This file holds terminal output helpers for stewardctl
// ABOUTME: Notifications and tables render with color and borderless layout

package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/TeBabaEvent/eventclient/utils"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

// terminalSink renders service notifications on stderr.
type terminalSink struct{}

func (terminalSink) Notify(level utils.NotificationLevel, message string) {
	switch level {
	case utils.NotifySuccess:
		okColor.Fprintln(os.Stderr, message)
	case utils.NotifyError:
		failColor.Fprintln(os.Stderr, message)
	case utils.NotifyWarning:
		warnColor.Fprintln(os.Stderr, message)
	default:
		infoColor.Fprintln(os.Stderr, message)
	}
}

// newTable creates a borderless left-aligned table.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	table.Header(headers)
	return table
}
