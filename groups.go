package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/config"
)

// writeGroupTable prints one line per sender group: the day it falls on,
// the sender, how many messages it holds and the time span it covers.
func writeGroupTable(w io.Writer, groups []chat.DateGroup, now time.Time, cfg config.Config) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Day", "Sender", "Messages", "First", "Last"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, dg := range groups {
		day := chat.DateSeparatorLabel(dg.Date, now, cfg.Labels(), cfg.DateFormat)
		for _, g := range dg.Groups {
			sender := g.SenderName
			if g.IsCurrentUser {
				sender += " (you)"
			}
			first := g.Messages[0].Timestamp
			last := g.Messages[len(g.Messages)-1].Timestamp
			table.Append([]string{
				day,
				sender,
				strconv.Itoa(len(g.Messages)),
				chat.FormatTime(first, cfg.TimeFormat),
				chat.FormatTime(last, cfg.TimeFormat),
			})
		}
	}
	table.Render()

	_, err := fmt.Fprintf(w, "\n%s in %s\n",
		formatCount(chat.TotalMessageCount(groups), "message"),
		formatCount(len(groups), "day"))
	return err
}
