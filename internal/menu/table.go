package menu

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteTable writes one row per failing job.
func WriteTable(w io.Writer, r *Report) error {
	table := tablewriter.NewWriter(w)
	if r.Failed() {
		table.Header("Error")
		for _, line := range r.Error {
			table.Append([]string{line})
		}
		return table.Render()
	}

	table.Header("Host", "Job", "Record")
	for _, h := range r.Hosts {
		for _, j := range h.Jobs {
			table.Append([]string{h.Host, j.ID, j.Record})
		}
	}
	table.Footer("Total", strconv.Itoa(r.Total), "")
	return table.Render()
}
