package ui

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tcheinen/bandwhich/internal/probe"
)

// Rect is the rectangular region a table draws into.
type Rect struct {
	Width  int
	Height int
}

// Table holds one dataset formatted for display: a title, the full set of
// column names, rows with one pre-formatted cell per full column, and the
// width breakpoints tuned to the dataset. Tables are rebuilt from a fresh
// snapshot every tick and never retained across frames.
type Table struct {
	title       string
	columnNames []string
	rows        [][]string
	breakpoints []breakpoint
}

func displayUpAndDown(up, down float64) string {
	return fmt.Sprintf("%s / %s", probe.HumanBytesPerSec(up), probe.HumanBytesPerSec(down))
}

func displayIPOrHost(ip netip.Addr, ipToHost map[netip.Addr]string) string {
	if host, ok := ipToHost[ip]; ok && host != "" {
		return host
	}
	return ip.String()
}

func displayConnection(c probe.Connection, ipToHost map[netip.Addr]string, iface string) string {
	return fmt.Sprintf("<%s>:%d => %s:%d (%s)",
		iface,
		c.Local.Port(),
		displayIPOrHost(c.Remote.Addr(), ipToHost),
		c.Remote.Port(),
		c.Proto,
	)
}

// NewConnectionsTable builds the per-connection utilization table.
func NewConnectionsTable(snap probe.Snapshot, ipToHost map[netip.Addr]string) *Table {
	entries := make([]rankedEntry[probe.Connection], 0, len(snap.Connections))
	for conn, data := range snap.Connections {
		entries = append(entries, rankedEntry[probe.Connection]{key: conn, metrics: data})
	}
	sortByBandwidth(entries)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		data := snap.Connections[e.key]
		rows = append(rows, []string{
			displayConnection(e.key, ipToHost, data.InterfaceName),
			data.ProcessName,
			displayUpAndDown(data.UpRate, data.DownRate),
		})
	}

	return &Table{
		title:       "Utilization by connection",
		columnNames: []string{"Connection", "Process", "Rate Up / Down"},
		rows:        rows,
		breakpoints: []breakpoint{
			{0, columnData{ColumnCountTwo, []int{20, 23}}},
			{70, columnData{ColumnCountThree, []int{30, 12, 23}}},
			{100, columnData{ColumnCountThree, []int{60, 12, 23}}},
			{140, columnData{ColumnCountThree, []int{100, 12, 23}}},
		},
	}
}

// NewProcessesTable builds the per-process utilization table.
func NewProcessesTable(snap probe.Snapshot) *Table {
	entries := make([]rankedEntry[string], 0, len(snap.Processes))
	for name, data := range snap.Processes {
		entries = append(entries, rankedEntry[string]{key: name, metrics: data})
	}
	sortByBandwidth(entries)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		data := snap.Processes[e.key]
		rows = append(rows, []string{
			e.key,
			strconv.Itoa(data.ConnectionCount),
			displayUpAndDown(data.UpRate, data.DownRate),
		})
	}

	return &Table{
		title:       "Utilization by process name",
		columnNames: []string{"Process", "Connections", "Rate Up / Down"},
		rows:        rows,
		breakpoints: []breakpoint{
			{0, columnData{ColumnCountTwo, []int{12, 23}}},
			{50, columnData{ColumnCountThree, []int{12, 12, 23}}},
			{100, columnData{ColumnCountThree, []int{40, 12, 23}}},
			{140, columnData{ColumnCountThree, []int{40, 12, 23}}},
		},
	}
}

// NewRemoteAddressesTable builds the per-remote-address utilization table.
func NewRemoteAddressesTable(snap probe.Snapshot, ipToHost map[netip.Addr]string) *Table {
	entries := make([]rankedEntry[netip.Addr], 0, len(snap.RemoteAddresses))
	for addr, data := range snap.RemoteAddresses {
		entries = append(entries, rankedEntry[netip.Addr]{key: addr, metrics: data})
	}
	sortByBandwidth(entries)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		data := snap.RemoteAddresses[e.key]
		rows = append(rows, []string{
			displayIPOrHost(e.key, ipToHost),
			strconv.Itoa(data.ConnectionCount),
			displayUpAndDown(data.UpRate, data.DownRate),
		})
	}

	return &Table{
		title:       "Utilization by remote address",
		columnNames: []string{"Remote Address", "Connections", "Rate Up / Down"},
		rows:        rows,
		breakpoints: []breakpoint{
			{0, columnData{ColumnCountTwo, []int{12, 23}}},
			{70, columnData{ColumnCountThree, []int{30, 12, 23}}},
			{100, columnData{ColumnCountThree, []int{60, 12, 23}}},
			{140, columnData{ColumnCountThree, []int{100, 12, 23}}},
		},
	}
}

// FilterRows keeps only rows where some cell contains the query,
// case-insensitive. An empty query keeps everything.
func (t *Table) FilterRows(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	kept := t.rows[:0]
	for _, row := range t.rows {
		for _, cell := range row {
			if containsFold(cell, query) {
				kept = append(kept, row)
				break
			}
		}
	}
	t.rows = kept
}

// Render draws the table as a titled, bordered block sized to rect. The
// layout is resolved from the region width, column names and cells are
// projected down to the active column count, and each cell is truncated to
// its column's resolved width.
func (t *Table) Render(rect Rect) string {
	count, widths, spacing := resolveColumns(t.breakpoints, rect.Width)

	innerW := max(0, rect.Width-4)
	box := boxStyle.Width(max(0, rect.Width-2)).Height(max(0, rect.Height-2))

	if len(widths) == 0 {
		return box.Render(titleStyle.Render(clipLine(t.title, innerW)))
	}

	gap := strings.Repeat(" ", spacing)

	formatRow := func(cells []string) string {
		projected := projectCells(count, cells)
		padded := make([]string, len(projected))
		for i, cell := range projected {
			padded[i] = padRight(truncateMiddle(cell, widths[i]), widths[i])
		}
		return clipLine(strings.Join(padded, gap), innerW)
	}

	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, titleStyle.Render(clipLine(t.title, innerW)))
	lines = append(lines, headerStyle.Render(formatRow(t.columnNames)))

	maxRows := max(0, rect.Height-4) // borders, title, header
	for _, row := range t.rows {
		if len(lines)-2 >= maxRows {
			break
		}
		lines = append(lines, formatRow(row))
	}

	return box.Render(strings.Join(lines, "\n"))
}

// helpers

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// clipLine hard-clips a plain (unstyled) line to the given display width.
func clipLine(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > w {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}

func containsFold(s, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}
