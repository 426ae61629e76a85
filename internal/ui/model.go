package ui

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tcheinen/bandwhich/internal/probe"
)

const (
	headerH = 1
	footerH = 1

	// side-by-side bottom row needs this much terminal width
	wideLayoutMin = 120

	sparkW = 24
)

type tickMsg time.Time
type snapMsg probe.Snapshot
type errMsg struct{ error }

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model drives the dashboard: it samples the monitor on a fixed tick and
// redraws the three utilization tables into the current terminal size.
type Model struct {
	w, h int

	sampler  *probe.Sampler
	resolver *probe.Resolver
	interval time.Duration

	snap     probe.Snapshot
	ipToHost map[netip.Addr]string
	err      error

	paused   bool
	rateHist []float64

	search    textinput.Model
	searching bool
	query     string
}

// NewModel wires the sampler and optional resolver into a dashboard. A nil
// resolver disables hostname display and shows raw addresses.
func NewModel(sampler *probe.Sampler, resolver *probe.Resolver, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}

	si := textinput.New()
	si.Placeholder = "filter connections / processes / addresses"
	si.Prompt = "/ "
	si.CharLimit = 64

	return Model{
		sampler:  sampler,
		resolver: resolver,
		interval: interval,
		ipToHost: map[netip.Addr]string{},
		search:   si,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sampleCmd(), tickEvery(m.interval))
}

func (m Model) sampleCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.sampler.Sample()
		if err != nil {
			return errMsg{err}
		}
		return snapMsg(snap)
	}
}

func (m Model) bodyHeight() int {
	return max(6, m.h-headerH-footerH)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.search.Width = max(10, m.w-4)
		return m, nil

	case tickMsg:
		// keep sampling while paused so counters stay current on resume
		return m, tea.Batch(m.sampleCmd(), tickEvery(m.interval))

	case snapMsg:
		snap := probe.Snapshot(msg)
		if m.resolver != nil {
			addrs := make([]netip.Addr, 0, len(snap.RemoteAddresses))
			for addr := range snap.RemoteAddresses {
				addrs = append(addrs, addr)
			}
			m.resolver.Request(addrs)
		}
		if m.paused {
			return m, nil
		}
		m.snap = snap
		m.err = nil
		if m.resolver != nil {
			m.ipToHost = m.resolver.Hosts()
		}
		m.rateHist = append(m.rateHist, snap.TotalUpRate+snap.TotalDownRate)
		m.rateHist = probe.ClampHistory(m.rateHist, max(sparkW, min(200, m.w/2)))
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.query = strings.TrimSpace(m.search.Value())
				m.searching = false
				m.search.Blur()
				return m, nil
			case "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			case "ctrl+u":
				m.search.SetValue("")
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		case "/":
			m.searching = true
			m.search.Focus()
			m.search.SetValue(m.query)
			return m, nil
		case "ctrl+u":
			m.query = ""
			m.search.SetValue("")
			return m, nil
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.w <= 0 || m.h <= 0 {
		return ""
	}

	header := m.renderHeader()
	body := m.renderTables()

	footer := subtleStyle.Render("Keys: space pause • / filter • Ctrl+u clear • q quit")
	if m.query != "" {
		footer = subtleStyle.Render("Filter: ") + titleStyle.Render(m.query) + subtleStyle.Render("  (/ to change, Ctrl+u to clear)")
	}
	if m.searching {
		footer = m.search.View()
	}
	if m.err != nil {
		footer = errStyle.Render("Error: " + m.err.Error())
	}
	footer = ansiSafeTruncate(oneLine(footer), m.w)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer) + "\x1b[0m"
}

func (m Model) renderHeader() string {
	left := titleStyle.Render("bandwhich")
	if m.snap.Hostname != "" {
		left += " " + subtleStyle.Render(m.snap.Hostname)
	}
	if m.paused {
		left += " " + pausedStyle.Padding(0, 1).Render("PAUSED")
	}

	right := fmt.Sprintf("%s ↑ %s ↓  %s",
		humanize.IBytes(m.snap.TotalUploaded),
		humanize.IBytes(m.snap.TotalDownloaded),
		Spark(m.rateHist, sparkW),
	)

	rem := m.w - lipgloss.Width(left)
	if rem < 0 {
		rem = 0
	}
	return lipgloss.NewStyle().Width(m.w).Render(left + padTo(rem, right))
}

// renderTables lays the three tables out for the current terminal size: wide
// terminals get connections on top with processes and remote addresses side
// by side below, narrow terminals stack all three full-width.
func (m Model) renderTables() string {
	conns := NewConnectionsTable(m.snap, m.ipToHost)
	procs := NewProcessesTable(m.snap)
	remotes := NewRemoteAddressesTable(m.snap, m.ipToHost)
	for _, t := range []*Table{conns, procs, remotes} {
		t.FilterRows(m.query)
	}

	bodyH := m.bodyHeight()

	if m.w >= wideLayoutMin {
		topH := bodyH / 2
		botH := bodyH - topH
		halfW := m.w / 2
		top := conns.Render(Rect{Width: m.w, Height: topH})
		bottom := lipgloss.JoinHorizontal(lipgloss.Top,
			procs.Render(Rect{Width: halfW, Height: botH}),
			remotes.Render(Rect{Width: m.w - halfW, Height: botH}),
		)
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	h := bodyH / 3
	return lipgloss.JoinVertical(lipgloss.Left,
		conns.Render(Rect{Width: m.w, Height: h}),
		procs.Render(Rect{Width: m.w, Height: h}),
		remotes.Render(Rect{Width: m.w, Height: bodyH - 2*h}),
	)
}

// helpers

func padTo(width int, s string) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ansiSafeTruncate clips a styled line to a display width without cutting
// escape sequences in half.
func ansiSafeTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var out strings.Builder
	visible := 0

	for i := 0; i < len(s); {
		if s[i] == 0x1b { // ESC
			// CSI: ESC [ ... 0x40-0x7E
			if i+1 < len(s) && s[i+1] == '[' {
				j := i + 2
				for j < len(s) {
					b := s[j]
					if b >= 0x40 && b <= 0x7E {
						j++
						break
					}
					j++
				}
				out.WriteString(s[i:j])
				i = j
				continue
			}

			// OSC: ESC ] ... BEL or ST
			if i+1 < len(s) && s[i+1] == ']' {
				j := i + 2
				for j < len(s) {
					if s[j] == 0x07 {
						j++
						break
					}
					if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
						j += 2
						break
					}
					j++
				}
				out.WriteString(s[i:j])
				i = j
				continue
			}

			if i+1 < len(s) {
				out.WriteByte(s[i])
				out.WriteByte(s[i+1])
				i += 2
			} else {
				out.WriteByte(s[i])
				i++
			}
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}

		w := lipgloss.Width(string(r))
		if visible+w > maxWidth {
			break
		}

		out.WriteRune(r)
		visible += w
		i += size
	}

	return out.String()
}
