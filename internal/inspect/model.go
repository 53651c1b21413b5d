// Package inspect implements the packview terminal inspector for packed buffers.
package inspect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/snapshot"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Source describes where the inspected buffer came from.
type Source struct {
	Name   string
	Size   int
	Header *snapshot.Header
}

// Model is the bubbletea model of the inspector.
type Model struct {
	buf    *buffer.Buffer
	source Source
	tbl    table.Model

	width   int
	height  int
	showHex bool
	status  string
	err     error
}

// New creates an inspector over buf. The model owns buf and releases it on quit.
func New(buf *buffer.Buffer, source Source) Model {
	m := Model{buf: buf, source: source}
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refresh()

	return m
}

// NewWithPath decodes the snapshot at path. Load errors are shown in the view.
func NewWithPath(path string) Model {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{err: err, source: Source{Name: path}}
	}

	h, err := snapshot.ParseHeader(data)
	if err != nil {
		return Model{err: err, source: Source{Name: path, Size: len(data)}}
	}

	buf, err := snapshot.Decode(data)
	if err != nil {
		return Model{err: err, source: Source{Name: path, Size: len(data), Header: &h}}
	}

	return New(buf, Source{Name: filepath.Base(path), Size: len(data), Header: &h})
}

// refresh rebuilds the table columns and rows from the buffer.
func (m *Model) refresh() {
	if m.buf == nil {
		return
	}

	trows, err := rows(m.buf)
	if err != nil {
		m.err = err
		return
	}

	// clear rows first so the row width never disagrees with the columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(columns(m.buf.Layout()))
	m.tbl.SetRows(trows)
	m.status = fmt.Sprintf("%d records", len(trows))
}

// Release returns the inspected buffer to its pool. It is safe to call more than once
// and on a model that failed to load.
func (m Model) Release() {
	if m.buf != nil {
		m.buf.Release()
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetHeight(max(4, m.height-summaryHeight-footerHeight-4))
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Release()
			return m, tea.Quit
		case "x":
			m.showHex = !m.showHex
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)

	return m, cmd
}

const (
	summaryHeight = 4
	footerHeight  = 2
)

func (m Model) View() string {
	header := titleStyle.Render(" packview ─ packed buffer inspector ")
	if m.err != nil {
		body := errStyle.Render(fmt.Sprintf("%s: %v", m.source.Name, m.err))
		return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, dimStyle.Render("q: quit")))
	}

	summary := boxStyle.Render(m.Summary())
	body := boxStyle.Render(m.tbl.View())

	footer := m.status
	if m.showHex && m.buf.Len() > 0 {
		footer = "hex: " + recordHex(m.buf, m.tbl.Cursor())
	}
	help := dimStyle.Render("↑/↓: move  x: toggle hex  q: quit")

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, summary, body, footer, help))
}

// Summary describes the buffer layout and the snapshot header, if any.
func (m Model) Summary() string {
	if m.buf == nil {
		return ""
	}

	s := m.buf.Schema()
	order := "big-endian"
	if endian.IsLittleEndian(m.buf.Engine()) {
		order = "little-endian"
	}
	if endian.CompareNativeEndian(m.buf.Engine()) {
		order += " (host)"
	} else {
		order += " (swapped)"
	}

	line1 := fmt.Sprintf("%s  records=%d  stride=%d  bytes=%d  %s",
		m.source.Name, m.buf.Len(), s.Stride(), m.buf.ByteLength(), order)
	line2 := "layout: " + s.String()
	if m.source.Header == nil {
		return line1 + "\n" + line2
	}

	h := m.source.Header
	line3 := fmt.Sprintf("snapshot: %d bytes  compression=%s  fingerprint=%016x  checksum=%08x",
		m.source.Size, h.Compression, h.Fingerprint, h.Checksum)

	return line1 + "\n" + line2 + "\n" + line3
}
