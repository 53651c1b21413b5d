package inspect

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/packbuf/buffer"
	table "github.com/charmbracelet/bubbles/table"
)

const maxColumnWidth = 28

// columns returns one table column per attribute after the record index column.
func columns(layout buffer.Layout) []table.Column {
	cols := make([]table.Column, 0, len(layout.Attributes)+1)
	cols = append(cols, table.Column{Title: "#", Width: 6})
	for _, a := range layout.Attributes {
		title := fmt.Sprintf("%s %sx%d", a.Name, a.Type, a.Components)
		w := min(max(len(title), 4*a.Components+2), maxColumnWidth)
		cols = append(cols, table.Column{Title: title, Width: w})
	}

	return cols
}

// rows decodes every written record of buf into table rows.
func rows(buf *buffer.Buffer) ([]table.Row, error) {
	out := make([]table.Row, 0, buf.Len())
	for i := range buf.Len() {
		rec, err := buf.Get(i)
		if err != nil {
			return nil, err
		}

		row := make(table.Row, 0, len(rec)+1)
		row = append(row, strconv.Itoa(i))
		for _, f := range rec {
			row = append(row, formatValues(f.Values))
		}
		out = append(out, row)
	}

	return out, nil
}

func formatValues(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}

	return strings.Join(parts, " ")
}

// recordHex returns the raw bytes of record index, one attribute per group.
func recordHex(buf *buffer.Buffer, index int) string {
	layout := buf.Layout()
	start := index * layout.Stride
	raw := buf.Bytes()
	if index < 0 || start+layout.Stride > len(raw) {
		return ""
	}
	rec := raw[start : start+layout.Stride]

	groups := make([]string, 0, len(layout.Attributes)+1)
	end := 0
	for _, a := range layout.Attributes {
		end = a.Offset + a.Components*a.Type.Width()
		groups = append(groups, hex.EncodeToString(rec[a.Offset:end]))
	}
	if end < len(rec) {
		groups = append(groups, "("+hex.EncodeToString(rec[end:])+")")
	}

	return strings.Join(groups, " ")
}
