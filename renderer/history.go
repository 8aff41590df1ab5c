package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/valutatrade/tradehub"
)

func HistoryMarkdown(entries []tradehub.Measurement) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Rate History")

	if len(entries) == 0 {
		doc.PlainText("No measurements recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Time", "Pair", "Rate", "Source"},
		Rows:   [][]string{},
	}
	for _, m := range entries {
		table.Rows = append(table.Rows, []string{
			m.Timestamp.String(),
			tradehub.PairKey(m.From, m.To),
			tradehub.FormatRate(m.Rate),
			m.Source,
		})
	}
	doc.Table(table)
	return doc.String()
}
