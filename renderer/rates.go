package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/valutatrade/tradehub"
)

// RatesMarkdown renders the cached pairs table. lastRefresh may be zero
// when no update ever ran.
func RatesMarkdown(pairs []tradehub.RatePair, lastRefresh tradehub.Timestamp, stale bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Exchange Rates")

	if len(pairs) == 0 {
		doc.PlainText("No rates cached. Run `vt update-rates` first.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Pair", "Rate", "Updated", "Source"},
		Rows:   [][]string{},
	}
	for _, p := range pairs {
		table.Rows = append(table.Rows, []string{
			p.Key(),
			tradehub.FormatRate(p.Rate),
			p.UpdatedAt.String(),
			p.Source,
		})
	}
	doc.Table(table)

	if !lastRefresh.IsZero() {
		line := fmt.Sprintf("Last refresh: %s", lastRefresh)
		if stale {
			line += " (stale)"
		}
		doc.PlainText(line)
	}
	return doc.String()
}

func QuoteMarkdown(q tradehub.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s to %s", q.From, q.To))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Rate", "Updated"},
		Rows: [][]string{
			{tradehub.FormatRate(q.Rate), q.UpdatedAt.String()},
		},
	})
	return doc.String()
}
