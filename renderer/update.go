package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/valutatrade/tradehub"
)

func UpdateMarkdown(s *tradehub.UpdateSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Rates Update")

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Result"), md.Bold(s.Result)},
		Rows: [][]string{
			{"Pairs updated", fmt.Sprintf("%d", s.PairsUpdated)},
			{"History entries", fmt.Sprintf("%d", s.HistoryInserted)},
			{"Last refresh", s.LastRefresh.String()},
		},
	})

	if len(s.Sources) > 0 {
		doc.H2("Sources")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Source", "Status", "Pairs", "Detail"},
			Rows:   [][]string{},
		}
		for _, src := range s.Sources {
			table.Rows = append(table.Rows, []string{
				src.Source, src.Status, fmt.Sprintf("%d", src.Pairs), src.Err,
			})
		}
		doc.Table(table)
	}
	return doc.String()
}
