package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/valutatrade/tradehub"
)

func PortfolioMarkdown(r *tradehub.PortfolioReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio of user %d", r.UserID))

	if len(r.Lines) == 0 {
		doc.PlainText("No wallets yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Currency", "Balance", fmt.Sprintf("Value (%s)", r.Base)},
		Rows:   [][]string{},
	}
	for _, line := range r.Lines {
		table.Rows = append(table.Rows, []string{
			line.Code,
			tradehub.FormatAmount(line.Code, line.Balance),
			tradehub.FormatAmount(r.Base, line.Value),
		})
	}
	doc.Table(table)

	doc.PlainText(md.Bold(fmt.Sprintf("Total: %s", tradehub.FormatCash(r.Base, r.Total))))
	return doc.String()
}
