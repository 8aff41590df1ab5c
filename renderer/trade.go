package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/valutatrade/tradehub"
)

// TradeMarkdown renders a buy or sell outcome. verb is "Bought" or "Sold",
// cash is the settlement currency code.
func TradeMarkdown(verb string, r tradehub.TradeResult, cash string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s %s", verb, tradehub.FormatAmount(r.Code, r.Amount), r.Code))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Rate", fmt.Sprintf("%s %s", tradehub.FormatRate(r.Rate), cash)},
			{fmt.Sprintf("%s leg", cash), tradehub.FormatCash(cash, r.Cash)},
			{fmt.Sprintf("%s balance", r.Code), fmt.Sprintf("%s -> %s",
				tradehub.FormatAmount(r.Code, r.Before), tradehub.FormatAmount(r.Code, r.After))},
			{fmt.Sprintf("%s balance", cash), fmt.Sprintf("%s -> %s",
				tradehub.FormatAmount(cash, r.CashBefore), tradehub.FormatAmount(cash, r.CashAfter))},
		},
	})
	return doc.String()
}

// CashMarkdown renders a deposit or cash-out outcome.
func CashMarkdown(verb string, r tradehub.CashResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s", verb, tradehub.FormatCash(r.Code, r.Amount)))
	doc.PlainText(fmt.Sprintf("%s balance: %s -> %s", r.Code,
		tradehub.FormatAmount(r.Code, r.Before), tradehub.FormatAmount(r.Code, r.After)))
	return doc.String()
}
