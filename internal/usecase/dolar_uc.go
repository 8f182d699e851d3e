package usecase

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/format"
)

const (
	DefaultDolarURL = "http://www.dolarhoy.com/usd"

	// DolarCallbackPrefix marks inline buttons that pick a single bank.
	DolarCallbackPrefix = "dolar:"
	// DolarCallbackAll brings back the full table.
	DolarCallbackAll = DolarCallbackPrefix + "*"

	bankNameLimit   = 11
	callbackMaxSize = 64
)

var dolarWidths = []int{12, 7, 7}

// DolarSource reads the per-bank dollar quotes.
type DolarSource struct {
	url string
}

func NewDolarSource(url string) *DolarSource {
	if url == "" {
		url = DefaultDolarURL
	}
	return &DolarSource{url: url}
}

func (s *DolarSource) Name() string { return "dolar" }
func (s *DolarSource) URL() string  { return s.url }

// Extract collects every three-cell row of every table on the page, dropping rows
// where the buy or sell cell is the sentinel.
func (s *DolarSource) Extract(doc *goquery.Document) ([]model.Quote, error) {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, domain.NewExtractionError(s.Name(), "table")
	}

	var (
		quotes []model.Quote
		seen   int
	)
	tables.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 3 {
			return
		}
		seen++
		q := model.Quote{
			Bank: format.CleanText(tds.Eq(0).Text()),
			Buy:  model.NewField(quoteValue(tds.Eq(1).Text())),
			Sell: model.NewField(quoteValue(tds.Eq(2).Text())),
		}
		if q.Buy.IsEmpty() || q.Sell.IsEmpty() {
			return
		}
		quotes = append(quotes, q)
	})
	if seen == 0 {
		return nil, domain.NewExtractionError(s.Name(), "table tr > td")
	}
	return quotes, nil
}

// Format renders all quotes as an aligned code block.
func (s *DolarSource) Format(quotes []model.Quote) string {
	lines := make([]string, 0, len(quotes)+1)
	lines = append(lines, format.Columns(dolarWidths, "Banco", "Compra", "Venta"))
	for _, q := range quotes {
		lines = append(lines, format.Columns(dolarWidths,
			format.Normalize(q.Bank, bankNameLimit, "."),
			format.Currency(q.Buy),
			format.Currency(q.Sell),
		))
	}
	return format.Monospace(strings.Join(lines, "\n"))
}

// FormatQuote renders a single bank.
func FormatQuote(q model.Quote) string {
	return format.Monospace(fmt.Sprintf("%s\nCompra: %s\nVenta:  %s", q.Bank, format.Currency(q.Buy), format.Currency(q.Sell)))
}

// QuoteButtons lays out one button per bank, two per row.
func QuoteButtons(quotes []model.Quote) [][]adapter.InlineButton {
	rows := make([][]adapter.InlineButton, 0, (len(quotes)+1)/2)
	for i := 0; i < len(quotes); i += 2 {
		row := []adapter.InlineButton{quoteButton(quotes[i])}
		if i+1 < len(quotes) {
			row = append(row, quoteButton(quotes[i+1]))
		}
		rows = append(rows, row)
	}
	return rows
}

// FindQuote returns the quote whose button carries data.
func FindQuote(quotes []model.Quote, data string) (model.Quote, bool) {
	for _, q := range quotes {
		if QuoteCallbackData(q) == data {
			return q, true
		}
	}
	return model.Quote{}, false
}

// QuoteCallbackData builds the callback payload for a bank, kept under Telegram's 64 byte limit.
func QuoteCallbackData(q model.Quote) string {
	data := DolarCallbackPrefix
	for _, r := range q.Bank {
		next := data + string(r)
		if len(next) > callbackMaxSize {
			break
		}
		data = next
	}
	return data
}

func quoteButton(q model.Quote) adapter.InlineButton {
	return adapter.InlineButton{Text: q.Bank, Data: QuoteCallbackData(q)}
}

// quoteValue strips the currency sign the site prints in front of prices.
func quoteValue(raw string) string {
	v := format.CleanText(raw)
	v = strings.TrimPrefix(v, "$")
	return strings.TrimSpace(v)
}
