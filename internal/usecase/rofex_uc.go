package usecase

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/format"
)

const DefaultRofexURL = "http://www.ambito.com/economia/mercados/indices/rofex/"

var rofexWidths = []int{8, 7, 7}

// RofexSource reads the dollar futures board.
type RofexSource struct {
	url string
}

func NewRofexSource(url string) *RofexSource {
	if url == "" {
		url = DefaultRofexURL
	}
	return &RofexSource{url: url}
}

func (s *RofexSource) Name() string { return "rofex" }
func (s *RofexSource) URL() string  { return s.url }

// Extract returns the header and every contract row whose buy and sell are both present.
func (s *RofexSource) Extract(doc *goquery.Document) (model.FuturesBoard, error) {
	var board model.FuturesBoard

	table := doc.Find("table#rofextable").First()
	if table.Length() == 0 {
		return board, domain.NewExtractionError(s.Name(), "table#rofextable")
	}

	headers := table.Find("thead tr").First().Find("th")
	if headers.Length() < 3 {
		return board, domain.NewExtractionError(s.Name(), "table#rofextable thead th")
	}
	headers.Slice(0, 3).Each(func(i int, th *goquery.Selection) {
		board.Header[i] = format.CleanText(th.Text())
	})

	var missing string
	table.Find("tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		th := tr.Find("th").First()
		tds := tr.Find("td")
		if th.Length() == 0 || tds.Length() < 2 {
			missing = "table#rofextable tbody tr > th, td"
			return false
		}
		row := model.FutureQuote{
			Contract: contractName(th.Text()),
			Buy:      model.NewField(strings.TrimSpace(tds.Eq(0).Text())),
			Sell:     model.NewField(strings.TrimSpace(tds.Eq(1).Text())),
		}
		if row.Buy.IsEmpty() || row.Sell.IsEmpty() {
			return true
		}
		board.Rows = append(board.Rows, row)
		return true
	})
	if missing != "" {
		return model.FuturesBoard{}, domain.NewExtractionError(s.Name(), missing)
	}
	return board, nil
}

// Format renders the header and rows as an aligned code block.
func (s *RofexSource) Format(board model.FuturesBoard) string {
	lines := make([]string, 0, len(board.Rows)+1)
	lines = append(lines, rofexLine(board.Header[0], model.NewField(board.Header[1]), model.NewField(board.Header[2])))
	for _, r := range board.Rows {
		lines = append(lines, rofexLine(r.Contract, r.Buy, r.Sell))
	}
	return format.Monospace(strings.Join(lines, "\n"))
}

func rofexLine(contract string, buy, sell model.Field) string {
	return format.Columns(rofexWidths, format.CompactLabel(contract), format.Currency(buy), format.Currency(sell))
}

// contractName drops the "Dólar " prefix the board repeats on every row.
func contractName(raw string) string {
	return strings.ReplaceAll(format.CleanText(raw), "Dólar ", "")
}
