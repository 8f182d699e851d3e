package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/format"
)

const DefaultSubwayURL = "https://www.metrovias.com.ar/"

var lineStatusRe = regexp.MustCompile(`(?i)Línea *([A-Z]) +(.*)`)

// SubwaySource reads the status of the subway, premetro and Urquiza lines.
type SubwaySource struct {
	url string
}

func NewSubwaySource(url string) *SubwaySource {
	if url == "" {
		url = DefaultSubwayURL
	}
	return &SubwaySource{url: url}
}

func (s *SubwaySource) Name() string { return "subte" }
func (s *SubwaySource) URL() string  { return s.url }

// Extract keeps the rows that read like "Línea X <status>"; other rows are ignored.
func (s *SubwaySource) Extract(doc *goquery.Document) ([]model.LineStatus, error) {
	table := doc.Find("table.table").First()
	if table.Length() == 0 {
		return nil, domain.NewExtractionError(s.Name(), "table.table")
	}
	body := table.ChildrenFiltered("tbody").First()
	if body.Length() == 0 {
		return nil, domain.NewExtractionError(s.Name(), "table.table > tbody")
	}

	var lines []model.LineStatus
	body.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Children().Map(func(_ int, c *goquery.Selection) string { return c.Text() })
		m := lineStatusRe.FindStringSubmatch(format.CleanText(strings.Join(cells, " ")))
		if m == nil {
			return
		}
		lines = append(lines, model.LineStatus{Line: strings.ToUpper(m[1]), Status: m[2]})
	})
	return lines, nil
}

func (s *SubwaySource) Format(lines []model.LineStatus) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, fmt.Sprintf("%s | %s", l.Line, l.Status))
	}
	return format.Monospace(strings.Join(out, "\n"))
}
