package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/format"
)

const (
	DefaultBillboardURL = "https://www.cinesargentinos.com.ar/cartelera"
	BillboardTop        = 5
)

// BillboardSource reads the movie ranking and keeps the top entries.
type BillboardSource struct {
	url string
	top int
}

func NewBillboardSource(url string) *BillboardSource {
	if url == "" {
		url = DefaultBillboardURL
	}
	return &BillboardSource{url: url, top: BillboardTop}
}

func (s *BillboardSource) Name() string { return "cartelera" }
func (s *BillboardSource) URL() string  { return s.url }

// Extract enumerates the ranking from 1 in page order and resolves each link against the page URL.
func (s *BillboardSource) Extract(doc *goquery.Document) ([]model.RankedTitle, error) {
	container := doc.Find("div.contenidoRankingContainer").First()
	if container.Length() == 0 {
		return nil, domain.NewExtractionError(s.Name(), "div.contenidoRankingContainer")
	}
	list := container.Find("div").First().Find("ol").First()
	if list.Length() == 0 {
		return nil, domain.NewExtractionError(s.Name(), "div.contenidoRankingContainer div ol")
	}

	base, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("%s: bad page url: %w", s.Name(), err)
	}

	var (
		titles  []model.RankedTitle
		missing bool
	)
	list.Find("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		href, ok := li.Find("a").First().Attr("href")
		if !ok {
			missing = true
			return false
		}
		link := href
		if ref, err := url.Parse(href); err == nil {
			link = base.ResolveReference(ref).String()
		}
		titles = append(titles, model.RankedTitle{
			Rank:  i + 1,
			Title: format.CleanText(li.Text()),
			Link:  link,
		})
		return true
	})
	if missing {
		return nil, domain.NewExtractionError(s.Name(), "ol li a[href]")
	}
	return titles, nil
}

// Format renders the top entries as Markdown links.
func (s *BillboardSource) Format(titles []model.RankedTitle) string {
	if len(titles) > s.top {
		titles = titles[:s.top]
	}
	lines := make([]string, 0, len(titles))
	for _, t := range titles {
		lines = append(lines, fmt.Sprintf("[%d. %s](%s)", t.Rank, format.LinkLabel(t.Title), format.LinkTarget(t.Link)))
	}
	return format.Clip(strings.Join(lines, "\n"), format.MaxMessageLength)
}
