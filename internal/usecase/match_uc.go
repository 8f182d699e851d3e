package usecase

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/format"
)

const DefaultMatchURL = "https://mundoazulgrana.com.ar/sanlorenzo/"

// MatchSource reads the match widget: the rival logo and the info lines under it.
type MatchSource struct {
	url string
}

func NewMatchSource(url string) *MatchSource {
	if url == "" {
		url = DefaultMatchURL
	}
	return &MatchSource{url: url}
}

func (s *MatchSource) Name() string { return "partido" }
func (s *MatchSource) URL() string  { return s.url }

func (s *MatchSource) Extract(doc *goquery.Document) (model.MatchInfo, error) {
	var info model.MatchInfo

	widget := doc.Find("div.widget-partido").First()
	if widget.Length() == 0 {
		return info, domain.NewExtractionError(s.Name(), "div.widget-partido")
	}
	cont := widget.Find("div.cont").First()
	if cont.Length() == 0 {
		return info, domain.NewExtractionError(s.Name(), "div.widget-partido div.cont")
	}
	src, ok := cont.Find("img").First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return info, domain.NewExtractionError(s.Name(), "div.cont img[src]")
	}
	info.LogoURL = s.resolve(strings.TrimSpace(src))

	for _, line := range strings.Split(cont.Text(), "\n") {
		if line = format.CleanText(line); line != "" {
			info.Lines = append(info.Lines, line)
		}
	}
	return info, nil
}

func (s *MatchSource) Format(info model.MatchInfo) string {
	return format.Clip(strings.Join(info.Lines, "\n"), format.MaxMessageLength)
}

func (s *MatchSource) resolve(src string) string {
	base, err := url.Parse(s.url)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
