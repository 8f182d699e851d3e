package usecase

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/format"
)

const (
	DefaultStandingsURL = "http://www.promiedos.com.ar/primera"

	teamNameLimit = 11
)

var standingsWidths = []int{2, 12, 3, 2}

// StandingsSource reads the league table. A positive limit keeps only the top rows.
type StandingsSource struct {
	url   string
	limit int
}

func NewStandingsSource(url string, limit int) *StandingsSource {
	if url == "" {
		url = DefaultStandingsURL
	}
	return &StandingsSource{url: url, limit: limit}
}

// ParseLimit reads the optional row limit from command arguments; anything
// that is not a positive number means no limit.
func ParseLimit(args string) int {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *StandingsSource) Name() string { return "posiciones" }
func (s *StandingsSource) URL() string  { return s.url }

func (s *StandingsSource) Extract(doc *goquery.Document) ([]model.Standing, error) {
	table := doc.Find("table#posiciones").First()
	if table.Length() == 0 {
		return nil, domain.NewExtractionError(s.Name(), "table#posiciones")
	}

	var (
		rows []model.Standing
		seen int
	)
	// short rows are zone separators or notes
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 4 {
			return
		}
		seen++
		st := model.Standing{
			Position: format.CleanText(tds.Eq(0).Text()),
			Team:     format.CleanText(tds.Eq(1).Text()),
			Points:   format.CleanText(tds.Eq(2).Text()),
			Played:   format.CleanText(tds.Eq(3).Text()),
		}
		if st.Team == model.EmptySentinel {
			return
		}
		rows = append(rows, st)
	})
	if seen == 0 {
		return nil, domain.NewExtractionError(s.Name(), "table#posiciones tr > td")
	}
	return rows, nil
}

func (s *StandingsSource) Format(rows []model.Standing) string {
	if s.limit > 0 && len(rows) > s.limit {
		rows = rows[:s.limit]
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, format.Columns(standingsWidths, "#", "Equipo", "Pts", "PJ"))
	for _, r := range rows {
		lines = append(lines, format.Columns(standingsWidths,
			r.Position,
			format.Normalize(r.Team, teamNameLimit, "."),
			r.Points,
			r.Played,
		))
	}
	return format.Monospace(strings.Join(lines, "\n"))
}
