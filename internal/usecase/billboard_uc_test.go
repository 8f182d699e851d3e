package usecase

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-scraper-bot/internal/domain"
)

func rankingPage(n int) string {
	var b strings.Builder
	b.WriteString(`<div class="contenidoRankingContainer"><div><ol>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<li><a href="/pelicula/%d">Película %d</a></li>`, i, i)
	}
	b.WriteString(`</ol></div></div>`)
	return b.String()
}

func TestBillboard_TopFiveInOrder(t *testing.T) {
	src := NewBillboardSource("https://cines.example.com/cartelera")
	titles, err := src.Extract(mustDoc(t, rankingPage(8)))
	require.NoError(t, err)
	require.Len(t, titles, 8)
	assert.Equal(t, "https://cines.example.com/pelicula/1", titles[0].Link)

	lines := strings.Split(src.Format(titles), "\n")
	require.Len(t, lines, 5)
	for i, line := range lines {
		want := fmt.Sprintf("[%d. Película %d](https://cines.example.com/pelicula/%d)", i+1, i+1, i+1)
		assert.Equal(t, want, line)
	}
}

func TestBillboard_FewerThanTop(t *testing.T) {
	src := NewBillboardSource("")
	titles, err := src.Extract(mustDoc(t, rankingPage(2)))
	require.NoError(t, err)
	assert.Len(t, strings.Split(src.Format(titles), "\n"), 2)
}

func TestBillboard_BracketsInTitleNeutralized(t *testing.T) {
	page := `<div class="contenidoRankingContainer"><div><ol><li><a href="/x">Alien [Director's cut]</a></li></ol></div></div>`
	src := NewBillboardSource("https://cines.example.com/")
	titles, err := src.Extract(mustDoc(t, page))
	require.NoError(t, err)
	assert.Equal(t, "[1. Alien (Director's cut)](https://cines.example.com/x)", src.Format(titles))
}

func TestBillboard_ParenthesesInLinkEncoded(t *testing.T) {
	page := `<div class="contenidoRankingContainer"><div><ol><li><a href="/pelicula/Alien_(1979)">Alien</a></li></ol></div></div>`
	src := NewBillboardSource("https://cines.example.com/")
	titles, err := src.Extract(mustDoc(t, page))
	require.NoError(t, err)
	assert.Equal(t, "[1. Alien](https://cines.example.com/pelicula/Alien_%281979%29)", src.Format(titles))
}

func TestBillboard_MissingAnchors(t *testing.T) {
	var ee *domain.ExtractionError

	_, err := NewBillboardSource("").Extract(mustDoc(t, `<div class="ranking"></div>`))
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "div.contenidoRankingContainer", ee.Anchor)

	_, err = NewBillboardSource("").Extract(mustDoc(t, `<div class="contenidoRankingContainer"><div></div></div>`))
	require.True(t, errors.As(err, &ee))
	assert.Contains(t, ee.Anchor, "ol")

	_, err = NewBillboardSource("").Extract(mustDoc(t, `<div class="contenidoRankingContainer"><div><ol><li>no link</li></ol></div></div>`))
	require.True(t, errors.As(err, &ee))
}
