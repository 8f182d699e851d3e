package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
)

const subwayPage = `<table class="table">
<tbody>
<tr><td>Línea A</td><td>
  Normal</td></tr>
<tr><td>línea b</td><td>Demorado por obras</td></tr>
<tr><td>Premetro</td><td>Sin datos</td></tr>
</tbody>
</table>`

func TestSubway_Extract(t *testing.T) {
	lines, err := NewSubwaySource("").Extract(mustDoc(t, subwayPage))
	require.NoError(t, err)
	assert.Equal(t, []model.LineStatus{
		{Line: "A", Status: "Normal"},
		{Line: "B", Status: "Demorado por obras"},
	}, lines)
}

func TestSubway_Format(t *testing.T) {
	src := NewSubwaySource("")
	got := src.Format([]model.LineStatus{{Line: "A", Status: "Normal"}, {Line: "H", Status: "Limitado"}})
	assert.Equal(t, "```\nA | Normal\nH | Limitado\n```", got)
}

func TestSubway_MissingAnchor(t *testing.T) {
	_, err := NewSubwaySource("").Extract(mustDoc(t, `<table class="grid"><tr><td>x</td></tr></table>`))
	var ee *domain.ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "table.table", ee.Anchor)
}
