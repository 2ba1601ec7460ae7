package levels

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblens/joblens/internal/model"
	"github.com/joblens/joblens/internal/source"
)

type fixtureFetcher struct {
	pages []string
	err   error
	urls  []string
}

func (f *fixtureFetcher) Document(_ context.Context, _, rawURL string) (*goquery.Document, error) {
	f.urls = append(f.urls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.urls) - 1
	if idx >= len(f.pages) {
		idx = len(f.pages) - 1
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.pages[idx]))
}

func testEntry() source.Entry {
	return source.Entry{ID: SourceID, Label: "Levels.fyi", BaseURL: "https://www.levels.fyi", MaxPages: 2}
}

func loadFixture(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/role.html")
	require.NoError(t, err)
	return string(b)
}

func TestSearch_ParsesFixture(t *testing.T) {
	fetch := &fixtureFetcher{pages: []string{loadFixture(t), "<html></html>"}}
	got := New(fetch, testEntry()).Search(context.Background(), "Software Engineer", "")
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "Software Engineer", first.Role)
	assert.Equal(t, "DeepMetrics", first.Organization)
	assert.Equal(t, "L5", first.Level)
	require.NotNil(t, first.Total)
	assert.InDelta(t, 345000, *first.Total, 0.01)
	require.NotNil(t, first.Base)
	assert.InDelta(t, 195000, *first.Base, 0.01)
	assert.Equal(t, SourceID, first.SourceID)

	second := got[1]
	require.NotNil(t, second.Total)
	assert.InDelta(t, 200000, *second.Total, 0.01)
	assert.Nil(t, second.Equity)

	// "N/A" and blank cells must stay nil, never zero.
	third := got[2]
	assert.Nil(t, third.Base)
	assert.Nil(t, third.Total)
}

func TestSearch_Deterministic(t *testing.T) {
	fixture := loadFixture(t)
	run := func() []model.CompensationRecord {
		fetch := &fixtureFetcher{pages: []string{fixture, "<html></html>"}}
		return New(fetch, testEntry()).Search(context.Background(), "Software Engineer", "")
	}
	assert.Equal(t, run(), run())
}

func TestSearch_FetchErrorYieldsPlaceholder(t *testing.T) {
	fetch := &fixtureFetcher{err: eris.New("connection reset")}
	got := New(fetch, testEntry()).Search(context.Background(), "Software Engineer", "")

	require.Len(t, got, 1)
	assert.True(t, model.IsPlaceholderTitle(got[0].Role))
	assert.Nil(t, got[0].Total)
}

func TestSearch_PaginationStopsOnEmptyPage(t *testing.T) {
	fetch := &fixtureFetcher{pages: []string{loadFixture(t), "<html><body></body></html>"}}
	got := New(fetch, testEntry()).Search(context.Background(), "Software Engineer", "")

	assert.Len(t, got, 3)
	assert.Len(t, fetch.urls, 2)
}

func TestSearchURL(t *testing.T) {
	c := New(&fixtureFetcher{}, testEntry())

	assert.Equal(t, "https://www.levels.fyi/t/software-engineer", c.searchURL("Software Engineer", "", 1))
	assert.Equal(t, "https://www.levels.fyi/t/software-engineer?search=DeepMetrics", c.searchURL("Software Engineer", "DeepMetrics", 1))
	assert.Contains(t, c.searchURL("Software Engineer", "", 2), "page=2")
}
