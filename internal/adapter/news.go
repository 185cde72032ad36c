package adapter

import (
	"context"
	"fmt"
	"log"

	"github.com/oguzkopan/teletext-sub000/internal/fetch"
	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/paginate"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

// Article is one news story. Long bodies continue on sub-pages of the
// article's number.
type Article struct {
	Page     int
	Headline string
	Body     string
}

// News owns magazine 2. When a live source is configured its headlines
// replace the static set; any fetch failure falls back silently.
type News struct {
	client   *fetch.Client
	source   string
	articles []Article
}

// NewNews creates the adapter. source may be empty for static-only mode.
func NewNews(client *fetch.Client, source string) *News {
	return &News{client: client, source: source, articles: staticArticles()}
}

func (n *News) Name() string { return "news" }

func (n *News) Render(ctx context.Context, req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query); err != nil {
		return nil, err
	}

	articles := n.liveOrStatic(ctx)
	if req.Page.Magazine == 200 {
		return []page.GridPage{n.indexPage(articles)}, nil
	}

	for _, a := range articles {
		if a.Page == req.Page.Magazine {
			return n.articlePages(a), nil
		}
	}
	return nil, notFound(req.Page)
}

// liveOrStatic tries the configured source and falls back to the static
// set on any failure. Upstream trouble never reaches the reader.
func (n *News) liveOrStatic(ctx context.Context) []Article {
	if n.source == "" {
		return n.articles
	}

	var payload struct {
		Headlines []struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"headlines"`
	}
	if err := n.client.GetJSON(ctx, n.source, &payload); err != nil {
		log.Printf("[news] live fetch failed, using static content: %v", err)
		return n.articles
	}
	if len(payload.Headlines) == 0 {
		return n.articles
	}

	live := make([]Article, 0, len(payload.Headlines))
	for i, h := range payload.Headlines {
		if i >= 99 {
			break
		}
		live = append(live, Article{Page: 201 + i, Headline: h.Title, Body: h.Body})
	}
	return live
}

func (n *News) indexPage(articles []Article) page.GridPage {
	b := page.NewBuilder("200", "NEWS")
	for _, a := range articles {
		b.Row(fmt.Sprintf(" %s%d %s%s", page.TagGreen, a.Page,
			page.TagWhite, page.TruncateRow(a.Headline, page.Cols-6)))
		b.Link(a.Headline, fmt.Sprintf("%d", a.Page), page.Green)
	}
	b.Link("INDEX", "100", page.Yellow)
	return b.Build()
}

// articlePages lays the article out on sub-pages of its number, so a
// long body never spills into the next article's page.
func (n *News) articlePages(a Article) []page.GridPage {
	start := route.PageID{Magazine: a.Page, Sub: 1}
	return paginate.Paginate(a.Body, start, paginate.Layout{
		Title:      a.Headline,
		HeaderRows: 2,
		FooterRows: 2,
	})
}

func staticArticles() []Article {
	return []Article{
		{
			Page:     201,
			Headline: "LIGHTHOUSE LENS RECOVERED",
			Body: "The great Fresnel lens stolen from the Harwick Point " +
				"lighthouse last spring has been recovered intact from a " +
				"mainland dealer. Investigators traced the glass through a " +
				"shard dropped at the scene. The lamp is expected to be " +
				"relit before the storm season. The keeper, who was found " +
				"unharmed, called the recovery a triumph of stubbornness " +
				"over cleverness.",
		},
		{
			Page:     202,
			Headline: "CANAL FERRY TIMETABLE CHANGES",
			Body: "The crossing at Milham locks moves to a winter timetable " +
				"from Monday. Early sailings are withdrawn on weekdays and " +
				"the last crossing leaves an hour earlier. Season ticket " +
				"holders are advised that the summer schedule resumes in " +
				"March.",
		},
		{
			Page:     203,
			Headline: "OBSERVATORY OPENS ROOF TO PUBLIC",
			Body: "The hilltop observatory will open its dome to visitors " +
				"every clear Friday evening this winter. Staff astronomers " +
				"will point the refractor at the season's planets. Entry is " +
				"free but places are limited and the hill path is steep.",
		},
	}
}
