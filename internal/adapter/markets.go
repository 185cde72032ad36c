package adapter

import (
	"context"
	"fmt"
	"log"

	"github.com/oguzkopan/teletext-sub000/internal/fetch"
	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

type quote struct {
	symbol string
	price  float64
	change float64
}

// Markets owns pages 400-419.
type Markets struct{}

func NewMarkets() *Markets { return &Markets{} }

func (m *Markets) Name() string { return "markets" }

func (m *Markets) Render(_ context.Context, req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query); err != nil {
		return nil, err
	}

	switch req.Page.Magazine {
	case 400:
		return []page.GridPage{m.quotesPage()}, nil
	case 401:
		return []page.GridPage{m.currenciesPage()}, nil
	default:
		return nil, notFound(req.Page)
	}
}

func (m *Markets) quotesPage() page.GridPage {
	quotes := []quote{
		{"HWK", 104.20, 1.3},
		{"MLM", 48.75, -0.4},
		{"EPT", 212.00, 0.0},
		{"CRB", 9.10, 2.1},
	}

	b := page.NewBuilder("400", "MARKETS")
	b.Row(fmt.Sprintf(" %-6s %10s %8s", "SYM", "PRICE", "CHG"))
	b.Blank()
	for _, q := range quotes {
		tag := page.TagWhite
		if q.change > 0 {
			tag = page.TagGreen
		} else if q.change < 0 {
			tag = page.TagRed
		}
		b.Row(fmt.Sprintf(" %-6s %10.2f %s%7.1f%%", q.symbol, q.price, tag, q.change))
	}
	b.Blank().Row(page.TagBlue + " currencies on 401")
	b.Link("CURRENCIES", "401", page.Green)
	b.Link("INDEX", "100", page.Yellow)
	return b.Build()
}

func (m *Markets) currenciesPage() page.GridPage {
	b := page.NewBuilder("401", "CURRENCIES")
	b.Row(" 1 EUR = 1.0840 USD")
	b.Row(" 1 GBP = 1.2710 USD")
	b.Row(" 1 USD = 148.2 JPY")
	b.Link("MARKETS", "400", page.Yellow)
	return b.Build()
}

// Weather owns pages 420-449. A configured live source overrides the
// static forecast; failures fall back silently.
type Weather struct {
	client *fetch.Client
	source string
}

func NewWeather(client *fetch.Client, source string) *Weather {
	return &Weather{client: client, source: source}
}

func (w *Weather) Name() string { return "weather" }

func (w *Weather) Render(ctx context.Context, req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query); err != nil {
		return nil, err
	}

	if req.Page.Magazine != 420 {
		return nil, notFound(req.Page)
	}
	return []page.GridPage{w.forecastPage(ctx)}, nil
}

func (w *Weather) forecastPage(ctx context.Context) page.GridPage {
	days := w.liveOrStatic(ctx)

	b := page.NewBuilder("420", "WEATHER")
	b.Row(fmt.Sprintf(" %-10s %-16s %s", "DAY", "OUTLOOK", "TEMP"))
	b.Blank()
	for _, d := range days {
		b.Row(fmt.Sprintf(" %-10s %-16s %3d C", d.day, d.outlook, d.temp))
	}
	b.Link("INDEX", "100", page.Yellow)
	return b.Build()
}

type forecastDay struct {
	day     string
	outlook string
	temp    int
}

func (w *Weather) liveOrStatic(ctx context.Context) []forecastDay {
	static := []forecastDay{
		{"TODAY", "rain clearing", 9},
		{"TOMORROW", "sunny spells", 11},
		{"WEDNESDAY", "fog til noon", 8},
		{"THURSDAY", "heavy showers", 7},
	}
	if w.source == "" {
		return static
	}

	var payload struct {
		Days []struct {
			Day     string `json:"day"`
			Outlook string `json:"outlook"`
			Temp    int    `json:"temp"`
		} `json:"days"`
	}
	if err := w.client.GetJSON(ctx, w.source, &payload); err != nil {
		log.Printf("[weather] live fetch failed, using static content: %v", err)
		return static
	}
	if len(payload.Days) == 0 {
		return static
	}

	live := make([]forecastDay, 0, len(payload.Days))
	for _, d := range payload.Days {
		live = append(live, forecastDay{day: d.Day, outlook: d.Outlook, temp: d.Temp})
	}
	return live
}
