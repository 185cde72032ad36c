package adapter

import (
	"context"
	"fmt"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

type fixture struct {
	home, away   string
	homeG, awayG int
	played       bool
}

// Sports owns magazine 3: results on 301, table on 302.
type Sports struct {
	fixtures []fixture
}

func NewSports() *Sports {
	return &Sports{fixtures: []fixture{
		{"HARWICK", "MILHAM", 2, 1, true},
		{"EASTPORT", "CRAG BAY", 0, 0, true},
		{"NORTH FEN", "HARWICK", 1, 3, true},
		{"MILHAM", "EASTPORT", 0, 0, false},
	}}
}

func (s *Sports) Name() string { return "sports" }

func (s *Sports) Render(_ context.Context, req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query); err != nil {
		return nil, err
	}

	switch req.Page.Magazine {
	case 300:
		return []page.GridPage{indexPage("300", "SPORTS", map[string]string{
			"301": "RESULTS",
			"302": "LEAGUE TABLE",
		}, "")}, nil
	case 301:
		return []page.GridPage{s.resultsPage()}, nil
	case 302:
		return []page.GridPage{s.tablePage()}, nil
	default:
		return nil, notFound(req.Page)
	}
}

func (s *Sports) resultsPage() page.GridPage {
	b := page.NewBuilder("301", "RESULTS")
	for _, f := range s.fixtures {
		if f.played {
			b.Row(fmt.Sprintf(" %-12s %d-%d %s", f.home, f.homeG, f.awayG, f.away))
		} else {
			b.Row(fmt.Sprintf(" %-12s  v  %s %s(postponed)", f.home, f.away, page.TagBlue))
		}
	}
	b.Link("SPORTS", "300", page.Yellow)
	return b.Build()
}

func (s *Sports) tablePage() page.GridPage {
	type row struct {
		name        string
		played, pts int
	}
	table := map[string]*row{}
	order := []string{}
	team := func(name string) *row {
		if r, ok := table[name]; ok {
			return r
		}
		r := &row{name: name}
		table[name] = r
		order = append(order, name)
		return r
	}
	for _, f := range s.fixtures {
		if !f.played {
			continue
		}
		home, away := team(f.home), team(f.away)
		home.played++
		away.played++
		switch {
		case f.homeG > f.awayG:
			home.pts += 3
		case f.homeG < f.awayG:
			away.pts += 3
		default:
			home.pts++
			away.pts++
		}
	}

	b := page.NewBuilder("302", "LEAGUE TABLE")
	b.Row(fmt.Sprintf(" %-14s %3s %3s", "TEAM", "P", "PTS"))
	b.Blank()
	for _, name := range order {
		r := table[name]
		b.Row(fmt.Sprintf(" %-14s %3d %3d", r.name, r.played, r.pts))
	}
	b.Link("SPORTS", "300", page.Yellow)
	return b.Build()
}
