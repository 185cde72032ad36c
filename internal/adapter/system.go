package adapter

import (
	"context"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

// System owns magazine 1 plus the special pages 404, 666 and 999.
type System struct{}

func NewSystem() *System { return &System{} }

func (s *System) Name() string { return "system" }

func (s *System) Render(_ context.Context, req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query); err != nil {
		return nil, err
	}

	switch req.Page.Magazine {
	case 100:
		return []page.GridPage{s.indexPage()}, nil
	case 101:
		return []page.GridPage{s.helpPage()}, nil
	case 404:
		return []page.GridPage{s.notFoundPage()}, nil
	case 666:
		return []page.GridPage{s.easterEggPage()}, nil
	case 999:
		return []page.GridPage{s.aboutPage()}, nil
	default:
		return nil, notFound(req.Page)
	}
}

func (s *System) indexPage() page.GridPage {
	return indexPage("100", "INDEX", map[string]string{
		"101": "HOW TO NAVIGATE",
		"200": "NEWS",
		"300": "SPORTS",
		"400": "MARKETS",
		"420": "WEATHER",
		"500": "ASK THE ORACLE",
		"600": "GAMES",
		"700": "SETTINGS",
		"999": "ABOUT THIS SERVICE",
	}, "type a page number to jump anywhere")
}

func (s *System) helpPage() page.GridPage {
	return page.NewBuilder("101", "HOW TO NAVIGATE").
		Row(" Every page has a three digit number.").
		Blank().
		Row(" The first digit picks a magazine:").
		Row("  1 system    2 news     3 sports").
		Row("  4 markets + weather    5 oracle").
		Row("  6 games     7 settings").
		Blank().
		Row(" Long answers continue on the next").
		Row(" page number, or on sub-pages like").
		Row(" 201-2. Follow the " + page.TagGreen + "NEXT" + page.TagWhite + " link.").
		Link("INDEX", "100", page.Yellow).
		Build()
}

func (s *System) notFoundPage() page.GridPage {
	return page.NewBuilder("404", "NOT FOUND").
		Blank().Blank().
		Centered(page.TagRed + "PAGE NOT FOUND").
		Blank().
		Centered("this page intentionally left blank").
		Blank().
		Centered("try the index on 100").
		Link("INDEX", "100", page.Yellow).
		Build()
}

func (s *System) easterEggPage() page.GridPage {
	return page.NewBuilder("666", "???").
		Blank().Blank().
		Centered(page.TagRed + "YOU FOUND THE HIDDEN PAGE").
		Blank().
		Centered("nothing sinister here, just a").
		Centered("tradition as old as teletext").
		Link("INDEX", "100", page.Yellow).
		Build()
}

func (s *System) aboutPage() page.GridPage {
	return page.NewBuilder("999", "ABOUT").
		Row(" A 24x40 page service assembled from").
		Row(" live, cached and generated content.").
		Blank().
		Row(" Pages are rendered on the server and").
		Row(" delivered as plain JSON grids.").
		Blank().
		Row(" Generated answers are rate limited").
		Row(" and cached for five minutes.").
		Link("INDEX", "100", page.Yellow).
		Build()
}
