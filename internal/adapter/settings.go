package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

// Overview is the non-secret configuration summary shown on the
// settings magazine. Secrets never enter this struct.
type Overview struct {
	Addr         string
	AIEnabled    bool
	NewsLive     bool
	WeatherLive  bool
	FetchTimeout time.Duration
}

// Settings owns magazine 7.
type Settings struct {
	overview Overview
}

func NewSettings(overview Overview) *Settings {
	return &Settings{overview: overview}
}

func (s *Settings) Name() string { return "settings" }

func (s *Settings) Render(_ context.Context, req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query); err != nil {
		return nil, err
	}
	if req.Page.Magazine != 700 {
		return nil, notFound(req.Page)
	}
	return []page.GridPage{s.overviewPage()}, nil
}

func (s *Settings) overviewPage() page.GridPage {
	onOff := func(v bool) string {
		if v {
			return page.TagGreen + "on"
		}
		return page.TagRed + "off"
	}

	return page.NewBuilder("700", "SETTINGS").
		Row(fmt.Sprintf(" listen address   %s", s.overview.Addr)).
		Row(fmt.Sprintf(" oracle backend   %s", onOff(s.overview.AIEnabled))).
		Row(fmt.Sprintf(" live news feed   %s", onOff(s.overview.NewsLive))).
		Row(fmt.Sprintf(" live weather     %s", onOff(s.overview.WeatherLive))).
		Row(fmt.Sprintf(" fetch timeout    %s%s", page.TagWhite, s.overview.FetchTimeout)).
		Blank().
		Row(" settings are read from environment").
		Row(" variables at startup").
		Link("INDEX", "100", page.Yellow).
		Build()
}
