package adapter

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/paginate"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

// Resolver renders the first page of another page ID. Injected rather
// than imported so the dev adapter never holds the router itself.
type Resolver func(ctx context.Context, pageID string) (page.GridPage, error)

// Dev owns magazine 8: debug views for page authors. The subject page is
// always passed explicitly through the request, never held as state.
type Dev struct {
	resolve Resolver
}

func NewDev(resolve Resolver) *Dev {
	return &Dev{resolve: resolve}
}

func (d *Dev) Name() string { return "dev" }

func (d *Dev) Render(ctx context.Context, req route.Request) ([]page.GridPage, error) {
	switch req.Page.Magazine {
	case 800:
		if err := parseParams(req.Query); err != nil {
			return nil, err
		}
		return []page.GridPage{d.indexPage()}, nil
	case 801:
		if err := parseParams(req.Query, "target"); err != nil {
			return nil, err
		}
		return d.rawPages(ctx, req.Query["target"])
	default:
		return nil, notFound(req.Page)
	}
}

func (d *Dev) indexPage() page.GridPage {
	return page.NewBuilder("800", "DEV TOOLS").
		Row(" 801  raw page JSON").
		Blank().
		Row(" pass target=<page id> to 801 to see").
		Row(" the page exactly as clients get it").
		Link("RAW VIEW", "801", page.Green).
		Link("INDEX", "100", page.Yellow).
		Build()
}

// rawPages renders the target page's JSON across 801's sub-pages.
func (d *Dev) rawPages(ctx context.Context, target string) ([]page.GridPage, error) {
	if target == "" {
		return nil, &route.Error{Code: route.CodeInvalidPage,
			Reason: "801 requires a target parameter"}
	}
	if strings.HasPrefix(target, "8") {
		// No recursive raw views of the dev magazine itself.
		return nil, &route.Error{Code: route.CodeInvalidPage,
			Reason: "cannot inspect dev pages"}
	}

	subject, err := d.resolve(ctx, target)
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(subject, "", " ")
	if err != nil {
		return nil, route.AdapterFailure("encoding page", err)
	}

	start := route.PageID{Magazine: 801, Sub: 1}
	return paginate.Paginate(string(raw), start, paginate.Layout{
		Title:      "RAW " + target,
		HeaderRows: 2,
		FooterRows: 2,
	}), nil
}
