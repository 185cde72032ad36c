package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/model/session"
	"github.com/oguzkopan/teletext-sub000/internal/paginate"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	aiservice "github.com/oguzkopan/teletext-sub000/internal/service/ai"
	"github.com/oguzkopan/teletext-sub000/internal/store"
	"github.com/oguzkopan/teletext-sub000/internal/throttle"
)

// Invoker is the throttled path to the generation backend.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, history []session.Turn) (string, error)
}

// guidedTopics are the one-shot question pages of the oracle menu.
// Each topic's answer continues on sub-pages of its own number
// (511-1, 511-2, ...), so no flow ever shares a response page with
// another: the free-text flow owns 516's sub-pages exclusively.
var guidedTopics = map[int]struct {
	label  string
	prompt string
}{
	511: {"TODAY IN HISTORY", "What notable historical events happened on this day? Pick two and tell them briefly."},
	512: {"SCIENCE EXPLAINED", "Explain one everyday physics phenomenon in simple words."},
	513: {"WORD ORIGINS", "Pick an English word with a surprising etymology and tell its story."},
	514: {"NIGHT SKY", "What is worth looking for in the night sky this season?"},
	515: {"RECIPE OF THE DAY", "Suggest a simple supper recipe with common ingredients."},
}

// AI owns magazine 5: the oracle menu, guided topics and the free-text
// question flow with conversation continuity.
type AI struct {
	invoker  Invoker
	sessions *store.Sessions
	missing  []string // non-empty when the backend is unconfigured
}

// NewAI creates the adapter. invoker may be nil when the generation
// backend is not configured; missing then lists the absent settings.
func NewAI(invoker Invoker, sessions *store.Sessions, missing []string) *AI {
	return &AI{invoker: invoker, sessions: sessions, missing: missing}
}

func (a *AI) Name() string { return "ai" }

func (a *AI) Render(ctx context.Context, req route.Request) ([]page.GridPage, error) {
	switch {
	case req.Page.Magazine == 500:
		if err := parseParams(req.Query); err != nil {
			return nil, err
		}
		return []page.GridPage{a.oracleIndex()}, nil

	case req.Page.Magazine == 510:
		if err := parseParams(req.Query); err != nil {
			return nil, err
		}
		return []page.GridPage{a.menuPage()}, nil

	case req.Page.Magazine >= 511 && req.Page.Magazine <= 515:
		if err := parseParams(req.Query, "length"); err != nil {
			return nil, err
		}
		return a.guidedPage(ctx, req)

	case req.Page.Magazine == 516:
		if err := parseParams(req.Query, "context"); err != nil {
			return nil, err
		}
		if req.TextInput == "" {
			return []page.GridPage{a.askPage()}, nil
		}
		contextID := req.ContextID
		if contextID == "" {
			contextID = req.Query["context"]
		}
		return a.Ask(ctx, req.TextInput, contextID)

	default:
		return nil, notFound(req.Page)
	}
}

func (a *AI) oracleIndex() page.GridPage {
	return indexPage("500", "THE ORACLE", map[string]string{
		"510": "QUESTION MENU",
		"516": "ASK ANYTHING",
	}, "answers are written by a machine")
}

func (a *AI) menuPage() page.GridPage {
	b := page.NewBuilder("510", "QUESTION MENU")
	for n := 511; n <= 515; n++ {
		topic := guidedTopics[n]
		b.Row(fmt.Sprintf(" %s%d %s%s", page.TagGreen, n, page.TagWhite, topic.label))
		b.Link(topic.label, fmt.Sprintf("%d", n), page.Green)
	}
	b.Blank().Row(" or ask your own question on " + page.TagGreen + "516")
	b.Link("ASK ANYTHING", "516", page.Blue)
	b.Link("ORACLE", "500", page.Yellow)
	return b.Build()
}

func (a *AI) askPage() page.GridPage {
	return page.NewBuilder("516", "ASK ANYTHING").
		Row(" Type a question and send it to this").
		Row(" page. The answer appears here and").
		Row(" continues on sub-pages if long.").
		Blank().
		Row(" Keep the returned context id to ask").
		Row(" follow-up questions in the same").
		Row(" conversation.").
		Link("MENU", "510", page.Yellow).
		Build()
}

// guidedPage answers a fixed topic prompt. Stateless: repeat visits are
// served from the response cache while it is warm.
func (a *AI) guidedPage(ctx context.Context, req route.Request) ([]page.GridPage, error) {
	if pages, err := a.setupPages(req.Page); pages != nil || err != nil {
		return pages, err
	}

	topic := guidedTopics[req.Page.Magazine]
	prompt, err := aiservice.BuildPrompt(aiservice.ModeQuestion, map[string]string{
		"question": topic.prompt, "length": req.Query["length"],
	})
	if err != nil {
		return nil, route.AdapterFailure("building topic prompt", err)
	}

	text, err := a.invoker.Invoke(ctx, prompt, nil)
	if err != nil {
		return nil, classifyGenerationError(err)
	}

	start := route.PageID{Magazine: req.Page.Magazine, Sub: 1}
	return paginate.Paginate(text, start, paginate.Layout{
		Title:      topic.label,
		HeaderRows: 2,
		FooterRows: 2,
	}), nil
}

// Ask runs one free-text exchange, appending a (user, model) turn pair
// to the conversation. An absent or expired context starts fresh.
func (a *AI) Ask(ctx context.Context, question, contextID string) ([]page.GridPage, error) {
	start := route.PageID{Magazine: 516, Sub: 1}
	if pages, err := a.setupPages(start); pages != nil || err != nil {
		return pages, err
	}

	var conv session.AIConversation
	var ok bool
	if contextID != "" {
		conv, ok = a.sessions.LoadConversation(contextID)
	}
	if !ok {
		conv = a.sessions.CreateConversation(aiservice.ModeQuestion, nil)
	}

	text, err := a.invoker.Invoke(ctx, question, conv.History)
	if err != nil {
		return nil, classifyGenerationError(err)
	}

	pages := paginate.Paginate(text, start, paginate.Layout{
		Title:      "YOUR ANSWER",
		HeaderRows: 2,
		FooterRows: 2,
	})

	conv.History = append(conv.History,
		session.Turn{Role: session.RoleUser, Text: question},
		session.Turn{Role: session.RoleModel, Text: text, PageID: pages[0].ID},
	)
	a.sessions.SaveConversation(conv)

	for i := range pages {
		if pages[i].Meta == nil {
			pages[i].Meta = make(map[string]any)
		}
		pages[i].Meta["contextId"] = conv.ContextID
	}
	return pages, nil
}

// Generate serves one-shot oracle requests made outside page
// navigation. Question and chat modes join or start a conversation via
// contextId; the other modes are stateless. The returned context id is
// empty for stateless modes.
func (a *AI) Generate(ctx context.Context, mode string, params map[string]string) ([]page.GridPage, string, error) {
	if err := parseParams(params, "theme", "length", "question", "contextId"); err != nil {
		return nil, "", err
	}

	start := route.PageID{Magazine: 516, Sub: 1}
	if pages, err := a.setupPages(start); pages != nil || err != nil {
		return pages, "", err
	}

	if mode == aiservice.ModeQuestion || mode == aiservice.ModeChat {
		question := params["question"]
		if question == "" {
			return nil, "", &route.Error{Code: route.CodeInvalidPage,
				Reason: "question parameter is required"}
		}
		pages, err := a.Ask(ctx, question, params["contextId"])
		if err != nil {
			return nil, "", err
		}
		contextID, _ := pages[0].Meta["contextId"].(string)
		return pages, contextID, nil
	}

	prompt, err := aiservice.BuildPrompt(mode, params)
	if err != nil {
		return nil, "", &route.Error{Code: route.CodeInvalidPage, Reason: err.Error()}
	}
	text, err := a.invoker.Invoke(ctx, prompt, nil)
	if err != nil {
		return nil, "", classifyGenerationError(err)
	}
	return paginate.Paginate(text, start, paginate.Layout{
		Title:      strings.ToUpper(mode),
		HeaderRows: 2,
		FooterRows: 2,
	}), "", nil
}

// EndConversation discards a conversation context.
func (a *AI) EndConversation(contextID string) {
	a.sessions.DeleteConversation(contextID)
}

// setupPages renders setup instructions when the backend is not
// configured. Unconfigured is a page, not an error.
func (a *AI) setupPages(id route.PageID) ([]page.GridPage, error) {
	if a.invoker != nil {
		return nil, nil
	}
	b := page.NewBuilder(id.String(), "ORACLE SETUP").
		Row(" The generation backend is not").
		Row(" configured on this server.").
		Blank().
		Row(" Set the following and restart:")
	for _, name := range a.missing {
		b.Row("  " + page.TagYellow + name)
	}
	b.Link("INDEX", "100", page.Yellow)
	return []page.GridPage{b.Build()}, nil
}

func classifyGenerationError(err error) error {
	if errors.Is(err, throttle.ErrRateLimited) {
		return route.RateLimited(err)
	}
	var cfgErr *aiservice.ConfigError
	if errors.As(err, &cfgErr) {
		return route.AdapterFailure("generation backend unconfigured", err)
	}
	return route.ExternalFailure("generation failed", err)
}
