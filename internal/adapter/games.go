package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/model/session"
	"github.com/oguzkopan/teletext-sub000/internal/paginate"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	"github.com/oguzkopan/teletext-sub000/internal/service/quiz"
	"github.com/oguzkopan/teletext-sub000/internal/service/story"
	"github.com/oguzkopan/teletext-sub000/internal/store"
)

// Games owns magazine 6: the quiz on 601 and the branching story on 610.
// Game state rides a session query parameter; an absent or expired
// session silently starts a fresh one.
type Games struct {
	sessions *store.Sessions
}

func NewGames(sessions *store.Sessions) *Games {
	return &Games{sessions: sessions}
}

func (g *Games) Name() string { return "games" }

func (g *Games) Render(_ context.Context, req route.Request) ([]page.GridPage, error) {
	switch req.Page.Magazine {
	case 600:
		if err := parseParams(req.Query); err != nil {
			return nil, err
		}
		return []page.GridPage{indexPage("600", "GAMES", map[string]string{
			"601": "QUICK QUIZ",
			"610": "THE DARK LIGHTHOUSE",
		}, "progress is kept for one hour")}, nil
	case 601:
		return g.quizPage(req)
	case 610:
		return g.storyPage(req)
	default:
		return nil, notFound(req.Page)
	}
}

func (g *Games) quizPage(req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query, "session", "answer"); err != nil {
		return nil, err
	}

	s, ok := g.sessions.LoadQuiz(req.Query["session"])
	if !ok {
		s = g.sessions.CreateQuiz(quiz.Seed())
	}

	answer, answered, err := intParam(req.Query, "answer")
	if err != nil {
		return nil, err
	}
	if answered && ok && !s.Terminal() {
		advanced, _, err := quiz.Answer(s, answer-1)
		if err != nil {
			if errors.Is(err, quiz.ErrChoiceOutOfRange) {
				return nil, &route.Error{Code: route.CodeInvalidPage,
					Reason: fmt.Sprintf("answer %d out of range", answer)}
			}
			return nil, route.AdapterFailure("applying quiz answer", err)
		}
		s = advanced
		g.sessions.SaveQuiz(s)
	}

	if s.Terminal() {
		return []page.GridPage{g.quizScorePage(s)}, nil
	}
	return []page.GridPage{g.quizQuestionPage(s)}, nil
}

func (g *Games) quizQuestionPage(s session.QuizSession) page.GridPage {
	q := s.Questions[s.CurrentIndex]
	b := page.NewBuilder("601", fmt.Sprintf("QUIZ %d/%d", s.CurrentIndex+1, len(s.Questions)))
	b.Rows(paginate.Wrap(q.Prompt, page.Cols-2))
	b.Blank()
	for i, opt := range q.Options {
		b.Row(fmt.Sprintf(" %s%d %s%s", page.TagGreen, i+1, page.TagWhite, opt))
	}
	b.Blank()
	b.Row(page.TagBlue + " send answer=1.." +
		fmt.Sprintf("%d", len(q.Options)) + " with your session")
	b.Link("GAMES", "600", page.Yellow)
	b.Meta("session", s.SessionID)
	b.Meta("score", s.Score)
	return b.Build()
}

func (g *Games) quizScorePage(s session.QuizSession) page.GridPage {
	verdict := "a solid effort"
	switch {
	case s.Score == len(s.Questions):
		verdict = "a perfect round!"
	case s.Score == 0:
		verdict = "better luck next time"
	}

	return page.NewBuilder("601", "QUIZ OVER").
		Blank().
		Centered(fmt.Sprintf("YOU SCORED %d OF %d", s.Score, len(s.Questions))).
		Blank().
		Centered(verdict).
		Blank().
		Centered("visit 601 again for a new round").
		Link("GAMES", "600", page.Yellow).
		Meta("session", s.SessionID).
		Meta("score", s.Score).
		Build()
}

func (g *Games) storyPage(req route.Request) ([]page.GridPage, error) {
	if err := parseParams(req.Query, "session", "choice"); err != nil {
		return nil, err
	}

	s, ok := g.sessions.LoadStory(req.Query["session"])
	if !ok {
		s = g.sessions.CreateStory(story.StartNode)
	}

	choice, chose, err := intParam(req.Query, "choice")
	if err != nil {
		return nil, err
	}
	if chose && ok {
		advanced, _, err := story.Advance(s, choice-1)
		switch {
		case errors.Is(err, story.ErrChoiceOutOfRange):
			return nil, &route.Error{Code: route.CodeInvalidPage,
				Reason: fmt.Sprintf("choice %d out of range", choice)}
		case errors.Is(err, story.ErrTerminalNode):
			// Ignore; the ending page renders below.
		case err != nil:
			return nil, route.AdapterFailure("advancing story", err)
		default:
			s = advanced
			g.sessions.SaveStory(s)
		}
	}

	node, err := story.Node(s.CurrentNodeID)
	if err != nil {
		return nil, route.AdapterFailure("loading story node", err)
	}
	return []page.GridPage{g.storyNodePage(s, node)}, nil
}

func (g *Games) storyNodePage(s session.StorySession, node session.StoryNode) page.GridPage {
	title := "THE DARK LIGHTHOUSE"
	if node.Terminal {
		title = "THE END"
	}

	b := page.NewBuilder("610", title)
	b.Rows(paginate.Wrap(node.Content, page.Cols-2))
	b.Blank()
	if node.Terminal {
		b.Centered(fmt.Sprintf("FINAL SCORE %d", s.Score))
		b.Blank()
		b.Centered(fmt.Sprintf("you visited %d places", len(s.VisitedPath)))
		b.Blank()
		b.Centered("visit 610 again to start over")
	} else {
		for i, c := range node.Choices {
			b.Row(fmt.Sprintf(" %s%d %s%s", page.TagGreen, i+1, page.TagWhite, c.Label))
		}
		b.Blank()
		b.Row(page.TagBlue + " send choice=1.." +
			fmt.Sprintf("%d", len(node.Choices)) + " with your session")
	}
	b.Link("GAMES", "600", page.Yellow)
	b.Meta("session", s.SessionID)
	b.Meta("node", node.ID)
	b.Meta("score", s.Score)
	return b.Build()
}
