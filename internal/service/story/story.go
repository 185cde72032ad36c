// Package story models the branching adventure as an explicit directed
// graph of nodes and a pure Advance transition, rather than an implicit
// state machine spread over page numbers.
package story

import (
	"errors"
	"fmt"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

var (
	ErrUnknownNode      = errors.New("unknown story node")
	ErrTerminalNode     = errors.New("story already finished")
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// StartNode is where every fresh session begins.
const StartNode = "lighthouse"

// Graph is the full node table. Terminal nodes end the story.
func Graph() map[string]session.StoryNode {
	return map[string]session.StoryNode{
		"lighthouse": {
			ID: "lighthouse",
			Content: "The ferry dropped you at the island at dusk. The old " +
				"lighthouse is dark for the first time in eighty years, and " +
				"the keeper is nowhere to be found.",
			Choices: []session.StoryChoice{
				{Label: "Climb the lighthouse stairs", NextNodeID: "tower", ScoreDelta: 1},
				{Label: "Search the keeper's cottage", NextNodeID: "cottage", ScoreDelta: 0},
			},
		},
		"tower": {
			ID: "tower",
			Content: "Halfway up, the staircase is blocked by a fallen beam. " +
				"Through a slit window you see a rowing boat leaving the cove.",
			Choices: []session.StoryChoice{
				{Label: "Squeeze past the beam", NextNodeID: "lamproom", ScoreDelta: 2},
				{Label: "Go back and follow the boat", NextNodeID: "cove", ScoreDelta: 0},
			},
		},
		"cottage": {
			ID: "cottage",
			Content: "The cottage door swings open. A half-eaten supper sits on " +
				"the table beside a logbook. The final entry reads: " +
				"\"The lens. They have come for the lens.\"",
			Choices: []session.StoryChoice{
				{Label: "Take the logbook and climb the tower", NextNodeID: "tower", ScoreDelta: 1},
				{Label: "Run down to the cove", NextNodeID: "cove", ScoreDelta: 0},
			},
		},
		"lamproom": {
			ID: "lamproom",
			Content: "The great lens is gone. In its place lies the keeper, " +
				"tied but alive. He nods toward the signal flare cabinet.",
			Choices: []session.StoryChoice{
				{Label: "Fire the flare", NextNodeID: "rescue", ScoreDelta: 3},
				{Label: "Untie him and hide", NextNodeID: "hide", ScoreDelta: 1},
			},
		},
		"cove": {
			ID: "cove",
			Content: "You reach the cove as the rowing boat melts into the fog. " +
				"Something glitters in the shallows: a shard of the great lens, " +
				"dropped in the thieves' hurry.",
			Choices: []session.StoryChoice{
				{Label: "Wade in and grab the shard", NextNodeID: "shard", ScoreDelta: 2},
			},
		},
		"rescue": {
			ID: "rescue",
			Content: "The flare paints the fog red. Within the hour a patrol " +
				"boat corners the thieves at the point, lens and all. The " +
				"keeper shakes your hand as the lamp is lit once more.",
			Terminal: true,
		},
		"hide": {
			ID: "hide",
			Content: "You wait out the night in the oil store. By dawn the " +
				"thieves are long gone, but the keeper is safe, and the " +
				"coastguard takes your description of the boat.",
			Terminal: true,
		},
		"shard": {
			ID: "shard",
			Content: "Soaked to the waist, you hold the shard up to the dying " +
				"light. It is enough for the constabulary to trace the glass " +
				"to a fence on the mainland. The lens comes home in spring.",
			Terminal: true,
		},
	}
}

// Node looks up one node of the graph.
func Node(id string) (session.StoryNode, error) {
	node, ok := Graph()[id]
	if !ok {
		return session.StoryNode{}, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return node, nil
}

// Advance applies choiceIndex at the session's current node and returns
// the advanced session plus the node it landed on. The input session is
// not mutated; VisitedPath stays append-only with the new current node
// last.
func Advance(s session.StorySession, choiceIndex int) (session.StorySession, session.StoryNode, error) {
	current, err := Node(s.CurrentNodeID)
	if err != nil {
		return s, session.StoryNode{}, err
	}
	if current.Terminal {
		return s, current, ErrTerminalNode
	}
	if choiceIndex < 0 || choiceIndex >= len(current.Choices) {
		return s, session.StoryNode{}, fmt.Errorf("%w: %d", ErrChoiceOutOfRange, choiceIndex)
	}

	choice := current.Choices[choiceIndex]
	next, err := Node(choice.NextNodeID)
	if err != nil {
		return s, session.StoryNode{}, err
	}

	choices := make(map[string]int, len(s.Choices)+1)
	for k, v := range s.Choices {
		choices[k] = v
	}
	choices[current.ID] = choiceIndex

	s.CurrentNodeID = next.ID
	s.VisitedPath = append(append([]string(nil), s.VisitedPath...), next.ID)
	s.Score += choice.ScoreDelta
	s.Choices = choices
	return s, next, nil
}
