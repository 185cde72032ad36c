package session

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one utterance in an AI conversation. PageID records which page
// the model half of the exchange was rendered on.
type Turn struct {
	Role   Role   `json:"role"`
	Text   string `json:"text"`
	PageID string `json:"pageId,omitempty"`
}

// AIConversation holds the server-side state of a generative chat.
// History grows by exactly one (user, model) pair per completed exchange.
type AIConversation struct {
	ContextID      string            `json:"contextId"`
	Mode           string            `json:"mode"`
	History        []Turn            `json:"history"`
	Parameters     map[string]string `json:"parameters,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastAccessedAt time.Time         `json:"lastAccessedAt"`
}

// Question is a single quiz item. Answer indexes into Options.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// QuizSession tracks progress through a fixed question list.
// Invariant: Score equals the number of true entries in Answers, and
// CurrentIndex only ever increases. The session is terminal once
// CurrentIndex reaches len(Questions).
type QuizSession struct {
	SessionID    string     `json:"sessionId"`
	Questions    []Question `json:"questions"`
	CurrentIndex int        `json:"currentIndex"`
	Answers      []bool     `json:"answers"`
	Score        int        `json:"score"`
}

// Terminal reports whether every question has been answered.
func (s QuizSession) Terminal() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// StoryChoice is one selectable branch out of a story node.
type StoryChoice struct {
	Label      string `json:"label"`
	NextNodeID string `json:"nextNodeId"`
	ScoreDelta int    `json:"scoreDelta"`
}

// StoryNode is one situation in the branching story graph.
type StoryNode struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Choices  []StoryChoice `json:"choices"`
	Terminal bool          `json:"terminal"`
}

// StorySession tracks a reader's path through the story graph.
// Invariant: VisitedPath is append-only and its last element equals
// CurrentNodeID.
type StorySession struct {
	SessionID     string         `json:"sessionId"`
	CurrentNodeID string         `json:"currentNodeId"`
	VisitedPath   []string       `json:"visitedPath"`
	Score         int            `json:"score"`
	Choices       map[string]int `json:"choices"`
}
