package game

import (
	"sync"
	"time"
)

// InputMode is the transient "waiting for the next free-text message" state
// of a conversation. It is independent of the duel lifecycle.
type InputMode int

const (
	// InputNone means the next free-text message gets normal routing.
	InputNone InputMode = iota
	// InputAwaitingTableName means the next message names a staged table.
	InputAwaitingTableName
	// InputAwaitingTableChoice means the next message selects a saved table.
	InputAwaitingTableChoice
)

// Conversation is the per-chat game state. Instances are created lazily on
// first reference and live for the process lifetime. The mutex is held by the
// dispatcher for the whole handling of one event, including the simulated
// typing delay, so events for the same chat never interleave.
type Conversation struct {
	mu sync.Mutex

	// Duel lifecycle.
	DuelActive           bool
	Opponent             int64 // 0 when no opponent is set
	AwaitingConfirmation bool
	DuelID               string // correlation id for logs, set per challenge

	// Trivia rate limiting.
	LastQuestionAt time.Time

	// Pending input sub-state.
	Mode         InputMode
	PendingTable string // staged content waiting for a name
}

// resetDuel clears every duel-related field. PendingTable and Mode are left
// alone: table capture is orthogonal to the duel lifecycle.
func (c *Conversation) resetDuel() {
	c.DuelActive = false
	c.Opponent = 0
	c.AwaitingConfirmation = false
	c.DuelID = ""
	c.LastQuestionAt = time.Time{}
}

// conversationRegistry hands out the Conversation for a chat ID, creating it
// on first use.
type conversationRegistry struct {
	mu            sync.Mutex
	conversations map[int64]*Conversation
}

func newConversationRegistry() *conversationRegistry {
	return &conversationRegistry{conversations: make(map[int64]*Conversation)}
}

func (r *conversationRegistry) get(chatID int64) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[chatID]
	if !ok {
		conv = &Conversation{}
		r.conversations[chatID] = conv
	}
	return conv
}
