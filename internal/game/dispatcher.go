// Package game implements the duel state machine and the routing of inbound
// chat events to the right handler. It talks to the chat platform only
// through the Sender interface, so the transport can be swapped in tests.
package game

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kageo/backend/internal/answers"
	"kageo/backend/internal/config"
	"kageo/backend/internal/models"
	"kageo/backend/internal/storage"
	"kageo/backend/internal/typing"
)

// Sender is the outbound half of the transport layer.
type Sender interface {
	// SendText delivers a text message to a conversation.
	SendText(chatID int64, text string) error
	// ResolveDisplayName looks up the display name for a user ID.
	ResolveDisplayName(userID int64) (string, error)
}

// Closed sets of confirmation texts, matched case-insensitively against the
// trimmed message.
var (
	affirmatives = map[string]bool{"oui": true, "wep": true, "ouais": true, ".": true}
	negatives    = map[string]bool{"non": true, "nop": true, "non.": true}
)

// Dispatcher is the single entry point for inbound events. It owns the
// per-conversation state registry, the shared persisted collections and the
// process-wide typing speed.
type Dispatcher struct {
	sender  Sender
	store   storage.Store
	answers *answers.Store

	registry *conversationRegistry

	// dataMu guards data and speedWPM. Every mutation of data is followed by
	// a synchronous Save while the lock is held.
	dataMu   sync.Mutex
	data     *models.BotData
	speedWPM int

	// Now and Sleep default to the real clock; tests replace them.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewDispatcher wires the dispatcher with its collaborators. data is the
// document previously loaded from store.
func NewDispatcher(sender Sender, store storage.Store, answerStore *answers.Store, data *models.BotData) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		store:    store,
		answers:  answerStore,
		registry: newConversationRegistry(),
		data:     data,
		speedWPM: config.DefaultSpeedWPM,
		Now:      time.Now,
		Sleep:    time.Sleep,
	}
}

// Conversation returns the state for a chat, creating it on first use.
func (d *Dispatcher) Conversation(chatID int64) *Conversation {
	return d.registry.get(chatID)
}

// HandleCommand processes one slash command. e.Text carries the command
// arguments. The conversation lock is held for the whole call, so commands
// and messages for the same chat never interleave.
func (d *Dispatcher) HandleCommand(e models.Event, command string) error {
	conv := d.registry.get(e.ChatID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	return d.guard(e.ChatID, func() error {
		switch command {
		case "start":
			return d.sender.SendText(e.ChatID, replyWelcome)
		case "speed":
			return d.setSpeed(e)
		case "duel_lp":
			return d.issueChallenge(conv, e)
		case "add_modo":
			return d.addModerator(e)
		case "modo_list":
			return d.listModerators(e)
		case "save_tab":
			return d.saveTable(conv, e)
		case "show_tab":
			return d.showTable(conv, e)
		case "end_game":
			return d.endGame(conv, e)
		default:
			return nil
		}
	})
}

// HandleText processes one free-text message. Routing order: pending table
// name, pending table choice, duel confirmation by the recorded opponent,
// greeting, trivia question. First match wins.
func (d *Dispatcher) HandleText(e models.Event) error {
	conv := d.registry.get(e.ChatID)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	return d.guard(e.ChatID, func() error {
		switch conv.Mode {
		case InputAwaitingTableName:
			return d.captureTableName(conv, e)
		case InputAwaitingTableChoice:
			return d.lookupTable(conv, e)
		}

		lower := strings.ToLower(strings.TrimSpace(e.Text))

		if conv.AwaitingConfirmation && conv.Opponent == e.SenderID {
			if affirmatives[lower] {
				return d.confirmDuel(conv, e)
			}
			if negatives[lower] {
				return d.denyDuel(conv, e)
			}
		}

		if lower == "ai" || lower == "kageo" {
			return d.sender.SendText(e.ChatID, replyCalled)
		}

		return d.answerQuestion(conv, e)
	})
}

// guard is the last-resort error boundary: a panicking handler is logged,
// the chat gets a generic notice, and the process keeps running.
func (d *Dispatcher) guard(chatID int64, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Panic while handling event for chat %d: %v", chatID, r)
			if sendErr := d.sender.SendText(chatID, replyTryLater); sendErr != nil {
				log.Printf("ERROR: Failed to send error notice to chat %d: %v", chatID, sendErr)
			}
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return fn()
}

func (d *Dispatcher) setSpeed(e models.Event) error {
	arg := strings.TrimSpace(e.Text)
	if arg == "" {
		return d.sender.SendText(e.ChatID, replySpeedUsage)
	}

	speed, err := strconv.Atoi(strings.Fields(arg)[0])
	if err != nil {
		return d.sender.SendText(e.ChatID, replySpeedNotNumber)
	}
	if speed < config.MinSpeedWPM || speed > config.MaxSpeedWPM {
		return d.sender.SendText(e.ChatID, replySpeedRange)
	}

	d.dataMu.Lock()
	d.speedWPM = speed
	d.dataMu.Unlock()

	if speed == config.MaxSpeedWPM {
		return d.sender.SendText(e.ChatID, replySpeedMax)
	}
	return d.sender.SendText(e.ChatID, fmt.Sprintf(replySpeedConfirmFmt, speed))
}

func (d *Dispatcher) issueChallenge(conv *Conversation, e models.Event) error {
	if conv.DuelActive {
		return d.sender.SendText(e.ChatID, replyDuelInProgress)
	}

	conv.DuelActive = true
	conv.Opponent = e.SenderID
	conv.AwaitingConfirmation = true
	conv.DuelID = uuid.New().String()
	log.Printf("INFO: Duel %s issued in chat %d by user %d", conv.DuelID, e.ChatID, e.SenderID)

	if err := d.sender.SendText(e.ChatID, replyDuelPrompt); err != nil {
		// The opponent never saw the prompt, so the challenge must not stay open.
		conv.resetDuel()
		return err
	}
	return nil
}

func (d *Dispatcher) confirmDuel(conv *Conversation, e models.Event) error {
	d.dataMu.Lock()
	key := strconv.FormatInt(e.SenderID, 10)
	challenger, ok := d.data.Challengers[key]
	if !ok {
		challenger = &models.Challenger{
			Name:     e.SenderName,
			JoinDate: d.Now().Format("2006-01-02"),
		}
		d.data.Challengers[key] = challenger
	}
	challenger.DuelsCount++
	if err := d.store.Save(d.data); err != nil {
		log.Printf("ERROR: Failed to persist challenger %s: %v", key, err)
	}
	d.dataMu.Unlock()

	conv.AwaitingConfirmation = false
	log.Printf("INFO: Duel %s confirmed by challenger %d", conv.DuelID, e.SenderID)
	return d.sender.SendText(e.ChatID, fmt.Sprintf(replyDuelConfirmFmt, e.SenderName))
}

func (d *Dispatcher) denyDuel(conv *Conversation, e models.Event) error {
	log.Printf("INFO: Duel %s denied by user %d", conv.DuelID, e.SenderID)
	conv.resetDuel()
	return d.sender.SendText(e.ChatID, replyDuelCancelled)
}

func (d *Dispatcher) endGame(conv *Conversation, e models.Event) error {
	if !conv.DuelActive {
		return d.sender.SendText(e.ChatID, replyNoGame)
	}
	conv.resetDuel()
	return d.sender.SendText(e.ChatID, replyGameOver)
}

func (d *Dispatcher) addModerator(e models.Event) error {
	d.dataMu.Lock()
	if d.data.HasModerator(e.SenderID) {
		d.dataMu.Unlock()
		return d.sender.SendText(e.ChatID, replyAlreadyModerator)
	}
	d.data.Moderators = append(d.data.Moderators, e.SenderID)
	if err := d.store.Save(d.data); err != nil {
		log.Printf("ERROR: Failed to persist moderator %d: %v", e.SenderID, err)
	}
	d.dataMu.Unlock()

	return d.sender.SendText(e.ChatID, fmt.Sprintf(replyModeratorAdded, e.SenderName))
}

func (d *Dispatcher) listModerators(e models.Event) error {
	d.dataMu.Lock()
	ids := append([]int64(nil), d.data.Moderators...)
	d.dataMu.Unlock()

	if len(ids) == 0 {
		return d.sender.SendText(e.ChatID, replyNoModerators)
	}

	var b strings.Builder
	b.WriteString(replyModeratorHeader)
	for _, id := range ids {
		name, err := d.sender.ResolveDisplayName(id)
		if err != nil {
			fmt.Fprintf(&b, "• ID: %d (non trouvé)\n", id)
			continue
		}
		fmt.Fprintf(&b, "• %s\n", name)
	}
	return d.sender.SendText(e.ChatID, b.String())
}

func (d *Dispatcher) saveTable(conv *Conversation, e models.Event) error {
	if !e.HasReply {
		return d.sender.SendText(e.ChatID, replySaveNeedsReply)
	}

	conv.PendingTable = e.ReplyToText
	conv.Mode = InputAwaitingTableName
	return d.sender.SendText(e.ChatID, replyAskTableName)
}

func (d *Dispatcher) captureTableName(conv *Conversation, e models.Event) error {
	name := strings.TrimSpace(e.Text)
	if name == "" {
		// Still waiting: the sub-state is only cleared by a usable name.
		return d.sender.SendText(e.ChatID, replyTableNameEmpty)
	}

	d.dataMu.Lock()
	d.data.SavedTables[name] = conv.PendingTable
	if err := d.store.Save(d.data); err != nil {
		log.Printf("ERROR: Failed to persist table %q: %v", name, err)
	}
	d.dataMu.Unlock()

	conv.Mode = InputNone
	conv.PendingTable = ""
	return d.sender.SendText(e.ChatID, fmt.Sprintf(replyTableSavedFmt, name))
}

func (d *Dispatcher) showTable(conv *Conversation, e models.Event) error {
	d.dataMu.Lock()
	names := make([]string, 0, len(d.data.SavedTables))
	for name := range d.data.SavedTables {
		names = append(names, name)
	}
	d.dataMu.Unlock()

	if len(names) == 0 {
		return d.sender.SendText(e.ChatID, replyNoTables)
	}

	sort.Strings(names)
	for i, name := range names {
		names[i] = "• " + name
	}

	conv.Mode = InputAwaitingTableChoice
	return d.sender.SendText(e.ChatID, fmt.Sprintf(replyTableListFmt, strings.Join(names, "\n")))
}

func (d *Dispatcher) lookupTable(conv *Conversation, e models.Event) error {
	name := strings.TrimSpace(e.Text)

	d.dataMu.Lock()
	content, ok := d.data.SavedTables[name]
	d.dataMu.Unlock()

	// One shot: the sub-state resets whether or not the name matched.
	conv.Mode = InputNone

	if !ok {
		return d.sender.SendText(e.ChatID, replyTableNotFound)
	}
	return d.sender.SendText(e.ChatID, content)
}

// answerQuestion handles trivia lookups. It is gated on an active confirmed
// duel, moderator status, a question marker prefix and the per-conversation
// cooldown; everything else falls through silently.
func (d *Dispatcher) answerQuestion(conv *Conversation, e models.Event) error {
	if !conv.DuelActive || conv.AwaitingConfirmation {
		return nil
	}

	d.dataMu.Lock()
	isModerator := d.data.HasModerator(e.SenderID)
	speed := d.speedWPM
	d.dataMu.Unlock()
	if !isModerator {
		return nil
	}

	var body string
	switch {
	case strings.HasPrefix(e.Text, "Q/"), strings.HasPrefix(e.Text, "Q)"):
		body = e.Text[2:]
	default:
		return nil
	}

	now := d.Now()
	if !conv.LastQuestionAt.IsZero() && now.Sub(conv.LastQuestionAt) < config.QuestionCooldown {
		return nil
	}
	conv.LastQuestionAt = now

	keys := strings.Fields(body)
	if len(keys) == 0 {
		return d.sender.SendText(e.ChatID, replyQuestionFormat)
	}

	var picked []string
	for _, key := range keys {
		if answer, ok := d.answers.PickOne(key); ok {
			picked = append(picked, answer)
		}
	}
	if len(picked) == 0 {
		return d.sender.SendText(e.ChatID, replyNoAnswer)
	}

	response := strings.Join(picked, " ")
	typingTime := typing.Estimate(response, speed)

	d.Sleep(time.Duration(typingTime * float64(time.Second)))
	if err := d.sender.SendText(e.ChatID, response); err != nil {
		return err
	}

	d.Sleep(config.ReportPause)
	return d.sender.SendText(e.ChatID, fmt.Sprintf(replyTypingTimeFmt, typingTime))
}

// SpeedWPM returns the current typing speed.
func (d *Dispatcher) SpeedWPM() int {
	d.dataMu.Lock()
	defer d.dataMu.Unlock()
	return d.speedWPM
}

// Moderators returns a copy of the moderator roster.
func (d *Dispatcher) Moderators() []int64 {
	d.dataMu.Lock()
	defer d.dataMu.Unlock()
	return append([]int64(nil), d.data.Moderators...)
}

// Challengers returns a copy of the challenger records.
func (d *Dispatcher) Challengers() map[string]models.Challenger {
	d.dataMu.Lock()
	defer d.dataMu.Unlock()

	out := make(map[string]models.Challenger, len(d.data.Challengers))
	for key, challenger := range d.data.Challengers {
		out[key] = *challenger
	}
	return out
}

// TableNames returns the sorted names of the saved tables.
func (d *Dispatcher) TableNames() []string {
	d.dataMu.Lock()
	defer d.dataMu.Unlock()

	names := make([]string, 0, len(d.data.SavedTables))
	for name := range d.data.SavedTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
