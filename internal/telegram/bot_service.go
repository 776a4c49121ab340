// Package telegram handles the integration with the Telegram Bot API.
// It receives updates, turns them into transport events and routes them to
// the game dispatcher, and implements the dispatcher's outbound Sender.
package telegram

import (
	"fmt"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kageo/backend/internal/game"
	"kageo/backend/internal/models"
)

// BotService is responsible for receiving Telegram updates and routing them
// to the dispatcher.
type BotService struct {
	BotAPI     *tgbotapi.BotAPI
	Dispatcher *game.Dispatcher

	// names caches the display name of every user seen in an update, so the
	// moderator list can be rendered without extra API round trips.
	namesMu sync.RWMutex
	names   map[int64]string
}

// NewBotService creates a new BotService instance. The dispatcher is attached
// afterwards because it needs this service as its Sender.
func NewBotService(token string) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI: bot,
		names:  make(map[int64]string),
	}, nil
}

// AttachDispatcher wires the game dispatcher. Must be called before Run.
func (s *BotService) AttachDispatcher(d *game.Dispatcher) {
	s.Dispatcher = d
}

// SendText implements game.Sender.
func (s *BotService) SendText(chatID int64, text string) error {
	_, err := s.BotAPI.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// ResolveDisplayName implements game.Sender from the local name cache.
func (s *BotService) ResolveDisplayName(userID int64) (string, error) {
	s.namesMu.RLock()
	name, ok := s.names[userID]
	s.namesMu.RUnlock()

	if !ok || name == "" {
		return "", fmt.Errorf("no display name known for user %d", userID)
	}
	return name, nil
}

func (s *BotService) rememberName(msg *tgbotapi.Message) {
	if msg.From == nil || msg.From.FirstName == "" {
		return
	}
	s.namesMu.Lock()
	s.names[msg.From.ID] = msg.From.FirstName
	s.namesMu.Unlock()
}

// eventFrom converts a Telegram message into a transport event.
func eventFrom(msg *tgbotapi.Message) models.Event {
	e := models.Event{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.From != nil {
		e.SenderID = msg.From.ID
		e.SenderName = msg.From.FirstName
	}
	if msg.ReplyToMessage != nil {
		e.HasReply = true
		e.ReplyToText = msg.ReplyToMessage.Text
	}
	return e
}

// Run is the main loop for receiving Telegram updates. Each message is
// handled in its own goroutine: the dispatcher serializes events per chat,
// so different chats stay responsive while one is inside a typing delay.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		msg := update.Message
		s.rememberName(msg)
		go s.handleMessage(msg)
	}
}

func (s *BotService) handleMessage(msg *tgbotapi.Message) {
	e := eventFrom(msg)

	if msg.IsCommand() {
		e.Text = msg.CommandArguments()
		if err := s.Dispatcher.HandleCommand(e, msg.Command()); err != nil {
			log.Printf("ERROR: Command /%s in chat %d: %v", msg.Command(), msg.Chat.ID, err)
		}
		return
	}

	if msg.Text == "" {
		return
	}
	if err := s.Dispatcher.HandleText(e); err != nil {
		log.Printf("ERROR: Message in chat %d: %v", msg.Chat.ID, err)
	}
}
