package game_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"kageo/backend/internal/answers"
	"kageo/backend/internal/game"
	"kageo/backend/internal/models"
)

// fakeSender records every outbound message so tests can assert on the
// conversation transcript.
type fakeSender struct {
	mu    sync.Mutex
	sent  []sentMessage
	names map[int64]string
	// sendErr, when set, makes every SendText fail.
	sendErr error
}

type sentMessage struct {
	ChatID int64
	Text   string
}

func (f *fakeSender) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (f *fakeSender) ResolveDisplayName(userID int64) (string, error) {
	if name, ok := f.names[userID]; ok {
		return name, nil
	}
	return "", fmt.Errorf("user %d not found", userID)
}

// lastText returns the most recent outbound message, or "" when none was sent.
func (f *fakeSender) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Text
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// MockStore is a mock implementation of the storage.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load() (*models.BotData, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BotData), args.Error(1)
}

func (m *MockStore) Save(data *models.BotData) error {
	args := m.Called(data)
	return args.Error(0)
}

// fixedRand always picks the first candidate, making answers deterministic.
type fixedRand struct{}

func (fixedRand) Intn(n int) int { return 0 }

// newTestDispatcher builds a dispatcher with a recording sender, a permissive
// store mock, a two-key answer database and a no-op sleep.
func newTestDispatcher() (*game.Dispatcher, *fakeSender, *MockStore) {
	sender := &fakeSender{names: make(map[int64]string)}
	store := new(MockStore)
	store.On("Save", mock.Anything).Return(nil).Maybe()

	answerStore := answers.NewStore(map[string][]string{
		"A": {"A1", "A2"},
		"B": {"B1"},
	}, fixedRand{})

	d := game.NewDispatcher(sender, store, answerStore, models.NewBotData())
	d.Sleep = func(time.Duration) {}
	return d, sender, store
}

// ev builds an inbound free-text event.
func ev(chatID, senderID int64, name, text string) models.Event {
	return models.Event{ChatID: chatID, SenderID: senderID, SenderName: name, Text: text}
}
