package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"iss_overhead_notifier/internal/domain/notification"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	args := m.Called(to, what)
	msg, _ := args.Get(0).(*telebot.Message)
	return msg, args.Error(1)
}

func TestNotifySendsAlertText(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", &telebot.Chat{ID: 42}, notification.DefaultAlert.Text()).Return(&telebot.Message{}, nil).Once()

	a := &TelebotAdapter{bot: sender, chatID: 42}
	require.NoError(t, a.Notify(context.Background(), notification.DefaultAlert))

	sender.AssertExpectations(t)
}

func TestNotifyWrapsError(t *testing.T) {
	boom := errors.New("telegram: chat not found (400)")
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil, boom)

	a := &TelebotAdapter{bot: sender, chatID: 7}
	err := a.Notify(context.Background(), notification.DefaultAlert)

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "chat 7")
}

func TestNotifyCancelledDoesNotSend(t *testing.T) {
	sender := new(mockSender)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &TelebotAdapter{bot: sender, chatID: 7}
	assert.ErrorIs(t, a.Notify(ctx, notification.DefaultAlert), context.Canceled)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNewBotOffline(t *testing.T) {
	b, err := NewBot("123456:TEST")
	require.NoError(t, err)
	assert.Nil(t, b.Poller, "send-only bot never polls for updates")
	assert.NotNil(t, NewTelebotAdapter(b, 1))
}
