package notificationhandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pmfin-backend/lib/events"
	notificationstore "pmfin-backend/lib/notification/store"
	userstore "pmfin-backend/lib/users/store"
	"pmfin-backend/lib/utils/testdb"
	connectionhub "pmfin-backend/lib/ws/hub/connection-hub"
	"pmfin-backend/models"
	notificationapimodels "pmfin-backend/models/api/notification"
	dbmodels "pmfin-backend/models/db"
	wsmodels "pmfin-backend/models/ws"
)

type hubMock struct {
	mock.Mock
}

func (m *hubMock) AddClient(userID string, conn connectionhub.Conn)    {}
func (m *hubMock) DeleteClient(userID string, conn connectionhub.Conn) {}
func (m *hubMock) SendClose(userID string)                             {}

func (m *hubMock) SendMessage(msg wsmodels.ServerMessage) bool {
	return m.Called(msg).Bool(0)
}

func (m *hubMock) IsConnected(userID string) bool {
	return m.Called(userID).Bool(0)
}

type mailerMock struct{}

func (mailerMock) SendEMail(to, subject, message string) error { return nil }
func (mailerMock) IsConfigured() bool                          { return false }

type eventsMock struct {
	published []events.Event
}

func (e *eventsMock) Publish(ctx context.Context, event events.Event) {
	e.published = append(e.published, event)
}

func (e *eventsMock) Close() error { return nil }

func TestNotifications(t *testing.T) {
	tx := testdb.New(t)
	users := userstore.NewInstance(tx)
	userID, err := users.Create(dbmodels.User{Email: "a@example.com", Role: models.EmployeeRole})
	require.NoError(t, err)

	hub := &hubMock{}
	ev := &eventsMock{}
	h := impl{
		store:     notificationstore.NewInstance(tx),
		userStore: users,
		hub:       hub,
		mailer:    mailerMock{},
		events:    ev,
	}

	t.Run("offline user gets stored notification", func(t *testing.T) {
		hub.On("IsConnected", userID).Return(false).Once()
		h.Send(userID, models.NotifyTaskAssigned, "Design")

		count, err := h.UnreadCount(userID)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Len(t, ev.published, 1)
		require.Equal(t, events.NotificationCreated, ev.published[0].Type)
		hub.AssertNotCalled(t, "SendMessage", mock.Anything)
	})
	t.Run("online user gets push with counter", func(t *testing.T) {
		hub.On("IsConnected", userID).Return(true).Once()
		hub.On("SendMessage", mock.MatchedBy(func(msg wsmodels.ServerMessage) bool {
			return msg.ToUserID == userID &&
				msg.UnreadCount == 2 &&
				msg.Code == string(models.NotifyTaskRevision) &&
				msg.Msg == "Task «Design» needs revision, requested by Kate."
		})).Return(true).Once()
		h.Send(userID, models.NotifyTaskRevision, "Design", "Kate")
		hub.AssertExpectations(t)
	})
	t.Run("list and mark read", func(t *testing.T) {
		list, rowCount, err := h.List(userID, notificationapimodels.NotificationFilter{UnreadOnly: true})
		require.NoError(t, err)
		require.EqualValues(t, 2, rowCount)

		hub.On("IsConnected", mock.Anything).Return(false)
		require.NoError(t, h.MarkRead(userID, []string{list[0].ID}))
		count, err := h.UnreadCount(userID)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)

		require.NoError(t, h.MarkRead("someone-else", []string{list[1].ID}))
		count, _ = h.UnreadCount(userID)
		require.EqualValues(t, 1, count)

		require.NoError(t, h.MarkAllRead(userID))
		count, _ = h.UnreadCount(userID)
		require.EqualValues(t, 0, count)
	})
	t.Run("empty recipient is ignored", func(t *testing.T) {
		before := len(ev.published)
		h.Send("", models.NotifyTaskAssigned, "x")
		require.Len(t, ev.published, before)
	})
}
