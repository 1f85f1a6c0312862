package handlers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/Dardva/Bot-for-remind/bot/service"
	"github.com/Dardva/Bot-for-remind/bot/storage"
	"github.com/Dardva/Bot-for-remind/core/telegram/state"
)

// fakeContext drives handlers without a live bot. Only the methods the
// handler paths touch are overridden; anything else panics loudly.
type fakeContext struct {
	tele.Context
	chat   *tele.Chat
	sender *tele.User
	text   string
	values map[string]interface{}
	sent   []string
}

func newFakeContext(chatID, tgID int64, text string) *fakeContext {
	return &fakeContext{
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: tgID, FirstName: "Ada"},
		text:   text,
		values: map[string]interface{}{},
	}
}

func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Message() *tele.Message   { return nil }
func (f *fakeContext) Callback() *tele.Callback { return nil }
func (f *fakeContext) Update() tele.Update      { return tele.Update{} }
func (f *fakeContext) Get(key string) interface{} {
	return f.values[key]
}
func (f *fakeContext) Set(key string, v interface{}) {
	f.values[key] = v
}
func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func newTestHandlers(t *testing.T) (*Handlers, state.Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	fsm := state.NewMemoryManager()
	svc := service.New(storage.New(sqlx.NewDb(db, "sqlmock")))
	return New(svc, fsm, nil, nil), fsm, mock
}

func expectUserLookup(mock sqlmock.Sqlmock, tgID, userID int64) {
	mock.ExpectQuery("SELECT id, tg_id, username, first_name").
		WithArgs(tgID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tg_id", "username", "first_name", "last_name", "created_at",
		}).AddRow(userID, tgID, "ada", "Ada", nil, time.Now()))
}

func TestRenameBackAbortsWithoutMutation(t *testing.T) {
	h, fsm, mock := newTestHandlers(t)

	const chatID, tgID = int64(100), int64(42)
	fsm.Begin(chatID, stateAwaitRename, map[string]interface{}{
		tempGroupID: int64(5),
	})

	// The abort path re-renders the groups list and nothing else; any
	// UPDATE reaching the database would fail these expectations.
	expectUserLookup(mock, tgID, 7)
	mock.ExpectQuery("SELECT g.id, g.name, g.owner_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "owner_id", "owner_username", "can_add_notes",
		}))

	c := newFakeContext(chatID, tgID, " BACK ")
	require.NoError(t, h.onRename(c))

	assert.False(t, fsm.InProgress(chatID))
	_, ok := fsm.GetTempInt64(chatID, tempGroupID)
	assert.False(t, ok)
	require.NotEmpty(t, c.sent)
	assert.Equal(t, "You have no groups yet. Create one with /newgroup.", c.sent[len(c.sent)-1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForgedGroupNotesTokenDenied(t *testing.T) {
	h, _, mock := newTestHandlers(t)

	expectUserLookup(mock, 42, 7)
	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnError(sql.ErrNoRows)

	c := newFakeContext(100, 42, "")
	require.NoError(t, h.Dispatch(c, "notes", "9"))

	require.NotEmpty(t, c.sent)
	assert.Equal(t, "Not found. It may have been removed.", c.sent[len(c.sent)-1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupNotesRenderQueriesGroupScopeOnly(t *testing.T) {
	h, _, mock := newTestHandlers(t)

	expectUserLookup(mock, 42, 7)
	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "group_id", "can_add_notes"}).
			AddRow(int64(7), int64(9), true))
	mock.ExpectQuery("SELECT n.id, n.body").
		WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "body", "author_id", "group_id", "group_name", "can_add_notes",
		}).AddRow(int64(3), "feed the cat", int64(7), int64(9), "pack", true))

	c := newFakeContext(100, 42, "")
	require.NoError(t, h.Dispatch(c, "notes", "9"))

	require.NotEmpty(t, c.sent)
	assert.Equal(t, "feed the cat\nFrom group: pack", c.sent[len(c.sent)-1])
	// The personal-notes query never runs for a group-scoped render.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForgedMembersTokenDenied(t *testing.T) {
	h, _, mock := newTestHandlers(t)

	expectUserLookup(mock, 42, 7)
	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnError(sql.ErrNoRows)

	c := newFakeContext(100, 42, "")
	require.NoError(t, h.Dispatch(c, "members", "9"))

	require.NotEmpty(t, c.sent)
	assert.Equal(t, "Not found. It may have been removed.", c.sent[len(c.sent)-1])
	assert.NoError(t, mock.ExpectationsWereMet())
}
