package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dardva/Bot-for-remind/bot/storage"
)

func newMockServices(t *testing.T) (*Services, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(storage.New(sqlx.NewDb(db, "sqlmock"))), mock
}

func membershipRow(userID, groupID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "group_id", "can_add_notes"}).
		AddRow(userID, groupID, false)
}

func TestGroupNotesHiddenFromNonMembers(t *testing.T) {
	svc, mock := newMockServices(t)

	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Notes.ListForGroup(context.Background(), 9, 7)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupNotesVisibleToMembers(t *testing.T) {
	svc, mock := newMockServices(t)

	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnRows(membershipRow(7, 9))
	mock.ExpectQuery("SELECT n.id, n.body").
		WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "body", "author_id", "group_id", "group_name", "can_add_notes",
		}).AddRow(int64(3), "feed the cat", int64(7), int64(9), "pack", true))

	notes, err := svc.Notes.ListForGroup(context.Background(), 9, 7)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "feed the cat", notes[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRosterHiddenFromNonMembers(t *testing.T) {
	svc, mock := newMockServices(t)

	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Groups.Members(context.Background(), 7, 9)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberDetailHiddenFromNonMembers(t *testing.T) {
	svc, mock := newMockServices(t)

	mock.ExpectQuery("SELECT user_id, group_id, can_add_notes").
		WithArgs(int64(7), int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Groups.Member(context.Background(), 7, 9, 4242)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
