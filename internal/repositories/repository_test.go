package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestDB creates a mock database and logger shared by repository tests
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, logger, cleanup
}

func TestNewRepositories(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}

	users := NewUserRepository(db, logger)
	assert.Equal(t, db, users.db)
	assert.Equal(t, logger, users.logger)

	contents := NewContentRepository(db, logger)
	assert.Equal(t, db, contents.db)

	tags := NewTagRepository(db, logger)
	assert.Equal(t, db, tags.db)

	comments := NewCommentRepository(db, logger)
	assert.Equal(t, db, comments.db)

	admin := NewAdminRepository(db, logger)
	assert.Equal(t, db, admin.db)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateKey(sql.ErrNoRows))
	assert.False(t, isDuplicateKey(nil))
}
