package gokeyset

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

// quoteFor returns the identifier quote character of the mocked dialect.
func quoteFor(dialect string) string {
	if dialect == "postgres" {
		return `"`
	}

	return "`"
}

// bindVarFor returns the n-th (1-based) placeholder of the mocked dialect.
func bindVarFor(dialect string, n int) string {
	if dialect == "postgres" {
		return fmt.Sprintf("$%d", n)
	}

	return "?"
}

type tUser struct {
	ID        int    `gorm:"primaryKey"`
	Firstname string `gorm:"not null"`
	Lastname  string `gorm:"not null"`
	Slug      string `gorm:"not null"`
}

func (tUser) TableName() string { return "users" }

type tFollow struct {
	ID           int `gorm:"primaryKey"`
	FolloweeID   int
	FolloweeType *string
	FollowerID   int
	Source       *string
	UnfollowedAt *string
}

func (tFollow) TableName() string { return "follows" }

var (
	usersID        = NewColumn[int]("users", "id")
	usersSlug      = NewColumn[string]("users", "slug")
	usersFirstname = NewColumn[string]("users", "firstname")
	usersLastname  = NewColumn[string]("users", "lastname")
)

// newSQLiteDB opens an isolated in-memory database with the users and
// follows tables.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&tUser{}, &tFollow{}))

	return db
}

// userFactory inserts users with sequential defaults, overriding the given
// fields.
type userFactory struct {
	db  *gorm.DB
	seq int
}

func (f *userFactory) insert(t *testing.T, firstname, slug string) tUser {
	t.Helper()

	f.seq++
	user := tUser{
		Firstname: firstname,
		Lastname:  fmt.Sprintf("Larsen %d", f.seq),
		Slug:      slug,
	}
	if user.Firstname == "" {
		user.Firstname = fmt.Sprintf("Bob %d", f.seq)
	}
	if user.Slug == "" {
		user.Slug = fmt.Sprintf("bob-%d", f.seq)
	}

	require.NoError(t, f.db.Create(&user).Error)

	return user
}
