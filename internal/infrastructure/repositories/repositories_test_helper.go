package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		wallet_address TEXT NOT NULL,
		user_name TEXT,
		full_name TEXT,
		physical_address TEXT,
		identity_number TEXT,
		identity_file TEXT,
		provider_api_key TEXT,
		provider_api_secret TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createBankTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE banks (
		id TEXT PRIMARY KEY,
		code TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE bank_accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		bank_id TEXT NOT NULL,
		account_number TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(user_id, bank_id, account_number)
	);`)
}
