package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectFor(t *testing.T) {
	assert.False(t, DialectFor(KindSQLite).numberedPlaceholders)
	assert.False(t, DialectFor(KindMySQL).numberedPlaceholders)
	assert.True(t, DialectFor(KindPostgres).numberedPlaceholders)
}

func TestRebind(t *testing.T) {
	pg := DialectFor(KindPostgres)
	lite := DialectFor(KindSQLite)

	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{
			name:    "sqlite passthrough",
			dialect: lite,
			in:      "SELECT * FROM users WHERE user_id = ?",
			want:    "SELECT * FROM users WHERE user_id = ?",
		},
		{
			name:    "postgres single placeholder",
			dialect: pg,
			in:      "SELECT * FROM users WHERE user_id = ?",
			want:    "SELECT * FROM users WHERE user_id = $1",
		},
		{
			name:    "postgres multiple placeholders",
			dialect: pg,
			in:      "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
			want:    "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		},
		{
			name:    "question mark inside literal untouched",
			dialect: pg,
			in:      "SELECT '?' , v FROM t WHERE id = ?",
			want:    "SELECT '?' , v FROM t WHERE id = $1",
		},
		{
			name:    "no placeholders",
			dialect: pg,
			in:      "SELECT 1",
			want:    "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Rebind(tt.in))
		})
	}
}
