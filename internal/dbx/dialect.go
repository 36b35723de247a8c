package dbx

import (
	"strconv"
	"strings"
)

// Kind identifies a supported storage backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindMySQL    Kind = "mysql"
)

// Dialect describes the capabilities a backend needs special handling for.
// Repositories write queries once, with '?' placeholders, and the dialect
// translates them; no backend-specific SQL leaks into callers.
type Dialect struct {
	Kind Kind

	// numberedPlaceholders selects $1..$N placeholders instead of '?'.
	numberedPlaceholders bool
}

// DialectFor returns the Dialect for a backend kind.
func DialectFor(kind Kind) Dialect {
	return Dialect{
		Kind:                 kind,
		numberedPlaceholders: kind == KindPostgres,
	}
}

// Rebind translates a query written with '?' placeholders into the form the
// backend expects. Question marks inside single-quoted literals are left
// alone; repositories do not embed user data in literals anyway.
func (d Dialect) Rebind(query string) string {
	if !d.numberedPlaceholders {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for _, r := range query {
		switch {
		case r == '\'':
			inLiteral = !inLiteral
			b.WriteRune(r)
		case r == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
