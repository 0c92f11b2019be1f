package store

import "strings"

// Dialect abstracts the few SQL differences between the supported drivers:
// the DDL for the acks and outbox tables, and placeholder style.
type Dialect interface {
	Name() string
	Schema() string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string   { return "sqlite" }
func (sqliteDialect) Schema() string { return schemaSQLite }

type postgresDialect struct{}

func (postgresDialect) Name() string   { return "postgres" }
func (postgresDialect) Schema() string { return schemaPostgres }

// Rebind converts ? placeholders to $1, $2, ... for PostgreSQL.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func itoa(n int) string {
	if n < 10 {
		return string(byte('0' + n))
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
