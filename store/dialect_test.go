package store

import (
	"strings"
	"testing"
)

func TestDialectSchemas(t *testing.T) {
	for _, d := range []Dialect{sqliteDialect{}, postgresDialect{}} {
		ddl := d.Schema()
		for _, table := range []string{"notification_acks", "outbox"} {
			if !strings.Contains(ddl, table) {
				t.Fatalf("%s schema lacks table %s", d.Name(), table)
			}
		}
	}
}

func TestQPostgresRewrite(t *testing.T) {
	db := &DB{dialect: postgresDialect{}, driver: "postgres"}
	got := db.Q("UPDATE outbox SET sent_at = datetime('now','localtime') WHERE id = ? AND topic = ?")
	want := "UPDATE outbox SET sent_at = NOW() WHERE id = $1 AND topic = $2"
	if got != want {
		t.Fatalf("Q = %q, want %q", got, want)
	}
}

func TestQSQLitePassthrough(t *testing.T) {
	db := &DB{dialect: sqliteDialect{}, driver: "sqlite"}
	q := "SELECT id FROM notification_acks WHERE id = ?"
	if got := db.Q(q); got != q {
		t.Fatalf("Q must pass through for sqlite, got %q", got)
	}
}

func TestRebindManyPlaceholders(t *testing.T) {
	q := strings.TrimSuffix(strings.Repeat("?,", 12), ",")
	got := Rebind(q)
	if !strings.HasSuffix(got, "$12") || !strings.HasPrefix(got, "$1,") {
		t.Fatalf("Rebind = %q", got)
	}
}
