package store

// MarkNotificationRead records one acknowledged notification identifier.
// Acknowledging the same id twice is a no-op.
func (db *DB) MarkNotificationRead(id string) error {
	var err error
	if db.driver == "postgres" {
		_, err = db.Exec(db.Q(`INSERT INTO notification_acks (id) VALUES (?) ON CONFLICT (id) DO NOTHING`), id)
	} else {
		_, err = db.Exec(`INSERT OR IGNORE INTO notification_acks (id) VALUES (?)`, id)
	}
	return err
}

// ListNotificationAcks returns every acknowledged identifier.
func (db *DB) ListNotificationAcks() ([]string, error) {
	rows, err := db.Query(`SELECT id FROM notification_acks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
