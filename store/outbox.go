package store

import "time"

type OutboxMessage struct {
	ID        int64
	MessageID string
	Topic     string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}

// EnqueueOutbox queues an outbound message for the drainer. Rows stay queued
// until a publish succeeds, so a broker outage loses nothing.
func (db *DB) EnqueueOutbox(messageID, topic, kind string, payload []byte) error {
	_, err := db.Exec(db.Q(`INSERT INTO outbox (message_id, topic, kind, payload) VALUES (?, ?, ?, ?)`),
		messageID, topic, kind, payload)
	return err
}

// ListUnsentOutbox returns queued messages oldest first.
func (db *DB) ListUnsentOutbox(limit int) ([]*OutboxMessage, error) {
	rows, err := db.Query(db.Q(`SELECT id, message_id, topic, kind, payload FROM outbox WHERE sent_at IS NULL ORDER BY id ASC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var msgs []*OutboxMessage
	for rows.Next() {
		var m OutboxMessage
		if err := rows.Scan(&m.ID, &m.MessageID, &m.Topic, &m.Kind, &m.Payload); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// MarkOutboxSent stamps a message as published.
func (db *DB) MarkOutboxSent(id int64) error {
	_, err := db.Exec(db.Q(`UPDATE outbox SET sent_at=datetime('now','localtime') WHERE id=?`), id)
	return err
}
