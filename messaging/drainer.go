package messaging

import (
	"log"
	"sync"
	"time"

	"expotrack/store"
)

// OutboxDrainer ships queued outbox rows to the broker. A failed publish
// leaves the row queued for the next pass, so delivery is at-least-once.
type OutboxDrainer struct {
	db       *store.DB
	client   *Client
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewOutboxDrainer(db *store.DB, client *Client, interval time.Duration) *OutboxDrainer {
	if interval == 0 {
		interval = 5 * time.Second
	}
	return &OutboxDrainer{
		db:       db,
		client:   client,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (d *OutboxDrainer) Start() {
	go d.loop()
}

// Stop ends the drain loop even when it is mid-pass; safe to call twice.
func (d *OutboxDrainer) Stop() {
	d.stopOnce.Do(func() { close(d.stopChan) })
}

func (d *OutboxDrainer) loop() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-d.stopChan:
			return
		case <-ticker.C:
			d.drain()
		}
	}
}

func (d *OutboxDrainer) drain() {
	if !d.client.IsConnected() {
		return
	}
	msgs, err := d.db.ListUnsentOutbox(50)
	if err != nil {
		log.Printf("messaging: list outbox: %v", err)
		return
	}
	for _, m := range msgs {
		if err := d.client.Publish(m.Topic, m.Payload); err != nil {
			log.Printf("messaging: publish %s (%s): %v", m.MessageID, m.Kind, err)
			return
		}
		if err := d.db.MarkOutboxSent(m.ID); err != nil {
			log.Printf("messaging: mark sent %d: %v", m.ID, err)
		}
	}
}
