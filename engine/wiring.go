package engine

import (
	"fmt"

	"expotrack/backend"
	"expotrack/messaging"
)

func (e *Engine) wireEventHandlers() {
	// New installation: audit it, announce it, drop stale snapshots.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(InstallationCreatedEvent)
		e.logFn("engine: installation %s created (laptop #%d) by %s", ev.Rack, ev.Laptop, ev.Actor)

		e.appendActivity(&backend.Activity{
			UserID:     ev.Actor,
			Username:   ev.Actor,
			ActionType: backend.ActionCreateInstallation,
			ItemType:   "installation",
			ItemID:     &ev.InstallationID,
			ItemName:   fmt.Sprintf("Стойка %s", ev.Rack),
		})

		e.enqueueEnvelope(messaging.KindInstallationCreated, messaging.InstallationCreatedPayload{
			Rack:                ev.Rack,
			Laptop:              ev.Laptop,
			PrinterType:         ev.PrinterType,
			PrinterNumber:       ev.PrinterNumber,
			SecondPrinterType:   ev.SecondPrinterType,
			SecondPrinterNumber: ev.SecondPrinterNumber,
			Actor:               ev.Actor,
		})

		e.catalog.Invalidate()
		e.Events.Emit(Event{Type: EventDataChanged, Payload: DataChangedEvent{Scope: "installations"}})
	}, EventInstallationCreated)

	// Bulk run finished: one aggregate audit record, whatever the tally.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(BulkSubmittedEvent)
		e.logFn("engine: bulk submission by %s: %d ok, %d failed", ev.Actor, ev.Succeeded, ev.Failed)

		e.appendActivity(&backend.Activity{
			UserID:     ev.Actor,
			Username:   ev.Actor,
			ActionType: backend.ActionCreateInstallation,
			ItemType:   "installation",
			ItemName:   fmt.Sprintf("Массовое создание: %d установок", ev.Succeeded),
		})

		e.enqueueEnvelope(messaging.KindBulkSubmitted, messaging.BulkSubmittedPayload{
			Succeeded: ev.Succeeded,
			Failed:    ev.Failed,
			Racks:     ev.Racks,
			Actor:     ev.Actor,
		})

		e.catalog.Invalidate()
		e.Events.Emit(Event{Type: EventDataChanged, Payload: DataChangedEvent{Scope: "installations"}})
	}, EventBulkSubmitted)

	// Completed installation: its numbers return to the free pool.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(InstallationCompletedEvent)
		e.logFn("engine: installation %s completed by %s", ev.Rack, ev.Actor)

		e.appendActivity(&backend.Activity{
			UserID:     ev.Actor,
			Username:   ev.Actor,
			ActionType: backend.ActionCompleteInstallation,
			ItemType:   "installation",
			ItemID:     &ev.InstallationID,
			ItemName:   fmt.Sprintf("Стойка %s", ev.Rack),
		})

		e.enqueueEnvelope(messaging.KindInstallationCompleted, messaging.DataChangedPayload{Scope: "installations"})

		e.catalog.Invalidate()
		e.Events.Emit(Event{Type: EventDataChanged, Payload: DataChangedEvent{Scope: "installations"}})
	}, EventInstallationCompleted)

	// Event lifecycle changes from the www surface.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(EventChangedEvent)
		action := map[string]string{
			"created":   backend.ActionCreateEvent,
			"completed": backend.ActionCompleteEvent,
			"deleted":   backend.ActionDeleteEvent,
		}[ev.Action]
		if action != "" {
			e.appendActivity(&backend.Activity{
				UserID:     ev.Actor,
				Username:   ev.Actor,
				ActionType: action,
				ItemType:   "event",
				ItemID:     &ev.EventID,
				ItemName:   ev.Name,
			})
		}
		e.catalog.Invalidate()
		e.Events.Emit(Event{Type: EventDataChanged, Payload: DataChangedEvent{Scope: "events"}})
	}, EventEventChanged)

	// Consumable stock updates.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(ConsumableChangedEvent)
		e.appendActivity(&backend.Activity{
			UserID:     ev.Actor,
			Username:   ev.Actor,
			ActionType: backend.ActionUpdateConsumable,
			ItemType:   "consumable",
			ItemID:     &ev.ConsumableID,
			ItemName:   ev.Name,
		})
		e.catalog.Invalidate()
		e.Events.Emit(Event{Type: EventDataChanged, Payload: DataChangedEvent{Scope: "consumables"}})
	}, EventConsumableChanged)

	// Any data change: rederive notifications off the fresh snapshots and
	// tell external listeners to refetch.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(DataChangedEvent)
		e.enqueueEnvelope(messaging.KindDataChanged, messaging.DataChangedPayload{Scope: ev.Scope})
		go e.notifier.Refresh()
	}, EventDataChanged)

	// Connection status transitions: log only.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(ConnectionEvent)
		e.logFn("engine: %s", ev.Detail)
	}, EventBackendConnected, EventBackendDisconnected, EventMessagingConnected, EventMessagingDisconnected)
}

// appendActivity writes an audit record best-effort: failure is logged and
// never propagated to the triggering action.
func (e *Engine) appendActivity(a *backend.Activity) {
	if err := e.backend.AppendActivity(a); err != nil {
		e.logFn("engine: append activity (%s %s): %v", a.ActionType, a.ItemName, err)
	}
}

func (e *Engine) enqueueEnvelope(kind string, payload any) {
	env, err := messaging.NewEnvelope(kind, e.cfg.AppID, payload)
	if err != nil {
		e.logFn("engine: build %s envelope: %v", kind, err)
		return
	}
	data, err := env.Encode()
	if err != nil {
		e.logFn("engine: encode %s envelope: %v", kind, err)
		return
	}
	if err := e.db.EnqueueOutbox(env.ID, e.cfg.Messaging.EventsTopic, kind, data); err != nil {
		e.logFn("engine: enqueue %s envelope: %v", kind, err)
	}
}
