package engine

import (
	"expotrack/backend"
	"expotrack/wizard"
)

// wizardEmitter bridges the wizard package's emitter interface to the EventBus.
type wizardEmitter struct {
	bus *EventBus
}

func (e *wizardEmitter) EmitInstallationCreated(inst *backend.Installation, actor string) {
	ev := InstallationCreatedEvent{
		InstallationID: inst.ID,
		Rack:           inst.Rack,
		Laptop:         inst.Laptop,
		EventID:        inst.EventID,
		Actor:          actor,
	}
	if inst.PrinterType != nil {
		ev.PrinterType = *inst.PrinterType
	}
	if inst.PrinterNumber != nil {
		ev.PrinterNumber = *inst.PrinterNumber
	}
	if inst.SecondPrinterType != nil {
		ev.SecondPrinterType = *inst.SecondPrinterType
	}
	if inst.SecondPrinterNumber != nil {
		ev.SecondPrinterNumber = *inst.SecondPrinterNumber
	}
	e.bus.Emit(Event{Type: EventInstallationCreated, Payload: ev})
}

func (e *wizardEmitter) EmitBulkSubmitted(succeeded, failed int, racks []string, actor string) {
	e.bus.Emit(Event{Type: EventBulkSubmitted, Payload: BulkSubmittedEvent{
		Succeeded: succeeded,
		Failed:    failed,
		Racks:     racks,
		Actor:     actor,
	}})
}

var _ wizard.Emitter = (*wizardEmitter)(nil)

// notifierEmitter bridges notification recomputation onto the EventBus.
type notifierEmitter struct {
	bus *EventBus
}

func (e *notifierEmitter) refreshed(unread int) {
	e.bus.Emit(Event{Type: EventNotificationsRefreshed, Payload: NotificationsRefreshedEvent{Unread: unread}})
}
