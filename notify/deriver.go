package notify

import (
	"fmt"
	"math"
	"sort"
	"time"

	"expotrack/backend"
)

const (
	KindWarning = "warning"
	KindInfo    = "info"
	KindSuccess = "success"
)

// LongActiveID is the fixed identifier for the aggregate long-running
// installations notification.
const LongActiveID = "long_active_installations"

const (
	eventWindow = 24 * time.Hour
	staleAfter  = 7 * 24 * time.Hour
)

// Notification is one derived alert. The id is a pure function of the
// triggering entity's stable key, never of list position or derivation time,
// so read state survives wholesale recomputation.
type Notification struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	DisplayTime string    `json:"time"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// TypedConsumable pairs a stock line with its printer type, which is part of
// the identifier.
type TypedConsumable struct {
	Type string
	backend.Consumable
}

// Input is one read snapshot of the three notification sources.
type Input struct {
	Consumables   []TypedConsumable
	Events        []backend.Event
	Installations []backend.Installation
	Now           time.Time
}

func LowStockID(printerType string, id int64) string {
	return fmt.Sprintf("low_stock_%s_%d", printerType, id)
}

func EventSoonID(eventID int64) string {
	return fmt.Sprintf("event_soon_%d", eventID)
}

// Derive rebuilds the full notification list from a snapshot. It is pure
// given the acknowledgement set; persistence of that set is the caller's
// concern. Each rule fans out one notification per matching entity, except
// the long-running rule which aggregates into a single record.
func Derive(in Input, acked map[string]bool) []Notification {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	var out []Notification

	// Low stock: quantity at or below the configured minimum.
	for _, c := range in.Consumables {
		if c.Quantity > c.MinQuantity {
			continue
		}
		id := LowStockID(c.Type, c.ID)
		out = append(out, Notification{
			ID:    id,
			Kind:  KindWarning,
			Title: "Низкий остаток расходника",
			Message: fmt.Sprintf("%s (%s): осталось %d шт. (минимум: %d шт.)",
				c.Name, printerLabel(c.Type), c.Quantity, c.MinQuantity),
			DisplayTime: formatTime(now),
			Read:        acked[id],
			CreatedAt:   now,
		})
	}

	// Imminent events: upcoming or active, starting within the next 24 hours.
	for _, ev := range in.Events {
		if ev.Status != backend.EventStatusUpcoming && ev.Status != backend.EventStatusActive {
			continue
		}
		if ev.StartDate == nil {
			continue
		}
		start := *ev.StartDate
		if start.Before(now) || start.After(now.Add(eventWindow)) {
			continue
		}
		hours := int(math.Round(start.Sub(now).Hours()))
		id := EventSoonID(ev.ID)
		out = append(out, Notification{
			ID:          id,
			Kind:        KindInfo,
			Title:       "Мероприятие скоро начнется",
			Message:     fmt.Sprintf("%s начнется через %d %s", ev.Name, hours, hoursWord(hours)),
			DisplayTime: formatTime(start),
			Read:        acked[id],
			CreatedAt:   now,
		})
	}

	// Long-running installations: a single aggregate for everything older
	// than seven days.
	stale := 0
	for _, inst := range in.Installations {
		if inst.Date == nil {
			continue
		}
		if inst.Date.Before(now.Add(-staleAfter)) {
			stale++
		}
	}
	if stale > 0 {
		out = append(out, Notification{
			ID:          LongActiveID,
			Kind:        KindInfo,
			Title:       "Долгие активные установки",
			Message:     fmt.Sprintf("%d установок активны более 7 дней", stale),
			DisplayTime: formatTime(now),
			Read:        acked[LongActiveID],
			CreatedAt:   now,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// hoursWord picks the Russian plural form: 1 час, 2-4 часа, otherwise часов.
func hoursWord(n int) string {
	switch {
	case n == 1:
		return "час"
	case n >= 2 && n <= 4:
		return "часа"
	default:
		return "часов"
	}
}

func printerLabel(printerType string) string {
	switch printerType {
	case "brother":
		return "Brother"
	case "godex":
		return "Godex"
	default:
		return printerType
	}
}

func formatTime(t time.Time) string {
	return t.Format("2 January, 15:04")
}
