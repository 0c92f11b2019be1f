package wizard

import (
	"fmt"
	"strconv"
)

// ZoneRange is the closed interval of booth numbers belonging to one zone.
type ZoneRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Zone letters in floor order. Each zone owns a fixed contiguous booth range;
// a rack id is the letter concatenated with a number inside that range.
var Zones = []string{"C", "D", "E", "F", "G", "H"}

var zoneRanges = map[string]ZoneRange{
	"C": {Start: 3, End: 7},
	"D": {Start: 1, End: 10},
	"E": {Start: 12, End: 21},
	"F": {Start: 28, End: 51},
	"G": {Start: 57, End: 80},
	"H": {Start: 86, End: 109},
}

func ZoneRangeFor(zone string) (ZoneRange, bool) {
	r, ok := zoneRanges[zone]
	return r, ok
}

// ValidRack reports whether the booth number falls inside the zone's range.
func ValidRack(zone string, booth int) bool {
	r, ok := zoneRanges[zone]
	if !ok {
		return false
	}
	return booth >= r.Start && booth <= r.End
}

// RackID builds the rack identifier, e.g. "E15".
func RackID(zone string, booth int) string {
	return zone + strconv.Itoa(booth)
}

// BoothNumbers returns the full booth range of a zone in ascending order.
func BoothNumbers(zone string) []int {
	r, ok := zoneRanges[zone]
	if !ok {
		return nil
	}
	nums := make([]int, 0, r.End-r.Start+1)
	for n := r.Start; n <= r.End; n++ {
		nums = append(nums, n)
	}
	return nums
}

// Equipment pools. A unit is identified solely by (pool, number).
const (
	LaptopPoolSize  = 25
	BrotherPoolSize = 28
	GodexPoolSize   = 21
)

type PrinterType string

const (
	PrinterNone    PrinterType = "none"
	PrinterBrother PrinterType = "brother"
	PrinterGodex   PrinterType = "godex"
)

func (t PrinterType) Valid() bool {
	return t == PrinterNone || t == PrinterBrother || t == PrinterGodex
}

// LaptopNumbers returns the full laptop pool 1..25.
func LaptopNumbers() []int { return poolRange(LaptopPoolSize) }

// PrinterNumbers returns the full pool for a printer type.
func PrinterNumbers(t PrinterType) ([]int, error) {
	switch t {
	case PrinterBrother:
		return poolRange(BrotherPoolSize), nil
	case PrinterGodex:
		return poolRange(GodexPoolSize), nil
	default:
		return nil, fmt.Errorf("no number pool for printer type %q", t)
	}
}

func poolRange(size int) []int {
	nums := make([]int, size)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
