// Package jurisdiction computes stable numeric ordinals for caller-configured
// prefecture/municipality sets and detects which set a document belongs to.
package jurisdiction

import (
	"fmt"
	"sort"
)

const (
	// TokyoPrefecture is the literal name used in slot configuration for the
	// metropolitan prefecture. Tokyo must occupy slot 1 and never carries a
	// municipal component.
	TokyoPrefecture = "東京都"

	// BasePrefectureCode is the ordinal assigned to the first configured
	// prefecture (1001, 1011, 1021, ...).
	BasePrefectureCode = 1001

	// BaseCityCode is the ordinal assigned to the first configured
	// municipality (2001, 2011, 2021, ...).
	BaseCityCode = 2001

	// OrdinalStep is the spacing between consecutive jurisdiction ordinals.
	OrdinalStep = 10

	// ReceiptOffset maps an application ordinal to its acknowledgment-receipt
	// code (1001 -> 1003, 2011 -> 2013).
	ReceiptOffset = 2

	// PaymentOffset maps an application ordinal to its payment-notice code
	// (2001 -> 2004, 2011 -> 2014).
	PaymentOffset = 3
)

// Slot is one caller-configured (prefecture, municipality) pair. City may be
// empty for prefecture-only slots; Tokyo's city must be empty.
type Slot struct {
	ID         int    `json:"id"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city,omitempty"`
}

// Municipality returns the combined jurisdiction label spliced into final
// document codes, e.g. "愛知県蒲郡市".
func (s Slot) Municipality() string {
	if s.City == "" {
		return s.Prefecture
	}
	return s.Prefecture + s.City
}

// OrderMaps holds the derived ordinal assignments for one slot configuration.
// Recomputed per batch, never persisted.
type OrderMaps struct {
	PrefectureOrder map[int]int `json:"prefecture_order"`
	CityOrder       map[int]int `json:"city_order"`
}

// ConfigurationError reports a slot configuration that violates a numbering
// invariant. It is the only error the core raises synchronously; it must
// abort the batch before any document is classified.
type ConfigurationError struct {
	Slot   int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("jurisdiction configuration invalid (set %d): %s", e.Slot, e.Reason)
}

// BuildOrderMaps validates the slot configuration and derives the ordinal
// maps. Tokyo, when configured, must be slot 1 with an empty city; it is
// always ranked first among prefectures and never counted among
// municipalities.
func BuildOrderMaps(slots []Slot) (*OrderMaps, error) {
	ordered := make([]Slot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, s := range ordered {
		if s.Prefecture != TokyoPrefecture {
			continue
		}
		if s.ID != 1 {
			return nil, &ConfigurationError{
				Slot:   s.ID,
				Reason: fmt.Sprintf("%s must be configured as set 1, found at set %d", TokyoPrefecture, s.ID),
			}
		}
		if s.City != "" {
			return nil, &ConfigurationError{
				Slot:   s.ID,
				Reason: fmt.Sprintf("%s may not carry a municipality (got %q)", TokyoPrefecture, s.City),
			}
		}
	}

	maps := &OrderMaps{
		PrefectureOrder: make(map[int]int, len(ordered)),
		CityOrder:       make(map[int]int),
	}

	// Tokyo, if present, passed validation above and therefore already sits
	// at the head of the ascending slot order.
	for rank, s := range ordered {
		maps.PrefectureOrder[s.ID] = BasePrefectureCode + OrdinalStep*rank
	}

	cityRank := 0
	for _, s := range ordered {
		if s.City == "" {
			continue
		}
		maps.CityOrder[s.ID] = BaseCityCode + OrdinalStep*cityRank
		cityRank++
	}

	return maps, nil
}

// Context bundles a validated slot configuration with its derived order maps
// and a detector. Built once per batch and shared read-only across documents.
type Context struct {
	Slots    []Slot
	Maps     *OrderMaps
	detector *Detector
}

// NewContext validates slots, derives the order maps, and prepares a default
// detector. Returns a ConfigurationError for invalid slot setups.
func NewContext(slots []Slot) (*Context, error) {
	return NewContextWithDetector(slots, DetectorConfig{})
}

// NewContextWithDetector is NewContext with custom detection settings.
func NewContextWithDetector(slots []Slot, cfg DetectorConfig) (*Context, error) {
	maps, err := BuildOrderMaps(slots)
	if err != nil {
		return nil, err
	}

	ordered := make([]Slot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	ctx := &Context{Slots: ordered, Maps: maps}
	ctx.detector = newDetector(ctx, cfg)
	return ctx, nil
}

// Detector returns the slot detector for this configuration.
func (c *Context) Detector() *Detector { return c.detector }

// SlotByID returns the slot with the given ID.
func (c *Context) SlotByID(id int) (Slot, bool) {
	for _, s := range c.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// SlotForPrefecture returns the slot configured for the named prefecture.
func (c *Context) SlotForPrefecture(name string) (Slot, bool) {
	for _, s := range c.Slots {
		if s.Prefecture == name {
			return s, true
		}
	}
	return Slot{}, false
}

// PrefectureOrdinal returns the 1001-series ordinal for a slot.
func (c *Context) PrefectureOrdinal(slotID int) (int, bool) {
	code, ok := c.Maps.PrefectureOrder[slotID]
	return code, ok
}

// CityOrdinal returns the 2001-series ordinal for a slot. Slots without a
// municipality (Tokyo included) have no city ordinal.
func (c *Context) CityOrdinal(slotID int) (int, bool) {
	code, ok := c.Maps.CityOrder[slotID]
	return code, ok
}

// PrefectureReceiptCode returns the sequenced acknowledgment-receipt code for
// a slot (1003, 1013, ...).
func (c *Context) PrefectureReceiptCode(slotID int) (int, bool) {
	ord, ok := c.PrefectureOrdinal(slotID)
	if !ok {
		return 0, false
	}
	return ord + ReceiptOffset, true
}

// CityReceiptCode returns the sequenced acknowledgment-receipt code for a
// municipal slot (2003, 2013, ...).
func (c *Context) CityReceiptCode(slotID int) (int, bool) {
	ord, ok := c.CityOrdinal(slotID)
	if !ok {
		return 0, false
	}
	return ord + ReceiptOffset, true
}

// CityPaymentCode returns the sequenced payment-notice code for a municipal
// slot (2004, 2014, ...).
func (c *Context) CityPaymentCode(slotID int) (int, bool) {
	ord, ok := c.CityOrdinal(slotID)
	if !ok {
		return 0, false
	}
	return ord + PaymentOffset, true
}

// FirstSlotID returns the lowest configured slot ID, used as the hard-coded
// fallback when prefecture detection fails.
func (c *Context) FirstSlotID() (int, bool) {
	if len(c.Slots) == 0 {
		return 0, false
	}
	return c.Slots[0].ID, true
}

// FirstCitySlotID returns the lowest slot ID that carries a municipality,
// used as the fallback when municipal detection fails. Slot 2 is the usual
// answer under a Tokyo-first configuration.
func (c *Context) FirstCitySlotID() (int, bool) {
	for _, s := range c.Slots {
		if s.City != "" {
			return s.ID, true
		}
	}
	return 0, false
}

// Fingerprint returns a stable string identity for this configuration,
// suitable as a cache key component.
func (c *Context) Fingerprint() string {
	out := ""
	for _, s := range c.Slots {
		out += fmt.Sprintf("%d:%s:%s;", s.ID, s.Prefecture, s.City)
	}
	return out
}
