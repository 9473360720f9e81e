package domain

// Table is a bookable table of a location together with its free slots.
type Table struct {
	LocationID    string
	TableNumber   string
	GuestCapacity int
	Slots         SlotSet
	Version       int64
}

// Key returns the slot owner key of the table.
func (t *Table) Key() OwnerKey {
	return TableKey(t.LocationID, t.TableNumber)
}

// Fits reports whether the table seats the given number of guests.
func (t *Table) Fits(guests int) bool {
	return guests >= 1 && guests <= t.GuestCapacity
}
