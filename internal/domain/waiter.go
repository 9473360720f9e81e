package domain

// Waiter is a staff member serving one location.
type Waiter struct {
	Email      string
	Name       string
	LocationID string
	Slots      SlotSet
	Version    int64
}

// Key returns the slot owner key of the waiter.
func (w *Waiter) Key() OwnerKey {
	return WaiterKey(w.Email)
}
