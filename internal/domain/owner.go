package domain

import "fmt"

// OwnerKind distinguishes the two kinds of slot owners.
type OwnerKind string

const (
	OwnerTable  OwnerKind = "table"
	OwnerWaiter OwnerKind = "waiter"
)

// OwnerKey identifies a table (location + number) or a waiter (email).
type OwnerKey struct {
	Kind        OwnerKind
	LocationID  string
	TableNumber string
	WaiterEmail string
}

// TableKey builds the key of a table.
func TableKey(locationID, tableNumber string) OwnerKey {
	return OwnerKey{Kind: OwnerTable, LocationID: locationID, TableNumber: tableNumber}
}

// WaiterKey builds the key of a waiter.
func WaiterKey(email string) OwnerKey {
	return OwnerKey{Kind: OwnerWaiter, WaiterEmail: email}
}

func (k OwnerKey) String() string {
	if k.Kind == OwnerWaiter {
		return fmt.Sprintf("waiter:%s", k.WaiterEmail)
	}
	return fmt.Sprintf("table:%s:%s", k.LocationID, k.TableNumber)
}
