package robotics

import "fmt"

// MaxEnergyLevel caps a single minted allotment.
const MaxEnergyLevel = 1000

// Energy is a spendable, conserved quantity. The quantity lives in a shared
// cell, so copying an Energy aliases it instead of duplicating it. New
// quantity is only minted by the Runner; everything else is obtained through
// Split and Merge. The zero value holds nothing.
//
// Energy is not safe for concurrent use.
type Energy struct {
	c *energyCell
}

type energyCell struct {
	quantity int
}

func newEnergy(quantity int) Energy {
	if quantity < 0 {
		quantity = 0
	}
	if quantity > MaxEnergyLevel {
		quantity = MaxEnergyLevel
	}
	return Energy{c: &energyCell{quantity: quantity}}
}

func (e Energy) Quantity() int {
	if e.c == nil {
		return 0
	}
	return e.c.quantity
}

func (e Energy) Has(quantity int) bool {
	return e.Quantity() >= quantity
}

// Split takes quantity out of e. spent holds exactly quantity and rest is e
// itself holding the remainder. On failure e is left untouched and rest is e.
func (e Energy) Split(quantity int) (spent, rest Energy, err error) {
	if quantity < 0 {
		return Energy{}, e, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	available := e.Quantity()
	if quantity > available {
		return Energy{}, e, &InsufficientEnergyError{Required: quantity, Available: available}
	}
	if quantity == 0 {
		return Energy{}, e, nil
	}
	e.c.quantity -= quantity
	return Energy{c: &energyCell{quantity: quantity}}, e, nil
}

// Merge moves everything held by other into e. other, and every copy of it,
// is left empty.
func (e *Energy) Merge(other Energy) {
	if other.c == nil || other.c == e.c || other.c.quantity == 0 {
		return
	}
	if e.c == nil {
		e.c = &energyCell{}
	}
	e.c.quantity += other.c.quantity
	other.c.quantity = 0
}

// consume burns quantity as the price of a committed operation.
func (e Energy) consume(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if !e.Has(quantity) {
		return &InsufficientEnergyError{Required: quantity, Available: e.Quantity()}
	}
	if quantity > 0 {
		e.c.quantity -= quantity
	}
	return nil
}

func (e Energy) String() string {
	return fmt.Sprintf("Energy(%d)", e.Quantity())
}
