package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/rjbuenaventura/kusina-pos/pkg/types"
)

// Item is one purchasable product in a category listing. The cart
// snapshots name and unit price at add time, so later catalog changes
// never touch lines already in a cart.
type Item struct {
	ID           int64
	Name         string
	UnitPrice    types.Money
	ImagePath    string
	Availability Availability
}

// Availability is the quantity-accounting mode of an item. Exactly one
// mode applies per item and it is fixed for the life of a cart session.
type Availability interface {
	// Ceiling is the maximum quantity of the item a single cart may hold.
	Ceiling() int

	isAvailability()
}

// StockTracked counts physical stock on hand.
type StockTracked struct {
	Stock int
}

func (s StockTracked) Ceiling() int  { return s.Stock }
func (StockTracked) isAvailability() {}

// QuantityTracked counts servings prepared for the day.
type QuantityTracked struct {
	AvailableQty int
}

func (q QuantityTracked) Ceiling() int  { return q.AvailableQty }
func (QuantityTracked) isAvailability() {}

// wireItem mirrors the back office record: a track_stock flag selects
// which of the two quantity fields is authoritative.
type wireItem struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Price             types.Money `json:"price"`
	ImagePath         string      `json:"image_path,omitempty"`
	TrackStock        bool        `json:"track_stock"`
	Stock             *int        `json:"stock,omitempty"`
	AvailableQuantity *int        `json:"available_quantity,omitempty"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var wire wireItem
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	availability, err := availabilityFromWire(wire)
	if err != nil {
		return fmt.Errorf("item %d: %w", wire.ID, err)
	}
	if wire.Price.Decimal.IsNegative() {
		return fmt.Errorf("item %d: price cannot be negative", wire.ID)
	}

	i.ID = wire.ID
	i.Name = wire.Name
	i.UnitPrice = wire.Price
	i.ImagePath = wire.ImagePath
	i.Availability = availability
	return nil
}

func (i Item) MarshalJSON() ([]byte, error) {
	wire := wireItem{
		ID:        i.ID,
		Name:      i.Name,
		Price:     i.UnitPrice,
		ImagePath: i.ImagePath,
	}
	switch av := i.Availability.(type) {
	case StockTracked:
		wire.TrackStock = true
		wire.Stock = &av.Stock
	case QuantityTracked:
		wire.TrackStock = false
		wire.AvailableQuantity = &av.AvailableQty
	default:
		return nil, fmt.Errorf("item %d: unknown availability mode %T", i.ID, i.Availability)
	}
	return json.Marshal(wire)
}

func availabilityFromWire(wire wireItem) (Availability, error) {
	if wire.TrackStock {
		stock := 0
		if wire.Stock != nil {
			stock = *wire.Stock
		}
		if stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		return StockTracked{Stock: stock}, nil
	}

	qty := 0
	if wire.AvailableQuantity != nil {
		qty = *wire.AvailableQuantity
	}
	if qty < 0 {
		return nil, fmt.Errorf("available quantity cannot be negative")
	}
	return QuantityTracked{AvailableQty: qty}, nil
}
