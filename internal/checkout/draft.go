package checkout

// OrderType says where the order is eaten.
type OrderType string

const (
	OrderTypeDineIn  OrderType = "dine-in"
	OrderTypeTakeOut OrderType = "take-out"
)

func (o OrderType) Valid() bool {
	return o == OrderTypeDineIn || o == OrderTypeTakeOut
}

// PaymentMethod says how the order is settled.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentGCash
}

// Draft carries the payment fields the cashier fills in ahead of submit.
// AmountPaid stays the raw input string until submit-time parsing so a
// failed attempt hands the cashier back exactly what they typed.
type Draft struct {
	OrderType     OrderType
	PaymentMethod PaymentMethod
	AmountPaid    string
}

// DefaultDraft returns the state the payment fields reset to after a
// successful sale.
func DefaultDraft() Draft {
	return Draft{
		OrderType:     OrderTypeDineIn,
		PaymentMethod: PaymentCash,
		AmountPaid:    "",
	}
}
