package models

// OrderStatus is the lifecycle state of an order. Which mutations an order
// accepts is decided here, not in the handlers.
type OrderStatus string

const (
	StatusNew                  OrderStatus = "New"
	StatusPending              OrderStatus = "Pending"
	StatusAwaitingConfirmation OrderStatus = "Awaiting confirmation"
	StatusProcessing           OrderStatus = "Processing"
	StatusCompleted            OrderStatus = "Completed"
	StatusCancelled            OrderStatus = "Cancelled"
)

func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusNew,
		StatusPending,
		StatusAwaitingConfirmation,
		StatusProcessing,
		StatusCompleted,
		StatusCancelled,
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusAwaitingConfirmation,
		StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Editable reports whether a customer may still change the order.
func (s OrderStatus) Editable() bool {
	switch s {
	case StatusNew, StatusPending, StatusAwaitingConfirmation:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still cancel the order.
// Same set as Editable: once an order is being processed it is locked.
func (s OrderStatus) Cancellable() bool {
	return s.Editable()
}

type PaymentMethod string

const (
	PaymentUnpaid PaymentMethod = "Unpaid"
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	// PaymentRefund marks the receipt of a cancelled order.
	PaymentRefund PaymentMethod = "Refund"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentCash, PaymentCard, PaymentRefund:
		return true
	}
	return false
}
