package orders

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusProcessing: {StatusShipped: true, StatusDelivered: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order in status from may move to to.
// Re-applying the current status is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return to.Valid()
	}
	return validNext[from][to]
}
