package orders

import "strconv"

const (
	TopicOrderCreated = "order.created"
	TopicOrderUpdated = "order.updated"
	TopicOrderDeleted = "order.deleted"
)

// Topics lists every topic the workflow publishes to.
var Topics = []string{TopicOrderCreated, TopicOrderUpdated, TopicOrderDeleted}

// Partition key = order id, so all events of one order keep their order.
func PartitionKey(orderID int64) []byte { return []byte(strconv.FormatInt(orderID, 10)) }
