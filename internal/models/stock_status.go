package models

// Per-item statuses inside a stock batch
const (
	ItemStatusPending     = "pending"
	ItemStatusReceived    = "received"
	ItemStatusNotReceived = "not_received"
)

// Derived batch statuses
const (
	BatchStatusPending     = "pending"
	BatchStatusReceived    = "received"
	BatchStatusNotReceived = "not_received"
	BatchStatusPartial     = "received_partially"
)

// Settlement entry statuses
const (
	SettlementPending     = "Pending"
	SettlementReceived    = "Received"
	SettlementNotReceived = "Not Received"
)

// BatchStatusOf derives the aggregate status of a batch from its item
// statuses. Every mutation path must call this after touching an item;
// the status is recomputed from scratch each time, never incrementally.
//
// Rules:
//   - all received                      -> received
//   - all not_received                  -> not_received
//   - some received and some pending    -> pending (delivery still open)
//   - some received, none pending       -> received_partially
//   - all pending                       -> pending
//   - anything else (pending + not_received mix) -> not_received
func BatchStatusOf(items []StockBatchItem) string {
	allReceived := true
	allNotReceived := true
	allPending := true
	someReceived := false
	somePending := false

	for _, item := range items {
		switch item.Status {
		case ItemStatusReceived:
			someReceived = true
			allNotReceived = false
			allPending = false
		case ItemStatusNotReceived:
			allReceived = false
			allPending = false
		case ItemStatusPending:
			somePending = true
			allReceived = false
			allNotReceived = false
		}
	}

	switch {
	case len(items) == 0:
		return BatchStatusPending
	case allReceived:
		return BatchStatusReceived
	case allNotReceived:
		return BatchStatusNotReceived
	case someReceived && somePending:
		return BatchStatusPending
	case someReceived:
		return BatchStatusPartial
	case allPending:
		return BatchStatusPending
	default:
		return BatchStatusNotReceived
	}
}
