package models

// OrderStatus is the lifecycle state of an order. The flow is linear from
// pending to delivered; cancelled is reachable only from pending.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPickupAssigned OrderStatus = "pickup_assigned"
	StatusProcessing     OrderStatus = "processing"
	StatusReady          OrderStatus = "ready"
	StatusDropAssigned   OrderStatus = "drop_assigned"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllStatuses lists every status in flow order, cancelled last.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusPickupAssigned,
	StatusProcessing,
	StatusReady,
	StatusDropAssigned,
	StatusDelivered,
	StatusCancelled,
}

var statusFlow = map[OrderStatus]OrderStatus{
	StatusPending:        StatusPickupAssigned,
	StatusPickupAssigned: StatusProcessing,
	StatusProcessing:     StatusReady,
	StatusReady:          StatusDropAssigned,
	StatusDropAssigned:   StatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	StatusPending:        "Pending",
	StatusPickupAssigned: "Pickup Assigned",
	StatusProcessing:     "Processing",
	StatusReady:          "Ready",
	StatusDropAssigned:   "Drop Assigned",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
}

// Next returns the canonical successor in the linear flow. ok is false for
// delivered and cancelled, which have no outgoing transitions.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := statusFlow[s]
	return next, ok
}

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanCancel reports whether an order in this status may still be cancelled.
// Cancellation is only allowed before the pickup stage.
func (s OrderStatus) CanCancel() bool {
	return s == StatusPending
}

func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	return statusLabels[s]
}

// ServiceType classifies an order and decides which detail fields apply:
// weight and pieces for laundry, an itemised list for dryclean, a flat
// price for home cleaning. Fixed at creation.
type ServiceType string

const (
	ServiceLaundry      ServiceType = "laundry"
	ServiceDryclean     ServiceType = "dryclean"
	ServiceHomeCleaning ServiceType = "home_cleaning"
)

var AllServiceTypes = []ServiceType{ServiceLaundry, ServiceDryclean, ServiceHomeCleaning}

var serviceLabels = map[ServiceType]string{
	ServiceLaundry:      "Laundry",
	ServiceDryclean:     "Dry Clean",
	ServiceHomeCleaning: "Home Cleaning",
}

func (t ServiceType) Valid() bool {
	_, ok := serviceLabels[t]
	return ok
}

func (t ServiceType) Label() string {
	return serviceLabels[t]
}
