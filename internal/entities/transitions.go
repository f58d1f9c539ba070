package entities

// Allowed status moves per entity. Anything not listed is rejected by the guards built on top.
var (
	BinRequestTransitions = map[BinRequestStatus][]BinRequestStatus{
		RequestPending:  {RequestApproved, RequestRejected, RequestCancelled},
		RequestApproved: {RequestDelivered},
	}

	DeliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
		DeliveryScheduled:   {DeliveryInTransit, DeliveryDelivered, DeliveryFailed, DeliveryRescheduled},
		DeliveryInTransit:   {DeliveryDelivered, DeliveryFailed},
		DeliveryFailed:      {DeliveryRescheduled},
		DeliveryRescheduled: {DeliveryInTransit, DeliveryDelivered, DeliveryFailed},
	}

	SmartBinTransitions = map[SmartBinStatus][]SmartBinStatus{
		BinAvailable:   {BinAssigned, BinActive, BinMaintenance},
		BinAssigned:    {BinInTransit, BinActive, BinAvailable},
		BinInTransit:   {BinActive},
		BinActive:      {BinMaintenance},
		BinMaintenance: {BinAvailable, BinActive},
	}

	PickupTransitions = map[PickupStatus][]PickupStatus{
		PickupPending:    {PickupAssigned, PickupCancelled},
		PickupAssigned:   {PickupAssigned, PickupInProgress, PickupCompleted, PickupCancelled},
		PickupInProgress: {PickupCompleted},
	}
)
