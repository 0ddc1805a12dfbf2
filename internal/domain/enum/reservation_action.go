package enum

// ReservationAction is the verb sent to the inventory service's reservation endpoint.
type ReservationAction string

const (
	ReservationReserve ReservationAction = "RESERVAR"
	ReservationRelease ReservationAction = "RESTAR"
	ReservationCancel  ReservationAction = "CANCELAR"
)

func (a ReservationAction) String() string {
	return string(a)
}
