package entity

// Quantity tracks what the cashier asked for against what the inventory service last confirmed.
// Desired only differs from Confirmed while a reservation call is in flight.
type Quantity struct {
	Desired   int `json:"quantity"`
	Confirmed int `json:"confirmed_quantity"`
}

// Request sets the desired quantity and returns the delta to reserve (>0) or release (<0).
func (q *Quantity) Request(n int) int {
	q.Desired = n
	return q.Delta()
}

func (q Quantity) Delta() int {
	return q.Desired - q.Confirmed
}

func (q *Quantity) Confirm() {
	q.Confirmed = q.Desired
}

func (q *Quantity) Rollback() {
	q.Desired = q.Confirmed
}

// Settle forces both phases to n. Used for lines that bypass stock control.
func (q *Quantity) Settle(n int) {
	q.Desired = n
	q.Confirmed = n
}

func (q Quantity) Pending() bool {
	return q.Desired != q.Confirmed
}
