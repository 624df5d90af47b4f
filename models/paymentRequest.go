package models

type PaymentStatus int

const (
	StatusCreated PaymentStatus = iota
	StatusCancelled
	StatusPaid
)

func (s PaymentStatus) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusCancelled:
		return "Cancelled"
	case StatusPaid:
		return "Paid"
	}
	return "Unknown"
}

// PaymentRequest is the persisted request record. Id 0 means "no such
// request"; terminal records are kept for audit and never deleted.
type PaymentRequest struct {
	Id               RequestID
	CreatorAddress   string
	RecipientAddress string
	Amount           TokenAmount
	Description      string
	Status           PaymentStatus
	Expiry           uint64
}

func (pr *PaymentRequest) Exists() bool {
	return pr.Id > 0
}
