package models

type CreateRequestCommand struct {
	Caller           string
	Id               RequestID
	Description      string
	RecipientAddress string
	Amount           TokenAmount
	Expiry           uint64
}

type PayRequestCommand struct {
	Caller string
	Id     RequestID
	// CurrentTime is optional over HTTP; when zero the host adapter samples
	// its own clock before invoking the contract.
	CurrentTime uint64
}

type CancelRequestCommand struct {
	Caller string
	Id     RequestID
}

type ReviseServiceFeeCommand struct {
	Caller        string
	NewServiceFee TokenAmount
}
