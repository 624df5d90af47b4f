package models

type TransferCommand struct {
	Caller string
	To     string
	Amount TokenAmount
}

type TransferFromCommand struct {
	Caller string
	From   string
	To     string
	Amount TokenAmount
}
