package models

// CurrentAmount is the allowance value the caller believes is in effect.
// The contract only applies the new amount when it still matches.
type ApproveCommand struct {
	Caller        string
	Spender       string
	CurrentAmount TokenAmount
	Amount        TokenAmount
}
