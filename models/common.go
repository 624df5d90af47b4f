package models

// TokenAmount is the unit every balance, allowance and fee is denominated in.
type TokenAmount = uint64

type RequestID = uint32
