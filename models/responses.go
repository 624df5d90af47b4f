package models

type ResultResponse struct {
	Ok bool
}

type BalanceResponse struct {
	Address string
	Balance TokenAmount
}

type AllowanceResponse struct {
	Owner     string
	Spender   string
	Allowance TokenAmount
}

type TokenInfoResponse struct {
	Name        string
	Symbol      string
	TotalSupply TokenAmount
	Decimals    uint32
	Owner       string
	ServiceFee  TokenAmount
}

type VolumeStatistics struct {
	Transfers uint64
	Volume    TokenAmount
}

type AddressActivityResponse struct {
	Address string
	// Transfers is a count-min sketch estimate, never an undercount.
	Transfers uint64
}
