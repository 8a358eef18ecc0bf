package model

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Network string `json:"network"`
	INK     string `json:"ink"`
	ETH     string `json:"eth"`
	Rate    string `json:"rate,omitempty"` // ETH/USD, display only
	USD     string `json:"eth_amount_in_usd,omitempty"`
}
