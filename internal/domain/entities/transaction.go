package entities

// MintInput represents input for requesting a stablecoin mint from the
// provider. It is forwarded verbatim inside the signed request body.
type MintInput struct {
	Amount          string `json:"amount" binding:"required"`
	MerchantOrderID string `json:"merchantOrderId,omitempty"`
	Reference       string `json:"reference,omitempty"`
}
