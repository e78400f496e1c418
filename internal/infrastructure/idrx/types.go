package idrx

// Credentials is a signing identity for provider calls: the application-wide
// pair before a user is onboarded, the user's own pair afterwards.
type Credentials struct {
	APIKey    string
	APISecret string
}

// OnboardInput carries the KYC bundle submitted to the provider's
// registration endpoint. IDFileBase64 is the uploaded identity document.
type OnboardInput struct {
	Email        string
	FullName     string
	Address      string
	IDNumber     string
	IDFileBase64 string
}

// onboardSignaturePayload is the canonical JSON the signature covers for the
// multipart onboarding request. Field order is fixed by declaration order.
type onboardSignaturePayload struct {
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Address  string `json:"address"`
	IDNumber string `json:"idNumber"`
}

// OnboardData is the provider's registration response payload
type OnboardData struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullname"`
	CreatedAt string `json:"createdAt"`
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
}

// BankInfo is one entry of the provider's bank catalog
type BankInfo struct {
	BankCode          string `json:"bankCode"`
	BankName          string `json:"bankName"`
	MaxAmountTransfer string `json:"maxAmountTransfer"`
}

// MintData is the provider's mint-request response payload
type MintData struct {
	ID              string `json:"id"`
	MerchantCode    string `json:"merchantCode"`
	Reference       string `json:"reference"`
	PaymentURL      string `json:"paymentUrl"`
	Amount          string `json:"amount"`
	StatusCode      string `json:"statusCode"`
	StatusMessage   string `json:"statusMessage"`
	MerchantOrderID string `json:"merchantOrderId"`
}
