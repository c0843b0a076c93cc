package domain

// Install is the body of an install or session request. A non-empty
// SessionID turns the request into a session (retention) ping.
type Install struct {
	UserInstallID string       `json:"user_install_id" validate:"required"`
	Platform      string       `json:"platform" validate:"required"`
	SessionID     string       `json:"session_id,omitempty"`
	Fingerprint   *Fingerprint `json:"fingerprint_components,omitempty"`
}

const DefaultQuantity = 1

type Purchase struct {
	GameInstallID string  `json:"game_install_id" validate:"required"`
	Amount        float64 `json:"purchase_amount" validate:"gte=0"`
	Currency      string  `json:"currency" validate:"required"`
	ItemSKU       string  `json:"item_sku" validate:"required"`
	ItemName      string  `json:"item_name" validate:"required"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
}

// WithDefaults returns a copy of p with a zero quantity replaced by DefaultQuantity.
func (p Purchase) WithDefaults() Purchase {
	if p.Quantity == 0 {
		p.Quantity = DefaultQuantity
	}
	return p
}
