package escrowdto

// RefreshInput identifies the contract to re-fetch. Exactly one field must
// be set.
type RefreshInput struct {
	EscrowID     string
	AuctionID    string
	BuyRequestID string
}
