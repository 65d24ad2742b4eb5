package kafka

// EscrowEvent is published after every successful or externally observed
// escrow transition.
type EscrowEvent struct {
	EscrowID  string `json:"escrow_id"`
	RequestID string `json:"request_id,omitempty"`
	Action    string `json:"action"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Amount    string `json:"amount,omitempty"`
	ActorRole string `json:"actor_role,omitempty"`
}
