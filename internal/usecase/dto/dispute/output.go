package disputedto

import "github.com/agrimarket/escrow-client/internal/domain"

type DisputeOutput struct {
	Dispute *domain.Dispute
}

// ResolutionOutput wraps the admin outcome. A nil Resolution means the
// dispute is still pending, which is a valid answer.
type ResolutionOutput struct {
	Resolution *domain.DisputeResolution
}

func (o *ResolutionOutput) Pending() bool {
	return o.Resolution == nil
}
