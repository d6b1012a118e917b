package primary

import "errors"

// Business conditions returned by the services. They are expected outcomes,
// not faults; adapters match them with errors.Is and render a short notice.
var (
	ErrSelfShip        = errors.New("cannot ship yourself")
	ErrProposerPaired  = errors.New("proposer already paired")
	ErrTargetPaired    = errors.New("target already paired")
	ErrAlreadyPaired   = errors.New("already paired")
	ErrNotPaired       = errors.New("not paired")
	ErrUnauthorized    = errors.New("only the proposee can respond")
	ErrProposalExpired = errors.New("proposal expired")
	ErrBioTooLong      = errors.New("bio too long")
	ErrNoBio           = errors.New("no bio set")
)

// IsBusiness reports whether err is one of the business conditions above.
func IsBusiness(err error) bool {
	for _, target := range []error{
		ErrSelfShip, ErrProposerPaired, ErrTargetPaired, ErrAlreadyPaired, ErrNotPaired,
		ErrUnauthorized, ErrProposalExpired, ErrBioTooLong, ErrNoBio,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
