package consensustx

import "errors"

var (
	errCheckpointUnknownAuthority      = errors.New("consensustx: checkpoint fragment names an authority outside the committee")
	errUnknownConsensusTransactionKind = errors.New("consensustx: unrecognized consensus transaction kind")
)
