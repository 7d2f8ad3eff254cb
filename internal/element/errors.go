package element

import "github.com/melih-ucgun/reef/internal/core"

// Fault names the API uses for the failure modes the reconciler
// distinguishes. Everything else is a transport-level failure.
var faultKinds = map[string]core.Kind{
	"xDuplicateUsername":     core.KindDuplicate,
	"xDuplicateAccountName":  core.KindDuplicate,
	"xUnknownClusterAdmin":   core.KindNotFound,
	"xUnknownAccount":        core.KindNotFound,
	"xAccountIDDoesNotExist": core.KindNotFound,
}

func mapFault(op string, fault *rpcFault) error {
	kind, ok := faultKinds[fault.Name]
	if !ok {
		kind = core.KindTransport
	}
	return &core.Error{Kind: kind, Op: op, Err: fault}
}
