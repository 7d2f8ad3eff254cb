package accounts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/melih-ucgun/reef/internal/access"
	"github.com/melih-ucgun/reef/internal/core"
	"github.com/melih-ucgun/reef/internal/element"
)

// Service is the slice of the cluster API the reconciler consumes. The
// element client satisfies it; tests plug in a mock.
type Service interface {
	ListClusterAdmins(ctx context.Context) ([]element.ClusterAdmin, error)
	AddClusterAdmin(ctx context.Context, username, password string, acc []string, acceptEula bool) (*element.ClusterAdmin, error)
	AddLdapClusterAdmin(ctx context.Context, username string, acc []string, acceptEula bool) (*element.ClusterAdmin, error)
	ModifyClusterAdmin(ctx context.Context, id int64, password string, acc []string) (*element.ClusterAdmin, error)
	RemoveClusterAdmin(ctx context.Context, id int64) error
}

// Account binds a desired account to the service that can converge it.
// It implements core.Applyable.
type Account struct {
	Desired DesiredAccount
	svc     Service
}

// New creates a reconcilable account item.
func New(desired DesiredAccount, svc Service) *Account {
	return &Account{Desired: desired, svc: svc}
}

// ID names the item in engine output.
func (a *Account) ID() string {
	return "account:" + a.Desired.Key()
}

// Condition returns the optional `when:` expression.
func (a *Account) Condition() string {
	return a.Desired.When
}

// Apply converges the account: one read-only lookup, one decision, at most
// one mutating call. With sess.DryRun set the decision is reported without
// executing it (the lookup still runs and can fail on transport errors).
func (a *Account) Apply(sess *core.Session) (core.Result, error) {
	if err := a.Desired.Validate(); err != nil {
		return core.Result{}, err
	}

	found, err := a.lookup(sess)
	if err != nil {
		return core.Result{}, err
	}

	decision, err := a.decide(found)
	if err != nil {
		return core.Result{}, err
	}

	log.Debug().
		Str("account", a.Desired.Key()).
		Str("state", a.Desired.State).
		Bool("found", found != nil).
		Stringer("decision", decision).
		Msg("Reconciliation decision")

	if decision == NoOp {
		if a.Desired.State == StateAbsent {
			return core.SuccessNoChange("already absent"), nil
		}
		return core.SuccessNoChange("already in desired state"), nil
	}

	if sess.DryRun {
		return core.SuccessChange(fmt.Sprintf("would %s %q", decision, a.Desired.Key())), nil
	}

	if err := a.execute(sess, decision); err != nil {
		return core.Result{}, err
	}
	return core.SuccessChange(describe(decision)), nil
}

// lookup fetches the current account by identity. A nil or unknown id
// means "not found"; accounts are never matched by name.
func (a *Account) lookup(ctx context.Context) (*element.ClusterAdmin, error) {
	if a.Desired.ID == nil {
		return nil, nil
	}

	admins, err := a.svc.ListClusterAdmins(ctx)
	if err != nil {
		return nil, core.WrapErr("list cluster admins", a.Desired.Key(), err)
	}

	for i := range admins {
		if admins[i].ID == *a.Desired.ID {
			return &admins[i], nil
		}
	}
	return nil, nil
}

// decide maps (desired, observed) to exactly one action. Short-circuits on
// the first differing field; update is a single combined call, so one
// Update covers any number of drifted fields.
func (a *Account) decide(found *element.ClusterAdmin) (Decision, error) {
	if found == nil {
		if a.Desired.State == StateAbsent {
			return NoOp, nil // nothing to delete
		}
		// Creating an account that was addressed by id but is gone.
		if err := a.Desired.validateCreate(); err != nil {
			return NoOp, err
		}
		if a.Desired.UserType == TypeLdap {
			return CreateLdap, nil
		}
		return CreateCluster, nil
	}

	if a.Desired.State == StateAbsent {
		return Delete, nil
	}

	if !access.Equal(found.Access, a.Desired.EffectiveAccess()) {
		return Update, nil
	}

	// The cluster never returns a comparable credential, so a supplied
	// password is always treated as drift and rewritten.
	if a.Desired.Password != "" {
		return Update, nil
	}

	return NoOp, nil
}

func (a *Account) execute(ctx context.Context, decision Decision) error {
	acc := a.Desired.EffectiveAccess()

	var err error
	switch decision {
	case CreateCluster:
		_, err = a.svc.AddClusterAdmin(ctx, a.Desired.Name, a.Desired.Password, acc, true)
	case CreateLdap:
		_, err = a.svc.AddLdapClusterAdmin(ctx, a.Desired.Name, acc, true)
	case Update:
		_, err = a.svc.ModifyClusterAdmin(ctx, *a.Desired.ID, a.Desired.Password, acc)
	case Delete:
		err = a.svc.RemoveClusterAdmin(ctx, *a.Desired.ID)
	}
	if err != nil {
		return core.WrapErr(decision.String(), a.Desired.Key(), err)
	}
	return nil
}

func describe(decision Decision) string {
	switch decision {
	case CreateCluster:
		return "cluster admin account created"
	case CreateLdap:
		return "ldap admin account created"
	case Update:
		return "admin account updated"
	case Delete:
		return "admin account deleted"
	}
	return "no change"
}
