// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"k8s.io/client-go/kubernetes"
)

var logger = loggo.GetLogger("moduledeployer.kubernetes.provider.resources")

var (
	errConflict = errors.New("resource version conflict")
)

type applier struct {
	ops []operation
}

// NewApplier creates a new applier.
func NewApplier() Applier {
	return &applier{}
}

type opType int

const (
	opApply opType = iota
	opDelete
)

type operation struct {
	opType
	resource Resource
}

func (op *operation) process(ctx context.Context, client kubernetes.Interface, rollback Applier) error {
	existing := op.resource.Clone()
	err := existing.Get(ctx, client)
	found := true
	if errors.Is(err, errors.NotFound) {
		found = false
	} else if err != nil {
		return errors.Annotatef(err, "checking if %s exists", op.resource.ID())
	}
	if found {
		ver := op.resource.GetObjectMeta().GetResourceVersion()
		if ver != "" && ver != existing.GetObjectMeta().GetResourceVersion() {
			return errors.Annotatef(errConflict, "%s", op.resource.ID())
		}
		// Restoring the previous object must not trip over the version
		// written by this run.
		existing.GetObjectMeta().SetResourceVersion("")
		existing.GetObjectMeta().SetManagedFields(nil)
	}
	// A failed write changes nothing, so only successful ones are undone.
	switch op.opType {
	case opApply:
		if err = op.resource.Apply(ctx, client); err != nil {
			return errors.Trace(err)
		}
		if found {
			rollback.Apply(existing)
		} else {
			rollback.Delete(op.resource)
		}
	case opDelete:
		if err = op.resource.Delete(ctx, client); err != nil {
			return errors.Trace(err)
		}
		if found {
			rollback.Apply(existing)
		}
	}
	return nil
}

func (a *applier) Apply(resources ...Resource) {
	for _, r := range resources {
		a.ops = append(a.ops, operation{opApply, r})
	}
}

func (a *applier) Delete(resources ...Resource) {
	for _, r := range resources {
		a.ops = append(a.ops, operation{opDelete, r})
	}
}

// ApplySet deletes the current resources missing from desired, then applies
// desired.
func (a *applier) ApplySet(current []Resource, desired []Resource) {
	desiredMap := map[ID]bool{}
	for _, r := range desired {
		desiredMap[r.ID()] = true
	}
	for _, r := range current {
		if ok := desiredMap[r.ID()]; !ok {
			a.Delete(r)
		}
	}
	a.Apply(desired...)
}

// Run processes the queued operations. Unless noRollback is set, a failure
// undoes the operations already done, newest first.
func (a *applier) Run(ctx context.Context, client kubernetes.Interface, noRollback bool) (err error) {
	rollback := &applier{}

	defer func() {
		if noRollback || err == nil {
			return
		}
		for i, j := 0, len(rollback.ops)-1; i < j; i, j = i+1, j-1 {
			rollback.ops[i], rollback.ops[j] = rollback.ops[j], rollback.ops[i]
		}
		if rollbackErr := rollback.Run(context.Background(), client, true); rollbackErr != nil {
			logger.Errorf("rollback failed: %v", rollbackErr)
		}
	}()
	for _, op := range a.ops {
		if err = op.process(ctx, client, rollback); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
