// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package status

import (
	"github.com/juju/errors"

	"github.com/juju/moduledeployer/core/module"
)

// State is the coarse runtime state of a module or one of its instances.
type State string

// String returns a string representation of the State.
func (s State) String() string {
	return string(s)
}

const (
	// Deploying means the instance has been accepted by the cluster but is
	// not yet ready to serve.
	Deploying State = "deploying"

	// Deployed means the instance is running and ready.
	Deployed State = "deployed"

	// Undeployed means the instance has gone away, or is going away.
	Undeployed State = "undeployed"

	// Partial means only some instances of a module are deployed.
	Partial State = "partial"

	// Failed means the instance could not be started or keeps crashing.
	Failed State = "failed"

	// Unknown means the state could not be determined.
	Unknown State = "unknown"
)

var allStates = []State{Deploying, Deployed, Undeployed, Partial, Failed, Unknown}

// AllStates returns every known State.
func AllStates() []State {
	return append([]State(nil), allStates...)
}

// ParseState returns the State named by s.
func ParseState(s string) (State, error) {
	for _, st := range allStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.NotValidf("state %q", s)
}

// InstanceStatus is the status of a single instance of a module.
type InstanceStatus struct {
	ID         string
	State      State
	Attributes map[string]string
}

// ModuleStatus is the status of every instance of a deployed module.
type ModuleStatus struct {
	ID        module.DeploymentID
	Instances map[string]InstanceStatus
}

// NewModuleStatus returns the status of id made up of the given instances.
// Instances sharing an ID replace earlier ones.
func NewModuleStatus(id module.DeploymentID, instances ...InstanceStatus) ModuleStatus {
	s := ModuleStatus{
		ID:        id,
		Instances: make(map[string]InstanceStatus, len(instances)),
	}
	for _, in := range instances {
		s.Instances[in.ID] = in
	}
	return s
}

// State folds the instance states into one for the module.
func (s ModuleStatus) State() State {
	states := make(map[State]bool)
	for _, in := range s.Instances {
		states[in.State] = true
	}
	switch {
	case len(states) == 0:
		return Unknown
	case len(states) == 1:
		for st := range states {
			return st
		}
	case states[Deploying]:
		return Deploying
	case states[Deployed] || states[Partial]:
		return Partial
	case states[Failed]:
		return Failed
	}
	// Some mix of unknown and undeployed.
	return Partial
}
