// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package module

import (
	"strconv"

	"github.com/juju/errors"
)

// CountProperty is the deployment property holding the number of instances.
const CountProperty = "count"

// DeploymentRequest asks a deployer to run Count instances of a module.
type DeploymentRequest struct {
	Definition           Definition
	Coordinates          Coordinates
	DeploymentProperties map[string]string
	Count                int
}

// NewDeploymentRequest returns a request whose count is taken from the
// "count" deployment property, defaulting to a single instance.
func NewDeploymentRequest(def Definition, coords Coordinates, props map[string]string) (DeploymentRequest, error) {
	count := 1
	if v, ok := props[CountProperty]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return DeploymentRequest{}, errors.NotValidf("%s %q", CountProperty, v)
		}
		count = n
	}
	req := DeploymentRequest{
		Definition:           def,
		Coordinates:          coords,
		DeploymentProperties: props,
		Count:                count,
	}
	if err := req.Validate(); err != nil {
		return DeploymentRequest{}, errors.Trace(err)
	}
	return req, nil
}

// ID returns the deployment id of the request.
func (r DeploymentRequest) ID() DeploymentID {
	return IDFromDefinition(r.Definition)
}

// Validate checks the request is deployable.
func (r DeploymentRequest) Validate() error {
	if r.Count < 0 {
		return errors.NotValidf("negative count %d", r.Count)
	}
	if err := r.ID().Validate(); err != nil {
		return errors.Trace(err)
	}
	if err := r.Coordinates.Validate(); err != nil {
		return errors.Annotatef(err, "module %q", r.ID())
	}
	return nil
}
