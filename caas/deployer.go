// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package caas

import (
	"context"

	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/deployer_mock.go github.com/juju/moduledeployer/caas ModuleDeployer

// ModuleDeployer runs modules on a container substrate.
type ModuleDeployer interface {
	// Deploy creates the resources needed to run the requested module and
	// returns the id the deployment is addressed by.
	Deploy(ctx context.Context, req module.DeploymentRequest) (module.DeploymentID, error)

	// Undeploy removes every resource created for the deployment.
	// Undeploying an unknown deployment is not an error.
	Undeploy(ctx context.Context, id module.DeploymentID) error

	// Status reports the runtime status of a deployment.
	Status(ctx context.Context, id module.DeploymentID) (status.ModuleStatus, error)

	// StatusAll reports the status of every deployment made by this deployer.
	StatusAll(ctx context.Context) (map[module.DeploymentID]status.ModuleStatus, error)
}
