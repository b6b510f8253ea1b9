// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package module

import (
	"strings"

	"github.com/juju/errors"
)

// DeploymentID identifies a deployed module by its group and label.
type DeploymentID struct {
	Group string
	Label string
}

// IDFromDefinition returns the id a deployment of def is addressed by.
func IDFromDefinition(def Definition) DeploymentID {
	return DeploymentID{
		Group: def.Group,
		Label: def.EffectiveLabel(),
	}
}

// String returns group.label.
func (id DeploymentID) String() string {
	return id.Group + "." + id.Label
}

// Validate returns an error if either half of the id is empty.
func (id DeploymentID) Validate() error {
	if id.Group == "" {
		return errors.NotValidf("deployment id %q with empty group", id.String())
	}
	if id.Label == "" {
		return errors.NotValidf("deployment id %q with empty label", id.String())
	}
	return nil
}

// ParseDeploymentID parses group.label. Groups may contain dots, labels may not.
func ParseDeploymentID(s string) (DeploymentID, error) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return DeploymentID{}, errors.NotValidf("deployment id %q", s)
	}
	id := DeploymentID{Group: s[:i], Label: s[i+1:]}
	if err := id.Validate(); err != nil {
		return DeploymentID{}, errors.Trace(err)
	}
	return id, nil
}
