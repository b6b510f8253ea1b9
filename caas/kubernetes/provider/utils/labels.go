// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package utils

import (
	"regexp"
	"strings"

	"github.com/juju/errors"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/juju/moduledeployer/caas/kubernetes/provider/constants"
	"github.com/juju/moduledeployer/core/module"
)

// LabelsForID returns the labels identifying the objects of a deployment.
func LabelsForID(id module.DeploymentID) labels.Set {
	return labels.Set{
		constants.LabelGroup: id.Group,
		constants.LabelLabel: id.Label,
	}
}

// LabelsForRole returns the marker label carried by every managed object.
func LabelsForRole() labels.Set {
	return labels.Set{constants.LabelRole: constants.RoleModule}
}

// LabelsForCoordinates returns the artifact labels of a replication
// controller. Values are sanitised and empty values are left out.
func LabelsForCoordinates(coords module.Coordinates) labels.Set {
	out := labels.Set{}
	for k, v := range map[string]string{
		constants.LabelGroupID:    coords.GroupID,
		constants.LabelArtifactID: coords.ArtifactID,
		constants.LabelVersion:    coords.Version,
		constants.LabelExtension:  coords.Extension,
	} {
		if v = SanitizeLabelValue(v); v != "" {
			out[k] = v
		}
	}
	return out
}

// LabelsMerge merges the sets in order, later keys win.
func LabelsMerge(sets ...labels.Set) labels.Set {
	out := labels.Set{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// LabelsToSelector returns the selector matching every label in ls.
func LabelsToSelector(ls labels.Set) labels.Selector {
	return labels.SelectorFromSet(ls)
}

// IDFromLabels rebuilds a deployment id from the labels of a managed object.
func IDFromLabels(ls map[string]string) (module.DeploymentID, error) {
	id := module.DeploymentID{
		Group: ls[constants.LabelGroup],
		Label: ls[constants.LabelLabel],
	}
	if err := id.Validate(); err != nil {
		return module.DeploymentID{}, errors.Trace(err)
	}
	return id, nil
}

// ValidateLabelValues checks that the id can be used as label values.
func ValidateLabelValues(id module.DeploymentID) error {
	for k, v := range LabelsForID(id) {
		if msgs := validation.IsValidLabelValue(v); len(msgs) > 0 {
			return errors.NotValidf("%s %q: %s", k, v, strings.Join(msgs, "; "))
		}
	}
	return nil
}

var invalidLabelChars = regexp.MustCompile(`[^-A-Za-z0-9_.]+`)

// SanitizeLabelValue turns v into a valid label value.
func SanitizeLabelValue(v string) string {
	if len(validation.IsValidLabelValue(v)) == 0 {
		return v
	}
	v = invalidLabelChars.ReplaceAllString(v, "-")
	if len(v) > validation.LabelValueMaxLength {
		v = v[:validation.LabelValueMaxLength]
	}
	return strings.Trim(v, "-_.")
}
