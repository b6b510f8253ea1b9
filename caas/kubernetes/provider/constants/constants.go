// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package constants

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// LabelGroup is the label holding the group of a deployed module.
	LabelGroup = "scsm-group"

	// LabelLabel is the label holding the label of a deployed module.
	LabelLabel = "scsm-label"

	// LabelExtension is the label holding the artifact extension.
	LabelExtension = "scsm-extension"

	// LabelVersion is the label holding the artifact version.
	LabelVersion = "scsm-version"

	// LabelGroupID is the label holding the artifact group id.
	LabelGroupID = "scsm-groupId"

	// LabelArtifactID is the label holding the artifact id.
	LabelArtifactID = "scsm-artifactId"

	// LabelRole marks every object managed by the module deployer.
	LabelRole = "role"

	// RoleModule is the value of LabelRole on managed objects.
	RoleModule = "scsm-module"

	// FieldManager is the field manager recorded on applied objects.
	FieldManager = "moduledeployer"

	// ContainerName is the name of the single module container.
	ContainerName = "spring-module-launcher"

	// DefaultModuleLauncherImage runs any module given by coordinates.
	DefaultModuleLauncherImage = "springcloud/stream-module-launcher"

	// DefaultNamespace is used when no namespace is configured.
	DefaultNamespace = "default"

	// DefaultExternalPort is the container port when the module definition
	// does not name one.
	DefaultExternalPort = 8080

	// DefaultMaxRestarts is the restart count after which a crashing
	// container is reported failed.
	DefaultMaxRestarts = 3

	// HealthPath is probed for readiness and liveness.
	HealthPath = "/health"

	// ReadinessTimeoutSeconds and ReadinessInitialDelaySeconds configure the
	// readiness probe.
	ReadinessTimeoutSeconds      = 1
	ReadinessInitialDelaySeconds = 10

	// LivenessTimeoutSeconds and LivenessInitialDelaySeconds configure the
	// optional liveness probe.
	LivenessTimeoutSeconds      = 2
	LivenessInitialDelaySeconds = 120

	// PortParameter and ServerPortParameter are the definition parameters
	// consulted, in order, for the external port.
	PortParameter       = "port"
	ServerPortParameter = "server.port"

	// LauncherArgPrefix qualifies module arguments for the launcher image.
	LauncherArgPrefix = "args.0."

	// ModulesArg names the coordinates argument of the launcher image.
	ModulesArg = "modules"
)

// DefaultPassthroughEnvironment lists the host environment variables copied
// into every module container.
var DefaultPassthroughEnvironment = []string{"SPRING_REDIS_HOST"}

// DefaultPropagationPolicy returns the default propagation policy.
func DefaultPropagationPolicy() *metav1.DeletionPropagation {
	v := metav1.DeletePropagationForeground
	return &v
}
