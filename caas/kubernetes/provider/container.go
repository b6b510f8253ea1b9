// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"fmt"
	"os"

	"github.com/juju/errors"
	core "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/juju/moduledeployer/caas/kubernetes/provider/constants"
	"github.com/juju/moduledeployer/core/module"
)

// ContainerFactory decides the image and arguments of a module container.
type ContainerFactory interface {
	Image(req module.DeploymentRequest) string
	Args(req module.DeploymentRequest) []string
}

// NewContainerFactory returns the container factory selected by cfg.
func NewContainerFactory(cfg *Config) (ContainerFactory, error) {
	switch cfg.ContainerFactory() {
	case LauncherContainerFactory:
		return launcherContainerFactory{image: cfg.ModuleLauncherImage()}, nil
	case PrebuiltContainerFactory:
		return prebuiltContainerFactory{
			repository: cfg.ImageRepository(),
			prefix:     cfg.ImageNamePrefix(),
		}, nil
	}
	return nil, errors.NotValidf("container factory %q", cfg.ContainerFactory())
}

// launcherContainerFactory runs every module in the launcher image, which
// resolves the module from its coordinates.
type launcherContainerFactory struct {
	image string
}

func (f launcherContainerFactory) Image(module.DeploymentRequest) string {
	if f.image == "" {
		return constants.DefaultModuleLauncherImage
	}
	return f.image
}

func (f launcherContainerFactory) Args(req module.DeploymentRequest) []string {
	return commandArgs(mergeArgs(
		map[string]string{constants.ModulesArg: req.Coordinates.String()},
		qualifyArgs(constants.LauncherArgPrefix, req.Definition.Parameters),
		qualifyArgs(constants.LauncherArgPrefix, req.DeploymentProperties),
	))
}

// prebuiltContainerFactory runs modules from images built ahead of time,
// one per artifact.
type prebuiltContainerFactory struct {
	repository string
	prefix     string
}

func (f prebuiltContainerFactory) Image(req module.DeploymentRequest) string {
	name := req.Coordinates.ArtifactID
	if f.prefix != "" {
		name = f.prefix + "-" + name
	}
	return fmt.Sprintf("%s/%s:%s", f.repository, name, req.Coordinates.Version)
}

func (f prebuiltContainerFactory) Args(req module.DeploymentRequest) []string {
	return commandArgs(mergeArgs(req.Definition.Parameters, req.DeploymentProperties))
}

// getenv is patched in tests.
var getenv = os.Getenv

func (k *kubernetesClient) container(req module.DeploymentRequest, port int) core.Container {
	container := core.Container{
		Name:  constants.ContainerName,
		Image: k.containers.Image(req),
		Args:  k.containers.Args(req),
		Ports: []core.ContainerPort{{
			ContainerPort: int32(port),
			Protocol:      core.ProtocolTCP,
		}},
		ReadinessProbe: httpProbe(port, constants.ReadinessTimeoutSeconds, constants.ReadinessInitialDelaySeconds),
	}
	if k.config.LivenessProbe() {
		container.LivenessProbe = httpProbe(port, constants.LivenessTimeoutSeconds, constants.LivenessInitialDelaySeconds)
	}
	for _, name := range k.config.EnvironmentPassthrough() {
		if v := getenv(name); v != "" {
			container.Env = append(container.Env, core.EnvVar{Name: name, Value: v})
		}
	}
	return container
}

func httpProbe(port int, timeout, initialDelay int32) *core.Probe {
	return &core.Probe{
		ProbeHandler: core.ProbeHandler{
			HTTPGet: &core.HTTPGetAction{
				Path: constants.HealthPath,
				Port: intstr.FromInt32(int32(port)),
			},
		},
		TimeoutSeconds:      timeout,
		InitialDelaySeconds: initialDelay,
	}
}
