// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"fmt"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"

	"github.com/juju/moduledeployer/caas/kubernetes/provider/constants"
)

const (
	namespaceKey              = "namespace"
	kubeconfigKey             = "kubeconfig"
	contextKey                = "context"
	inClusterKey              = "in-cluster"
	moduleLauncherImageKey    = "module-launcher-image"
	imagePullSecretKey        = "image-pull-secret"
	containerFactoryKey       = "container-factory"
	imageRepositoryKey        = "image-repository"
	imageNamePrefixKey        = "image-name-prefix"
	defaultPortKey            = "default-port"
	livenessProbeKey          = "liveness-probe"
	maxRestartsKey            = "max-restarts"
	environmentPassthroughKey = "environment-passthrough"
)

const (
	// LauncherContainerFactory runs modules in the generic launcher image.
	LauncherContainerFactory = "launcher"
	// PrebuiltContainerFactory runs one pre-built image per module.
	PrebuiltContainerFactory = "prebuilt"
)

var containerFactories = set.NewStrings(LauncherContainerFactory, PrebuiltContainerFactory)

var configSchema = environschema.Fields{
	namespaceKey: {
		Description: "The namespace in which modules are deployed.",
		Type:        environschema.Tstring,
	},
	kubeconfigKey: {
		Description: "Path to a kubeconfig file.",
		Type:        environschema.Tstring,
	},
	contextKey: {
		Description: "The kubeconfig context to use.",
		Type:        environschema.Tstring,
	},
	inClusterKey: {
		Description: "Use the service account of the pod the deployer runs in.",
		Type:        environschema.Tbool,
	},
	moduleLauncherImageKey: {
		Description: "The image used by the launcher container factory.",
		Type:        environschema.Tstring,
	},
	imagePullSecretKey: {
		Description: "The secret used to pull module images.",
		Type:        environschema.Tstring,
	},
	containerFactoryKey: {
		Description: "How module containers are built: launcher or prebuilt.",
		Type:        environschema.Tstring,
	},
	imageRepositoryKey: {
		Description: "The repository holding pre-built module images.",
		Type:        environschema.Tstring,
	},
	imageNamePrefixKey: {
		Description: "The name prefix of pre-built module images.",
		Type:        environschema.Tstring,
	},
	defaultPortKey: {
		Description: "The container port of modules not naming one.",
		Type:        environschema.Tint,
	},
	livenessProbeKey: {
		Description: "Add a liveness probe to module containers.",
		Type:        environschema.Tbool,
	},
	maxRestartsKey: {
		Description: "Container restarts after which a module instance is failed.",
		Type:        environschema.Tint,
	},
	environmentPassthroughKey: {
		Description: "Environment variables copied into module containers.",
		Type:        environschema.Tlist,
	},
}

var configDefaults = schema.Defaults{
	namespaceKey:              constants.DefaultNamespace,
	kubeconfigKey:             schema.Omit,
	contextKey:                schema.Omit,
	inClusterKey:              false,
	moduleLauncherImageKey:    constants.DefaultModuleLauncherImage,
	imagePullSecretKey:        schema.Omit,
	containerFactoryKey:       LauncherContainerFactory,
	imageRepositoryKey:        schema.Omit,
	imageNamePrefixKey:        schema.Omit,
	defaultPortKey:            constants.DefaultExternalPort,
	livenessProbeKey:          false,
	maxRestartsKey:            constants.DefaultMaxRestarts,
	environmentPassthroughKey: toInterfaces(constants.DefaultPassthroughEnvironment),
}

// ConfigSchema returns the schema of the deployer configuration.
func ConfigSchema() environschema.Fields {
	return configSchema
}

// Config holds the validated deployer configuration.
type Config struct {
	validAttrs map[string]interface{}
}

// NewConfig validates attrs and fills in defaults. Unknown keys are
// rejected.
func NewConfig(attrs map[string]interface{}) (*Config, error) {
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	fields, defaults, err := configSchema.ValidationSchema()
	if err != nil {
		return nil, errors.Trace(err)
	}
	for k, v := range configDefaults {
		defaults[k] = v
	}
	coerced, err := schema.StrictFieldMap(fields, defaults).Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Annotate(err, "validating deployer config")
	}
	cfg := &Config{validAttrs: coerced.(map[string]interface{})}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// Validate checks the relations between config values.
func (c *Config) Validate() error {
	if !containerFactories.Contains(c.ContainerFactory()) {
		return errors.NotValidf("%s %q, expected one of %v", containerFactoryKey, c.ContainerFactory(), containerFactories.SortedValues())
	}
	if c.ContainerFactory() == PrebuiltContainerFactory && c.ImageRepository() == "" {
		return errors.NotValidf("%s container factory without %s", PrebuiltContainerFactory, imageRepositoryKey)
	}
	if c.Namespace() == "" {
		return errors.NotValidf("empty %s", namespaceKey)
	}
	if p := c.DefaultPort(); p < 1 || p > 65535 {
		return errors.NotValidf("%s %d", defaultPortKey, p)
	}
	if c.MaxRestarts() < 0 {
		return errors.NotValidf("negative %s", maxRestartsKey)
	}
	return nil
}

// Attributes returns a copy of the validated attributes.
func (c *Config) Attributes() map[string]interface{} {
	out := make(map[string]interface{}, len(c.validAttrs))
	for k, v := range c.validAttrs {
		out[k] = v
	}
	return out
}

func (c *Config) Namespace() string {
	v, _ := c.validAttrs[namespaceKey].(string)
	return v
}

func (c *Config) Kubeconfig() string {
	v, _ := c.validAttrs[kubeconfigKey].(string)
	return v
}

func (c *Config) Context() string {
	v, _ := c.validAttrs[contextKey].(string)
	return v
}

func (c *Config) InCluster() bool {
	v, _ := c.validAttrs[inClusterKey].(bool)
	return v
}

func (c *Config) ModuleLauncherImage() string {
	v, _ := c.validAttrs[moduleLauncherImageKey].(string)
	return v
}

func (c *Config) ImagePullSecret() string {
	v, _ := c.validAttrs[imagePullSecretKey].(string)
	return v
}

func (c *Config) ContainerFactory() string {
	v, _ := c.validAttrs[containerFactoryKey].(string)
	return v
}

func (c *Config) ImageRepository() string {
	v, _ := c.validAttrs[imageRepositoryKey].(string)
	return v
}

func (c *Config) ImageNamePrefix() string {
	v, _ := c.validAttrs[imageNamePrefixKey].(string)
	return v
}

func (c *Config) DefaultPort() int {
	return intAttr(c.validAttrs[defaultPortKey])
}

func (c *Config) LivenessProbe() bool {
	v, _ := c.validAttrs[livenessProbeKey].(bool)
	return v
}

func (c *Config) MaxRestarts() int {
	return intAttr(c.validAttrs[maxRestartsKey])
}

// EnvironmentPassthrough returns the names of the host environment variables
// copied into module containers.
func (c *Config) EnvironmentPassthrough() []string {
	switch v := c.validAttrs[environmentPassthroughKey].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, len(v))
		for i, name := range v {
			out[i] = fmt.Sprintf("%s", name)
		}
		return out
	}
	return nil
}

func intAttr(v interface{}) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
