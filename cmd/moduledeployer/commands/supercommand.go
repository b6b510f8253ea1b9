// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v3"

	"github.com/juju/moduledeployer/caas"
	"github.com/juju/moduledeployer/caas/kubernetes/provider"
	"github.com/juju/moduledeployer/cmd"
)

var logger = loggo.GetLogger("moduledeployer.cmd.moduledeployer")

// LoggingConfigEnvKey holds the default logging configuration.
const LoggingConfigEnvKey = "MODULEDEPLOYER_LOGGING_CONFIG"

const superDoc = `
moduledeployer deploys stream modules onto a kubernetes cluster as
replication controllers, optionally exposed through a service, and reports
their status.

The deployer configuration is read from the YAML file given with --config.
`

// OpenFunc returns a deployer for the given configuration.
type OpenFunc func(*provider.Config) (caas.ModuleDeployer, error)

// deployerConfig holds the global --config flag and opens deployers.
type deployerConfig struct {
	file cmd.FileVar
	open OpenFunc
}

// AddFlags is part of the cmd.FlagAdder interface.
func (d *deployerConfig) AddFlags(f *gnuflag.FlagSet) {
	f.Var(&d.file, "config", "Path to the YAML deployer configuration")
}

// Config returns the validated deployer configuration.
func (d *deployerConfig) Config(ctx *cmd.Context) (*provider.Config, error) {
	attrs := map[string]interface{}{}
	if d.file.Path != "" {
		data, err := d.file.Read(ctx)
		if err != nil {
			return nil, errors.Annotate(err, "reading deployer config")
		}
		if err := yaml.Unmarshal(data, &attrs); err != nil {
			return nil, errors.Annotatef(err, "parsing %s", d.file.Path)
		}
	}
	cfg, err := provider.NewConfig(attrs)
	return cfg, errors.Trace(err)
}

// Deployer opens a deployer for the configured cluster.
func (d *deployerConfig) Deployer(ctx *cmd.Context) (caas.ModuleDeployer, error) {
	cfg, err := d.Config(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("using namespace %q", cfg.Namespace())
	logger.Tracef("deployer config: %v", cfg.Attributes())
	deployer, err := d.open(cfg)
	return deployer, errors.Trace(err)
}

// NewSuperCommand returns the moduledeployer command.
func NewSuperCommand() *cmd.SuperCommand {
	return newSuperCommand(provider.Open)
}

func newSuperCommand(open OpenFunc) *cmd.SuperCommand {
	config := &deployerConfig{open: open}
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:                "moduledeployer",
		Purpose:             "Deploy stream modules onto kubernetes.",
		Doc:                 superDoc,
		GlobalFlags:         config,
		LoggingConfigEnvKey: LoggingConfigEnvKey,
	})
	super.Register(&deployCommand{config: config})
	super.Register(&undeployCommand{config: config})
	super.Register(&statusCommand{config: config})
	super.Register(&waitCommand{config: config})
	super.Register(&monitorCommand{config: config})
	return super
}
