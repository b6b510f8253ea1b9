// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/naturalsort"

	"github.com/juju/moduledeployer/cmd"
	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

const statusDoc = `
Status shows the aggregate state of one module, or of every module deployed
in the namespace when no module is given.

States are deploying, deployed, undeployed, partial, failed and unknown.
`

type statusCommand struct {
	cmd.CommandBase
	config *deployerConfig
	out    cmd.Output

	id  module.DeploymentID
	all bool
}

func (c *statusCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "status",
		Args:    "[<group.label>]",
		Purpose: "Show the status of deployed modules.",
		Doc:     statusDoc,
	}
}

func (c *statusCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatStatusTabular,
	})
}

func (c *statusCommand) Init(args []string) error {
	arg, err := cmd.ZeroOrOneArgs(args)
	if err != nil {
		return err
	}
	if arg == "" {
		c.all = true
		return nil
	}
	c.id, err = module.ParseDeploymentID(arg)
	return errors.Trace(err)
}

func (c *statusCommand) Run(ctx *cmd.Context) error {
	deployer, err := c.config.Deployer(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	if !c.all {
		st, err := deployer.Status(ctx, c.id)
		if err != nil {
			return errors.Trace(err)
		}
		return c.out.Write(ctx, newModuleStatusOutput(st))
	}
	all, err := deployer.StatusAll(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	return c.out.Write(ctx, newStatusOutput(all))
}

type instanceOutput struct {
	State      string            `yaml:"state" json:"state"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

type moduleStatusOutput struct {
	ID        string                    `yaml:"id" json:"id"`
	State     string                    `yaml:"state" json:"state"`
	Instances map[string]instanceOutput `yaml:"instances,omitempty" json:"instances,omitempty"`
}

type statusOutput struct {
	Modules []moduleStatusOutput `yaml:"modules" json:"modules"`
}

func newModuleStatusOutput(st status.ModuleStatus) moduleStatusOutput {
	out := moduleStatusOutput{
		ID:    st.ID.String(),
		State: st.State().String(),
	}
	if len(st.Instances) > 0 {
		out.Instances = make(map[string]instanceOutput, len(st.Instances))
		for name, inst := range st.Instances {
			out.Instances[name] = instanceOutput{
				State:      inst.State.String(),
				Attributes: inst.Attributes,
			}
		}
	}
	return out
}

func newStatusOutput(all map[module.DeploymentID]status.ModuleStatus) statusOutput {
	byID := make(map[string]status.ModuleStatus, len(all))
	ids := make([]string, 0, len(all))
	for id, st := range all {
		byID[id.String()] = st
		ids = append(ids, id.String())
	}
	naturalsort.Sort(ids)
	out := statusOutput{Modules: make([]moduleStatusOutput, 0, len(ids))}
	for _, id := range ids {
		out.Modules = append(out.Modules, newModuleStatusOutput(byID[id]))
	}
	return out
}

// now is patched in tests.
var now = time.Now

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 80
	table.Separator = "  "
	return table
}

func formatStatusTabular(writer io.Writer, value interface{}) error {
	switch v := value.(type) {
	case moduleStatusOutput:
		table := newTable()
		table.AddRow("MODULE", "STATE")
		table.AddRow(v.ID, v.State)
		if _, err := fmt.Fprintf(writer, "%s\n\n", table); err != nil {
			return errors.Trace(err)
		}
		table = newTable()
		table.AddRow("INSTANCE", "STATE", "POD IP", "RESTARTS", "STARTED")
		names := make([]string, 0, len(v.Instances))
		for name := range v.Instances {
			names = append(names, name)
		}
		naturalsort.Sort(names)
		for _, name := range names {
			inst := v.Instances[name]
			table.AddRow(name, inst.State,
				orDash(inst.Attributes["pod_ip"]),
				orDash(inst.Attributes["container_restart_count"]),
				started(inst.Attributes["pod_starttime"]),
			)
		}
		_, err := fmt.Fprintln(writer, table)
		return errors.Trace(err)
	case statusOutput:
		if len(v.Modules) == 0 {
			_, err := fmt.Fprintln(writer, "No modules deployed.")
			return errors.Trace(err)
		}
		table := newTable()
		table.AddRow("MODULE", "STATE", "INSTANCES")
		for _, m := range v.Modules {
			table.AddRow(m.ID, m.State, strconv.Itoa(len(m.Instances)))
		}
		_, err := fmt.Fprintln(writer, table)
		return errors.Trace(err)
	}
	return errors.Errorf("expected module status, got %T", value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func started(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "-"
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}
