// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("moduledeployer.cmd")

// FlagAdder adds global flags to the flag set of a SuperCommand.
type FlagAdder interface {
	AddFlags(f *gnuflag.FlagSet)
}

// SuperCommandParams provides a way to have default parameter to the
// NewSuperCommand call.
type SuperCommandParams struct {
	// Name is the binary name.
	Name    string
	Purpose string
	Doc     string

	// GlobalFlags are added to the super command flag set.
	GlobalFlags FlagAdder

	// LoggingConfigEnvKey names the environment variable holding the
	// default logging configuration.
	LoggingConfigEnvKey string
}

// SuperCommand is a Command that selects a subcommand and assumes its
// properties; any command line arguments that were not used in selecting
// the subcommand are passed down to it.
type SuperCommand struct {
	CommandBase

	Name    string
	Purpose string
	Doc     string

	globalFlags   FlagAdder
	loggingEnvKey string
	loggingConfig string
	debug         bool

	subcmds map[string]Command
	subcmd  Command
	flags   *gnuflag.FlagSet
	args    []string
}

// NewSuperCommand creates and initializes a new SuperCommand.
func NewSuperCommand(params SuperCommandParams) *SuperCommand {
	return &SuperCommand{
		Name:          params.Name,
		Purpose:       params.Purpose,
		Doc:           params.Doc,
		globalFlags:   params.GlobalFlags,
		loggingEnvKey: params.LoggingConfigEnvKey,
		subcmds:       make(map[string]Command),
	}
}

// Register makes a subcommand available for use on the command line.
func (c *SuperCommand) Register(subcmd Command) {
	name := subcmd.Info().Name
	if _, found := c.subcmds[name]; found {
		panic(fmt.Sprintf("command already registered: %q", name))
	}
	c.subcmds[name] = subcmd
}

// Info returns a description of the currently selected subcommand, or of
// the SuperCommand itself if no subcommand has been specified.
func (c *SuperCommand) Info() *Info {
	if c.subcmd != nil {
		info := *c.subcmd.Info()
		info.Name = fmt.Sprintf("%s %s", c.Name, info.Name)
		return &info
	}
	doc := c.Doc
	if len(c.subcmds) > 0 {
		doc = strings.TrimSpace(doc + "\n\n" + c.describeCommands())
	}
	return &Info{
		Name:    c.Name,
		Args:    "<command> ...",
		Purpose: c.Purpose,
		Doc:     doc,
	}
}

func (c *SuperCommand) describeCommands() string {
	names := make([]string, 0, len(c.subcmds))
	width := 0
	for name := range c.subcmds {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)
	lines := []string{"commands:"}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("    %-*s - %s", width, name, c.subcmds[name].Info().Purpose))
	}
	return strings.Join(lines, "\n")
}

// AllowInterspersedFlags stops flag parsing at the subcommand name.
func (c *SuperCommand) AllowInterspersedFlags() bool {
	return false
}

// SetFlags adds the options that apply to all commands.
func (c *SuperCommand) SetFlags(f *gnuflag.FlagSet) {
	var defaultLogging string
	if c.loggingEnvKey != "" {
		defaultLogging = os.Getenv(c.loggingEnvKey)
	}
	f.StringVar(&c.loggingConfig, "logging-config", defaultLogging, "specify log levels for modules")
	f.BoolVar(&c.debug, "debug", false, "equivalent to --logging-config=<root>=DEBUG")
	if c.globalFlags != nil {
		c.globalFlags.AddFlags(f)
	}
	c.flags = f
}

// Init initializes the command for running.
func (c *SuperCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no command specified")
	}
	found, ok := c.subcmds[args[0]]
	if !ok {
		return errors.Errorf("unrecognized command: %s %s", c.Name, args[0])
	}
	c.subcmd = found
	c.args = args[1:]
	found.SetFlags(c.flags)
	if err := c.flags.Parse(true, c.args); err != nil {
		return err
	}
	return c.subcmd.Init(c.flags.Args())
}

// Run executes the subcommand that was selected in Init.
func (c *SuperCommand) Run(ctx *Context) error {
	if err := c.configureLogging(); err != nil {
		return errors.Trace(err)
	}
	if c.subcmd == nil {
		return errors.New("no command selected")
	}
	logger.Debugf("running %s %s", c.Name, c.subcmd.Info().Name)
	return c.subcmd.Run(ctx)
}

func (c *SuperCommand) configureLogging() error {
	config := c.loggingConfig
	if c.debug {
		config = "<root>=DEBUG"
	}
	if config == "" {
		return nil
	}
	if err := loggo.ConfigureLoggers(config); err != nil {
		return errors.Annotate(err, "configuring logging")
	}
	return nil
}

// PrintHelp writes the usage of the selected subcommand, or the command
// list.
func (c *SuperCommand) PrintHelp(w io.Writer) {
	if c.subcmd != nil {
		PrintUsage(w, &helpTarget{info: c.Info(), cmd: c.subcmd})
		return
	}
	PrintUsage(w, c)
}

// helpTarget presents a subcommand under the super command name.
type helpTarget struct {
	info *Info
	cmd  Command
}

func (h *helpTarget) Info() *Info                 { return h.info }
func (h *helpTarget) SetFlags(f *gnuflag.FlagSet) { h.cmd.SetFlags(f) }
func (h *helpTarget) Init(args []string) error    { return h.cmd.Init(args) }
func (h *helpTarget) Run(ctx *Context) error      { return h.cmd.Run(ctx) }
