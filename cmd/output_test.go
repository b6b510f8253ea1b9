// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/juju/gnuflag"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/moduledeployer/cmd"
)

// OutputCommand is a command that uses the output.go formatters.
type OutputCommand struct {
	cmd.CommandBase
	out   cmd.Output
	value interface{}
}

func (c *OutputCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "output",
		Args:    "<something>",
		Purpose: "I like to output",
		Doc:     "output",
	}
}

func (c *OutputCommand) SetFlags(f *gnuflag.FlagSet) {
	formatters := map[string]cmd.Formatter{
		"yaml": cmd.FormatYaml,
		"json": cmd.FormatJson,
		"smart": func(w io.Writer, value interface{}) error {
			_, err := fmt.Fprintf(w, "%v\n", value)
			return err
		},
	}
	c.out.AddFlags(f, "smart", formatters)
}

func (c *OutputCommand) Run(ctx *cmd.Context) error {
	return c.out.Write(ctx, c.value)
}

type OutputSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&OutputSuite{})

type outputValue struct {
	Name  string   `yaml:"name" json:"name"`
	Items []string `yaml:"items,omitempty" json:"items,omitempty"`
}

func (s *OutputSuite) TestFormats(c *gc.C) {
	value := outputValue{Name: "ticktock", Items: []string{"log", "time"}}
	for i, t := range []struct {
		format string
		output string
	}{
		{"smart", "{ticktock [log time]}\n"},
		{"yaml", "name: ticktock\nitems:\n    - log\n    - time\n"},
		{"json", `{"name":"ticktock","items":["log","time"]}` + "\n"},
	} {
		c.Logf("test %d: %s", i, t.format)
		ctx := dummyContext(c)
		code := cmd.Main(&OutputCommand{value: value}, ctx, []string{"--format", t.format})
		c.Check(code, gc.Equals, 0)
		c.Check(bufferString(ctx.Stdout), gc.Equals, t.output)
		c.Check(bufferString(ctx.Stderr), gc.Equals, "")
	}
}

func (s *OutputSuite) TestYamlNil(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&OutputCommand{}, ctx, []string{"--format", "yaml"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(bufferString(ctx.Stdout), gc.Equals, "")
}

func (s *OutputSuite) TestUnknownFormat(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&OutputCommand{}, ctx, []string{"--format", "xml"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(bufferString(ctx.Stderr), jc.Contains, `unknown format "xml"`)
}

func (s *OutputSuite) TestOutputFile(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&OutputCommand{value: "hello"}, ctx, []string{"-o", "out.txt"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(bufferString(ctx.Stdout), gc.Equals, "")
	data, err := os.ReadFile(filepath.Join(ctx.Dir, "out.txt"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(data), gc.Equals, "hello\n")
}
