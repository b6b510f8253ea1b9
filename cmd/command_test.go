// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"bytes"
	"path/filepath"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/moduledeployer/cmd"
)

type CmdSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&CmdSuite{})

func (s *CmdSuite) TestMainSuccess(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "hello"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(bufferString(ctx.Stdout), gc.Equals, "hello\n")
}

func (s *CmdSuite) TestMainError(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "error"})
	c.Assert(code, gc.Equals, 1)
	c.Assert(bufferString(ctx.Stderr), gc.Equals, "ERROR BAM!\n")
}

func (s *CmdSuite) TestMainSilentError(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "silent-error"})
	c.Assert(code, gc.Equals, 1)
	c.Assert(bufferString(ctx.Stderr), gc.Equals, "")
}

func (s *CmdSuite) TestMainBadFlag(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--unknown"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(bufferString(ctx.Stderr), gc.Matches, "ERROR flag provided but not defined: -*unknown\n")
}

func (s *CmdSuite) TestMainUnexpectedArgs(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"extra"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(bufferString(ctx.Stderr), gc.Equals, "ERROR unrecognized args: [\"extra\"]\n")
}

func (s *CmdSuite) TestMainEcho(c *gc.C) {
	ctx := dummyContext(c)
	ctx.Stdin = bytes.NewBufferString("hello world")
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "echo"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(bufferString(ctx.Stdout), gc.Equals, "hello world")
}

func (s *CmdSuite) TestHelp(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--help"})
	c.Assert(code, gc.Equals, 0)
	out := bufferString(ctx.Stdout)
	c.Assert(out, jc.HasPrefix, "Usage: verb [options] <something>\n\nSummary:\nverb the module\n\nOptions:\n")
	c.Assert(out, jc.Contains, "option-doc")
	c.Assert(out, jc.HasSuffix, "\nDetails:\nverb-doc\n")
}

func (s *CmdSuite) TestMinimalHelp(c *gc.C) {
	ctx := dummyContext(c)
	code := cmd.Main(&TestCommand{Name: "verb", Minimal: true}, ctx, []string{"--help"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(bufferString(ctx.Stdout), gc.Equals, "Usage: verb\n")
}

func (s *CmdSuite) TestZeroOrOneArgs(c *gc.C) {
	arg, err := cmd.ZeroOrOneArgs(nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(arg, gc.Equals, "")

	arg, err = cmd.ZeroOrOneArgs([]string{"one"})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(arg, gc.Equals, "one")

	_, err = cmd.ZeroOrOneArgs([]string{"one", "two"})
	c.Assert(err, gc.ErrorMatches, `unrecognized args: \["two"\]`)
}

func (s *CmdSuite) TestAbsPath(c *gc.C) {
	ctx := dummyContext(c)
	c.Assert(ctx.AbsPath("/abs"), gc.Equals, "/abs")
	c.Assert(ctx.AbsPath("rel"), gc.Equals, filepath.Join(ctx.Dir, "rel"))
}
