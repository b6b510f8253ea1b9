// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/moduledeployer/caas/kubernetes/provider"
)

type argsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&argsSuite{})

func (s *argsSuite) TestBashEscape(c *gc.C) {
	for i, t := range []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"a-b_c.d,e:f/g@h", "a-b_c.d,e:f/g@h"},
		{"hello world", `hello\ world`},
		{"a=b", `a\=b`},
		{`$HOME`, `\$HOME`},
		{"it's", `it\'s`},
		{"x\ny", `x'\n'y`},
	} {
		c.Logf("test %d: %q", i, t.in)
		c.Check(provider.BashEscape(t.in), gc.Equals, t.out)
	}
}

func (s *argsSuite) TestCommandArgsSorted(c *gc.C) {
	args := provider.CommandArgs(map[string]string{
		"zeta":    "1",
		"alpha":   "two words",
		"mid.key": "x=y",
	})
	c.Assert(args, jc.DeepEquals, []string{
		"--alpha=two\\ words",
		"--mid.key=x\\=y",
		"--zeta=1",
	})
}

func (s *argsSuite) TestCommandArgsEmpty(c *gc.C) {
	c.Assert(provider.CommandArgs(nil), gc.HasLen, 0)
}
