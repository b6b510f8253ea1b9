// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package module_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/moduledeployer/core/module"
)

type coordinatesSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&coordinatesSuite{})

func (s *coordinatesSuite) TestString(c *gc.C) {
	for _, t := range []struct {
		coords module.Coordinates
		want   string
	}{{
		coords: module.Coordinates{GroupID: "org.example", ArtifactID: "http-source", Version: "1.0.0"},
		want:   "org.example:http-source:1.0.0",
	}, {
		coords: module.Coordinates{GroupID: "org.example", ArtifactID: "http-source", Extension: "jar", Version: "1.0.0.BUILD-SNAPSHOT"},
		want:   "org.example:http-source:jar:1.0.0.BUILD-SNAPSHOT",
	}, {
		coords: module.Coordinates{GroupID: "org.example", ArtifactID: "log-sink", Extension: "jar", Classifier: "exec", Version: "2"},
		want:   "org.example:log-sink:jar:exec:2",
	}} {
		c.Check(t.coords.String(), gc.Equals, t.want)
		parsed, err := module.ParseCoordinates(t.want)
		c.Check(err, jc.ErrorIsNil)
		c.Check(parsed, gc.Equals, t.coords)
	}
}

func (s *coordinatesSuite) TestParseInvalid(c *gc.C) {
	for _, in := range []string{"", "a:b", "a:b:c:d:e:f", "a::1", ":b:1"} {
		_, err := module.ParseCoordinates(in)
		c.Check(err, jc.Satisfies, errors.IsNotValid, gc.Commentf("input %q", in))
	}
}

type deploymentIDSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&deploymentIDSuite{})

func (s *deploymentIDSuite) TestFromDefinition(c *gc.C) {
	id := module.IDFromDefinition(module.Definition{Name: "foobar", Group: "ticktock", Label: "http"})
	c.Assert(id, gc.Equals, module.DeploymentID{Group: "ticktock", Label: "http"})
	c.Assert(id.String(), gc.Equals, "ticktock.http")
}

func (s *deploymentIDSuite) TestLabelDefaultsToName(c *gc.C) {
	id := module.IDFromDefinition(module.Definition{Name: "log", Group: "ticktock"})
	c.Assert(id.String(), gc.Equals, "ticktock.log")
}

func (s *deploymentIDSuite) TestParse(c *gc.C) {
	id, err := module.ParseDeploymentID("deployment-test.0.http")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(id, gc.Equals, module.DeploymentID{Group: "deployment-test.0", Label: "http"})

	for _, in := range []string{"nodot", ".http", "group."} {
		_, err := module.ParseDeploymentID(in)
		c.Check(err, jc.Satisfies, errors.IsNotValid, gc.Commentf("input %q", in))
	}
}

type requestSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&requestSuite{})

var testCoordinates = module.Coordinates{
	GroupID:    "org.springframework.cloud.stream.module",
	ArtifactID: "http-source",
	Extension:  "jar",
	Version:    "1.0.0.BUILD-SNAPSHOT",
}

func (s *requestSuite) TestDefaultCount(c *gc.C) {
	req, err := module.NewDeploymentRequest(module.Definition{Name: "http", Group: "g"}, testCoordinates, nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(req.Count, gc.Equals, 1)
	c.Assert(req.ID().String(), gc.Equals, "g.http")
}

func (s *requestSuite) TestCountFromProperties(c *gc.C) {
	req, err := module.NewDeploymentRequest(
		module.Definition{Name: "http", Group: "g"}, testCoordinates, map[string]string{"count": "3"})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(req.Count, gc.Equals, 3)
}

func (s *requestSuite) TestBadCount(c *gc.C) {
	_, err := module.NewDeploymentRequest(
		module.Definition{Name: "http", Group: "g"}, testCoordinates, map[string]string{"count": "many"})
	c.Assert(err, jc.Satisfies, errors.IsNotValid)

	_, err = module.NewDeploymentRequest(
		module.Definition{Name: "http", Group: "g"}, testCoordinates, map[string]string{"count": "-1"})
	c.Assert(err, gc.ErrorMatches, `negative count -1 not valid`)
}

func (s *requestSuite) TestValidate(c *gc.C) {
	req := module.DeploymentRequest{
		Definition:  module.Definition{Name: "http"},
		Coordinates: testCoordinates,
		Count:       1,
	}
	c.Assert(req.Validate(), gc.ErrorMatches, `deployment id ".http" with empty group not valid`)

	req.Definition.Group = "g"
	req.Coordinates.Version = ""
	c.Assert(req.Validate(), gc.ErrorMatches, `module "g.http": empty version not valid`)
}
