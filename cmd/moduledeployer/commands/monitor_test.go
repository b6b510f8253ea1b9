// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	jc "github.com/juju/testing/checkers"
	"github.com/prometheus/client_golang/prometheus"
	gc "gopkg.in/check.v1"
)

type monitorSuite struct {
	baseSuite
}

var _ = gc.Suite(&monitorSuite{})

type fakeReporter map[string]interface{}

func (r fakeReporter) Report() map[string]interface{} {
	return r
}

func (s *monitorSuite) newServer(c *gc.C) *httptest.Server {
	registry := prometheus.NewRegistry()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "moduledeployer_test_gauge",
		Help: "A gauge for testing.",
	})
	gauge.Set(3)
	registry.MustRegister(gauge)

	server := httptest.NewServer(newMonitorRouter(registry, fakeReporter{
		"modules":   map[string]string{"ticktock.log": "deployed"},
		"last-poll": "2026-10-14T12:00:00Z",
	}))
	s.AddCleanup(func(*gc.C) { server.Close() })
	return server
}

func (s *monitorSuite) TestMetrics(c *gc.C) {
	server := s.newServer(c)

	resp, err := http.Get(server.URL + "/metrics")
	c.Assert(err, jc.ErrorIsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, gc.Equals, http.StatusOK)
	body, err := io.ReadAll(resp.Body)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(body), jc.Contains, "moduledeployer_test_gauge 3\n")
}

func (s *monitorSuite) TestHealthz(c *gc.C) {
	server := s.newServer(c)

	resp, err := http.Get(server.URL + "/healthz")
	c.Assert(err, jc.ErrorIsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, gc.Equals, http.StatusOK)
	c.Assert(resp.Header.Get("Content-Type"), gc.Equals, "application/json")

	var report map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&report)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(report, jc.DeepEquals, map[string]interface{}{
		"modules":   map[string]interface{}{"ticktock.log": "deployed"},
		"last-poll": "2026-10-14T12:00:00Z",
	})
}

func (s *monitorSuite) TestMethodNotAllowed(c *gc.C) {
	server := s.newServer(c)

	resp, err := http.Post(server.URL+"/healthz", "application/json", nil)
	c.Assert(err, jc.ErrorIsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, gc.Equals, http.StatusMethodNotAllowed)
}

func (s *monitorSuite) TestNotFound(c *gc.C) {
	server := s.newServer(c)

	resp, err := http.Get(server.URL + "/debug")
	c.Assert(err, jc.ErrorIsNil)
	defer resp.Body.Close()
	c.Assert(resp.StatusCode, gc.Equals, http.StatusNotFound)
}

func (s *monitorSuite) TestInitErrors(c *gc.C) {
	defer s.setupMocks(c).Finish()

	ctx, code := s.run(c, "monitor", "--interval", "0s")
	c.Check(code, gc.Equals, 2)
	c.Check(stderr(ctx), gc.Equals, "ERROR interval 0s not valid\n")

	ctx, code = s.run(c, "monitor", "extra")
	c.Check(code, gc.Equals, 2)
	c.Check(stderr(ctx), gc.Equals, "ERROR unrecognized args: [\"extra\"]\n")
}
