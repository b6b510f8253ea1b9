// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider_test

import (
	"time"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
	core "k8s.io/api/core/v1"
	meta "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/juju/moduledeployer/caas/kubernetes/provider"
	"github.com/juju/moduledeployer/core/status"
)

type instanceSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&instanceSuite{})

func runningPod(ready bool, restarts int32, terminated bool) *core.Pod {
	cs := core.ContainerStatus{
		Name:         "spring-module-launcher",
		Ready:        ready,
		RestartCount: restarts,
	}
	if terminated {
		cs.LastTerminationState.Terminated = &core.ContainerStateTerminated{ExitCode: 1}
	}
	return &core.Pod{
		ObjectMeta: meta.ObjectMeta{Name: "pod-1"},
		Status: core.PodStatus{
			Phase:             core.PodRunning,
			ContainerStatuses: []core.ContainerStatus{cs},
		},
	}
}

func (s *instanceSuite) TestPodStates(c *gc.C) {
	deleted := runningPod(true, 0, false)
	deleted.DeletionTimestamp = &meta.Time{Time: time.Now()}

	for i, t := range []struct {
		about string
		pod   *core.Pod
		state status.State
	}{{
		about: "nil pod",
		state: status.Unknown,
	}, {
		about: "empty status",
		pod:   &core.Pod{ObjectMeta: meta.ObjectMeta{Name: "pod-1"}},
		state: status.Unknown,
	}, {
		about: "being deleted",
		pod:   deleted,
		state: status.Undeployed,
	}, {
		about: "pending",
		pod:   &core.Pod{Status: core.PodStatus{Phase: core.PodPending}},
		state: status.Deploying,
	}, {
		about: "failed",
		pod:   &core.Pod{Status: core.PodStatus{Phase: core.PodFailed}},
		state: status.Failed,
	}, {
		about: "succeeded",
		pod:   &core.Pod{Status: core.PodStatus{Phase: core.PodSucceeded}},
		state: status.Undeployed,
	}, {
		about: "unknown phase",
		pod:   &core.Pod{Status: core.PodStatus{Phase: core.PodUnknown}},
		state: status.Unknown,
	}, {
		about: "running without container status",
		pod:   &core.Pod{Status: core.PodStatus{Phase: core.PodRunning}},
		state: status.Deploying,
	}, {
		about: "running and ready",
		pod:   runningPod(true, 0, false),
		state: status.Deployed,
	}, {
		about: "running not ready",
		pod:   runningPod(false, 1, true),
		state: status.Deploying,
	}, {
		about: "crash looping",
		pod:   runningPod(false, 4, true),
		state: status.Failed,
	}, {
		about: "many restarts without termination",
		pod:   runningPod(false, 4, false),
		state: status.Deploying,
	}} {
		c.Logf("test %d: %s", i, t.about)
		c.Check(provider.InstanceStatus(t.pod, 3).State, gc.Equals, t.state)
	}
}

func (s *instanceSuite) TestAttributes(c *gc.C) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	pod := runningPod(true, 2, false)
	pod.Status.PodIP = "10.1.1.1"
	pod.Status.HostIP = "192.168.0.1"
	pod.Status.StartTime = &meta.Time{Time: start}

	inst := provider.InstanceStatus(pod, 3)
	c.Assert(inst.ID, gc.Equals, "pod-1")
	c.Assert(inst.Attributes, jc.DeepEquals, map[string]string{
		"pod_name":                "pod-1",
		"phase":                   "Running",
		"pod_ip":                  "10.1.1.1",
		"host_ip":                 "192.168.0.1",
		"pod_starttime":           "2026-01-02T03:04:05Z",
		"container_restart_count": "2",
	})
}

func (s *instanceSuite) TestNilPodID(c *gc.C) {
	inst := provider.InstanceStatus(nil, 3)
	c.Assert(inst.ID, gc.Equals, "N/A")
	c.Assert(inst.Attributes, gc.IsNil)
}
