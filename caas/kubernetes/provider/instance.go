// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"strconv"
	"time"

	core "k8s.io/api/core/v1"

	"github.com/juju/moduledeployer/core/status"
)

const (
	attrPodName       = "pod_name"
	attrPhase         = "phase"
	attrPodIP         = "pod_ip"
	attrHostIP        = "host_ip"
	attrPodStartTime  = "pod_starttime"
	attrRestartCount  = "container_restart_count"
	unknownInstanceID = "N/A"
)

// instanceStatus maps a module pod onto an instance status.
func instanceStatus(pod *core.Pod, maxRestarts int) status.InstanceStatus {
	if pod == nil {
		return status.InstanceStatus{ID: unknownInstanceID, State: status.Unknown}
	}
	inst := status.InstanceStatus{
		ID:         pod.Name,
		State:      podState(pod, maxRestarts),
		Attributes: podAttributes(pod),
	}
	if inst.ID == "" {
		inst.ID = unknownInstanceID
	}
	return inst
}

func podState(pod *core.Pod, maxRestarts int) status.State {
	if pod.DeletionTimestamp != nil {
		return status.Undeployed
	}
	switch pod.Status.Phase {
	case core.PodPending:
		return status.Deploying
	case core.PodFailed:
		return status.Failed
	case core.PodSucceeded:
		return status.Undeployed
	case core.PodRunning:
		if len(pod.Status.ContainerStatuses) == 0 {
			return status.Deploying
		}
		cs := pod.Status.ContainerStatuses[0]
		if cs.Ready {
			return status.Deployed
		}
		if int(cs.RestartCount) > maxRestarts && cs.LastTerminationState.Terminated != nil {
			return status.Failed
		}
		return status.Deploying
	}
	return status.Unknown
}

func podAttributes(pod *core.Pod) map[string]string {
	attrs := map[string]string{
		attrPodName: pod.Name,
		attrPhase:   string(pod.Status.Phase),
		attrPodIP:   pod.Status.PodIP,
		attrHostIP:  pod.Status.HostIP,
	}
	if pod.Status.StartTime != nil {
		attrs[attrPodStartTime] = pod.Status.StartTime.UTC().Format(time.RFC3339)
	}
	if len(pod.Status.ContainerStatuses) > 0 {
		attrs[attrRestartCount] = strconv.Itoa(int(pod.Status.ContainerStatuses[0].RestartCount))
	}
	return attrs
}
