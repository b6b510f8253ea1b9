// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"context"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	core "k8s.io/api/core/v1"
	meta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/utils/ptr"

	"github.com/juju/moduledeployer/caas"
	"github.com/juju/moduledeployer/caas/kubernetes/provider/constants"
	"github.com/juju/moduledeployer/caas/kubernetes/provider/resources"
	"github.com/juju/moduledeployer/caas/kubernetes/provider/utils"
	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

var logger = loggo.GetLogger("moduledeployer.kubernetes.provider")

type kubernetesClient struct {
	client kubernetes.Interface

	// namespace is the k8s namespace to use when
	// creating k8s resources.
	namespace string

	config     *Config
	containers ContainerFactory
}

var _ caas.ModuleDeployer = (*kubernetesClient)(nil)

// NewK8sClientFunc defines a function which returns a k8s client based on the supplied config.
type NewK8sClientFunc func(c *rest.Config) (kubernetes.Interface, error)

// NewK8sDeployer returns a module deployer for the specified k8s cluster.
func NewK8sDeployer(cfg *Config, restCfg *rest.Config, newClient NewK8sClientFunc) (caas.ModuleDeployer, error) {
	containers, err := NewContainerFactory(cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}
	client, err := newClient(restCfg)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &kubernetesClient{
		client:     client,
		namespace:  cfg.Namespace(),
		config:     cfg,
		containers: containers,
	}, nil
}

// kubernetesName returns the object name of a deployment.
func kubernetesName(id module.DeploymentID) string {
	return strings.ReplaceAll(id.String(), ".", "-")
}

func validateName(id module.DeploymentID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", errors.Trace(err)
	}
	if strings.Contains(id.Label, ".") {
		return "", errors.NotValidf("label %q containing \".\"", id.Label)
	}
	if err := utils.ValidateLabelValues(id); err != nil {
		return "", errors.Trace(err)
	}
	name := kubernetesName(id)
	if msgs := validation.IsDNS1035Label(name); len(msgs) > 0 {
		return "", errors.NotValidf("object name %q: %s", name, strings.Join(msgs, "; "))
	}
	return name, nil
}

// checkNameOwner fails when the object name is already used by the
// replication controller of another module.
func (k *kubernetesClient) checkNameOwner(ctx context.Context, name string, id module.DeploymentID) error {
	existing := resources.NewReplicationController(name, k.namespace, nil)
	err := existing.Get(ctx, k.client)
	if errors.Is(err, errors.NotFound) {
		return nil
	} else if err != nil {
		return errors.Annotatef(err, "checking replication controller %q", name)
	}
	owner, err := utils.IDFromLabels(existing.GetLabels())
	if err != nil {
		return errors.AlreadyExistsf("unmanaged replication controller %q", name)
	}
	if owner != id {
		return errors.AlreadyExistsf("object name %q of module %q", name, owner)
	}
	return nil
}

// externalPort returns the port named by the definition parameters, and
// whether one was named at all.
func externalPort(def module.Definition, defaultPort int) (int, bool, error) {
	for _, key := range []string{constants.PortParameter, constants.ServerPortParameter} {
		v, ok := def.Parameter(key)
		if !ok {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return 0, false, errors.NotValidf("%s %q", key, v)
		}
		return port, true, nil
	}
	return defaultPort, false, nil
}

// Deploy is part of the ModuleDeployer interface.
func (k *kubernetesClient) Deploy(ctx context.Context, req module.DeploymentRequest) (module.DeploymentID, error) {
	if err := req.Validate(); err != nil {
		return module.DeploymentID{}, errors.Trace(err)
	}
	id := req.ID()
	name, err := validateName(id)
	if err != nil {
		return module.DeploymentID{}, errors.Trace(err)
	}
	port, exposed, err := externalPort(req.Definition, k.config.DefaultPort())
	if err != nil {
		return module.DeploymentID{}, errors.Annotatef(err, "module %q", id)
	}
	logger.Debugf("deploying module %s as %s/%s", id, k.namespace, name)

	if err := k.checkNameOwner(ctx, name, id); err != nil {
		return module.DeploymentID{}, errors.Trace(err)
	}

	// A module redeployed without a port loses its service.
	current := []resources.Resource{
		resources.NewService(name, k.namespace, nil),
		resources.NewReplicationController(name, k.namespace, nil),
	}
	rc := resources.NewReplicationController(name, k.namespace, k.replicationController(req, port))
	desired := []resources.Resource{rc}
	if exposed {
		desired = []resources.Resource{resources.NewService(name, k.namespace, k.service(id, port)), rc}
	}
	applier := resources.NewApplier()
	applier.ApplySet(current, desired)
	if err := applier.Run(ctx, k.client, false); err != nil {
		return module.DeploymentID{}, errors.Annotatef(err, "deploying module %q", id)
	}
	return id, nil
}

func (k *kubernetesClient) service(id module.DeploymentID, port int) *core.Service {
	return &core.Service{
		ObjectMeta: meta.ObjectMeta{
			Labels: utils.LabelsMerge(utils.LabelsForID(id), utils.LabelsForRole()),
		},
		Spec: core.ServiceSpec{
			Selector: utils.LabelsForID(id),
			Ports: []core.ServicePort{{
				Port:       int32(port),
				TargetPort: intstr.FromInt32(int32(port)),
				Protocol:   core.ProtocolTCP,
			}},
		},
	}
}

func (k *kubernetesClient) replicationController(req module.DeploymentRequest, port int) *core.ReplicationController {
	id := req.ID()
	podLabels := utils.LabelsMerge(utils.LabelsForID(id), utils.LabelsForRole())
	return &core.ReplicationController{
		ObjectMeta: meta.ObjectMeta{
			Labels: utils.LabelsMerge(podLabels, utils.LabelsForCoordinates(req.Coordinates)),
		},
		Spec: core.ReplicationControllerSpec{
			Replicas: ptr.To(int32(req.Count)),
			Selector: utils.LabelsForID(id),
			Template: &core.PodTemplateSpec{
				ObjectMeta: meta.ObjectMeta{Labels: podLabels},
				Spec:       k.podSpec(req, port),
			},
		},
	}
}

func (k *kubernetesClient) podSpec(req module.DeploymentRequest, port int) core.PodSpec {
	spec := core.PodSpec{
		Containers: []core.Container{k.container(req, port)},
	}
	if secret := k.config.ImagePullSecret(); secret != "" {
		spec.ImagePullSecrets = []core.LocalObjectReference{{Name: secret}}
	}
	return spec
}

// Undeploy is part of the ModuleDeployer interface.
func (k *kubernetesClient) Undeploy(ctx context.Context, id module.DeploymentID) error {
	if err := id.Validate(); err != nil {
		return errors.Trace(err)
	}
	name := kubernetesName(id)
	logger.Debugf("undeploying module %s", id)
	if err := resources.NewReplicationController(name, k.namespace, nil).Delete(ctx, k.client); err != nil {
		return errors.Annotatef(err, "deleting replication controller for module %q", id)
	}
	if err := resources.NewService(name, k.namespace, nil).Delete(ctx, k.client); err != nil {
		return errors.Annotatef(err, "deleting service for module %q", id)
	}
	return nil
}

// Status is part of the ModuleDeployer interface.
func (k *kubernetesClient) Status(ctx context.Context, id module.DeploymentID) (status.ModuleStatus, error) {
	if err := id.Validate(); err != nil {
		return status.ModuleStatus{}, errors.Trace(err)
	}
	logger.Debugf("querying status of module %s", id)
	return k.moduleStatus(ctx, id)
}

func (k *kubernetesClient) moduleStatus(ctx context.Context, id module.DeploymentID) (status.ModuleStatus, error) {
	pods, err := resources.ListPods(ctx, k.client, k.namespace, meta.ListOptions{
		LabelSelector: utils.LabelsToSelector(utils.LabelsForID(id)).String(),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return status.ModuleStatus{}, errors.Trace(ctxErr)
		}
		logger.Warningf("cannot list pods of module %s: %v", id, err)
		return status.NewModuleStatus(id, instanceStatus(nil, k.config.MaxRestarts())), nil
	}
	instances := make([]status.InstanceStatus, len(pods))
	for i := range pods {
		instances[i] = instanceStatus(&pods[i], k.config.MaxRestarts())
	}
	return status.NewModuleStatus(id, instances...), nil
}

// StatusAll is part of the ModuleDeployer interface.
func (k *kubernetesClient) StatusAll(ctx context.Context) (map[module.DeploymentID]status.ModuleStatus, error) {
	logger.Debugf("querying status of all modules")
	rcs, err := resources.ListReplicationControllers(ctx, k.client, k.namespace, meta.ListOptions{
		LabelSelector: utils.LabelsToSelector(utils.LabelsForRole()).String(),
	})
	if err != nil {
		return nil, errors.Annotate(err, "listing replication controllers")
	}
	result := make(map[module.DeploymentID]status.ModuleStatus, len(rcs))
	for _, rc := range rcs {
		id, err := utils.IDFromLabels(rc.Labels)
		if err != nil {
			logger.Debugf("skipping replication controller %s: %v", rc.Name, err)
			continue
		}
		st, err := k.moduleStatus(ctx, id)
		if err != nil {
			return nil, errors.Trace(err)
		}
		result[id] = st
	}
	return result, nil
}
