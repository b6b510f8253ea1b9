// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources

import (
	"context"

	"github.com/juju/errors"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"

	"github.com/juju/moduledeployer/caas/kubernetes/provider/constants"
)

// ReplicationController extends the k8s replication controller.
type ReplicationController struct {
	corev1.ReplicationController
}

// NewReplicationController creates a new replication controller resource.
func NewReplicationController(name string, namespace string, in *corev1.ReplicationController) *ReplicationController {
	if in == nil {
		in = &corev1.ReplicationController{}
	}
	in.SetName(name)
	in.SetNamespace(namespace)
	return &ReplicationController{*in}
}

// Clone returns a copy of the resource.
func (rc *ReplicationController) Clone() Resource {
	clone := *rc
	return &clone
}

// ID returns a comparable ID for the Resource
func (rc *ReplicationController) ID() ID {
	return ID{"ReplicationController", rc.Name, rc.Namespace}
}

// Apply merge patches the resource, creating it when missing. Lists such as
// the pod template containers are replaced, not merged.
func (rc *ReplicationController) Apply(ctx context.Context, client kubernetes.Interface) error {
	api := client.CoreV1().ReplicationControllers(rc.Namespace)
	data, err := runtime.Encode(unstructured.UnstructuredJSONScheme, &rc.ReplicationController)
	if err != nil {
		return errors.Trace(err)
	}
	res, err := api.Patch(ctx, rc.Name, types.MergePatchType, data, metav1.PatchOptions{
		FieldManager: constants.FieldManager,
	})
	if k8serrors.IsNotFound(err) {
		res, err = api.Create(ctx, &rc.ReplicationController, metav1.CreateOptions{
			FieldManager: constants.FieldManager,
		})
	}
	if k8serrors.IsConflict(err) {
		return errors.Annotatef(errConflict, "replication controller %q", rc.Name)
	}
	if err != nil {
		return errors.Trace(err)
	}
	rc.ReplicationController = *res
	return nil
}

// Get refreshes the resource.
func (rc *ReplicationController) Get(ctx context.Context, client kubernetes.Interface) error {
	api := client.CoreV1().ReplicationControllers(rc.Namespace)
	res, err := api.Get(ctx, rc.Name, metav1.GetOptions{})
	if k8serrors.IsNotFound(err) {
		return errors.NewNotFound(err, "k8s")
	} else if err != nil {
		return errors.Trace(err)
	}
	rc.ReplicationController = *res
	return nil
}

// Delete removes the resource.
func (rc *ReplicationController) Delete(ctx context.Context, client kubernetes.Interface) error {
	api := client.CoreV1().ReplicationControllers(rc.Namespace)
	err := api.Delete(ctx, rc.Name, metav1.DeleteOptions{
		PropagationPolicy: constants.DefaultPropagationPolicy(),
	})
	if k8serrors.IsNotFound(err) {
		return nil
	}
	return errors.Trace(err)
}

// ListReplicationControllers returns the replication controllers matching
// the options.
func ListReplicationControllers(ctx context.Context, client kubernetes.Interface, namespace string, opts metav1.ListOptions) ([]ReplicationController, error) {
	api := client.CoreV1().ReplicationControllers(namespace)
	var items []ReplicationController
	for {
		res, err := api.List(ctx, opts)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, v := range res.Items {
			items = append(items, ReplicationController{v})
		}
		if res.RemainingItemCount == nil || *res.RemainingItemCount == 0 {
			break
		}
		opts.Continue = res.Continue
	}
	return items, nil
}
