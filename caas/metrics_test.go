// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package caas

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/moduledeployer/caas/mocks"
	"github.com/juju/moduledeployer/core/module"
	"github.com/juju/moduledeployer/core/status"
)

type metricsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&metricsSuite{})

func (s *metricsSuite) TestInstrumentedDeployerCountsResults(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	deployer := mocks.NewMockModuleDeployer(ctrl)
	collector := NewMetricsCollector()
	instrumented := NewInstrumentedDeployer(deployer, collector)

	req := module.DeploymentRequest{
		Definition: module.Definition{Name: "http", Group: "g"},
		Count:      1,
	}
	deployer.EXPECT().Deploy(gomock.Any(), req).Return(waitID, nil)
	deployer.EXPECT().Undeploy(gomock.Any(), waitID).Return(errors.New("boom"))
	deployer.EXPECT().Status(gomock.Any(), waitID).Return(moduleIn(status.Deployed), nil)
	deployer.EXPECT().StatusAll(gomock.Any()).Return(map[module.DeploymentID]status.ModuleStatus{}, nil)

	id, err := instrumented.Deploy(context.Background(), req)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(id, gc.Equals, waitID)

	err = instrumented.Undeploy(context.Background(), waitID)
	c.Assert(err, gc.ErrorMatches, "boom")

	st, err := instrumented.Status(context.Background(), waitID)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(st.State(), gc.Equals, status.Deployed)

	all, err := instrumented.StatusAll(context.Background())
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(all, gc.HasLen, 0)

	c.Check(testutil.ToFloat64(collector.operations.WithLabelValues(opDeploy, "success")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.operations.WithLabelValues(opUndeploy, "error")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.operations.WithLabelValues(opUndeploy, "success")), gc.Equals, float64(0))
	c.Check(testutil.ToFloat64(collector.operations.WithLabelValues(opStatus, "success")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.operations.WithLabelValues(opStatusAll, "success")), gc.Equals, float64(1))
	c.Check(testutil.CollectAndCount(collector, "moduledeployer_operation_duration_seconds"), gc.Equals, 4)
}
