package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition(t *testing.T) {
	before := testutil.ToFloat64(Transitions.WithLabelValues("test-view", "DIRECT", OutcomeOK))

	ObserveTransition("test-view", "DIRECT", OutcomeOK, 2*time.Millisecond, 7)

	assert.Equal(t, before+1, testutil.ToFloat64(Transitions.WithLabelValues("test-view", "DIRECT", OutcomeOK)))
	assert.Equal(t, 7.0, testutil.ToFloat64(VisibleNodes.WithLabelValues("test-view")))
}

func TestObserveRejection(t *testing.T) {
	before := testutil.ToFloat64(Transitions.WithLabelValues("test-view", "NEIGHBOURS", OutcomeRejected))

	ObserveRejection("test-view", "NEIGHBOURS")

	assert.Equal(t, before+1, testutil.ToFloat64(Transitions.WithLabelValues("test-view", "NEIGHBOURS", OutcomeRejected)))
}
