package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/booking-directory/internal/repository"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "not_found", Outcome(repository.ErrVenueNotFound))
	// show creation with a missing artist is both; validation wins
	assert.Equal(t, "validation", Outcome(fmt.Errorf("%w: %w", repository.ErrValidation, repository.ErrArtistNotFound)))
	assert.Equal(t, "integrity", Outcome(fmt.Errorf("show 3: %w", repository.ErrIntegrity)))
	assert.Equal(t, "storage", Outcome(fmt.Errorf("commit: %w", repository.ErrStorage)))
	assert.Equal(t, "error", Outcome(errors.New("other")))
}

func TestObserveCountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(operations.WithLabelValues("metrics_test_op", "not_found"))
	Observe("metrics_test_op", time.Now(), repository.ErrArtistNotFound)
	after := testutil.ToFloat64(operations.WithLabelValues("metrics_test_op", "not_found"))
	assert.Equal(t, before+1, after)
}

func TestAnomaliesIgnoresZero(t *testing.T) {
	Anomalies("metrics_test_anomaly", 0)
	Anomalies("metrics_test_anomaly", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(anomalies.WithLabelValues("metrics_test_anomaly")))
}
