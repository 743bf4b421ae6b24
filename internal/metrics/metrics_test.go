package metrics

import (
	"testing"
	"time"

	"github.com/avforge/configurator/pkg/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(EngineRunsTotal.WithLabelValues("validate", OutcomeOK))
	RecordRun("validate", OutcomeOK, 2*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(EngineRunsTotal.WithLabelValues("validate", OutcomeOK)))
}

func TestRecordFeedback(t *testing.T) {
	warn := FeedbackItemsTotal.WithLabelValues(string(models.FeedbackWarning))
	insight := FeedbackItemsTotal.WithLabelValues(string(models.FeedbackInsight))
	w0, i0 := testutil.ToFloat64(warn), testutil.ToFloat64(insight)

	RecordFeedback([]models.FeedbackItem{
		{Category: models.FeedbackWarning},
		{Category: models.FeedbackWarning},
		{Category: models.FeedbackInsight},
	})

	assert.Equal(t, w0+2, testutil.ToFloat64(warn))
	assert.Equal(t, i0+1, testutil.ToFloat64(insight))
}

func TestRecordRequest_StatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"}, {201, "2xx"}, {304, "3xx"}, {404, "4xx"}, {503, "5xx"},
	}
	for _, tt := range tests {
		c := HTTPRequestsTotal.WithLabelValues("GET", "/x", tt.want)
		before := testutil.ToFloat64(c)
		RecordRequest("GET", "/x", tt.code, time.Millisecond)
		assert.Equal(t, before+1, testutil.ToFloat64(c), "status %d", tt.code)
	}
}
