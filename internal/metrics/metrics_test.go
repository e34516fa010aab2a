package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("tfidf", "retrieval"))
	RecordQuery("tfidf", "retrieval", 0.002)
	after := testutil.ToFloat64(QueriesTotal.WithLabelValues("tfidf", "retrieval"))
	assert.Equal(t, before+1, after)
}

func TestRecordBuild(t *testing.T) {
	RecordBuild("keyword", "success", 0.01, 42)
	assert.Equal(t, 42.0, testutil.ToFloat64(IndexEntries))

	before := testutil.ToFloat64(IndexBuildsTotal.WithLabelValues("keyword", "error"))
	RecordBuild("keyword", "error", 0.01, 7)
	assert.Equal(t, before+1, testutil.ToFloat64(IndexBuildsTotal.WithLabelValues("keyword", "error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(IndexEntries), "failed builds leave the gauge alone")
}
