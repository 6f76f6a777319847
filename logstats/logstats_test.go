package logstats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"level":"info","msg":"Request","status":200}
{"level":"info","msg":"Request","status":503}
{"level":"info","msg":"Coupon applied","code":"SAVE10","percent":10}
{"level":"info","msg":"Coupon rejected","code":"OLD","reason":"expired"}
{"level":"info","msg":"Coupon not found","code":"NOPE"}
{"level":"info","msg":"Checkout finished","order_number":"WEB-1","persisted":true,"total":22100}
{"level":"error","msg":"Failed to save order","error":"db down"}
{"level":"info","msg":"Checkout finished","order_number":"WEB-2","persisted":false,"total":5000}
{"level":"error","msg":"Failed to dispatch order message","error":"smtp"}
{"level":"warn","msg":"Checkout already in flight"}
not json

`

func TestAnalyze(t *testing.T) {
	s := New()
	require.NoError(t, s.Analyze(strings.NewReader(sample)))

	assert.Equal(t, 11, s.Lines)
	assert.Equal(t, 1, s.Malformed)
	assert.Equal(t, map[string]int{"info": 7, "error": 2, "warn": 1}, s.Levels)
	assert.Equal(t, 2, s.Requests)
	assert.Equal(t, 1, s.ServerErrors)
	assert.Equal(t, 2, s.Checkouts)
	assert.Equal(t, 1, s.CheckoutsRecorded)
	assert.Equal(t, int64(27100), s.Revenue)
	assert.Equal(t, 1, s.DispatchFailures)
	assert.Equal(t, 1, s.BusyRejections)
	assert.Equal(t, map[string]int{"SAVE10": 1}, s.CouponsApplied)
	assert.Equal(t, map[string]int{"expired": 1, "not_found": 1}, s.CouponRejects)
	assert.Equal(t, 1, s.ErrorPatterns["Failed to save order"])
}

func TestReport(t *testing.T) {
	s := New()
	require.NoError(t, s.Analyze(strings.NewReader(sample)))

	var buf bytes.Buffer
	s.Report(&buf)
	out := buf.String()
	assert.Contains(t, out, "Not recorded: 1")
	assert.Contains(t, out, "SAVE10: 1")
	assert.Contains(t, out, "Failed to dispatch order message: 1 occurrences")
}

func TestTopOrdersByCountThenKey(t *testing.T) {
	got := top(map[string]int{"b": 2, "a": 2, "c": 5}, 2)
	assert.Equal(t, []keyCount{{"c", 5}, {"a", 2}}, got)
}
