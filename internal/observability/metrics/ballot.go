// Package metrics holds the client's metric names and tagging conventions.
package metrics

import (
	"strconv"
	"time"

	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	obserrors "github.com/Vinothdevgit/voting-client/internal/observability/errors"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metric names.
const (
	MetricAPIRequest   = "api.request"
	MetricAPIDuration  = "api.duration"
	MetricLogin        = "auth.login"
	MetricVoteOutcome  = "vote.outcome"
	MetricResultsTotal = "results.total_votes"
)

// APICall captures one round trip to the election server.
type APICall struct {
	Op       string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPICall records a request counter and its latency.
func EmitAPICall(sink statsd.Sink, in APICall) {
	if sink == nil {
		return
	}

	tags := map[string]string{"op": in.Op, "result": ResultSuccess}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	if in.Err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(MetricAPIRequest, 1, tags)
	if in.Duration > 0 {
		sink.Timing(MetricAPIDuration, in.Duration, CloneTags(tags))
	}
}

// EmitLogin records a login attempt and, on success, the granted role.
func EmitLogin(sink statsd.Sink, role string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": ResultSuccess}
	if err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(err)
	} else if role != "" {
		tags["role"] = role
	}
	sink.Count(MetricLogin, 1, tags)
}

// EmitVoteOutcome records the outcome of a vote submission.
func EmitVoteOutcome(sink statsd.Sink, outcome election.Outcome) {
	if sink == nil {
		return
	}
	sink.Count(MetricVoteOutcome, 1, map[string]string{"outcome": outcome.String()})
}

// EmitResultsTotal records the total number of votes seen in a result set.
func EmitResultsTotal(sink statsd.Sink, total int64) {
	if sink == nil {
		return
	}
	sink.Gauge(MetricResultsTotal, float64(total), nil)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
