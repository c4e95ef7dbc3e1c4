package solution_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/mini-maxit/wmc-batch/pkg/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAdd_PartitionsInOrder(t *testing.T) {
	report := solution.NewReport("run-1", time.Now())
	report.Add(solution.Result{FileName: "a.cnf", Status: solution.Success})
	report.Add(solution.Result{FileName: "b.cnf", Status: solution.Failure, Reason: solution.ReasonTimeout})
	report.Add(solution.Result{FileName: "c.cnf", Status: solution.Success})
	report.Add(solution.Result{FileName: "d.cnf", Status: solution.Failure, Reason: solution.ReasonNonZeroExit})

	assert.Equal(t, []string{"a.cnf", "c.cnf"}, report.Successes)
	assert.Equal(t, []string{"b.cnf", "d.cnf"}, report.Failures)
	assert.Equal(t, 4, report.Total())
	assert.Len(t, report.Results, 4)
}

func TestReportPrint(t *testing.T) {
	report := solution.NewReport("run-1", time.Now())
	report.Add(solution.Result{FileName: "a.cnf", Status: solution.Success})
	report.Add(solution.Result{FileName: "b.cnf", Status: solution.Failure})
	report.Add(solution.Result{FileName: "c.cnf", Status: solution.Success})

	var out bytes.Buffer
	require.NoError(t, report.Print(&out))
	assert.Equal(t, "\n2 successes\n\ta.cnf c.cnf\n\n1 failures\n\tb.cnf\n", out.String())
}

func TestReportPrint_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, solution.NewReport("run-1", time.Now()).Print(&out))
	assert.Equal(t, "\n0 successes\n\t\n\n0 failures\n\t\n", out.String())
}

func TestFailureReasonStatus(t *testing.T) {
	assert.Equal(t, solution.Success, solution.ReasonNone.Status())
	assert.Equal(t, solution.Failure, solution.ReasonNonZeroExit.Status())
	assert.Equal(t, solution.Failure, solution.ReasonTimeout.Status())
	assert.Equal(t, solution.Failure, solution.ReasonLaunchFailed.Status())
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   solution.Status
		expected string
		terminal bool
	}{
		{solution.Pending, "pending", false},
		{solution.Running, "running", false},
		{solution.Success, "success", true},
		{solution.Failure, "failure", true},
		{solution.Status(42), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}
