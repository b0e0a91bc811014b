package hr_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/hr"
)

func TestLeave_Decode(t *testing.T) {
	payload := `{
		"_id": "lv-1",
		"employeeId": 12,
		"employee": {"id": 12, "firstName": "Inês", "lastName": "Costa", "email": "ines@corp.pt"},
		"type": "annual",
		"status": "approved",
		"startDate": "2024-07-01",
		"endDate": "2024-07-05T00:00:00Z"
	}`

	var l hr.Leave
	require.NoError(t, json.Unmarshal([]byte(payload), &l))

	assert.Equal(t, "lv-1", l.RecordID())
	assert.Equal(t, "12", l.EmployeeID.String())
	require.NotNil(t, l.Employee)
	assert.Equal(t, "Inês Costa", l.Employee.FullName())
	assert.Equal(t, 5, l.Days())
	assert.Contains(t, hr.LeaveFields(l), "7/1/2024")
}

func TestSummarizeLeaves(t *testing.T) {
	leaves := []hr.Leave{
		{Status: hr.LeavePending},
		{Status: hr.LeaveApproved},
		{Status: hr.LeaveRejected},
		{Status: hr.LeavePending},
	}

	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-01-10","endDate":"2024-01-12"}`), &leaves[1]))
	leaves[1].Status = hr.LeaveApproved

	assert.Equal(t, hr.LeaveStats{Pending: 2, Approved: 1, Rejected: 1, TotalDays: 3}, hr.SummarizeLeaves(leaves))
}

func TestHeadcount(t *testing.T) {
	employees := []hr.Employee{
		{Department: "IT", Status: hr.EmployeeActive},
		{Department: "IT", Status: hr.EmployeeOnLeave},
		{Department: "HR", Status: hr.EmployeeActive},
		{Department: "HR", Status: hr.EmployeeTerminated},
		{Status: hr.EmployeeActive},
	}

	assert.Equal(t, map[string]int{"IT": 2, "HR": 1, "Unassigned": 1}, hr.Headcount(employees))
}

func TestEmployeeFields(t *testing.T) {
	e := hr.Employee{FirstName: "Rui", LastName: "Sousa", Email: "rui@corp.pt", Department: "Operations", Position: "Lead"}

	assert.Equal(t, []string{"Rui Sousa", "rui@corp.pt", "Operations", "Lead", ""}, hr.EmployeeFields(e))
}

func TestLeave_DaysInvalidRange(t *testing.T) {
	var l hr.Leave
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-02-10","endDate":"2024-02-01"}`), &l))

	assert.Zero(t, l.Days())
}
