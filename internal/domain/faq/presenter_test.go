package faq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupByDepartment_MergesRawVariants(t *testing.T) {
	entries := []Entry{
		{ID: 1, Question: "q1", Answer: "a1", Department: "Genreal"},
		{ID: 2, Question: "q2", Answer: "a2", Department: "General "},
	}

	groups := GroupByDepartment(entries)
	require.Len(t, groups, 1)
	require.Equal(t, "General", groups[0].Department)
	require.Equal(t, []QA{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}}, groups[0].Items)
}

func TestGroupByDepartment_StableOrder(t *testing.T) {
	entries := []Entry{
		{ID: 1, Question: "q1", Answer: "a1", Department: "Billing"},
		{ID: 2, Question: "q2", Answer: "a2", Department: "Account"},
		{ID: 3, Question: "q3", Answer: "a3", Department: "Billing"},
		{ID: 4, Question: "q4", Answer: "a4", Department: ""},
	}

	first := GroupByDepartment(entries)
	require.Equal(t, []string{"Billing", "Account", "General"}, departments(first))
	require.Equal(t, []QA{{Question: "q1", Answer: "a1"}, {Question: "q3", Answer: "a3"}}, first[0].Items)

	// repeated calls over identical input must agree
	second := GroupByDepartment(entries)
	require.Equal(t, first, second)
}

func TestGroupResults_KeepsRankOrderWithinGroup(t *testing.T) {
	results := []Result{
		{ID: 3, Question: "q3", Answer: "a3", Department: "Support", Score: 0.9},
		{ID: 1, Question: "q1", Answer: "a1", Department: "Support", Score: 0.7},
		{ID: 2, Question: "q2", Answer: "a2", Department: "Account", Score: 0.5},
	}

	groups := GroupResults(results)
	require.Equal(t, []string{"Support", "Account"}, departments(groups))
	require.Equal(t, []QA{{Question: "q3", Answer: "a3"}, {Question: "q1", Answer: "a1"}}, groups[0].Items)
}

func departments(groups []Group) []string {
	out := make([]string, 0, len(groups))
	for _, group := range groups {
		out = append(out, group.Department)
	}
	return out
}
