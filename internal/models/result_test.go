package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		total float64
		grade string
	}{
		{70, "A"},
		{69, "B"},
		{60, "B"},
		{59, "C"},
		{50, "C"},
		{49, "D"},
		{45, "D"},
		{44, "E"},
		{40, "E"},
		{39, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.grade, LetterGrade(tc.total), "total=%v", tc.total)
	}
}

func TestTotalTreatsUnsetAsZero(t *testing.T) {
	ca := 25.0
	exam := 50.0

	require.Zero(t, CourseResult{}.Total())
	require.Equal(t, 25.0, CourseResult{CAScore: &ca}.Total())
	require.Equal(t, 50.0, CourseResult{ExamScore: &exam}.Total())
	require.Equal(t, 75.0, CourseResult{CAScore: &ca, ExamScore: &exam}.Total())
}

func TestScoreBounds(t *testing.T) {
	require.True(t, ValidCAScore(30))
	require.False(t, ValidCAScore(31))
	require.False(t, ValidCAScore(-1))
	require.True(t, ValidExamScore(70))
	require.False(t, ValidExamScore(70.5))
}
