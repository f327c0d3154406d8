package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/algo"
)

func TestParseValues(t *testing.T) {
	cases := []struct {
		in   string
		want []int
		ok   bool
	}{
		{"5, 2, 8", []int{5, 2, 8}, true},
		{" 5,2 ,8 ", []int{5, 2, 8}, true},
		{"5,,2,", []int{5, 2}, true},
		{"-3, 0, 3", []int{-3, 0, 3}, true},
		{"", nil, false},
		{" , ", nil, false},
		{"5, two, 8", nil, false},
		{"5.5, 2", nil, false},
		{"1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17", nil, false},
	}
	for _, tc := range cases {
		got, err := ParseValues(tc.in)
		if !tc.ok {
			require.Error(t, err, "input %q", tc.in)
			assert.ErrorIs(t, err, algo.ErrValidation)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseValuesIdempotent(t *testing.T) {
	first, err := ParseValues("  9 , 3,, 4 ")
	require.NoError(t, err)
	second, err := ParseValues(FormatInts(first))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount(" 163 ")
	require.NoError(t, err)
	assert.Equal(t, 163, v)

	v, err = ParseAmount("0")
	require.NoError(t, err)
	assert.Zero(t, v)

	for _, bad := range []string{"", "-1", "1.5", "abc"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, algo.ErrValidation, "input %q", bad)
	}
}

func TestParseDenominations(t *testing.T) {
	d, err := ParseDenominations("")
	require.NoError(t, err)
	assert.Equal(t, algo.DefaultDenominations, d)

	d[0] = 1
	assert.Equal(t, 100, algo.DefaultDenominations[0], "default set aliased")

	d, err = ParseDenominations("4, 3, 1")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 1}, d)

	_, err = ParseDenominations("1, 3, 4")
	assert.ErrorIs(t, err, algo.ErrValidation)
	_, err = ParseDenominations("4, x")
	assert.ErrorIs(t, err, algo.ErrValidation)
}

func TestParseBoardSize(t *testing.T) {
	n, err := ParseBoardSize("8")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	for _, bad := range []string{"0", "-2", "13", "eight", ""} {
		_, err := ParseBoardSize(bad)
		var verr *algo.ValidationError
		require.ErrorAs(t, err, &verr, "input %q", bad)
		assert.Equal(t, "n", verr.Field)
	}
}

func TestParseCapacity(t *testing.T) {
	c, err := ParseCapacity("50")
	require.NoError(t, err)
	assert.Equal(t, 50, c)

	for _, bad := range []string{"0", "-5", "fifty"} {
		_, err := ParseCapacity(bad)
		assert.ErrorIs(t, err, algo.ErrValidation, "input %q", bad)
	}
}

func TestParseItems(t *testing.T) {
	items, err := ParseItems("10, 60\n20, 100\n\n30, 120\n")
	require.NoError(t, err)
	assert.Equal(t, []algo.Item{{Weight: 10, Value: 60}, {Weight: 20, Value: 100}, {Weight: 30, Value: 120}}, items)

	items, err = ParseItems("10,60;20,100")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	again, err := ParseItems(FormatItems(items))
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestParseItemsInvalidLine(t *testing.T) {
	for _, line := range []string{"10", "10, 60, 5", "a, 5", "0, 5", "5, -1"} {
		_, err := ParseItems("10, 60\n" + line)
		var verr *algo.ValidationError
		require.ErrorAs(t, err, &verr, "line %q", line)
		assert.Equal(t, "items", verr.Field)
		assert.Contains(t, verr.Reason, `Invalid line: "`+line+`"`)
	}

	_, err := ParseItems("\n\n")
	assert.ErrorIs(t, err, algo.ErrValidation)
}
