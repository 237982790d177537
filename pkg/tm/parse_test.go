package tm_test

import (
	"testing"

	"github.com/ersincine/automata/pkg/tm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("read list shares one rule", func(t *testing.T) {
		m, err := tm.Parse([]string{
			"q0:0,1>r:q0",
			"q0:.>r:accept",
		})
		require.NoError(t, err)

		assert.Equal(t, []tm.Transition{
			{From: "q0", Read: '0', Write: '0', Move: tm.Right, To: "q0"},
			{From: "q0", Read: '1', Write: '1', Move: tm.Right, To: "q0"},
			{From: "q0", Read: '.', Write: '.', Move: tm.Right, To: "accept"},
		}, m.Transitions())
	})

	t.Run("explicit write applies to every read symbol", func(t *testing.T) {
		m, err := tm.Parse([]string{
			"q0:0,1>x,l:q1",
			"q1:.>r:accept",
		})
		require.NoError(t, err)

		assert.Equal(t, []tm.Transition{
			{From: "q0", Read: '0', Write: 'x', Move: tm.Left, To: "q1"},
			{From: "q0", Read: '1', Write: 'x', Move: tm.Left, To: "q1"},
			{From: "q1", Read: '.', Write: '.', Move: tm.Right, To: "accept"},
		}, m.Transitions())
	})

	t.Run("first line names the start state", func(t *testing.T) {
		m, err := tm.Parse([]string{
			"begin:.>r:accept",
			"other:.>l:begin",
		})
		require.NoError(t, err)
		assert.Equal(t, "begin", m.Start())
	})

	t.Run("malformed lines", func(t *testing.T) {
		cases := map[string][]string{
			"empty description":     {},
			"one colon":             {"q0:.>r"},
			"no arrow":              {"q0:.,r:accept"},
			"arrow outside colons":  {"q0:.,r:accept>x"},
			"bad direction":         {"q0:.>u:accept"},
			"double write":          {"q0:.>x,y,r:accept"},
			"multi-character read":  {"q0:ab>r:accept"},
			"empty read":            {"q0:>r:accept"},
			"multi-character write": {"q0:.>xy,r:accept"},
		}
		for name, lines := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := tm.Parse(lines)
				assert.Error(t, err)
			})
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("requires the blank symbol in the alphabet", func(t *testing.T) {
		_, err := tm.Parse([]string{"q0:0>r:accept"})
		assert.ErrorContains(t, err, "blank")
	})

	t.Run("requires the accept state", func(t *testing.T) {
		_, err := tm.Parse([]string{"q0:.>r:q1"})
		assert.ErrorContains(t, err, "accept")
	})

	t.Run("rejects nondeterminism with a descriptive failure", func(t *testing.T) {
		_, err := tm.Parse([]string{
			"q0:.>r:accept",
			"q0:.>l:q0",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deterministic")
	})

	t.Run("identical transitions are not a determinism violation", func(t *testing.T) {
		m, err := tm.Parse([]string{
			"q0:.>r:accept",
			"q0:.>r:accept",
		})
		require.NoError(t, err)
		assert.Len(t, m.Transitions(), 1)
	})

	t.Run("rejects an out-of-range direction", func(t *testing.T) {
		_, err := tm.New("q0", []tm.Transition{
			{From: "q0", Read: tm.Blank, Write: tm.Blank, Move: 0, To: "accept"},
		})
		assert.ErrorContains(t, err, "direction")
	})

	t.Run("start must appear in a transition", func(t *testing.T) {
		_, err := tm.New("elsewhere", []tm.Transition{
			{From: "q0", Read: tm.Blank, Write: tm.Blank, Move: tm.Right, To: "accept"},
		})
		assert.ErrorContains(t, err, "start state")
	})

	t.Run("infers states and alphabet", func(t *testing.T) {
		m, err := tm.Parse([]string{
			"q0:0>x,r:q1",
			"q1:.>l:accept",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"accept", "q0", "q1"}, m.States())
		assert.Equal(t, []byte{'.', '0', 'x'}, m.TapeAlphabet())
	})
}

func TestTransitionString(t *testing.T) {
	tr := tm.Transition{From: "q1", Read: '0', Write: 'x', Move: tm.Right, To: "q2"}
	assert.Equal(t, "q1:0>x,r:q2", tr.String())
	assert.Equal(t, "l", tm.Left.String())
	assert.Equal(t, "r", tm.Right.String())
}
