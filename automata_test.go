package automata_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/testutils"
)

// loopingMachine bounces the head between two cells forever on empty
// input, so queries against it only return through a deadline.
const loopingMachine = `q0:.>x,r:q1
q1:.>x,l:q0
q0:x>r:q1
q1:x>l:q0
q2:x>r:accept
`

func TestOpen(t *testing.T) {
	t.Run("loads every system present", func(t *testing.T) {
		dir := testutils.WriteSystem(t, map[string]string{
			automata.GrammarFile:  testutils.BalancedGrammar,
			automata.PushdownFile: testutils.BalancedPushdown,
			automata.MachineFile:  testutils.EqualHalvesMachine,
			automata.SuiteFile:    testutils.FullSuite,
		})

		wb, err := automata.Open(dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Base(dir), wb.Name())
		assert.Equal(t, []automata.Kind{automata.KindGrammar, automata.KindPushdown, automata.KindMachine}, wb.Kinds())
		assert.NotNil(t, wb.Grammar())
		assert.NotNil(t, wb.Pushdown())
		assert.NotNil(t, wb.Machine())

		for _, kind := range wb.Kinds() {
			suite, ok := wb.Suite(kind)
			require.True(t, ok, "suite for %s", kind)
			assert.NoError(t, suite.Validate())
		}
	})

	t.Run("partial directory", func(t *testing.T) {
		dir := testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
		})

		wb, err := automata.Open(dir)
		require.NoError(t, err)

		assert.Equal(t, []automata.Kind{automata.KindPushdown}, wb.Kinds())
		assert.Nil(t, wb.Grammar())
		assert.Nil(t, wb.Machine())

		ctx := context.Background()
		_, err = wb.Derive(ctx, "01")
		assert.ErrorIs(t, err, automata.ErrNotLoaded)
		_, err = wb.Run(ctx, "#")
		assert.ErrorIs(t, err, automata.ErrNotLoaded)
		_, err = wb.Accepts(ctx, automata.KindMachine, "#")
		assert.ErrorIs(t, err, automata.ErrNotLoaded)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := automata.Open(t.TempDir())
		assert.ErrorContains(t, err, "no system description")
	})

	t.Run("malformed description is fatal", func(t *testing.T) {
		for file, content := range map[string]string{
			automata.GrammarFile:  "S 0S1S\n",
			automata.PushdownFile: "q0:e,e>z:q1\n",
			automata.MachineFile:  "q0:.>x:accept\n",
		} {
			dir := testutils.WriteSystem(t, map[string]string{file: content})
			_, err := automata.Open(dir)
			assert.ErrorContains(t, err, file)
		}
	})

	t.Run("malformed suite is fatal", func(t *testing.T) {
		dir := testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
			automata.SuiteFile:    "npda: [not, a, suite\n",
		})
		_, err := automata.Open(dir)
		assert.ErrorContains(t, err, automata.SuiteFile)
	})

	t.Run("contradictory suite is fatal", func(t *testing.T) {
		dir := testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
			automata.SuiteFile:    "npda:\n  in_language: [\"01\"]\n  not_in_language: [\"01\"]\n",
		})
		_, err := automata.Open(dir)
		assert.ErrorContains(t, err, "both")
	})
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"cfg", "npda", "tm"} {
		kind, err := automata.ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, automata.Kind(s), kind)
	}

	_, err := automata.ParseKind("dfa")
	assert.ErrorContains(t, err, "unknown system kind")
}

func TestFingerprint(t *testing.T) {
	plain := testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile: "S>0S1S|e\n",
	})
	commented := testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile: "# same grammar, different file\n\n  S > 0S1S | e  \n",
	})
	other := testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile: "S > 0S1 | e\n",
	})

	a, err := automata.Open(plain)
	require.NoError(t, err)
	b, err := automata.Open(commented)
	require.NoError(t, err)
	c, err := automata.Open(other)
	require.NoError(t, err)

	assert.Len(t, a.Fingerprint(automata.KindGrammar), 64)
	assert.Equal(t, a.Fingerprint(automata.KindGrammar), b.Fingerprint(automata.KindGrammar))
	assert.NotEqual(t, a.Fingerprint(automata.KindGrammar), c.Fingerprint(automata.KindGrammar))
	assert.Empty(t, a.Fingerprint(automata.KindMachine))
}

func TestDerive(t *testing.T) {
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile: testutils.BalancedGrammar,
	}))
	require.NoError(t, err)

	ctx := context.Background()

	derivation, err := wb.Derive(ctx, "01")
	require.NoError(t, err)
	require.NotEmpty(t, derivation)
	assert.Equal(t, "S", derivation[0])
	assert.Equal(t, "01", derivation[len(derivation)-1])

	derivation, err = wb.Derive(ctx, "10")
	require.NoError(t, err)
	assert.Empty(t, derivation)
}

func TestAccepts(t *testing.T) {
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile:  testutils.BalancedGrammar,
		automata.PushdownFile: testutils.BalancedPushdown,
		automata.MachineFile:  testutils.EqualHalvesMachine,
	}))
	require.NoError(t, err)

	ctx := context.Background()

	cases := []struct {
		kind   automata.Kind
		input  string
		member bool
	}{
		{automata.KindGrammar, "", true},
		{automata.KindGrammar, "001011", true},
		{automata.KindGrammar, "0110", false},
		{automata.KindPushdown, "01", true},
		{automata.KindPushdown, "10", false},
		{automata.KindMachine, "#", true},
		{automata.KindMachine, "11#11", true},
		{automata.KindMachine, "01#11", false},
	}
	for _, tc := range cases {
		member, err := wb.Accepts(ctx, tc.kind, tc.input)
		require.NoError(t, err, "%s %q", tc.kind, tc.input)
		assert.Equal(t, tc.member, member, "%s %q", tc.kind, tc.input)
	}

	_, err = wb.Accepts(ctx, automata.Kind("dfa"), "01")
	assert.ErrorContains(t, err, "unknown system kind")
}

func TestTrace(t *testing.T) {
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.PushdownFile: testutils.BalancedPushdown,
	}))
	require.NoError(t, err)

	ctx := context.Background()

	path, ok, err := wb.Trace(ctx, "01")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, path)
	assert.Equal(t, "q0", path[0].State)
	assert.Equal(t, "01", path[0].Remaining)
	last := path[len(path)-1]
	assert.True(t, wb.Pushdown().IsAccept(last.State))
	assert.Empty(t, last.Remaining)

	path, ok, err = wb.Trace(ctx, "10")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, path)
}

func TestRun(t *testing.T) {
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.MachineFile: testutils.EqualHalvesMachine,
	}))
	require.NoError(t, err)

	ctx := context.Background()

	res, err := wb.Run(ctx, "11#11")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "xx#xx.", res.Tape)

	res, err = wb.Run(ctx, "1")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
}

func TestSelfTest(t *testing.T) {
	t.Run("every system passes its suite", func(t *testing.T) {
		wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
			automata.GrammarFile:  testutils.BalancedGrammar,
			automata.PushdownFile: testutils.BalancedPushdown,
			automata.MachineFile:  testutils.EqualHalvesMachine,
			automata.SuiteFile:    testutils.FullSuite,
		}))
		require.NoError(t, err)

		ctx := context.Background()
		for _, kind := range wb.Kinds() {
			report, err := wb.SelfTest(ctx, kind)
			require.NoError(t, err, "kind %s", kind)
			assert.True(t, report.OK(), "kind %s: %v", kind, report.Mismatches)

			suite, ok := wb.Suite(kind)
			require.True(t, ok)
			assert.Equal(t, suite.Size(), report.Checked)
		}
	})

	t.Run("mismatches are reported", func(t *testing.T) {
		wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
			automata.SuiteFile:    "npda:\n  in_language: [\"10\"]\n  not_in_language: [\"01\"]\n",
		}))
		require.NoError(t, err)

		report, err := wb.SelfTest(context.Background(), automata.KindPushdown)
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Equal(t, 2, report.Checked)
		assert.Len(t, report.Mismatches, 2)
	})

	t.Run("no suite for kind", func(t *testing.T) {
		wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
		}))
		require.NoError(t, err)

		_, err = wb.SelfTest(context.Background(), automata.KindPushdown)
		assert.ErrorIs(t, err, automata.ErrNoSuite)
	})

	t.Run("suite without a system", func(t *testing.T) {
		wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
			automata.SuiteFile:    "tm:\n  in_language: [\"#\"]\n",
		}))
		require.NoError(t, err)

		_, err = wb.SelfTest(context.Background(), automata.KindMachine)
		assert.ErrorIs(t, err, automata.ErrNotLoaded)
	})
}

func TestQueryTimeout(t *testing.T) {
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.MachineFile: loopingMachine,
	}), automata.WithQueryTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = wb.Run(context.Background(), "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueryCancellation(t *testing.T) {
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.MachineFile: loopingMachine,
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = wb.Accepts(ctx, automata.KindMachine, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHooks(t *testing.T) {
	var events []automata.QueryEvent
	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.PushdownFile: testutils.BalancedPushdown,
		automata.SuiteFile:    "npda:\n  in_language: [\"01\"]\n  not_in_language: [\"10\"]\n",
	}), automata.WithHooks(automata.Hooks{
		OnQuery: func(ev automata.QueryEvent) { events = append(events, ev) },
	}))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = wb.Accepts(ctx, automata.KindPushdown, "0011")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, automata.KindPushdown, events[0].Kind)
	assert.Equal(t, "0011", events[0].Input)
	assert.True(t, events[0].Member)
	assert.NoError(t, events[0].Err)

	report, err := wb.SelfTest(ctx, automata.KindPushdown)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Len(t, events, 3)
}

func TestWithVariableLimit(t *testing.T) {
	dir := testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile: testutils.BalancedGrammar,
	})

	ctx := context.Background()

	tight, err := automata.Open(dir, automata.WithVariableLimit(1))
	require.NoError(t, err)
	member, err := tight.Accepts(ctx, automata.KindGrammar, "01")
	require.NoError(t, err)
	assert.False(t, member)

	wide, err := automata.Open(dir)
	require.NoError(t, err)
	member, err = wide.Accepts(ctx, automata.KindGrammar, "01")
	require.NoError(t, err)
	assert.True(t, member)
}
