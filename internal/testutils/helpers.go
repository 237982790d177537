package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared example descriptions for host tests. The grammar and the
// pushdown automaton describe the balanced-01 language, the machine
// decides { w#w | w over {0,1} }.
const (
	BalancedGrammar = `# Balanced strings of 0s and 1s.
S > 0S1S | e
`

	BalancedPushdown = `# Balanced strings of 0s and 1s, accepting by final state.
q0:e,e>z:q1
q1:0,e>x:q1
q1:1,x>e:q1
q1:e,z>e:q2
q2
`

	EqualHalvesMachine = `# Decides { w#w | w over {0,1} }.
q1:0>x,r:q2
q1:1>x,r:q3
q1:#>r:q8
q2:0,1>r:q2
q2:#>r:q4
q3:0,1>r:q3
q3:#>r:q5
q4:x>r:q4
q4:0>x,l:q6
q5:x>r:q5
q5:1>x,l:q6
q6:x>l:q6
q6:#>l:q7
q7:0,1>l:q7
q7:x>r:q1
q8:x>r:q8
q8:.>r:accept
`

	FullSuite = `cfg:
  in_language: ["", "01", "001011"]
  not_in_language: ["0110", "10", "0", "1"]
npda:
  in_language: ["", "01", "001011"]
  not_in_language: ["0110", "10", "0", "1"]
tm:
  in_language: ["#", "11#11", "101#101", "000100#000100"]
  not_in_language: ["1", "01", "1#0", "01#11", "0000#1111"]
`
)

// WriteSystem creates a temporary system directory holding the given
// description files. It fails the test immediately on error.
func WriteSystem(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err, "Failed to write fixture %s", name)
	}
	return dir
}
