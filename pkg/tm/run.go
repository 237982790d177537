package tm

// stepOutcome is the three-way result of attempting one step. Rejection
// is not a stored state: it is the absence of an applicable transition.
type stepOutcome int8

const (
	stepContinue stepOutcome = iota
	stepAccept
	stepReject
)

// Result is the outcome of one simulation: the verdict, the number of
// transitions applied, and the final tape contents.
type Result struct {
	Accepted bool
	Steps    int
	Tape     string
}

// Accepts reports whether the machine halts in the accept state on
// input.
//
// A machine that never halts on the given input makes this call run
// forever. That mirrors real Turing machine semantics; callers needing
// bounded time must wrap the call in their own timeout.
func (m *Machine) Accepts(input string) bool {
	return m.Run(input).Accepted
}

// Run simulates the machine on input, starting in the start state with
// the head on cell 0, and returns the full result. The input string
// becomes the initial tape verbatim.
func (m *Machine) Run(input string) Result {
	t := newTape(input)
	state := m.start
	head := 0
	steps := 0

	for {
		next, nextHead, outcome := m.stepOnce(t, state, head)
		switch outcome {
		case stepAccept:
			return Result{Accepted: true, Steps: steps, Tape: t.String()}
		case stepReject:
			return Result{Accepted: false, Steps: steps, Tape: t.String()}
		}
		state, head = next, nextHead
		steps++
	}
}

func (m *Machine) stepOnce(t *tape, state string, head int) (string, int, stepOutcome) {
	if state == AcceptState {
		return state, head, stepAccept
	}

	tr, ok := m.step[stepKey{state: state, read: t.read(head)}]
	if !ok {
		return state, head, stepReject
	}

	t.write(head, tr.Write)
	if tr.Move == Right {
		head++
	} else {
		head--
		if head < 0 {
			head = 0
		}
	}
	return tr.To, head, stepContinue
}

// tape is a right-infinite sequence of cells. Cells beyond the written
// extent read as blank and are materialized on first write.
type tape struct {
	cells []byte
}

func newTape(input string) *tape {
	return &tape{cells: []byte(input)}
}

func (t *tape) read(head int) byte {
	if head >= len(t.cells) {
		return Blank
	}
	return t.cells[head]
}

func (t *tape) write(head int, c byte) {
	for head >= len(t.cells) {
		t.cells = append(t.cells, Blank)
	}
	t.cells[head] = c
}

func (t *tape) String() string { return string(t.cells) }
