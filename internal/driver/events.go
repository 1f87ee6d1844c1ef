package driver

// Stage is the step a file is in while being checked.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageBind
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "loading"
	case StageParse:
		return "parsing"
	case StageBind:
		return "binding"
	}
	return ""
}

// Status is the state of a file within its stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress of one file. Events with an empty File describe
// the run as a whole.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	// Errors counts error diagnostics once the file is done.
	Errors int
}

// emit sends ev unless ch is nil. Sends block, so the consumer must drain
// the channel until CheckFiles returns.
func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
