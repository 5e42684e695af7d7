package eventbus

// PID (Process ID) is a unique reference to a running adapter actor.
type PID struct {
	ID string
}

func (pid *PID) String() string {
	if pid == nil {
		return "<nil>"
	}
	return pid.ID
}
