package capture

import "context"

// Driver is the hardware boundary. Implementations open a control session
// against a physical camera head; this tool never talks to hardware itself,
// it only plans the assignments a driver will consume.
type Driver interface {
	// Open establishes a session with the camera named by the assignment.
	// The assignment's control settings are expected to be applied before
	// Open returns.
	Open(ctx context.Context, a Assignment) (Session, error)
}

// Session is an open camera connection.
type Session interface {
	// Serial reports which camera the session is bound to.
	Serial() string

	Close() error
}

// OpenAll opens a session for every assignment in the plan. On any failure
// the sessions opened so far are closed and the error is returned, so the
// caller never holds a partially opened rig.
func OpenAll(ctx context.Context, drv Driver, plan []Assignment) ([]Session, error) {
	sessions := make([]Session, 0, len(plan))
	for _, a := range plan {
		s, err := drv.Open(ctx, a)
		if err != nil {
			for _, open := range sessions {
				open.Close()
			}
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
