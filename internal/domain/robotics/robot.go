package robotics

// Robot is driven by a Runner: one call per tick with a freshly minted
// allotment, spent through whatever handles the robot holds.
type Robot interface {
	ProcessTick(energy Energy)
}

// EventHandler is optionally implemented by a Robot to observe committed
// events. Handlers run outside the world lock and may call back into handles.
type EventHandler interface {
	HandleEvent(ev Event)
}

// Issuer is the part of a PrivateWorld a robot may see while it is built.
type Issuer interface {
	IssueBasicInterface() (BasicInterface, error)
	Remaining() int
	Dimensions() (rows, cols int)
}

type RobotBuilder func(Issuer) (Robot, error)

var _ Issuer = (*PrivateWorld)(nil)
