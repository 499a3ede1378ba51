package feature

// Frame states which relative transform a 3-D feature was built from.
// The interaction matrix of translation, rotation and pose kinds
// depends on this convention.
type Frame int

const (
	// CurrentFromDesired: the transform maps desired-frame coordinates
	// into the current camera frame (cMcd).
	CurrentFromDesired Frame = iota + 1
	// DesiredFromCurrent: the transform maps current-frame coordinates
	// into the desired camera frame (cdMc).
	DesiredFromCurrent
	// CurrentFromObject: the transform maps object-frame coordinates
	// into the current camera frame (cMo).
	CurrentFromObject
)

func (f Frame) String() string {
	switch f {
	case CurrentFromDesired:
		return "current-from-desired"
	case DesiredFromCurrent:
		return "desired-from-current"
	case CurrentFromObject:
		return "current-from-object"
	default:
		return "unknown"
	}
}
