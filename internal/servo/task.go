package servo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/davrolle/vservo/internal/feature"
	"github.com/davrolle/vservo/internal/geom"
	"github.com/davrolle/vservo/internal/pinv"
)

// Mode selects where the camera sits and which space the command lives
// in.
type Mode int

const (
	// EyeInHandCamera: camera mounted on the effector, the command is a
	// camera-frame velocity twist.
	EyeInHandCamera Mode = iota + 1
	// EyeInHandJoint: camera mounted on the effector, the command is a
	// joint velocity; the camera twist and robot jacobian are folded
	// into the task jacobian before inversion.
	EyeInHandJoint
	// EyeToHandCamera: fixed camera observing the robot; camera-frame
	// command with the sign of the law flipped, since feature motion
	// opposes robot motion.
	EyeToHandCamera
	// EyeToHandJoint: fixed camera, joint-space command, flipped sign.
	EyeToHandJoint
)

func (m Mode) String() string {
	switch m {
	case EyeInHandCamera:
		return "eye-in-hand-camera"
	case EyeInHandJoint:
		return "eye-in-hand-joint"
	case EyeToHandCamera:
		return "eye-to-hand-camera"
	case EyeToHandJoint:
		return "eye-to-hand-joint"
	default:
		return "unknown"
	}
}

// JointSpace reports whether the mode commands joint velocities rather
// than a camera twist.
func (m Mode) JointSpace() bool { return m == EyeInHandJoint || m == EyeToHandJoint }

func (m Mode) eyeToHand() bool { return m == EyeToHandCamera || m == EyeToHandJoint }

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "eye-in-hand-camera":
		return EyeInHandCamera, nil
	case "eye-in-hand-joint":
		return EyeInHandJoint, nil
	case "eye-to-hand-camera":
		return EyeToHandCamera, nil
	case "eye-to-hand-joint":
		return EyeToHandJoint, nil
	default:
		return 0, fmt.Errorf("unknown servo mode: %s", s)
	}
}

// InteractionType picks which feature state the stacked interaction
// matrix is computed from.
type InteractionType int

const (
	// InteractionCurrent uses the current features.
	InteractionCurrent InteractionType = iota + 1
	// InteractionDesired uses the desired features, constant as long as
	// the goal does not move.
	InteractionDesired
	// InteractionMean averages current and desired matrices, both
	// recomputed on every cycle.
	InteractionMean
)

func (it InteractionType) String() string {
	switch it {
	case InteractionCurrent:
		return "current"
	case InteractionDesired:
		return "desired"
	case InteractionMean:
		return "mean"
	default:
		return "unknown"
	}
}

// ParseInteractionType is the inverse of InteractionType.String.
func ParseInteractionType(s string) (InteractionType, error) {
	switch s {
	case "current":
		return InteractionCurrent, nil
	case "desired":
		return InteractionDesired, nil
	case "mean":
		return InteractionMean, nil
	default:
		return 0, fmt.Errorf("unknown interaction type: %s", s)
	}
}

type pair struct {
	current feature.Feature
	desired feature.Feature
	sel     feature.Selector
	owned   bool
}

// Task is the servo engine: it owns the feature stack, the servo
// configuration, and the state of the last control cycle. Not safe for
// concurrent use.
type Task struct {
	pairs []pair

	mode     Mode
	modeSet  bool
	itype    InteractionType
	itypeSet bool
	gain     Gain

	epsilon   float64
	twist     *mat.Dense
	jacobian  *mat.Dense
	secondary geom.Vector

	// State of the last ComputeControlLaw call.
	e         geom.Vector
	l         *mat.Dense
	j         *mat.Dense
	projector *mat.Dense
	rank      int
	degraded  bool
	cond      float64
}

// New returns an empty task. Servo mode, interaction type and gain must
// all be set before the first ComputeControlLaw call.
func New() *Task {
	return &Task{epsilon: pinv.DefaultEpsilon}
}

// SetServoMode selects the servo configuration.
func (t *Task) SetServoMode(m Mode) {
	t.mode = m
	t.modeSet = true
}

// SetInteractionType selects how the stacked interaction matrix is
// computed.
func (t *Task) SetInteractionType(it InteractionType) {
	t.itype = it
	t.itypeSet = true
}

// SetGain installs a constant gain.
func (t *Task) SetGain(lambda float64) {
	t.gain = ConstantGain(lambda)
}

// SetAdaptiveGain installs the adaptive gain law (zero, inf, slope).
func (t *Task) SetAdaptiveGain(zero, inf, slope float64) {
	t.gain = NewAdaptiveGain(zero, inf, slope)
}

// SetPseudoInverseThreshold sets the relative singular-value cutoff
// epsilon. Non-positive values fall back to pinv.DefaultEpsilon.
func (t *Task) SetPseudoInverseThreshold(eps float64) {
	t.epsilon = eps
}

// SetTwist installs the transform from the frame the robot jacobian is
// expressed in to the camera frame (camera-from-effector for
// eye-in-hand, camera-from-reference for eye-to-hand). Only joint-space
// modes use it.
func (t *Task) SetTwist(m geom.Transform) {
	t.twist = m.TwistMatrix()
}

// SetEffectorJacobian installs the 6 x dof robot jacobian used by
// joint-space modes. Callers refresh it every cycle on articulated
// robots.
func (t *Task) SetEffectorJacobian(j mat.Matrix) error {
	r, _ := j.Dims()
	if r != 6 {
		return fmt.Errorf("%w: got %d", ErrJacobianShape, r)
	}
	t.jacobian = mat.DenseCopyOf(j)
	return nil
}

// SetSecondaryTask installs a secondary velocity injected through the
// null-space projector on every cycle. Its length must match the
// command dimension at compute time.
func (t *Task) SetSecondaryTask(v geom.Vector) {
	t.secondary = v.Clone()
}

// ClearSecondaryTask removes the secondary velocity.
func (t *Task) ClearSecondaryTask() {
	t.secondary = nil
}

// AddFeature appends a current/desired pair to the stack. A nil desired
// feature makes the task build and own a zero-valued counterpart of the
// current feature, the usual shortcut for kinds whose goal is zero.
// Kind, dimension and selector validity are checked here; failures are
// fatal and leave the stack unchanged.
func (t *Task) AddFeature(current, desired feature.Feature, sel feature.Selector) error {
	if current == nil {
		return ErrNilFeature
	}
	owned := false
	if desired == nil {
		desired = current.Blank()
		owned = true
	}
	if _, err := current.Error(desired, sel); err != nil {
		return fmt.Errorf("servo: add feature %d: %w", len(t.pairs), err)
	}
	t.pairs = append(t.pairs, pair{current: current, desired: desired, sel: sel, owned: owned})
	return nil
}

// FeatureCount returns the number of stacked pairs.
func (t *Task) FeatureCount() int { return len(t.pairs) }

// Dimension returns the total number of selected error components.
func (t *Task) Dimension() int {
	n := 0
	for _, p := range t.pairs {
		n += p.sel.Count(p.current.Dimension())
	}
	return n
}

// ComputeControlLaw runs one synchronous control cycle and returns the
// velocity command: a 6-component camera twist in camera modes, a
// dof-sized joint velocity in joint modes. The stacked error, the
// interaction matrix, the task jacobian, the null-space projector and
// the rank status remain readable until the next call.
func (t *Task) ComputeControlLaw() (geom.Vector, error) {
	if err := t.checkConfigured(); err != nil {
		return nil, err
	}

	e, l, err := t.stack()
	if err != nil {
		return nil, err
	}

	j, err := t.taskJacobian(l)
	if err != nil {
		return nil, err
	}
	_, n := j.Dims()

	res, err := pinv.Compute(j, t.epsilon)
	if err != nil {
		return nil, fmt.Errorf("servo: %w", err)
	}

	lambda := t.gain.Value(e.Norm())
	sign := -1.0
	if t.mode.eyeToHand() {
		sign = 1.0
	}

	ev := mat.NewVecDense(len(e), e)
	var prim mat.VecDense
	prim.MulVec(res.Inverse, ev)

	v := make(geom.Vector, n)
	for i := 0; i < n; i++ {
		v[i] = sign * lambda * prim.AtVec(i)
	}

	proj := pinv.NullProjector(j, res)
	if t.secondary != nil {
		if len(t.secondary) != n {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrSecondaryDimension, len(t.secondary), n)
		}
		sv := mat.NewVecDense(n, t.secondary)
		var ns mat.VecDense
		ns.MulVec(proj, sv)
		for i := 0; i < n; i++ {
			v[i] += ns.AtVec(i)
		}
	}

	t.e = e
	t.l = l
	t.j = j
	t.projector = proj
	t.rank = res.Rank
	t.degraded = res.Degraded
	t.cond = res.Cond
	return v, nil
}

// ServoMode returns the configured mode, zero before SetServoMode.
func (t *Task) ServoMode() Mode { return t.mode }

func (t *Task) checkConfigured() error {
	if !t.modeSet {
		return ErrServoModeUnset
	}
	if !t.itypeSet {
		return ErrInteractionUnset
	}
	if t.gain == nil {
		return ErrGainUnset
	}
	if len(t.pairs) == 0 {
		return ErrNoFeatures
	}
	if t.mode.JointSpace() {
		if t.twist == nil {
			return ErrTwistUnset
		}
		if t.jacobian == nil {
			return ErrJacobianUnset
		}
	}
	return nil
}

// stack computes the error vector and interaction matrix of every pair
// and assembles them row by row, in insertion order.
func (t *Task) stack() (geom.Vector, *mat.Dense, error) {
	blocksE := make([]geom.Vector, len(t.pairs))
	blocksL := make([]*mat.Dense, len(t.pairs))
	rows := 0

	for i, p := range t.pairs {
		eb, err := p.current.Error(p.desired, p.sel)
		if err != nil {
			return nil, nil, fmt.Errorf("servo: feature %d error: %w", i, err)
		}
		lb, err := t.interactionBlock(p)
		if err != nil {
			return nil, nil, fmt.Errorf("servo: feature %d interaction: %w", i, err)
		}
		blocksE[i] = eb
		blocksL[i] = lb
		rows += len(eb)
	}

	e := make(geom.Vector, 0, rows)
	l := mat.NewDense(rows, 6, nil)
	at := 0
	for i := range t.pairs {
		e = append(e, blocksE[i]...)
		br, _ := blocksL[i].Dims()
		for r := 0; r < br; r++ {
			for c := 0; c < 6; c++ {
				l.Set(at+r, c, blocksL[i].At(r, c))
			}
		}
		at += br
	}
	return e, l, nil
}

// interactionBlock computes one pair's rows following the configured
// interaction type. Nothing is cached: desired and mean matrices are
// recomputed every cycle so a moving goal is picked up immediately.
func (t *Task) interactionBlock(p pair) (*mat.Dense, error) {
	switch t.itype {
	case InteractionDesired:
		return p.desired.Interaction(p.sel)
	case InteractionMean:
		cur, err := p.current.Interaction(p.sel)
		if err != nil {
			return nil, err
		}
		des, err := p.desired.Interaction(p.sel)
		if err != nil {
			return nil, err
		}
		var m mat.Dense
		m.Add(cur, des)
		m.Scale(0.5, &m)
		return &m, nil
	default:
		return p.current.Interaction(p.sel)
	}
}

// taskJacobian folds the camera twist and the robot jacobian into the
// stacked matrix for joint-space modes; camera modes use it as is.
func (t *Task) taskJacobian(l *mat.Dense) (*mat.Dense, error) {
	if !t.mode.JointSpace() {
		return l, nil
	}
	m, _ := l.Dims()
	_, dof := t.jacobian.Dims()

	lw := mat.NewDense(m, 6, nil)
	lw.Mul(l, t.twist)
	j := mat.NewDense(m, dof, nil)
	j.Mul(lw, t.jacobian)
	return j, nil
}

// Kill tears the task down: desired features the task built and owns
// are released, externally supplied features are left untouched, and
// the stack empties so further ComputeControlLaw calls fail with
// ErrNoFeatures.
func (t *Task) Kill() {
	for _, p := range t.pairs {
		if !p.owned {
			continue
		}
		if r, ok := p.desired.(interface{ Release() }); ok {
			r.Release()
		}
	}
	t.pairs = nil
	t.e = nil
	t.l = nil
	t.j = nil
	t.projector = nil
	t.rank = 0
	t.degraded = false
	t.cond = 0
}

// TaskError returns a copy of the last stacked error vector.
func (t *Task) TaskError() geom.Vector { return t.e.Clone() }

// InteractionMatrix returns the last stacked interaction matrix. The
// returned matrix is owned by the task and valid until the next cycle.
func (t *Task) InteractionMatrix() *mat.Dense { return t.l }

// TaskJacobian returns the matrix that was inverted on the last cycle:
// the interaction matrix in camera modes, its product with the twist
// and robot jacobian in joint modes.
func (t *Task) TaskJacobian() *mat.Dense { return t.j }

// Projector returns the null-space projector of the last cycle.
func (t *Task) Projector() *mat.Dense { return t.projector }

// Rank returns the effective rank of the last inversion.
func (t *Task) Rank() int { return t.rank }

// Degraded reports whether the last inversion lost rank and produced a
// least-squares best effort.
func (t *Task) Degraded() bool { return t.degraded }

// ConditionNumber returns the ratio of the largest to the smallest
// retained singular value of the last inversion.
func (t *Task) ConditionNumber() float64 { return t.cond }
