package servo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davrolle/vservo/internal/feature"
	"github.com/davrolle/vservo/internal/geom"
)

// runPointLoop drives a single image point from (0.5, 0.3) to the
// principal point, moving a simulated camera with the computed twist at
// each cycle. It returns the iteration count at convergence (maxIter if
// the target was never reached), the error-norm history and the last
// command.
func runPointLoop(t *testing.T, cfg func(*Task), maxIter int, target float64) (int, []float64, geom.Vector) {
	t.Helper()

	p := [3]float64{0.5, 0.3, 1.0}
	cur := feature.NewPoint()
	des := feature.NewPoint()

	task := New()
	task.SetServoMode(EyeInHandCamera)
	task.SetInteractionType(InteractionCurrent)
	cfg(task)
	require.NoError(t, task.AddFeature(cur, des, feature.SelectAll))

	const dt = 0.1
	norms := make([]float64, 0, maxIter)
	var v geom.Vector
	for i := 0; i < maxIter; i++ {
		require.Greater(t, p[2], 0.0, "point must stay in front of the camera")
		cur.Set(p[0]/p[2], p[1]/p[2], p[2])

		var err error
		v, err = task.ComputeControlLaw()
		require.NoError(t, err)

		n := task.TaskError().Norm()
		norms = append(norms, n)
		if n < target {
			return i, norms, v
		}
		p = geom.Exp(v, dt).Inverse().Apply(p)
	}
	return maxIter, norms, v
}

func TestPointServoConverges(t *testing.T) {
	iters, norms, v := runPointLoop(t, func(task *Task) {
		task.SetGain(1.0)
	}, 200, 1e-6)

	require.Less(t, iters, 200, "servo must converge within the budget")
	assert.Less(t, norms[len(norms)-1], 1e-6)
	assert.Less(t, v.Norm(), 1e-5, "the command vanishes at the goal")

	for i := 1; i < len(norms); i++ {
		assert.Less(t, norms[i], norms[i-1],
			"error norm must decrease at every cycle (iteration %d)", i)
	}
}

func TestPointServoConvergesWithDesiredInteraction(t *testing.T) {
	iters, norms, _ := runPointLoop(t, func(task *Task) {
		task.SetInteractionType(InteractionDesired)
		task.SetGain(1.0)
	}, 200, 1e-6)

	require.Less(t, iters, 200)
	for i := 1; i < len(norms); i++ {
		assert.Less(t, norms[i], norms[i-1], "iteration %d", i)
	}
}

func TestAdaptiveGainReachesGoalFaster(t *testing.T) {
	slow, _, _ := runPointLoop(t, func(task *Task) {
		task.SetGain(0.4)
	}, 500, 1e-6)
	fast, _, _ := runPointLoop(t, func(task *Task) {
		task.SetAdaptiveGain(4.0, 0.4, 30.0)
	}, 500, 1e-6)

	require.Less(t, slow, 500)
	require.Less(t, fast, 500)
	assert.Less(t, fast, slow,
		"boosting the gain near the goal must shorten the tail")
}

func TestPoseServoConverges(t *testing.T) {
	cMcd := geom.TransformFromPose(0.1, -0.2, 0.3, 0.2, -0.1, 0.15)

	tr := feature.NewTranslation(feature.CurrentFromDesired)
	tu := feature.NewThetaU(feature.CurrentFromDesired)

	task := New()
	task.SetServoMode(EyeInHandCamera)
	task.SetInteractionType(InteractionCurrent)
	task.SetGain(1.0)
	require.NoError(t, task.AddFeature(tr, nil, feature.SelectAll))
	require.NoError(t, task.AddFeature(tu, nil, feature.SelectAll))

	const dt = 0.1
	prev := 0.0
	converged := false
	for i := 0; i < 200; i++ {
		tr.BuildFrom(cMcd)
		tu.BuildFrom(cMcd)

		v, err := task.ComputeControlLaw()
		require.NoError(t, err)
		require.False(t, task.Degraded(), "the 6x6 pose system stays full rank")

		n := task.TaskError().Norm()
		if i > 0 {
			assert.Less(t, n, prev, "iteration %d", i)
		}
		prev = n
		if n < 1e-6 {
			converged = true
			break
		}
		cMcd = geom.Exp(v, dt).Inverse().Mul(cMcd)
	}

	require.True(t, converged, "pose servo must reach the goal within 200 cycles")
	assert.Less(t, cMcd.Pose().Norm(), 1e-5, "relative pose collapses to identity")
}
