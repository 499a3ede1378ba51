package robot

import (
	"errors"
	"math"
	"testing"

	"github.com/davrolle/vservo/internal/geom"
)

func TestCameraTranslates(t *testing.T) {
	cam := NewCamera(geom.TransformFromPose(0, 0, 1, 0, 0, 0), 0.1)

	if err := cam.SetVelocity(FrameCamera, geom.Vector{1, 0, 0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}

	pose, err := cam.Position()
	if err != nil {
		t.Fatal(err)
	}
	// The camera moved +x, so the object slides -x in the camera frame.
	if math.Abs(pose.T[0]+0.1) > 1e-12 {
		t.Errorf("expected x = -0.1, got %v", pose.T[0])
	}
	if math.Abs(pose.T[2]-1.0) > 1e-12 {
		t.Errorf("expected z unchanged at 1, got %v", pose.T[2])
	}
}

func TestCameraRotates(t *testing.T) {
	cam := NewCamera(geom.IdentityTransform(), 0.1)

	if err := cam.SetVelocity(FrameCamera, geom.Vector{0, 0, 0, 0, 0, 1}); err != nil {
		t.Fatal(err)
	}

	pose, _ := cam.Position()
	tu := pose.R.ThetaU()
	if math.Abs(tu[2]+0.1) > 1e-12 {
		t.Errorf("expected -0.1 rad about z, got %v", tu[2])
	}
	if math.Abs(tu.Norm()-0.1) > 1e-12 {
		t.Errorf("rotation magnitude %v, want 0.1", tu.Norm())
	}
}

func TestCameraJointFrameMatchesCameraFrame(t *testing.T) {
	a := NewCamera(geom.TransformFromPose(0.2, -0.1, 1.5, 0.1, 0, 0), 0.05)
	b := NewCamera(geom.TransformFromPose(0.2, -0.1, 1.5, 0.1, 0, 0), 0.05)
	v := geom.Vector{0.1, -0.2, 0.05, 0.01, 0.02, -0.03}

	if err := a.SetVelocity(FrameCamera, v); err != nil {
		t.Fatal(err)
	}
	if err := b.SetVelocity(FrameJoint, v); err != nil {
		t.Fatal(err)
	}

	pa, _ := a.Position()
	pb, _ := b.Position()
	for i, d := range pa.Pose().Sub(pb.Pose()) {
		if math.Abs(d) > 1e-15 {
			t.Fatalf("pose component %d differs by %v", i, d)
		}
	}
}

func TestCameraRejectsReferenceFrame(t *testing.T) {
	cam := NewCamera(geom.IdentityTransform(), 0.1)
	err := cam.SetVelocity(FrameReference, geom.Vector{0, 0, 0, 0, 0, 0})
	if !errors.Is(err, ErrUnsupportedFrame) {
		t.Fatalf("expected ErrUnsupportedFrame, got %v", err)
	}
}

func TestCameraRejectsShortCommand(t *testing.T) {
	cam := NewCamera(geom.IdentityTransform(), 0.1)
	if err := cam.SetVelocity(FrameCamera, geom.Vector{1, 2, 3}); err == nil {
		t.Fatal("expected an error for a 3-component command")
	}
}

func TestCameraJacobianIsIdentity(t *testing.T) {
	cam := NewCamera(geom.IdentityTransform(), 0.1)
	j, err := cam.Jacobian()
	if err != nil {
		t.Fatal(err)
	}
	r, c := j.Dims()
	if r != 6 || c != 6 {
		t.Fatalf("expected 6x6, got %dx%d", r, c)
	}
	for i := 0; i < 6; i++ {
		for k := 0; k < 6; k++ {
			want := 0.0
			if i == k {
				want = 1.0
			}
			if j.At(i, k) != want {
				t.Errorf("j[%d][%d] = %v, want %v", i, k, j.At(i, k), want)
			}
		}
	}
}
