// 指示: miu200521358
package minteractor

import (
	"errors"
	"math"
	"testing"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

func TestShiftBonesIdentityKeepsHeadTail(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	before := map[string][2]mmath.Vec3{}
	for _, bone := range object.BoneValues() {
		before[bone.Name] = [2]mmath.Vec3{bone.Head, bone.Tail}
	}
	if err := uc.ShiftBones(object, mmath.NewMat4()); err != nil {
		t.Fatalf("ShiftBones failed: %v", err)
	}
	assertModeRestored(t, host, 1)
	for _, bone := range object.BoneValues() {
		want := before[bone.Name]
		if !bone.Head.Equals(want[0]) || !bone.Tail.Equals(want[1]) {
			t.Fatalf("head/tail mismatch for %s: got=%v/%v want=%v/%v", bone.Name, bone.Head, bone.Tail, want[0], want[1])
		}
	}
}

func TestShiftBonesTranslatesAndKeepsConnection(t *testing.T) {
	uc, _, object := newUsecaseFixture(t)
	offset := mmath.NewVec3(0, 1, 0)
	if err := uc.ShiftBones(object, mmath.NewTranslationMat4(offset)); err != nil {
		t.Fatalf("ShiftBones failed: %v", err)
	}
	root, _ := object.Bones().Get("root")
	arm, _ := object.Bones().Get("arm")
	hand, _ := object.Bones().Get("hand")
	if !root.Head.Equals(offset) {
		t.Fatalf("root head mismatch: got=%v want=%v", root.Head, offset)
	}
	if !arm.Head.Equals(root.Tail) || !hand.Head.Equals(arm.Tail) {
		t.Fatalf("connected head mismatch: arm=%v root.tail=%v hand=%v arm.tail=%v", arm.Head, root.Tail, hand.Head, arm.Tail)
	}
	if !hand.Tail.NearEquals(mmath.NewVec3(1.5, 1, 1), 1e-12) {
		t.Fatalf("hand tail mismatch: got=%v want=%v", hand.Tail, mmath.NewVec3(1.5, 1, 1))
	}
}

func TestSetLocalHeadTailResetsRoll(t *testing.T) {
	uc, _, object := newUsecaseFixture(t)
	if _, err := uc.SetEditBoneMatrix(object, "root", mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, 0.5).ToMat4(), 1); err != nil {
		t.Fatalf("SetEditBoneMatrix failed: %v", err)
	}
	found, err := uc.SetLocalHeadTail(object, "root", mmath.NewVec3(0, 0, 0), mmath.NewVec3(0, 2, 0))
	if err != nil || !found {
		t.Fatalf("SetLocalHeadTail failed: found=%t err=%v", found, err)
	}
	root, _ := object.Bones().Get("root")
	if root.Roll != 0 || !root.Tail.Equals(mmath.NewVec3(0, 2, 0)) {
		t.Fatalf("root mismatch: roll=%v tail=%v", root.Roll, root.Tail)
	}

	found, err = uc.SetLocalTail(object, "root", mmath.NewVec3(0, 3, 0))
	if err != nil || !found {
		t.Fatalf("SetLocalTail failed: found=%t err=%v", found, err)
	}
	root, _ = object.Bones().Get("root")
	if !root.Tail.Equals(mmath.NewVec3(0, 3, 0)) {
		t.Fatalf("tail mismatch: got=%v want=%v", root.Tail, mmath.NewVec3(0, 3, 0))
	}

	for _, call := range []func() (bool, error){
		func() (bool, error) { return uc.SetLocalHeadTail(object, "missing", mmath.ZERO_VEC3, mmath.UNIT_Y_VEC3) },
		func() (bool, error) { return uc.SetLocalTail(object, "missing", mmath.UNIT_Y_VEC3) },
		func() (bool, error) { return uc.SetWorldTail(object, "missing", mmath.UNIT_Y_VEC3) },
		func() (bool, error) { return uc.SetEditBoneMatrix(object, "missing", mmath.NewMat4(), 1) },
	} {
		found, err := call()
		if err != nil || found {
			t.Fatalf("missing bone result mismatch: found=%t err=%v", found, err)
		}
	}
}

func TestSetEditBoneMatrixAppliesLength(t *testing.T) {
	uc, _, object := newUsecaseFixture(t)
	matrix := mmath.NewTranslationMat4(mmath.NewVec3(1, 0, 0)).Muled(
		mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, math.Pi/2).ToMat4())
	found, err := uc.SetEditBoneMatrix(object, "root", matrix, 2)
	if err != nil || !found {
		t.Fatalf("SetEditBoneMatrix failed: found=%t err=%v", found, err)
	}
	root, _ := object.Bones().Get("root")
	if !root.Head.NearEquals(mmath.NewVec3(1, 0, 0), 1e-9) {
		t.Fatalf("head mismatch: got=%v want=%v", root.Head, mmath.NewVec3(1, 0, 0))
	}
	if !root.Tail.NearEquals(mmath.NewVec3(1, 0, 2), 1e-9) {
		t.Fatalf("tail mismatch: got=%v want=%v", root.Tail, mmath.NewVec3(1, 0, 2))
	}
	if !root.MatrixLocal().NearEquals(matrix, 1e-9) {
		t.Fatalf("matrix mismatch: got=%v want=%v", root.MatrixLocal(), matrix)
	}
}

func TestSetEditBoneMatrixByObjectUsesDefaultLength(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	target, err := host.Scene.AddEmpty("Target")
	if err != nil {
		t.Fatalf("AddEmpty failed: %v", err)
	}
	target.SetTransform(mmath.NewVec3(0, 0, 2), mmath.NewVec3(90, 0, 0), mmath.ONE_VEC3)

	found, err := uc.SetEditBoneMatrixByObject(object, "arm", target, 0)
	if err != nil || !found {
		t.Fatalf("SetEditBoneMatrixByObject failed: found=%t err=%v", found, err)
	}
	arm, _ := object.Bones().Get("arm")
	if !arm.Head.NearEquals(mmath.NewVec3(0, 0, 2), 1e-9) {
		t.Fatalf("head mismatch: got=%v want=%v", arm.Head, mmath.NewVec3(0, 0, 2))
	}
	if math.Abs(arm.Length()-1) > 1e-9 {
		t.Fatalf("length mismatch: got=%v want=1", arm.Length())
	}
	if !arm.Tail.NearEquals(mmath.NewVec3(0, 0, 3), 1e-9) {
		t.Fatalf("tail mismatch: got=%v want=%v", arm.Tail, mmath.NewVec3(0, 0, 3))
	}
	if _, err := uc.SetEditBoneMatrixByObject(object, "arm", nil, 0); err == nil {
		t.Fatalf("expected error for nil target")
	}
}

func TestSetEditBoneMatrixWorldRemovesObjectTransform(t *testing.T) {
	uc, _, object := newUsecaseFixture(t)
	object.SetTransform(mmath.NewVec3(0, 0, 5), mmath.ZERO_VEC3, mmath.ONE_VEC3)
	found, err := uc.SetEditBoneMatrixWorld(object, "root", mmath.NewTranslationMat4(mmath.NewVec3(1, 0, 5)))
	if err != nil || !found {
		t.Fatalf("SetEditBoneMatrixWorld failed: found=%t err=%v", found, err)
	}
	root, _ := object.Bones().Get("root")
	if !root.Head.NearEquals(mmath.NewVec3(1, 0, 0), 1e-9) {
		t.Fatalf("head mismatch: got=%v want=%v", root.Head, mmath.NewVec3(1, 0, 0))
	}
	if !root.Tail.NearEquals(mmath.NewVec3(1, 1, 0), 1e-9) {
		t.Fatalf("tail mismatch: got=%v want=%v", root.Tail, mmath.NewVec3(1, 1, 0))
	}
}

func TestWorldHeadTailRoundTrip(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	object.SetTransform(mmath.NewVec3(1, 2, 3), mmath.NewVec3(0, 0, 90), mmath.NewVec3(2, 2, 2))
	head := mmath.NewVec3(1, 1, 1)
	tail := mmath.NewVec3(1, 1, 4)

	found, err := uc.SetWorldHeadTail(object, "arm", head, tail)
	if err != nil || !found {
		t.Fatalf("SetWorldHeadTail failed: found=%t err=%v", found, err)
	}
	result, found, err := uc.GetWorldHeadTail(object, "arm")
	if err != nil || !found {
		t.Fatalf("GetWorldHeadTail failed: found=%t err=%v", found, err)
	}
	assertModeRestored(t, host, 2)
	if !result.Head.NearEquals(head, 1e-9) || !result.Tail.NearEquals(tail, 1e-9) {
		t.Fatalf("world head/tail mismatch: got=%v/%v want=%v/%v", result.Head, result.Tail, head, tail)
	}
	if !result.Matrix.NearEquals(object.MatrixWorld(), 1e-12) {
		t.Fatalf("world matrix mismatch: got=%v want=%v", result.Matrix, object.MatrixWorld())
	}
	arm, _ := object.Bones().Get("arm")
	if arm.Roll != 0 {
		t.Fatalf("roll mismatch: got=%v want=0", arm.Roll)
	}

	found, err = uc.SetWorldTail(object, "arm", mmath.NewVec3(1, 1, 7))
	if err != nil || !found {
		t.Fatalf("SetWorldTail failed: found=%t err=%v", found, err)
	}
	result, _, _ = uc.GetWorldHeadTail(object, "arm")
	if !result.Tail.NearEquals(mmath.NewVec3(1, 1, 7), 1e-9) {
		t.Fatalf("world tail mismatch: got=%v want=%v", result.Tail, mmath.NewVec3(1, 1, 7))
	}

	if _, found, err := uc.GetWorldHeadTail(object, "missing"); err != nil || found {
		t.Fatalf("missing bone result mismatch: found=%t err=%v", found, err)
	}
}

func TestSetWorldHeadTailXAxisAlignsWorldXAxis(t *testing.T) {
	uc, _, object := newUsecaseFixture(t)
	object.SetTransform(mmath.NewVec3(1, 2, 3), mmath.NewVec3(0, 30, 45), mmath.ONE_VEC3)
	head := mmath.NewVec3(1, 2, 3)
	tail := mmath.NewVec3(1, 2, 4)
	xAxis := mmath.NewVec3(1, 0, 0)

	found, err := uc.SetWorldHeadTailXAxis(object, "root", head, tail, xAxis)
	if err != nil || !found {
		t.Fatalf("SetWorldHeadTailXAxis failed: found=%t err=%v", found, err)
	}
	result, _, err := uc.GetWorldHeadTail(object, "root")
	if err != nil {
		t.Fatalf("GetWorldHeadTail failed: %v", err)
	}
	if !result.XAxis.NearEquals(xAxis, 1e-6) {
		t.Fatalf("world x axis mismatch: got=%v want=%v", result.XAxis, xAxis)
	}
}

func TestSetWorldHeadTailXAxisRejectsParallelAxis(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	found, err := uc.SetWorldHeadTailXAxis(object, "root", mmath.ZERO_VEC3, mmath.NewVec3(0, 0, 1), mmath.NewVec3(0, 0, 2))
	if !found {
		t.Fatalf("bone should be found")
	}
	if !errors.Is(err, armature.ErrDegenerateAxis) {
		t.Fatalf("error mismatch: got=%v want=%v", err, armature.ErrDegenerateAxis)
	}
	assertModeRestored(t, host, 1)
	root, _ := object.Bones().Get("root")
	if math.IsNaN(root.Roll) {
		t.Fatalf("roll should not be NaN")
	}
}

func TestWorldSettersRejectZeroScaleObject(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	object.SetTransform(mmath.NewVec3(0, 0, 1), mmath.ZERO_VEC3, mmath.NewVec3(1, 1, 0))
	before, _ := object.Bones().Get("root")
	wantHead, wantTail := before.Head, before.Tail

	for _, call := range []func() (bool, error){
		func() (bool, error) { return uc.SetWorldTail(object, "root", mmath.NewVec3(0, 0, 3)) },
		func() (bool, error) { return uc.SetWorldHeadTail(object, "root", mmath.ZERO_VEC3, mmath.UNIT_Y_VEC3) },
		func() (bool, error) { return uc.SetEditBoneMatrixWorld(object, "root", mmath.NewMat4()) },
		func() (bool, error) {
			return uc.SetWorldHeadTailXAxis(object, "root", mmath.ZERO_VEC3, mmath.UNIT_Y_VEC3, mmath.UNIT_X_VEC3)
		},
	} {
		found, err := call()
		if !found {
			t.Fatalf("bone should be found")
		}
		if !errors.Is(err, mmath.ErrSingularMatrix) {
			t.Fatalf("error mismatch: got=%v want=%v", err, mmath.ErrSingularMatrix)
		}
	}
	assertModeRestored(t, host, 4)
	root, _ := object.Bones().Get("root")
	if !root.Head.Equals(wantHead) || !root.Tail.Equals(wantTail) {
		t.Fatalf("head/tail should be unchanged: got=%v/%v want=%v/%v", root.Head, root.Tail, wantHead, wantTail)
	}
}
