// 指示: miu200521358
package armature

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

func TestAlignBoneXAxisPointsXTowardTarget(t *testing.T) {
	bone := NewEditBone("upper_arm")
	if err := AlignBoneXAxis(bone, mmath.UNIT_Y_VEC3); err != nil {
		t.Fatalf("align failed: %v", err)
	}
	if !bone.XAxis().NearEquals(mmath.UNIT_Y_VEC3, 1e-9) {
		t.Fatalf("x axis mismatch: got=%v want=%v", bone.XAxis(), mmath.UNIT_Y_VEC3)
	}
	if !bone.YAxis().NearEquals(mmath.UNIT_Z_VEC3, 1e-12) {
		t.Fatalf("y axis should not change: got=%v", bone.YAxis())
	}
}

func TestAlignBoneXAxisProjectsOntoPerpendicularPlane(t *testing.T) {
	bone := NewEditBone("forearm")
	// Y成分(ボーン方向)を含む目標でも、直交成分へ合わせる。
	if err := AlignBoneXAxis(bone, mmath.NewVec3(-1, 0, 5)); err != nil {
		t.Fatalf("align failed: %v", err)
	}
	if !bone.XAxis().NearEquals(mmath.NewVec3(-1, 0, 0), 1e-9) {
		t.Fatalf("x axis mismatch: got=%v", bone.XAxis())
	}
}

func TestAlignBoneXAxisChoosesBetterCandidate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		bone := NewEditBone("b")
		bone.Head = randomVec3(rng)
		bone.Tail = bone.Head.Added(randomVec3(rng))
		bone.Roll = (rng.Float64()*2 - 1) * math.Pi
		desired := randomVec3(rng)

		target := desired.Cross(bone.YAxis())
		if target.Length() < 1e-3 || bone.Length() < 1e-3 {
			continue
		}
		target = target.Normalized()

		roll0 := bone.Roll
		angle := math.Acos(mmath.Clamp(bone.ZAxis().Dot(target), -1, 1))
		plus := *bone
		plus.Roll = roll0 + angle
		minus := *bone
		minus.Roll = roll0 - angle
		best := math.Max(plus.ZAxis().Dot(target), minus.ZAxis().Dot(target))

		if err := AlignBoneXAxis(bone, desired); err != nil {
			t.Fatalf("align failed: %v", err)
		}
		chosen := bone.ZAxis().Dot(target)
		if chosen < best-1e-12 {
			t.Fatalf("untried candidate is better: chosen=%f best=%f", chosen, best)
		}
		if chosen < 1-1e-9 {
			t.Fatalf("z axis should reach target: dot=%f", chosen)
		}
	}
}

func TestAlignBoneXAxisIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		bone := NewEditBone("b")
		bone.Tail = randomVec3(rng)
		desired := randomVec3(rng)
		if bone.Length() < 1e-3 || desired.Cross(bone.YAxis()).Length() < 1e-3 {
			continue
		}
		if err := AlignBoneXAxis(bone, desired); err != nil {
			t.Fatalf("first align failed: %v", err)
		}
		before := bone.XAxis()
		if err := AlignBoneXAxis(bone, desired); err != nil {
			t.Fatalf("second align failed: %v", err)
		}
		if !bone.XAxis().NearEquals(before, 1e-6) {
			t.Fatalf("second align changed x axis: before=%v after=%v", before, bone.XAxis())
		}
	}
}

func TestAlignBoneXAxisRejectsParallelTarget(t *testing.T) {
	bone := NewEditBone("spine")
	bone.Roll = 0.25
	err := AlignBoneXAxis(bone, mmath.NewVec3(0, 0, 3))
	if !errors.Is(err, ErrDegenerateAxis) {
		t.Fatalf("expected degenerate error: got=%v", err)
	}
	if bone.Roll != 0.25 {
		t.Fatalf("roll should not change: got=%f", bone.Roll)
	}

	zero := NewEditBone("zero")
	zero.Tail = zero.Head
	if err := AlignBoneXAxis(zero, mmath.UNIT_X_VEC3); !errors.Is(err, ErrDegenerateAxis) {
		t.Fatalf("expected degenerate error for zero length bone: got=%v", err)
	}
}

func randomVec3(rng *rand.Rand) mmath.Vec3 {
	return mmath.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
}
