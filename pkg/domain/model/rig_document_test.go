// 指示: miu200521358
package model

import (
	"testing"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

// newBone は親付きのボーンを生成する。
func newBone(name string, parent string) *armature.Bone {
	bone := armature.NewBone(name)
	bone.ParentName = parent
	return bone
}

func TestRigDocumentValidate(t *testing.T) {
	valid := func() *RigDocument {
		object := NewRigObject("Armature", ObjectTypeArmature)
		object.Bones = []*armature.Bone{newBone("root", ""), newBone("arm", "root")}
		object.Poses = []*RigPose{{BoneName: "arm", Rotation: mmath.NewQuaternion(), Scale: mmath.ONE_VEC3}}
		return &RigDocument{
			ActiveObjectName: "Armature",
			Objects:          []*RigObject{object, NewRigObject("Target", ObjectTypeEmpty)},
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(doc *RigDocument)
	}{
		{name: "nil object", mutate: func(doc *RigDocument) { doc.Objects = append(doc.Objects, nil) }},
		{name: "empty object name", mutate: func(doc *RigDocument) { doc.Objects[1].Name = " " }},
		{name: "duplicate object", mutate: func(doc *RigDocument) { doc.Objects[1].Name = "Armature" }},
		{name: "missing active", mutate: func(doc *RigDocument) { doc.ActiveObjectName = "Missing" }},
		{name: "bones on empty", mutate: func(doc *RigDocument) { doc.Objects[1].Bones = []*armature.Bone{newBone("b", "")} }},
		{name: "duplicate bone", mutate: func(doc *RigDocument) {
			doc.Objects[0].Bones = append(doc.Objects[0].Bones, newBone("arm", ""))
		}},
		{name: "missing parent", mutate: func(doc *RigDocument) { doc.Objects[0].Bones[1].ParentName = "spine" }},
		{name: "parent cycle", mutate: func(doc *RigDocument) { doc.Objects[0].Bones[0].ParentName = "arm" }},
		{name: "pose without bone", mutate: func(doc *RigDocument) { doc.Objects[0].Poses[0].BoneName = "hand" }},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			doc := valid()
			tc.mutate(doc)
			if err := doc.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	var doc *RigDocument
	if err := doc.Validate(); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestRigObjectMatrixWorld(t *testing.T) {
	object := NewRigObject("Armature", ObjectTypeArmature)
	object.Location = mmath.NewVec3(1, 2, 3)
	object.Rotation = mmath.NewVec3(0, 0, 90)
	got := object.MatrixWorld().MulVec3(mmath.UNIT_X_VEC3)
	want := mmath.NewVec3(1, 3, 3)
	if !got.NearEquals(want, 1e-9) {
		t.Fatalf("world point mismatch: got=%v want=%v", got, want)
	}
}

func TestBoneWarningIDsAreUnique(t *testing.T) {
	ids := []string{
		BoneWarningBoneNotFound,
		BoneWarningParentNotFound,
		BoneWarningParentInvalid,
		BoneWarningDegenerateAxis,
		BoneWarningLayerOutOfRange,
	}
	seen := map[string]struct{}{}
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			t.Fatalf("warning id should be unique: %s", id)
		}
		seen[id] = struct{}{}
	}
}
