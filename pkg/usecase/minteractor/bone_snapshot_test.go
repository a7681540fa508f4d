// 指示: miu200521358
package minteractor

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
)

func TestAreBonesSameValues(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	same, found := uc.AreBonesSameValues(object, "arm", object, "arm")
	if !found || !same {
		t.Fatalf("same bone result mismatch: same=%t found=%t", same, found)
	}

	other, err := host.Scene.AddArmature("Other")
	if err != nil {
		t.Fatalf("AddArmature failed: %v", err)
	}
	for _, bone := range object.BoneValues() {
		copied := *bone
		if copied.Name == "arm" {
			copied.Tail = copied.Tail.Added(mmath.NewVec3(0, 0, 1e-12))
		}
		if err := other.AddBone(&copied); err != nil {
			t.Fatalf("AddBone failed: %v", err)
		}
	}

	same, found = uc.AreBonesSameValues(object, "arm", other, "arm")
	if !found || same {
		t.Fatalf("shifted bone result mismatch: same=%t found=%t", same, found)
	}
	near, found := uc.AreBonesNearValues(object, "arm", other, "arm")
	if !found || !near {
		t.Fatalf("near result mismatch: near=%t found=%t", near, found)
	}
	same, found = uc.AreBonesSameValues(object, "root", other, "root")
	if !found || !same {
		t.Fatalf("untouched bone result mismatch: same=%t found=%t", same, found)
	}

	// 2本目のヘッドは2本目のボーンから取る。
	same, _ = uc.AreBonesSameValues(object, "root", other, "arm")
	if same {
		t.Fatalf("different bones should not be same")
	}

	if _, found := uc.AreBonesSameValues(object, "missing", other, "arm"); found {
		t.Fatalf("missing bone should not be found")
	}
	if _, found := uc.AreBonesNearValues(object, "arm", other, "missing"); found {
		t.Fatalf("missing bone should not be found")
	}
}

func TestEditBoneDataDictIsIndependentSnapshot(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	data, err := uc.GetEditBoneDataDict(object)
	if err != nil {
		t.Fatalf("GetEditBoneDataDict failed: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("snapshot count mismatch: got=%d want=3", len(data))
	}
	want := data["arm"]
	if !want.UseConnect || !want.Tail.Equals(mmath.NewVec3(1, 0, 1)) {
		t.Fatalf("snapshot mismatch: got=%+v", want)
	}

	if _, err := uc.SetLocalTail(object, "arm", mmath.NewVec3(5, 5, 5)); err != nil {
		t.Fatalf("SetLocalTail failed: %v", err)
	}
	if !data["arm"].Tail.Equals(mmath.NewVec3(1, 0, 1)) {
		t.Fatalf("snapshot changed after mutation: got=%v", data["arm"].Tail)
	}

	data["missing"] = armature.EditBoneData{}
	count, err := uc.ApplyEditBoneDataDict(object, data)
	if err != nil {
		t.Fatalf("ApplyEditBoneDataDict failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("restore count mismatch: got=%d want=3", count)
	}
	arm, _ := object.Bones().Get("arm")
	if !arm.Tail.Equals(mmath.NewVec3(1, 0, 1)) {
		t.Fatalf("restored tail mismatch: got=%v want=%v", arm.Tail, mmath.NewVec3(1, 0, 1))
	}
	assertModeRestored(t, host, 3)
}

func TestGetEditBoneMatrices(t *testing.T) {
	uc, _, object := newUsecaseFixture(t)
	matrices, err := uc.GetEditBoneMatrices(object)
	if err != nil {
		t.Fatalf("GetEditBoneMatrices failed: %v", err)
	}
	for _, bone := range object.BoneValues() {
		got, ok := matrices[bone.Name]
		if !ok {
			t.Fatalf("matrix not found: %s", bone.Name)
		}
		if !got.NearEquals(bone.MatrixLocal(), 1e-12) {
			t.Fatalf("matrix mismatch for %s: got=%v want=%v", bone.Name, got, bone.MatrixLocal())
		}
	}
}

func TestGetPoseBoneMatricesUsesPoseMode(t *testing.T) {
	uc, host, object := newUsecaseFixture(t)
	rotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Y_VEC3, math.Pi/4)
	object.SetPose("arm", mmath.ZERO_VEC3, rotation, mmath.ONE_VEC3)

	matrices, err := uc.GetPoseBoneMatrices(object)
	if err != nil {
		t.Fatalf("GetPoseBoneMatrices failed: %v", err)
	}
	if len(host.enters) != 1 || host.enters[0] != mhost.ModePose {
		t.Fatalf("mode switch mismatch: got=%v want=[%s]", host.enters, mhost.ModePose)
	}
	assertModeRestored(t, host, 1)
	arm, _ := object.PoseBones().Get("arm")
	if !matrices["arm"].Equals(arm.Matrix) {
		t.Fatalf("pose matrix mismatch: got=%v want=%v", matrices["arm"], arm.Matrix)
	}

	object.SetPose("arm", mmath.NewVec3(0, 1, 0), rotation, mmath.ONE_VEC3)
	if matrices["arm"].Equals(arm.Matrix) {
		t.Fatalf("snapshot should not follow later pose changes")
	}
}

// stubRigRepository は読み書きを記録するリグリポジトリを表す。
type stubRigRepository struct {
	doc       *model.RigDocument
	savedPath string
	saved     *model.RigDocument
	loadErr   error
}

// CanLoad はYAML拡張子だけを受け付ける。
func (r *stubRigRepository) CanLoad(path string) bool {
	return IsRigPath(path)
}

// Load は保持している文書を返す。
func (r *stubRigRepository) Load(path string) (*model.RigDocument, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.doc, nil
}

// Save は保存内容を記録する。
func (r *stubRigRepository) Save(path string, doc *model.RigDocument) error {
	r.savedPath = path
	r.saved = doc
	return nil
}

func TestLoadAndSaveRig(t *testing.T) {
	doc := &model.RigDocument{Objects: []*model.RigObject{model.NewRigObject("Armature", model.ObjectTypeArmature)}}
	repo := &stubRigRepository{doc: doc}
	uc := NewBoneUsecase(BoneUsecaseDeps{RigReader: repo, RigWriter: repo})

	loaded, err := uc.LoadRig(nil, "scene.rig.yaml")
	if err != nil {
		t.Fatalf("LoadRig failed: %v", err)
	}
	if loaded != doc {
		t.Fatalf("loaded document mismatch")
	}
	if _, err := uc.LoadRig(nil, "scene.json"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}

	outPath := filepath.Join(t.TempDir(), "scene_out.rig.yaml")
	if err := uc.SaveRig(nil, outPath, loaded); err != nil {
		t.Fatalf("SaveRig failed: %v", err)
	}
	if repo.savedPath != outPath || repo.saved != doc {
		t.Fatalf("saved mismatch: path=%s", repo.savedPath)
	}
	if err := uc.SaveRig(nil, "", loaded); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadRigRejectsInvalidDocument(t *testing.T) {
	object := model.NewRigObject("Armature", model.ObjectTypeArmature)
	orphan := armature.NewBone("orphan")
	orphan.ParentName = "missing"
	object.Bones = []*armature.Bone{orphan}
	repo := &stubRigRepository{doc: &model.RigDocument{Objects: []*model.RigObject{object}}}
	uc := NewBoneUsecase(BoneUsecaseDeps{RigReader: repo})
	if _, err := uc.LoadRig(nil, "scene.yaml"); err == nil {
		t.Fatalf("expected validation error")
	}

	repo.loadErr = errors.New("broken")
	if _, err := uc.LoadRig(nil, "scene.yaml"); !errors.Is(err, repo.loadErr) {
		t.Fatalf("error mismatch: got=%v want=%v", err, repo.loadErr)
	}
	if _, err := NewBoneUsecase(BoneUsecaseDeps{}).LoadRig(nil, "scene.yaml"); err == nil {
		t.Fatalf("expected error without reader")
	}
}
