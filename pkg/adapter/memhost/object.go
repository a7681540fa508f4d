// 指示: miu200521358
package memhost

import (
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
)

// Object はシーン内のオブジェクトを表す。
type Object struct {
	scene      *Scene
	name       string
	objectType model.ObjectType
	location   mmath.Vec3
	rotation   mmath.Vec3
	scale      mmath.Vec3

	bones     *BoneCollection
	editBones *EditBoneCollection
	poseBones *PoseBoneCollection
}

func newObject(scene *Scene, name string, objectType model.ObjectType) *Object {
	return &Object{
		scene:      scene,
		name:       name,
		objectType: objectType,
		scale:      mmath.ONE_VEC3,
		bones:      newBoneCollection(),
		poseBones:  newPoseBoneCollection(),
	}
}

// Name はオブジェクト名を返す。
func (o *Object) Name() string {
	return o.name
}

// Type はオブジェクト種別を返す。
func (o *Object) Type() model.ObjectType {
	return o.objectType
}

// SetTransform は位置・回転(XYZオイラー角, 度)・拡縮を設定する。
func (o *Object) SetTransform(location mmath.Vec3, rotationDegrees mmath.Vec3, scale mmath.Vec3) {
	o.location = location
	o.rotation = rotationDegrees
	o.scale = scale
}

// MatrixWorld はワールド変換行列を返す。オブジェクト親子は扱わないためローカル行列と同じ。
func (o *Object) MatrixWorld() mmath.Mat4 {
	return o.MatrixLocal()
}

// MatrixLocal はローカル変換行列を返す。
func (o *Object) MatrixLocal() mmath.Mat4 {
	rotation := mmath.NewQuaternionFromDegrees(o.rotation.X, o.rotation.Y, o.rotation.Z)
	return mmath.NewMat4FromLocRotScale(o.location, rotation, o.scale)
}

// Bones は確定ボーン一覧を返す。
func (o *Object) Bones() mhost.IBoneCollection {
	return o.bones
}

// BoneValues は登録順の確定ボーン一覧を返す。
func (o *Object) BoneValues() []*armature.Bone {
	return o.bones.Values()
}

// EditBones は編集ボーン一覧を返す。このオブジェクトが編集モードでなければエラー。
func (o *Object) EditBones() (mhost.IEditBoneCollection, error) {
	if o.editBones == nil {
		return nil, fmt.Errorf("%w: object=%s", mhost.ErrNotInEditMode, o.name)
	}
	return o.editBones, nil
}

// PoseBones はポーズボーン一覧を返す。
func (o *Object) PoseBones() mhost.IPoseBoneCollection {
	return o.poseBones
}

// AddBone は確定ボーンを追加する。編集モード中は追加できない。
func (o *Object) AddBone(bone *armature.Bone) error {
	if o.objectType != model.ObjectTypeArmature {
		return fmt.Errorf("アーマチュア以外にボーンは追加できません: %s", o.name)
	}
	if o.editBones != nil {
		return fmt.Errorf("編集モード中は確定ボーンを追加できません: %s", o.name)
	}
	if o.bones.items.has(bone.Name) {
		return fmt.Errorf("ボーン名が重複しています: %s", bone.Name)
	}
	o.bones.items.put(bone.Name, bone)
	o.poseBones.items.put(bone.Name, armature.NewPoseBone(bone))
	o.evaluatePose()
	return nil
}

// SetPose はポーズチャンネルを設定して再評価する。
func (o *Object) SetPose(boneName string, location mmath.Vec3, rotation mmath.Quaternion, scale mmath.Vec3) bool {
	poseBone, ok := o.poseBones.Get(boneName)
	if !ok {
		return false
	}
	poseBone.Location = location
	poseBone.Rotation = rotation.Normalized()
	poseBone.Scale = scale
	o.evaluatePose()
	return true
}

// beginEdit は確定ボーンから編集ボーンを作る。
func (o *Object) beginEdit() {
	editBones := newEditBoneCollection()
	for _, bone := range o.bones.Values() {
		editBones.items.put(bone.Name, armature.NewEditBoneFromBone(bone))
	}
	o.editBones = editBones
}

// commitEdit は編集ボーンを確定ボーンへ書き戻し、ポーズボーンを同期する。
func (o *Object) commitEdit() {
	if o.editBones == nil {
		return
	}
	bones := newBoneCollection()
	poseBones := newPoseBoneCollection()
	for _, editBone := range o.editBones.Values() {
		if editBone.ParentName != "" && !o.editBones.items.has(editBone.ParentName) {
			editBone.ParentName = ""
			editBone.UseConnect = false
		}
		bone := editBone.ToBone()
		bones.items.put(bone.Name, bone)

		poseBone := armature.NewPoseBone(bone)
		if prev, ok := o.poseBones.Get(bone.Name); ok {
			poseBone.Location = prev.Location
			poseBone.Rotation = prev.Rotation
			poseBone.Scale = prev.Scale
		}
		poseBones.items.put(bone.Name, poseBone)
	}
	o.bones = bones
	o.poseBones = poseBones
	o.editBones = nil
	o.evaluatePose()
}

// evaluatePose は親から順にポーズ行列を計算する。
// pose = parentPose * (parentRest^-1 * rest) * basis
func (o *Object) evaluatePose() {
	evaluated := map[string]mmath.Mat4{}
	var evaluate func(name string, depth int) mmath.Mat4
	evaluate = func(name string, depth int) mmath.Mat4 {
		key := nameKey(name)
		if m, ok := evaluated[key]; ok {
			return m
		}
		bone, ok := o.bones.Get(name)
		poseBone, poseOk := o.poseBones.Get(name)
		if !ok || !poseOk {
			return mmath.NewMat4()
		}
		rest := bone.MatrixLocal()
		var m mmath.Mat4
		parent, hasParent := o.bones.Get(bone.ParentName)
		if hasParent && depth < o.bones.Len() {
			parentPose := evaluate(parent.Name, depth+1)
			m = parentPose.Muled(parent.MatrixLocal().Inverted()).Muled(rest).Muled(poseBone.Basis())
		} else {
			m = rest.Muled(poseBone.Basis())
		}
		poseBone.Matrix = m
		poseBone.Length = bone.Length()
		evaluated[key] = m
		return m
	}
	for _, name := range o.bones.Names() {
		evaluate(name, 0)
	}
}
