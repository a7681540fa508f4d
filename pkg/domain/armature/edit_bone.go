// 指示: miu200521358
package armature

import (
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

// EditBone は編集モード中だけ存在する可変ボーンを表す。
// Head, Tail はアーマチュア空間の座標。
type EditBone struct {
	Name       string
	ParentName string
	UseConnect bool
	Head       mmath.Vec3
	Tail       mmath.Vec3
	Roll       float64
	Layers     BoneLayers
}

// NewEditBone は原点から +Z へ長さ1の編集ボーンを生成する。
func NewEditBone(name string) *EditBone {
	bone := &EditBone{Name: name, Tail: mmath.UNIT_Z_VEC3}
	bone.Layers[0] = true
	return bone
}

// NewEditBoneFromBone は確定ボーンから編集ボーンを生成する。
func NewEditBoneFromBone(bone *Bone) *EditBone {
	return &EditBone{
		Name:       bone.Name,
		ParentName: bone.ParentName,
		UseConnect: bone.UseConnect,
		Head:       bone.Head,
		Tail:       bone.Tail,
		Roll:       bone.Roll,
		Layers:     bone.Layers,
	}
}

// ToBone は確定ボーンへ変換する。
func (e *EditBone) ToBone() *Bone {
	return &Bone{
		Name:       e.Name,
		ParentName: e.ParentName,
		UseConnect: e.UseConnect,
		Head:       e.Head,
		Tail:       e.Tail,
		Roll:       e.Roll,
		Layers:     e.Layers,
	}
}

// Length はボーン長を返す。
func (e *EditBone) Length() float64 {
	return e.Tail.Subed(e.Head).Length()
}

// SetLength はヘッドを固定してボーン長を変更する。
// 長さ0のボーンは方向が決まらないため +Y 方向へ伸ばす。
func (e *EditBone) SetLength(length float64) {
	dir := e.Tail.Subed(e.Head).Normalized()
	if dir.IsZero() {
		dir = mmath.UNIT_Y_VEC3
	}
	e.Tail = e.Head.Added(dir.MuledScalar(length))
}

// Mat3 はボーンの回転行列を返す。
func (e *EditBone) Mat3() mmath.Mat3 {
	return VecRollToMat3(e.Tail.Subed(e.Head), e.Roll)
}

// Matrix はアーマチュア空間でのボーン行列を返す。
func (e *EditBone) Matrix() mmath.Mat4 {
	return e.Mat3().ToMat4(e.Head)
}

// SetMatrix は行列からヘッド・テール・ロールを設定する。ボーン長は維持する。
func (e *EditBone) SetMatrix(m mmath.Mat4) {
	length := e.Length()
	rot := orthonormalized(m.Mat3())
	dir, roll := Mat3ToVecRoll(rot)

	e.Head = m.Translation()
	e.Tail = e.Head.Added(dir.MuledScalar(length))
	e.Roll = roll
}

// XAxis はボーンのX軸を返す。
func (e *EditBone) XAxis() mmath.Vec3 {
	return e.Mat3().Col(0)
}

// YAxis はボーンのY軸を返す。
func (e *EditBone) YAxis() mmath.Vec3 {
	return e.Mat3().Col(1)
}

// ZAxis はボーンのZ軸を返す。
func (e *EditBone) ZAxis() mmath.Vec3 {
	return e.Mat3().Col(2)
}

// Data はスナップショット用の値を返す。
func (e *EditBone) Data() EditBoneData {
	return EditBoneData{
		Head:       e.Head,
		Tail:       e.Tail,
		Roll:       e.Roll,
		UseConnect: e.UseConnect,
	}
}

// ApplyData はスナップショット値を書き戻す。
func (e *EditBone) ApplyData(data EditBoneData) {
	e.Head = data.Head
	e.Tail = data.Tail
	e.Roll = data.Roll
	e.UseConnect = data.UseConnect
}

// EditBoneData は編集ボーンのスナップショット(ヘッド, テール, ロール, 接続)を表す。
type EditBoneData struct {
	Head       mmath.Vec3
	Tail       mmath.Vec3
	Roll       float64
	UseConnect bool
}
