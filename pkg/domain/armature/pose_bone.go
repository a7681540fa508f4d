// 指示: miu200521358
package armature

import (
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

// PoseBone はポーズ適用後のボーンを表す。
// Matrix はホストが評価したアーマチュア空間の行列で、このモジュールからは読み取り専用。
type PoseBone struct {
	Name     string
	Location mmath.Vec3
	Rotation mmath.Quaternion
	Scale    mmath.Vec3
	Matrix   mmath.Mat4
	Length   float64
}

// NewPoseBone はレスト姿勢のポーズボーンを生成する。
func NewPoseBone(bone *Bone) *PoseBone {
	return &PoseBone{
		Name:     bone.Name,
		Rotation: mmath.NewQuaternion(),
		Scale:    mmath.ONE_VEC3,
		Matrix:   bone.MatrixLocal(),
		Length:   bone.Length(),
	}
}

// Basis はポーズチャンネル(位置・回転・拡縮)の行列を返す。
func (p *PoseBone) Basis() mmath.Mat4 {
	return mmath.NewMat4FromLocRotScale(p.Location, p.Rotation, p.Scale)
}

// Head はポーズ空間のヘッド位置を返す。
func (p *PoseBone) Head() mmath.Vec3 {
	return p.Matrix.Translation()
}

// Tail はポーズ空間のテール位置を返す。
func (p *PoseBone) Tail() mmath.Vec3 {
	return p.Matrix.MulVec3(mmath.NewVec3(0, p.Length, 0))
}

// XAxis はポーズ空間のX軸を返す。
func (p *PoseBone) XAxis() mmath.Vec3 {
	return p.Matrix.Axis(0).Normalized()
}

// YAxis はポーズ空間のY軸を返す。
func (p *PoseBone) YAxis() mmath.Vec3 {
	return p.Matrix.Axis(1).Normalized()
}

// ZAxis はポーズ空間のZ軸を返す。
func (p *PoseBone) ZAxis() mmath.Vec3 {
	return p.Matrix.Axis(2).Normalized()
}
