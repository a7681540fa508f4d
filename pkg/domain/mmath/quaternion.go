// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion は回転を表す。
type Quaternion mgl64.Quat

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion(mgl64.QuatIdent())
}

// NewQuaternionByValues は x, y, z, w を指定して生成する。
func NewQuaternionByValues(x, y, z, w float64) Quaternion {
	return Quaternion(mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}})
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)から生成する。
func NewQuaternionFromAxisAngle(axis Vec3, radians float64) Quaternion {
	return Quaternion(mgl64.QuatRotate(radians, axis.Normalized().mgl()))
}

// NewQuaternionFromRadians はXYZオイラー角(ラジアン)から生成する。X, Y, Z の順に回転する。
func NewQuaternionFromRadians(x, y, z float64) Quaternion {
	qx := mgl64.QuatRotate(x, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(z, mgl64.Vec3{0, 0, 1})
	return Quaternion(qz.Mul(qy).Mul(qx).Normalize())
}

// NewQuaternionFromDegrees はXYZオイラー角(度)から生成する。
func NewQuaternionFromDegrees(x, y, z float64) Quaternion {
	return NewQuaternionFromRadians(DegToRad(x), DegToRad(y), DegToRad(z))
}

// Muled は q * other を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion(mgl64.Quat(q).Mul(mgl64.Quat(other)))
}

// Normalized は正規化したクォータニオンを返す。
func (q Quaternion) Normalized() Quaternion {
	return Quaternion(mgl64.Quat(q).Normalize())
}

// MulVec3 はベクトルを回転させる。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	return vec3FromMgl(mgl64.Quat(q).Rotate(v.mgl()))
}

// ToMat4 は回転行列を返す。
func (q Quaternion) ToMat4() Mat4 {
	return Mat4(mgl64.Quat(q).Normalize().Mat4())
}

// XYZW は要素を返す。
func (q Quaternion) XYZW() (x, y, z, w float64) {
	return q.V[0], q.V[1], q.V[2], q.W
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Clamp は値を範囲内に収める。
func Clamp(value, low, high float64) float64 {
	return mgl64.Clamp(value, low, high)
}
