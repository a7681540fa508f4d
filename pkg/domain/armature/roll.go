// 指示: miu200521358
// Package armature はボーンの幾何(ヘッド・テール・ロール・軸)を扱う。
package armature

import (
	"math"

	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

const (
	// 方向が -Y 付近の場合の切替閾値。
	rollSafeThreshold     = 6.1e-3
	rollCriticalThreshold = 2.5e-4
	rollThresholdSquared  = rollCriticalThreshold * rollCriticalThreshold
)

// VecRollToMat3 はボーン方向とロールから回転行列を生成する。
// +Y を dir へ最短回転させたあと、dir 周りに roll だけ回転させる。
// dir がゼロベクトルの場合は +Y とみなす。
func VecRollToMat3(dir mmath.Vec3, roll float64) mmath.Mat3 {
	nor := dir.Normalized()
	if nor.IsZero() {
		nor = mmath.UNIT_Y_VEC3
	}
	return mmath.NewMat3FromAxisAngle(nor, roll).Muled(swingFromY(nor))
}

// swingFromY は +Y を nor へ回す回転行列を返す。
func swingFromY(nor mmath.Vec3) mmath.Mat3 {
	x, y, z := nor.X, nor.Y, nor.Z
	theta := 1.0 + y
	thetaAlt := x*x + z*z

	if theta <= rollSafeThreshold && thetaAlt <= rollThresholdSquared {
		// ほぼ -Y 向きなので Z 軸周りに180度回転させる。
		return mmath.NewMat3FromAxes(
			mmath.NewVec3(-1, 0, 0),
			mmath.NewVec3(0, -1, 0),
			mmath.UNIT_Z_VEC3,
		)
	}
	if theta <= rollSafeThreshold {
		theta = thetaAlt*0.5 + thetaAlt*thetaAlt*0.125
	}

	return mmath.NewMat3FromAxes(
		mmath.NewVec3(1-x*x/theta, -x, -x*z/theta),
		mmath.NewVec3(x, y, z),
		mmath.NewVec3(-x*z/theta, -z, 1-z*z/theta),
	)
}

// Mat3ToVecRoll は回転行列からボーン方向(Y列)とロールを取り出す。
func Mat3ToVecRoll(m mmath.Mat3) (mmath.Vec3, float64) {
	dir := m.Col(1)
	return dir, Mat3VecToRoll(m, dir)
}

// Mat3VecToRoll は回転行列と方向からロールを求める。
func Mat3VecToRoll(m mmath.Mat3, dir mmath.Vec3) float64 {
	vecMat := VecRollToMat3(dir, 0)
	rollMat := vecMat.Transposed().Muled(m)
	return math.Atan2(rollMat.At(0, 2), rollMat.At(2, 2))
}

// orthonormalized は各列を正規化した行列を返す。
func orthonormalized(m mmath.Mat3) mmath.Mat3 {
	return mmath.NewMat3FromAxes(
		m.Col(0).Normalized(),
		m.Col(1).Normalized(),
		m.Col(2).Normalized(),
	)
}
