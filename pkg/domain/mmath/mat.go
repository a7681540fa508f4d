// 指示: miu200521358
package mmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// singularDetEpsilon は逆行列を持たないとみなす行列式の絶対値。
const singularDetEpsilon = 1e-12

// ErrSingularMatrix は逆行列を求められない行列の場合のエラー。
var ErrSingularMatrix = errors.New("逆行列を求められない行列です")

// Mat3 は列優先の3x3回転行列を表す。
type Mat3 mgl64.Mat3

// Mat4 は列優先の4x4変換行列を表す。
type Mat4 mgl64.Mat4

// NewMat3 は単位行列を生成する。
func NewMat3() Mat3 {
	return Mat3(mgl64.Ident3())
}

// NewMat3FromAxes は各列に軸ベクトルを持つ行列を生成する。
func NewMat3FromAxes(xAxis, yAxis, zAxis Vec3) Mat3 {
	return Mat3(mgl64.Mat3FromCols(xAxis.mgl(), yAxis.mgl(), zAxis.mgl()))
}

// NewMat3FromAxisAngle は正規化済み軸周りの回転行列を生成する。
func NewMat3FromAxisAngle(axis Vec3, radians float64) Mat3 {
	return Mat3(mgl64.HomogRotate3D(radians, axis.mgl()).Mat3())
}

// Col は列ベクトルを返す。
func (m Mat3) Col(index int) Vec3 {
	return vec3FromMgl(mgl64.Mat3(m).Col(index))
}

// At は行・列指定で要素を返す。
func (m Mat3) At(row, col int) float64 {
	return mgl64.Mat3(m).At(row, col)
}

// Muled は m * other を返す。
func (m Mat3) Muled(other Mat3) Mat3 {
	return Mat3(mgl64.Mat3(m).Mul3(mgl64.Mat3(other)))
}

// MulVec3 は m * v を返す。
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return vec3FromMgl(mgl64.Mat3(m).Mul3x1(v.mgl()))
}

// Inverted は逆行列を返す。
func (m Mat3) Inverted() Mat3 {
	return Mat3(mgl64.Mat3(m).Inv())
}

// Transposed は転置行列を返す。
func (m Mat3) Transposed() Mat3 {
	return Mat3(mgl64.Mat3(m).Transpose())
}

// ToMat4 は平行移動を付与した4x4行列を返す。
func (m Mat3) ToMat4(translation Vec3) Mat4 {
	mat := mgl64.Mat3(m).Mat4()
	mat.SetCol(3, translation.mgl().Vec4(1))
	return Mat4(mat)
}

// NearEquals は各要素の差が epsilon 以内か判定する。
func (m Mat3) NearEquals(other Mat3, epsilon float64) bool {
	for i := range m {
		if !scalar.EqualWithinAbs(m[i], other[i], epsilon) {
			return false
		}
	}
	return true
}

// NewMat4 は単位行列を生成する。
func NewMat4() Mat4 {
	return Mat4(mgl64.Ident4())
}

// NewTranslationMat4 は平行移動行列を生成する。
func NewTranslationMat4(v Vec3) Mat4 {
	return Mat4(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// NewScaleMat4 は拡縮行列を生成する。
func NewScaleMat4(v Vec3) Mat4 {
	return Mat4(mgl64.Scale3D(v.X, v.Y, v.Z))
}

// NewMat4FromSlice は列優先16要素から行列を生成する。
func NewMat4FromSlice(values []float64) (Mat4, error) {
	if len(values) != 16 {
		return NewMat4(), fmt.Errorf("行列の要素数が不正です: %d", len(values))
	}
	var m Mat4
	copy(m[:], values)
	return m, nil
}

// NewMat4FromLocRotScale は位置・回転・拡縮から T*R*S 行列を生成する。
func NewMat4FromLocRotScale(location Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return NewTranslationMat4(location).Muled(rotation.ToMat4()).Muled(NewScaleMat4(scale))
}

// Muled は m * other を返す。
func (m Mat4) Muled(other Mat4) Mat4 {
	return Mat4(mgl64.Mat4(m).Mul4(mgl64.Mat4(other)))
}

// Inverted は逆行列を返す。
func (m Mat4) Inverted() Mat4 {
	return Mat4(mgl64.Mat4(m).Inv())
}

// InvertedChecked は逆行列を返す。行列式が0に近い場合は ErrSingularMatrix を返す。
func (m Mat4) InvertedChecked() (Mat4, error) {
	if math.Abs(m.Det()) < singularDetEpsilon {
		return NewMat4(), ErrSingularMatrix
	}
	return m.Inverted(), nil
}

// Det は行列式を返す。
func (m Mat4) Det() float64 {
	return mgl64.Mat4(m).Det()
}

// MulVec3 は位置ベクトルとして変換した結果を返す。
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return vec3FromMgl(mgl64.TransformCoordinate(v.mgl(), mgl64.Mat4(m)))
}

// MulDirection は方向ベクトルとして(平行移動なしで)変換した結果を返す。
func (m Mat4) MulDirection(v Vec3) Vec3 {
	return vec3FromMgl(mgl64.TransformNormal(v.mgl(), mgl64.Mat4(m)))
}

// Translation は平行移動成分を返す。
func (m Mat4) Translation() Vec3 {
	return NewVec3(m[12], m[13], m[14])
}

// Axis は指定列の軸ベクトル(0:X, 1:Y, 2:Z)を返す。
func (m Mat4) Axis(index int) Vec3 {
	return vec3FromMgl(mgl64.Mat4(m).Col(index).Vec3())
}

// Mat3 は回転拡縮成分を返す。
func (m Mat4) Mat3() Mat3 {
	return Mat3(mgl64.Mat4(m).Mat3())
}

// Equals は要素が完全一致するか判定する。
func (m Mat4) Equals(other Mat4) bool {
	return m == other
}

// NearEquals は各要素の差が epsilon 以内か判定する。
func (m Mat4) NearEquals(other Mat4, epsilon float64) bool {
	for i := range m {
		if !scalar.EqualWithinAbs(m[i], other[i], epsilon) {
			return false
		}
	}
	return true
}

// IsIdentity は単位行列か判定する。
func (m Mat4) IsIdentity() bool {
	return m == NewMat4()
}

// Slice は列優先16要素を返す。
func (m Mat4) Slice() []float64 {
	values := make([]float64, len(m))
	copy(values, m[:])
	return values
}

// String は表示用文字列を返す。
func (m Mat4) String() string {
	return mgl64.Mat4(m).String()
}
