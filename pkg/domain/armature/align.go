// 指示: miu200521358
package armature

import (
	"math"

	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

const alignAxisEpsilon = 1e-8

// AlignBoneXAxis はボーンのX軸が newXAxis へ最も近づくようにロールを調整する。
// X軸はボーンのY軸と直交したままなので、newXAxis をY軸に垂直な平面へ射影した方向に合わせる。
// newXAxis がY軸と平行な場合は ErrDegenerateAxis を返し、ロールは変更しない。
func AlignBoneXAxis(bone *EditBone, newXAxis mmath.Vec3) error {
	yAxis := bone.YAxis()
	if bone.Length() <= alignAxisEpsilon {
		return ErrDegenerateAxis
	}
	target := newXAxis.Cross(yAxis)
	if target.Length() <= alignAxisEpsilon {
		return ErrDegenerateAxis
	}
	target = target.Normalized()

	// acos の符号が決まらないので、正負両方向を試して内積が大きい方を採用する。
	angle := math.Acos(mmath.Clamp(bone.ZAxis().Dot(target), -1.0, 1.0))
	bone.Roll += angle
	dot1 := bone.ZAxis().Dot(target)
	bone.Roll -= angle * 2.0
	dot2 := bone.ZAxis().Dot(target)
	if dot1 > dot2 {
		bone.Roll += angle * 2.0
	}
	return nil
}
