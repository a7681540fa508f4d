// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
)

// boneWorldValues は比較用のワールド空間ヘッド・テールとポーズ軸を表す。
type boneWorldValues struct {
	head  mmath.Vec3
	tail  mmath.Vec3
	xAxis mmath.Vec3
	yAxis mmath.Vec3
	zAxis mmath.Vec3
}

// AreBonesSameValues は2本のボーンのワールド空間ヘッド・テールとポーズ軸が完全一致するか判定する。
// どちらかのボーンが無い場合は found=false。
func (uc *BoneUsecase) AreBonesSameValues(obj mhost.IArmatureObject, boneName string, obj2 mhost.IArmatureObject, boneName2 string) (same bool, found bool) {
	left, ok := uc.boneWorldValues(obj, boneName)
	if !ok {
		return false, false
	}
	right, ok := uc.boneWorldValues(obj2, boneName2)
	if !ok {
		return false, false
	}
	return left.head.Equals(right.head) &&
		left.tail.Equals(right.tail) &&
		left.xAxis.Equals(right.xAxis) &&
		left.yAxis.Equals(right.yAxis) &&
		left.zAxis.Equals(right.zAxis), true
}

// AreBonesNearValues は AreBonesSameValues を設定の許容誤差(絶対または相対)で判定する。
func (uc *BoneUsecase) AreBonesNearValues(obj mhost.IArmatureObject, boneName string, obj2 mhost.IArmatureObject, boneName2 string) (same bool, found bool) {
	left, ok := uc.boneWorldValues(obj, boneName)
	if !ok {
		return false, false
	}
	right, ok := uc.boneWorldValues(obj2, boneName2)
	if !ok {
		return false, false
	}
	near := func(a, b mmath.Vec3) bool {
		return a.NearEqualsAbsOrRel(b, uc.nearAbsTolerance, uc.nearRelTolerance)
	}
	return near(left.head, right.head) &&
		near(left.tail, right.tail) &&
		near(left.xAxis, right.xAxis) &&
		near(left.yAxis, right.yAxis) &&
		near(left.zAxis, right.zAxis), true
}

// boneWorldValues は確定ボーンのヘッド・テールをワールド空間へ変換し、ポーズボーンの軸と合わせて返す。
func (uc *BoneUsecase) boneWorldValues(obj mhost.IArmatureObject, boneName string) (boneWorldValues, bool) {
	bone, poseBone, ok := uc.GetBoneAndPoseBone(obj, boneName)
	if !ok {
		logBoneDebug("比較対象ボーンが見つかりません: bone=%s", boneName)
		return boneWorldValues{}, false
	}
	matrix := obj.MatrixWorld()
	return boneWorldValues{
		head:  matrix.MulVec3(bone.Head),
		tail:  matrix.MulVec3(bone.Tail),
		xAxis: poseBone.XAxis(),
		yAxis: poseBone.YAxis(),
		zAxis: poseBone.ZAxis(),
	}, true
}
