// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
)

// RigDocument は操作対象のリグ文書を表す。
type RigDocument = model.RigDocument

// CreateOrGetBoneResult はボーン取得または作成の結果を表す。
// 呼び出し前から編集モードだった場合は EditBone、それ以外は確定済みの Bone が入る。
type CreateOrGetBoneResult struct {
	Bone     *armature.Bone
	EditBone *armature.EditBone
	Created  bool
}

// Name は結果ボーンの名前を返す。作成時に名前が重複していた場合は連番付きの名前になる。
func (r CreateOrGetBoneResult) Name() string {
	if r.Bone != nil {
		return r.Bone.Name
	}
	if r.EditBone != nil {
		return r.EditBone.Name
	}
	return ""
}

// WorldHeadTail はボーンのワールド空間での位置と向きを表す。
type WorldHeadTail struct {
	// Matrix はオブジェクトのワールド変換行列。
	Matrix mmath.Mat4
	Head   mmath.Vec3
	Tail   mmath.Vec3
	XAxis  mmath.Vec3
}

// EditBoneDataDict はボーン名ごとの編集ボーンスナップショットを表す。
type EditBoneDataDict map[string]armature.EditBoneData

// BoneMatrices はボーン名ごとの行列を表す。
type BoneMatrices map[string]mmath.Mat4
