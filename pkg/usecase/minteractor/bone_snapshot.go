// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
	"github.com/tiendc/go-deepcopy"
)

// GetEditBoneDataDict は全編集ボーンのヘッド・テール・ロール・接続フラグを複製して返す。
func (uc *BoneUsecase) GetEditBoneDataDict(obj mhost.IArmatureObject) (EditBoneDataDict, error) {
	var bones []*armature.EditBone
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		copied, err := copyEditBones(editBones.Values())
		bones = copied
		return err
	})
	if err != nil {
		return nil, err
	}
	data := make(EditBoneDataDict, len(bones))
	for _, bone := range bones {
		data[bone.Name] = bone.Data()
	}
	return data, nil
}

// GetEditBoneMatrices は全編集ボーンの行列を複製して返す。
func (uc *BoneUsecase) GetEditBoneMatrices(obj mhost.IArmatureObject) (BoneMatrices, error) {
	var bones []*armature.EditBone
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		copied, err := copyEditBones(editBones.Values())
		bones = copied
		return err
	})
	if err != nil {
		return nil, err
	}
	matrices := make(BoneMatrices, len(bones))
	for _, bone := range bones {
		matrices[bone.Name] = bone.Matrix()
	}
	return matrices, nil
}

// GetPoseBoneMatrices はポーズモードで評価した全ポーズボーンの行列を複製して返す。
func (uc *BoneUsecase) GetPoseBoneMatrices(obj mhost.IArmatureObject) (BoneMatrices, error) {
	if obj == nil {
		return nil, fmt.Errorf("対象オブジェクトが未指定です")
	}
	var poseBones []*armature.PoseBone
	err := uc.withMode(obj, mhost.ModePose, func() error {
		if err := deepcopy.Copy(&poseBones, obj.PoseBones().Values()); err != nil {
			return fmt.Errorf("ポーズボーンの複製に失敗しました: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	matrices := make(BoneMatrices, len(poseBones))
	for _, poseBone := range poseBones {
		matrices[poseBone.Name] = poseBone.Matrix
	}
	return matrices, nil
}

// ApplyEditBoneDataDict はスナップショットを同名の編集ボーンへ書き戻し、書き戻した本数を返す。
// スナップショットに無いボーンと、シーンに無いスナップショットは変更しない。
func (uc *BoneUsecase) ApplyEditBoneDataDict(obj mhost.IArmatureObject, data EditBoneDataDict) (int, error) {
	count := 0
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		for _, bone := range editBones.Values() {
			snapshot, ok := data[bone.Name]
			if !ok {
				continue
			}
			bone.ApplyData(snapshot)
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logBoneInfo("スナップショット復元: object=%s count=%d/%d", obj.Name(), count, len(data))
	return count, nil
}

// copyEditBones は編集ボーンをホストから切り離した複製にする。
func copyEditBones(bones []*armature.EditBone) ([]*armature.EditBone, error) {
	var copied []*armature.EditBone
	if err := deepcopy.Copy(&copied, bones); err != nil {
		return nil, fmt.Errorf("編集ボーンの複製に失敗しました: %w", err)
	}
	return copied, nil
}
