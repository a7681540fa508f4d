// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
)

// SetBoneParenting は親ボーンと接続フラグを設定する。
// 親ボーンが存在する場合だけ親を付け替え、接続フラグは常に設定する。接続時はヘッドを親のテールへ合わせる。
func (uc *BoneUsecase) SetBoneParenting(obj mhost.IArmatureObject, boneName string, parentName string, useConnect bool) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, editBones mhost.IEditBoneCollection) error {
		parent, hasParent := editBones.Get(parentName)
		switch {
		case hasParent && parent.Name == bone.Name:
			logBoneWarn("%s: 自身を親にはできません: bone=%s", model.BoneWarningParentInvalid, bone.Name)
		case hasParent && isAncestorOf(editBones, bone.Name, parent):
			logBoneWarn("%s: 子孫ボーンを親にはできません: bone=%s parent=%s", model.BoneWarningParentInvalid, bone.Name, parent.Name)
		case hasParent:
			bone.ParentName = parent.Name
		case parentName != "":
			logBoneWarn("%s: 親ボーンが見つかりません: bone=%s parent=%s", model.BoneWarningParentNotFound, bone.Name, parentName)
		}

		bone.UseConnect = useConnect
		if useConnect {
			if current, ok := editBones.Get(bone.ParentName); ok {
				bone.Head = current.Tail
			}
		}
		logBoneDebug("親ボーン設定: bone=%s parent=%s connect=%t", bone.Name, bone.ParentName, bone.UseConnect)
		return nil
	})
}

// isAncestorOf は bone から親をたどった先に ancestorName があるか判定する。
func isAncestorOf(editBones mhost.IEditBoneCollection, ancestorName string, bone *armature.EditBone) bool {
	visited := map[string]struct{}{}
	current, ok := editBones.Get(bone.ParentName)
	for ok {
		if current.Name == ancestorName {
			return true
		}
		if _, seen := visited[current.Name]; seen {
			return false
		}
		visited[current.Name] = struct{}{}
		current, ok = editBones.Get(current.ParentName)
	}
	return false
}

// IsBoneInLayer は確定ボーンが指定レイヤーに所属するか返す。ボーンが無い場合やレイヤー番号が範囲外の場合は false。
func (uc *BoneUsecase) IsBoneInLayer(obj mhost.IArmatureObject, boneName string, index int) bool {
	if obj == nil {
		return false
	}
	bone, ok := obj.Bones().Get(boneName)
	if !ok {
		return false
	}
	return bone.IsInLayer(index)
}

// SetBoneLayer はボーンのレイヤー所属を設定する。ボーンが無い場合は found=false。
func (uc *BoneUsecase) SetBoneLayer(obj mhost.IArmatureObject, boneName string, index int, value bool) (bool, error) {
	if index < 0 || index >= armature.BoneLayerCount {
		logBoneWarn("%s: レイヤー番号が範囲外です: bone=%s index=%d", model.BoneWarningLayerOutOfRange, boneName, index)
		return false, fmt.Errorf("%w: %d", armature.ErrLayerIndexOutOfRange, index)
	}
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		return bone.Layers.Set(index, value)
	})
}

// CreateOrGetBone は確定ボーンがあればそれを返し、無ければ +Z 向き長さ1の編集ボーンを作成する。
func (uc *BoneUsecase) CreateOrGetBone(obj mhost.IArmatureObject, boneName string) (CreateOrGetBoneResult, error) {
	if obj == nil {
		return CreateOrGetBoneResult{}, fmt.Errorf("対象オブジェクトが未指定です")
	}
	if strings.TrimSpace(boneName) == "" {
		return CreateOrGetBoneResult{}, fmt.Errorf("ボーン名が未指定です")
	}
	if bone, ok := obj.Bones().Get(boneName); ok {
		return CreateOrGetBoneResult{Bone: bone}, nil
	}

	alreadyEditing := uc.isInMode(obj, mhost.ModeEdit)
	var editBone *armature.EditBone
	created := false
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		if existing, ok := editBones.Get(boneName); ok {
			editBone = existing
			return nil
		}
		editBone = editBones.New(boneName)
		editBone.Tail = mmath.UNIT_Z_VEC3
		created = true
		return nil
	})
	if err != nil {
		return CreateOrGetBoneResult{}, err
	}
	if created {
		logBoneInfo("ボーン作成: object=%s bone=%s", obj.Name(), editBone.Name)
	}
	if alreadyEditing {
		return CreateOrGetBoneResult{EditBone: editBone, Created: created}, nil
	}

	bone, ok := obj.Bones().Get(editBone.Name)
	if !ok {
		return CreateOrGetBoneResult{}, fmt.Errorf("作成したボーンが確定されていません: object=%s bone=%s", obj.Name(), editBone.Name)
	}
	return CreateOrGetBoneResult{Bone: bone, Created: created}, nil
}

// RemoveBone はボーンを1本削除する。ボーンが無い場合は found=false。
func (uc *BoneUsecase) RemoveBone(obj mhost.IArmatureObject, boneName string) (bool, error) {
	removed := false
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		removed = editBones.Remove(boneName)
		if !removed {
			logBoneDebug("%s: 削除対象ボーンが見つかりません: bone=%s", model.BoneWarningBoneNotFound, boneName)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// RemoveBonesStartWith は名前が prefix で始まる編集ボーンをすべて削除し、削除数を返す。
func (uc *BoneUsecase) RemoveBonesStartWith(obj mhost.IArmatureObject, prefix string) (int, error) {
	if prefix == "" {
		return 0, fmt.Errorf("削除対象の接頭辞が未指定です")
	}
	count := 0
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		removing := make([]string, 0)
		for _, bone := range editBones.Values() {
			if strings.HasPrefix(bone.Name, prefix) {
				removing = append(removing, bone.Name)
			}
		}
		for _, name := range removing {
			if editBones.Remove(name) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logBoneInfo("接頭辞指定ボーン削除: object=%s prefix=%s count=%d", obj.Name(), prefix, count)
	return count, nil
}

// RemoveBones は指定名のボーンを削除し、削除数を返す。見つからない名前は読み飛ばす。
func (uc *BoneUsecase) RemoveBones(obj mhost.IArmatureObject, boneNames []string) (int, error) {
	count := 0
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		for _, name := range boneNames {
			if editBones.Remove(name) {
				count++
				continue
			}
			logBoneDebug("%s: 削除対象ボーンが見つかりません: bone=%s", model.BoneWarningBoneNotFound, name)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logBoneInfo("ボーン削除: object=%s count=%d/%d", obj.Name(), count, len(boneNames))
	return count, nil
}

// GetPoseBone はポーズボーンを返す。確定ボーンが無い場合は ok=false。
func (uc *BoneUsecase) GetPoseBone(obj mhost.IArmatureObject, boneName string) (*armature.PoseBone, bool) {
	_, poseBone, ok := uc.GetBoneAndPoseBone(obj, boneName)
	return poseBone, ok
}

// GetBoneAndPoseBone は確定ボーンとポーズボーンを返す。どちらかが無い場合は ok=false。
func (uc *BoneUsecase) GetBoneAndPoseBone(obj mhost.IArmatureObject, boneName string) (*armature.Bone, *armature.PoseBone, bool) {
	if obj == nil {
		return nil, nil, false
	}
	bone, ok := obj.Bones().Get(boneName)
	if !ok {
		return nil, nil, false
	}
	poseBone, ok := obj.PoseBones().Get(boneName)
	if !ok {
		return nil, nil, false
	}
	return bone, poseBone, true
}
