// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
)

// ShiftBones は全編集ボーンのヘッドとテールを matrix で変換する。
// 親に接続したボーンのヘッドは変換後の親テールへ合わせる。
func (uc *BoneUsecase) ShiftBones(obj mhost.IArmatureObject, matrix mmath.Mat4) error {
	return uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		bones := editBones.Values()
		for _, bone := range bones {
			if !bone.UseConnect {
				bone.Head = matrix.MulVec3(bone.Head)
			}
			bone.Tail = matrix.MulVec3(bone.Tail)
		}
		for _, bone := range bones {
			if !bone.UseConnect {
				continue
			}
			if parent, ok := editBones.Get(bone.ParentName); ok {
				bone.Head = parent.Tail
			}
		}
		logBoneDebug("ボーン一括変換: object=%s count=%d", obj.Name(), len(bones))
		return nil
	})
}

// SetLocalHeadTail はアーマチュア空間のヘッドとテールを設定し、ロールを0にする。
func (uc *BoneUsecase) SetLocalHeadTail(obj mhost.IArmatureObject, boneName string, head, tail mmath.Vec3) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		bone.Head = head
		bone.Tail = tail
		bone.Roll = 0
		return nil
	})
}

// SetLocalTail はアーマチュア空間のテールだけを設定する。
func (uc *BoneUsecase) SetLocalTail(obj mhost.IArmatureObject, boneName string, tail mmath.Vec3) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		bone.Tail = tail
		return nil
	})
}

// SetEditBoneMatrix はボーン行列を設定してからボーン長を設定する。length が0以下なら既定長を使う。
func (uc *BoneUsecase) SetEditBoneMatrix(obj mhost.IArmatureObject, boneName string, matrix mmath.Mat4, length float64) (bool, error) {
	if length <= 0 {
		length = uc.defaultBoneLength
	}
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		bone.SetMatrix(matrix)
		bone.SetLength(length)
		return nil
	})
}

// SetEditBoneMatrixByObject は対象オブジェクトのローカル行列をボーン行列として設定する。
func (uc *BoneUsecase) SetEditBoneMatrixByObject(obj mhost.IArmatureObject, boneName string, target mhost.IObject, length float64) (bool, error) {
	if target == nil {
		return false, fmt.Errorf("行列の参照先オブジェクトが未指定です")
	}
	return uc.SetEditBoneMatrix(obj, boneName, target.MatrixLocal(), length)
}

// SetEditBoneMatrixWorld はワールド空間の行列をオブジェクト空間へ戻してボーン行列に設定する。
func (uc *BoneUsecase) SetEditBoneMatrixWorld(obj mhost.IArmatureObject, boneName string, matrix mmath.Mat4) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		inv, err := worldInverse(obj)
		if err != nil {
			return err
		}
		bone.SetMatrix(inv.Muled(matrix))
		return nil
	})
}

// SetWorldTail はワールド空間のテールを設定する。
func (uc *BoneUsecase) SetWorldTail(obj mhost.IArmatureObject, boneName string, tail mmath.Vec3) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		inv, err := worldInverse(obj)
		if err != nil {
			return err
		}
		bone.Tail = inv.MulVec3(tail)
		return nil
	})
}

// SetWorldHeadTail はワールド空間のヘッドとテールを設定し、ロールを0にする。
func (uc *BoneUsecase) SetWorldHeadTail(obj mhost.IArmatureObject, boneName string, head, tail mmath.Vec3) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		inv, err := worldInverse(obj)
		if err != nil {
			return err
		}
		bone.Head = inv.MulVec3(head)
		bone.Tail = inv.MulVec3(tail)
		bone.Roll = 0
		return nil
	})
}

// SetWorldHeadTailXAxis はワールド空間のヘッドとテールを設定し、X軸が xAxis(ワールド空間の方向)へ向くようロールを合わせる。
// xAxis がボーンの向きと平行な場合は位置だけ設定して armature.ErrDegenerateAxis を返す。
func (uc *BoneUsecase) SetWorldHeadTailXAxis(obj mhost.IArmatureObject, boneName string, head, tail, xAxis mmath.Vec3) (bool, error) {
	return uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		inv, err := worldInverse(obj)
		if err != nil {
			return err
		}
		bone.Head = inv.MulVec3(head)
		bone.Tail = inv.MulVec3(tail)
		if err := armature.AlignBoneXAxis(bone, inv.MulDirection(xAxis)); err != nil {
			if errors.Is(err, armature.ErrDegenerateAxis) {
				logBoneWarn("%s: X軸を合わせられません: bone=%s x=%v", model.BoneWarningDegenerateAxis, bone.Name, xAxis)
			}
			return fmt.Errorf("ボーンのX軸合わせに失敗しました: bone=%s: %w", bone.Name, err)
		}
		return nil
	})
}

// GetWorldHeadTail はボーンのワールド空間でのヘッド、テール、X軸を返す。X軸は方向として変換する。
func (uc *BoneUsecase) GetWorldHeadTail(obj mhost.IArmatureObject, boneName string) (WorldHeadTail, bool, error) {
	var result WorldHeadTail
	found, err := uc.withEditBone(obj, boneName, func(bone *armature.EditBone, _ mhost.IEditBoneCollection) error {
		matrix := obj.MatrixWorld()
		result = WorldHeadTail{
			Matrix: matrix,
			Head:   matrix.MulVec3(bone.Head),
			Tail:   matrix.MulVec3(bone.Tail),
			XAxis:  matrix.MulDirection(bone.XAxis()),
		}
		return nil
	})
	if err != nil || !found {
		return WorldHeadTail{}, found, err
	}
	return result, true, nil
}

// worldInverse はオブジェクトのワールド行列の逆行列を返す。拡縮0などで逆行列が無い場合はエラー。
func worldInverse(obj mhost.IObject) (mmath.Mat4, error) {
	inv, err := obj.MatrixWorld().InvertedChecked()
	if err != nil {
		return inv, fmt.Errorf("ワールド空間から変換できません: object=%s: %w", obj.Name(), err)
	}
	return inv, nil
}
