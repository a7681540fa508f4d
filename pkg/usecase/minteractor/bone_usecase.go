// 指示: miu200521358
// Package minteractor はホスト上のボーンを操作するユースケースを提供する。
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/shared/logging"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/moutput"
)

const (
	defaultBoneLength       = 1.0
	defaultNearAbsTolerance = 1e-6
	defaultNearRelTolerance = 1e-9
)

// BoneUsecaseDeps はボーン操作ユースケースの依存を表す。
type BoneUsecaseDeps struct {
	Host      mhost.IHost
	RigReader moutput.IRigReader
	RigWriter moutput.IRigWriter
	// DefaultBoneLength は行列指定で長さが0以下のときに使うボーン長。
	DefaultBoneLength float64
	NearAbsTolerance  float64
	NearRelTolerance  float64
}

// BoneUsecase はボーン操作をまとめたユースケースを表す。
type BoneUsecase struct {
	host              mhost.IHost
	rigReader         moutput.IRigReader
	rigWriter         moutput.IRigWriter
	defaultBoneLength float64
	nearAbsTolerance  float64
	nearRelTolerance  float64
}

// NewBoneUsecase はボーン操作ユースケースを生成する。
func NewBoneUsecase(deps BoneUsecaseDeps) *BoneUsecase {
	uc := &BoneUsecase{
		host:              deps.Host,
		rigReader:         deps.RigReader,
		rigWriter:         deps.RigWriter,
		defaultBoneLength: deps.DefaultBoneLength,
		nearAbsTolerance:  deps.NearAbsTolerance,
		nearRelTolerance:  deps.NearRelTolerance,
	}
	if uc.defaultBoneLength <= 0 {
		uc.defaultBoneLength = defaultBoneLength
	}
	if uc.nearAbsTolerance <= 0 {
		uc.nearAbsTolerance = defaultNearAbsTolerance
	}
	if uc.nearRelTolerance <= 0 {
		uc.nearRelTolerance = defaultNearRelTolerance
	}
	return uc
}

// withMode は obj を mode にした状態で fn を実行し、終了時に元のアクティブオブジェクトとモードへ戻す。
// 既に obj が mode でアクティブな場合は切替も復元もしない。
// 異なるオブジェクトを対象に入れ子で呼ぶと外側のモードは内側の復元まで失われる。
func (uc *BoneUsecase) withMode(obj mhost.IObject, mode mhost.Mode, fn func() error) (err error) {
	if uc.host == nil {
		return fmt.Errorf("ホストが設定されていません")
	}
	if obj == nil {
		return fmt.Errorf("対象オブジェクトが未指定です")
	}
	if uc.host.CurrentMode() == mode && uc.host.ActiveObjectName() == obj.Name() {
		return fn()
	}

	token, err := uc.host.EnterMode(obj.Name(), mode)
	if err != nil {
		return fmt.Errorf("%sモードへの切替に失敗しました: object=%s: %w", mode, obj.Name(), err)
	}
	defer func() {
		if exitErr := uc.host.ExitMode(token); exitErr != nil && err == nil {
			err = fmt.Errorf("モードの復元に失敗しました: object=%s: %w", obj.Name(), exitErr)
		}
	}()
	return fn()
}

// isInMode は obj が mode でアクティブか判定する。
func (uc *BoneUsecase) isInMode(obj mhost.IObject, mode mhost.Mode) bool {
	if uc.host == nil || obj == nil {
		return false
	}
	return uc.host.CurrentMode() == mode && uc.host.ActiveObjectName() == obj.Name()
}

// withEditBones は編集モードで編集ボーン一覧を渡して fn を実行する。
func (uc *BoneUsecase) withEditBones(obj mhost.IArmatureObject, fn func(editBones mhost.IEditBoneCollection) error) error {
	if obj == nil {
		return fmt.Errorf("対象オブジェクトが未指定です")
	}
	return uc.withMode(obj, mhost.ModeEdit, func() error {
		editBones, err := obj.EditBones()
		if err != nil {
			return err
		}
		return fn(editBones)
	})
}

// withEditBone は名前で引いた編集ボーンに fn を実行する。見つからない場合は found=false。
func (uc *BoneUsecase) withEditBone(
	obj mhost.IArmatureObject,
	boneName string,
	fn func(bone *armature.EditBone, editBones mhost.IEditBoneCollection) error,
) (bool, error) {
	found := false
	err := uc.withEditBones(obj, func(editBones mhost.IEditBoneCollection) error {
		bone, ok := editBones.Get(boneName)
		if !ok {
			logBoneDebug("編集ボーンが見つかりません: object=%s bone=%s", obj.Name(), boneName)
			return nil
		}
		found = true
		return fn(bone, editBones)
	})
	return found, err
}

// logBoneInfo はボーン操作のINFOログを出力する。
func logBoneInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logBoneDebug はボーン操作のDEBUGログを出力する。
func logBoneDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logBoneWarn はボーン操作のWARNログを出力する。
func logBoneWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}
