// 指示: miu200521358
// Package mhost はボーン操作が依存するホストアプリケーションの契約を表す。
package mhost

import (
	"errors"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

// Mode はホストの編集モードを表す。
type Mode string

const (
	// ModeObject はオブジェクトモード。
	ModeObject Mode = "OBJECT"
	// ModeEdit はアーマチュア編集モード。
	ModeEdit Mode = "EDIT"
	// ModePose はポーズモード。
	ModePose Mode = "POSE"
)

// IsValid は既知のモードか判定する。
func (m Mode) IsValid() bool {
	switch m {
	case ModeObject, ModeEdit, ModePose:
		return true
	}
	return false
}

// ModeToken は一時的なモード切替前のアクティブオブジェクトとモードを表す。
type ModeToken struct {
	ActiveObjectName string
	Mode             Mode
}

var (
	// ErrObjectNotFound はオブジェクトが見つからない場合のエラー。
	ErrObjectNotFound = errors.New("オブジェクトが見つかりません")
	// ErrNotInEditMode は編集モード外で編集ボーンへアクセスした場合のエラー。
	ErrNotInEditMode = errors.New("編集モードではありません")
	// ErrInvalidMode は未知のモードが指定された場合のエラー。
	ErrInvalidMode = errors.New("モードが不正です")
)

// IHost はモード切替を提供するホストの契約を表す。
type IHost interface {
	// CurrentMode は現在のモードを返す。
	CurrentMode() Mode
	// ActiveObjectName は現在のアクティブオブジェクト名を返す。
	ActiveObjectName() string
	// EnterMode は対象オブジェクトをアクティブにしてモードへ入り、復元用トークンを返す。
	EnterMode(objectName string, mode Mode) (ModeToken, error)
	// ExitMode はトークンの状態へ戻す。
	ExitMode(token ModeToken) error
}

// IObject は変換行列を持つオブジェクトの契約を表す。
type IObject interface {
	Name() string
	// MatrixWorld はワールド変換行列を返す。
	MatrixWorld() mmath.Mat4
	// MatrixLocal は親に対するローカル変換行列を返す。
	MatrixLocal() mmath.Mat4
}

// IArmatureObject はアーマチュアを持つオブジェクトの契約を表す。
type IArmatureObject interface {
	IObject
	// Bones は確定ボーン一覧を返す。
	Bones() IBoneCollection
	// EditBones は編集ボーン一覧を返す。編集モード外では ErrNotInEditMode を返す。
	EditBones() (IEditBoneCollection, error)
	// PoseBones はポーズボーン一覧を返す。
	PoseBones() IPoseBoneCollection
}

// IBoneCollection は確定ボーン一覧の契約を表す。
type IBoneCollection interface {
	Get(name string) (*armature.Bone, bool)
	Names() []string
	Len() int
}

// IEditBoneCollection は編集ボーン一覧の契約を表す。
type IEditBoneCollection interface {
	Get(name string) (*armature.EditBone, bool)
	// New は新しい編集ボーンを追加する。同名がある場合は連番を付けた名前で追加する。
	New(name string) *armature.EditBone
	// Remove は編集ボーンを削除する。子ボーンの親は削除されたボーンの親へ付け替える。
	Remove(name string) bool
	// Values は登録順の編集ボーン一覧を返す。
	Values() []*armature.EditBone
}

// IPoseBoneCollection はポーズボーン一覧の契約を表す。
type IPoseBoneCollection interface {
	Get(name string) (*armature.PoseBone, bool)
	Values() []*armature.PoseBone
}
