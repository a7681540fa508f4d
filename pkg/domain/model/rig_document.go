// 指示: miu200521358
// Package model はリグ文書(オブジェクトとボーン構成)を表す。
package model

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

// ObjectType はオブジェクト種別を表す。
type ObjectType string

const (
	// ObjectTypeArmature はアーマチュアオブジェクト。
	ObjectTypeArmature ObjectType = "ARMATURE"
	// ObjectTypeEmpty は行列だけを持つエンプティオブジェクト。
	ObjectTypeEmpty ObjectType = "EMPTY"
)

// RigDocument はシーン全体(オブジェクト一覧とアクティブ状態)を表す。
type RigDocument struct {
	ActiveObjectName string
	Mode             string
	Objects          []*RigObject
}

// RigObject はシーン内のオブジェクトを表す。回転はXYZオイラー角(度)。
type RigObject struct {
	Name     string
	Type     ObjectType
	Location mmath.Vec3
	Rotation mmath.Vec3
	Scale    mmath.Vec3
	Bones    []*armature.Bone
	Poses    []*RigPose
}

// RigPose はポーズチャンネルを表す。
type RigPose struct {
	BoneName string
	Location mmath.Vec3
	Rotation mmath.Quaternion
	Scale    mmath.Vec3
}

// NewRigObject は単位変換のオブジェクトを生成する。
func NewRigObject(name string, objectType ObjectType) *RigObject {
	return &RigObject{
		Name:  name,
		Type:  objectType,
		Scale: mmath.ONE_VEC3,
	}
}

// MatrixWorld はオブジェクトのワールド変換行列を返す。
func (o *RigObject) MatrixWorld() mmath.Mat4 {
	return mmath.NewMat4FromLocRotScale(
		o.Location,
		mmath.NewQuaternionFromDegrees(o.Rotation.X, o.Rotation.Y, o.Rotation.Z),
		o.Scale,
	)
}

// Validate は文書の整合性を検証する。
func (d *RigDocument) Validate() error {
	if d == nil {
		return fmt.Errorf("リグ文書が未設定です")
	}
	objectNames := map[string]struct{}{}
	for _, object := range d.Objects {
		if object == nil {
			return fmt.Errorf("オブジェクトが空です")
		}
		if strings.TrimSpace(object.Name) == "" {
			return fmt.Errorf("オブジェクト名が未指定です")
		}
		if _, exists := objectNames[object.Name]; exists {
			return fmt.Errorf("オブジェクト名が重複しています: %s", object.Name)
		}
		objectNames[object.Name] = struct{}{}
		if err := object.validateBones(); err != nil {
			return err
		}
	}
	if d.ActiveObjectName != "" {
		if _, exists := objectNames[d.ActiveObjectName]; !exists {
			return fmt.Errorf("アクティブオブジェクトが見つかりません: %s", d.ActiveObjectName)
		}
	}
	return nil
}

// validateBones はボーン名の重複と親参照を検証する。
func (o *RigObject) validateBones() error {
	if o.Type != ObjectTypeArmature && len(o.Bones) > 0 {
		return fmt.Errorf("アーマチュア以外のオブジェクトにボーンがあります: %s", o.Name)
	}
	boneNames := map[string]struct{}{}
	for _, bone := range o.Bones {
		if bone == nil || strings.TrimSpace(bone.Name) == "" {
			return fmt.Errorf("ボーン名が未指定です: object=%s", o.Name)
		}
		if _, exists := boneNames[bone.Name]; exists {
			return fmt.Errorf("ボーン名が重複しています: object=%s bone=%s", o.Name, bone.Name)
		}
		boneNames[bone.Name] = struct{}{}
	}
	for _, bone := range o.Bones {
		if bone.ParentName == "" {
			continue
		}
		if _, exists := boneNames[bone.ParentName]; !exists {
			return fmt.Errorf("親ボーンが見つかりません: object=%s bone=%s parent=%s", o.Name, bone.Name, bone.ParentName)
		}
	}
	parents := make(map[string]string, len(o.Bones))
	for _, bone := range o.Bones {
		parents[bone.Name] = bone.ParentName
	}
	for _, bone := range o.Bones {
		if hasParentCycle(parents, bone.Name) {
			return fmt.Errorf("親ボーンが循環しています: object=%s bone=%s", o.Name, bone.Name)
		}
	}
	for _, pose := range o.Poses {
		if _, exists := boneNames[pose.BoneName]; !exists {
			return fmt.Errorf("ポーズ対象ボーンが見つかりません: object=%s bone=%s", o.Name, pose.BoneName)
		}
	}
	return nil
}

// hasParentCycle は name から親をたどって自身へ戻るか判定する。
func hasParentCycle(parents map[string]string, name string) bool {
	current := parents[name]
	for steps := 0; current != ""; steps++ {
		if current == name || steps > len(parents) {
			return true
		}
		current = parents[current]
	}
	return false
}
