// 指示: miu200521358
package memhost

import (
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
	"github.com/tiendc/go-deepcopy"
)

// NewSceneFromDocument はリグ文書からシーンを構築する。
func NewSceneFromDocument(doc *model.RigDocument) (*Scene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	scene := NewScene()
	for _, rigObject := range doc.Objects {
		object, err := scene.addObject(rigObject.Name, rigObject.Type)
		if err != nil {
			return nil, err
		}
		object.SetTransform(rigObject.Location, rigObject.Rotation, rigObject.Scale)
		for _, rigBone := range rigObject.Bones {
			bone := &armature.Bone{}
			if err := deepcopy.Copy(bone, rigBone); err != nil {
				return nil, fmt.Errorf("ボーンの複製に失敗しました: %w", err)
			}
			if err := object.AddBone(bone); err != nil {
				return nil, err
			}
		}
		for _, pose := range rigObject.Poses {
			object.SetPose(pose.BoneName, pose.Location, pose.Rotation, pose.Scale)
		}
	}

	if doc.ActiveObjectName != "" {
		scene.activeName = doc.ActiveObjectName
	}
	mode := mhost.Mode(doc.Mode)
	if mode == "" {
		mode = mhost.ModeObject
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %s", mhost.ErrInvalidMode, doc.Mode)
	}
	if mode != mhost.ModeObject {
		active, ok := scene.objects.get(scene.activeName)
		if !ok || active.objectType != model.ObjectTypeArmature {
			return nil, fmt.Errorf("%w: アーマチュア以外は %s モードに入れません: %s", mhost.ErrInvalidMode, mode, scene.activeName)
		}
	}
	scene.switchTo(scene.activeName, mode)
	return scene, nil
}

// ToDocument はシーンをリグ文書へ書き出す。編集中のオブジェクトは編集ボーンの内容を書き出す。
func (s *Scene) ToDocument() (*model.RigDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &model.RigDocument{
		ActiveObjectName: s.activeName,
		Mode:             string(s.mode),
	}
	for _, object := range s.objects.list() {
		rigObject := model.NewRigObject(object.name, object.objectType)
		rigObject.Location = object.location
		rigObject.Rotation = object.rotation
		rigObject.Scale = object.scale

		bones := object.bones.Values()
		if object.editBones != nil {
			bones = bones[:0:0]
			for _, editBone := range object.editBones.Values() {
				bones = append(bones, editBone.ToBone())
			}
		}
		if err := deepcopy.Copy(&rigObject.Bones, bones); err != nil {
			return nil, fmt.Errorf("ボーンの複製に失敗しました: %w", err)
		}

		for _, poseBone := range object.poseBones.Values() {
			if isRestPose(poseBone) {
				continue
			}
			rigObject.Poses = append(rigObject.Poses, &model.RigPose{
				BoneName: poseBone.Name,
				Location: poseBone.Location,
				Rotation: poseBone.Rotation,
				Scale:    poseBone.Scale,
			})
		}
		doc.Objects = append(doc.Objects, rigObject)
	}
	return doc, nil
}

func isRestPose(poseBone *armature.PoseBone) bool {
	return poseBone.Location.IsZero() &&
		poseBone.Scale.Equals(mmath.ONE_VEC3) &&
		poseBone.Rotation == mmath.NewQuaternion()
}
