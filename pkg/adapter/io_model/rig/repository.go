// 指示: miu200521358
// Package rig はリグ文書をYAMLで読み書きする。
package rig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/shared/logging"
	"gopkg.in/yaml.v3"
)

const (
	outputDirFileMode = 0o755
	outputFileMode    = 0o644
	yamlIndent        = 2
)

// RigRepository はリグ文書の読み書きを表す。
type RigRepository struct{}

// NewRigRepository はRigRepositoryを生成する。
func NewRigRepository() *RigRepository {
	return &RigRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *RigRepository) CanLoad(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load はリグ文書を読み込む。
func (r *RigRepository) Load(path string) (*model.RigDocument, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("%w: %s", ErrExtInvalid, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("リグ文書の読み取りに失敗しました: %s: %w", path, err)
	}
	logRigDebug("リグ読込ステップ: ファイル読み取り完了 bytes=%d", len(b))

	var file rigFile
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	doc, err := file.toDocument()
	if err != nil {
		return nil, err
	}
	logRigInfo("リグ読込完了: file=%s objects=%d", filepath.Base(path), len(doc.Objects))
	return doc, nil
}

// Save はリグ文書を保存する。保存先ディレクトリが無ければ作成する。
func (r *RigRepository) Save(path string, doc *model.RigDocument) error {
	if !r.CanLoad(path) {
		return fmt.Errorf("%w: %s", ErrExtInvalid, path)
	}
	if doc == nil {
		return fmt.Errorf("保存対象のリグ文書が未設定です")
	}
	file := newRigFile(doc)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("リグ文書の変換に失敗しました: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("リグ文書の変換に失敗しました: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, outputDirFileMode); err != nil {
			return fmt.Errorf("出力ディレクトリの作成に失敗しました: %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), outputFileMode); err != nil {
		return fmt.Errorf("リグ文書の書き込みに失敗しました: %s: %w", path, err)
	}
	logRigInfo("リグ保存完了: file=%s", filepath.Base(path))
	return nil
}

// rigFile はYAML上のリグ文書を表す。
type rigFile struct {
	Active  string       `yaml:"active,omitempty"`
	Mode    string       `yaml:"mode,omitempty"`
	Objects []rigFileObj `yaml:"objects"`
}

// rigFileObj はYAML上のオブジェクトを表す。回転はXYZオイラー角(度)。
type rigFileObj struct {
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Location []float64     `yaml:"location,flow,omitempty"`
	Rotation []float64     `yaml:"rotation,flow,omitempty"`
	Scale    []float64     `yaml:"scale,flow,omitempty"`
	Bones    []rigFileBone `yaml:"bones,omitempty"`
	Poses    []rigFilePose `yaml:"poses,omitempty"`
}

// rigFileBone はYAML上のボーンを表す。ロールは度。
type rigFileBone struct {
	Name    string    `yaml:"name"`
	Parent  string    `yaml:"parent,omitempty"`
	Connect bool      `yaml:"connect,omitempty"`
	Head    []float64 `yaml:"head,flow"`
	Tail    []float64 `yaml:"tail,flow"`
	Roll    float64   `yaml:"roll"`
	Layers  []int     `yaml:"layers,flow"`
}

// rigFilePose はYAML上のポーズチャンネルを表す。回転はクォータニオン(x, y, z, w)。
type rigFilePose struct {
	Bone     string    `yaml:"bone"`
	Location []float64 `yaml:"location,flow,omitempty"`
	Rotation []float64 `yaml:"rotation,flow,omitempty"`
	Scale    []float64 `yaml:"scale,flow,omitempty"`
}

// toDocument はYAML表現をリグ文書へ変換する。
func (f rigFile) toDocument() (*model.RigDocument, error) {
	doc := &model.RigDocument{
		ActiveObjectName: f.Active,
		Mode:             strings.ToUpper(f.Mode),
	}
	for i, fileObj := range f.Objects {
		label := fmt.Sprintf("objects[%d]", i)
		objectType := model.ObjectType(strings.ToUpper(fileObj.Type))
		if objectType == "" {
			objectType = model.ObjectTypeArmature
		}
		if objectType != model.ObjectTypeArmature && objectType != model.ObjectTypeEmpty {
			return nil, newParseFailed("%s.type が不正です: %s", label, fileObj.Type)
		}
		object := model.NewRigObject(fileObj.Name, objectType)

		var err error
		if object.Location, err = parseVec3(fileObj.Location, mmath.ZERO_VEC3, label+".location"); err != nil {
			return nil, err
		}
		if object.Rotation, err = parseVec3(fileObj.Rotation, mmath.ZERO_VEC3, label+".rotation"); err != nil {
			return nil, err
		}
		if object.Scale, err = parseVec3(fileObj.Scale, mmath.ONE_VEC3, label+".scale"); err != nil {
			return nil, err
		}
		if _, err := object.MatrixWorld().InvertedChecked(); err != nil {
			return nil, newParseFailed("%s.scale は0を含められません: %v", label, object.Scale)
		}

		for j, fileBone := range fileObj.Bones {
			bone, err := fileBone.toBone(fmt.Sprintf("%s.bones[%d]", label, j))
			if err != nil {
				return nil, err
			}
			object.Bones = append(object.Bones, bone)
		}
		for j, filePose := range fileObj.Poses {
			pose, err := filePose.toPose(fmt.Sprintf("%s.poses[%d]", label, j))
			if err != nil {
				return nil, err
			}
			object.Poses = append(object.Poses, pose)
		}
		doc.Objects = append(doc.Objects, object)
	}
	return doc, nil
}

// toBone はYAML表現をボーンへ変換する。
func (b rigFileBone) toBone(label string) (*armature.Bone, error) {
	bone := armature.NewBone(b.Name)
	bone.ParentName = b.Parent
	bone.UseConnect = b.Connect
	bone.Roll = mmath.DegToRad(b.Roll)

	var err error
	if bone.Head, err = parseVec3(b.Head, mmath.ZERO_VEC3, label+".head"); err != nil {
		return nil, err
	}
	if bone.Tail, err = parseVec3(b.Tail, mmath.UNIT_Z_VEC3, label+".tail"); err != nil {
		return nil, err
	}
	if b.Layers != nil {
		layers, err := armature.NewBoneLayers(b.Layers)
		if err != nil {
			return nil, newParseFailed("%s.layers が不正です: %v", label, err)
		}
		bone.Layers = layers
	}
	return bone, nil
}

// toPose はYAML表現をポーズチャンネルへ変換する。
func (p rigFilePose) toPose(label string) (*model.RigPose, error) {
	pose := &model.RigPose{BoneName: p.Bone}
	var err error
	if pose.Location, err = parseVec3(p.Location, mmath.ZERO_VEC3, label+".location"); err != nil {
		return nil, err
	}
	if pose.Rotation, err = parseQuaternion(p.Rotation, label+".rotation"); err != nil {
		return nil, err
	}
	if pose.Scale, err = parseVec3(p.Scale, mmath.ONE_VEC3, label+".scale"); err != nil {
		return nil, err
	}
	return pose, nil
}

// newRigFile はリグ文書をYAML表現へ変換する。
func newRigFile(doc *model.RigDocument) rigFile {
	file := rigFile{
		Active:  doc.ActiveObjectName,
		Mode:    doc.Mode,
		Objects: make([]rigFileObj, 0, len(doc.Objects)),
	}
	for _, object := range doc.Objects {
		fileObj := rigFileObj{
			Name:     object.Name,
			Type:     string(object.Type),
			Location: object.Location.Slice(),
			Rotation: object.Rotation.Slice(),
			Scale:    object.Scale.Slice(),
		}
		for _, bone := range object.Bones {
			fileObj.Bones = append(fileObj.Bones, rigFileBone{
				Name:    bone.Name,
				Parent:  bone.ParentName,
				Connect: bone.UseConnect,
				Head:    bone.Head.Slice(),
				Tail:    bone.Tail.Slice(),
				Roll:    mmath.RadToDeg(bone.Roll),
				Layers:  bone.Layers.LayerIndexes(),
			})
		}
		for _, pose := range object.Poses {
			x, y, z, w := pose.Rotation.XYZW()
			fileObj.Poses = append(fileObj.Poses, rigFilePose{
				Bone:     pose.BoneName,
				Location: pose.Location.Slice(),
				Rotation: []float64{x, y, z, w},
				Scale:    pose.Scale.Slice(),
			})
		}
		file.Objects = append(file.Objects, fileObj)
	}
	return file
}

// parseVec3 はスライスをVec3へ変換する。空なら既定値を返す。
func parseVec3(values []float64, defaultValue mmath.Vec3, label string) (mmath.Vec3, error) {
	if len(values) == 0 {
		return defaultValue, nil
	}
	v, err := mmath.NewVec3FromSlice(values)
	if err != nil {
		return mmath.ZERO_VEC3, newParseFailed("%s の要素数が不正です: %d", label, len(values))
	}
	return v, nil
}

// parseQuaternion はスライス(x, y, z, w)をQuaternionへ変換する。空なら単位クォータニオンを返す。
func parseQuaternion(values []float64, label string) (mmath.Quaternion, error) {
	if len(values) == 0 {
		return mmath.NewQuaternion(), nil
	}
	if len(values) != 4 {
		return mmath.NewQuaternion(), newParseFailed("%s の要素数が不正です: %d", label, len(values))
	}
	return mmath.NewQuaternionByValues(values[0], values[1], values[2], values[3]).Normalized(), nil
}

// logRigInfo はリグ入出力のINFOログを出力する。
func logRigInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logRigDebug はリグ入出力のDEBUGログを出力する。
func logRigDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}
