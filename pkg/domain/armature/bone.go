// 指示: miu200521358
package armature

import (
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
)

// BoneLayerCount はボーンレイヤー数。
const BoneLayerCount = 32

// BoneLayers はボーンのレイヤー所属を表す。
type BoneLayers [BoneLayerCount]bool

// Bone は確定済み(編集モード外)のボーンを表す。
// Head, Tail はアーマチュア空間の座標。
type Bone struct {
	Name       string
	ParentName string
	UseConnect bool
	Head       mmath.Vec3
	Tail       mmath.Vec3
	Roll       float64
	Layers     BoneLayers
}

// NewBone は既定レイヤー(0番)に所属するボーンを生成する。
func NewBone(name string) *Bone {
	bone := &Bone{Name: name, Tail: mmath.UNIT_Z_VEC3}
	bone.Layers[0] = true
	return bone
}

// Length はボーン長を返す。
func (b *Bone) Length() float64 {
	return b.Tail.Subed(b.Head).Length()
}

// MatrixLocal はアーマチュア空間でのボーン行列を返す。
func (b *Bone) MatrixLocal() mmath.Mat4 {
	return VecRollToMat3(b.Tail.Subed(b.Head), b.Roll).ToMat4(b.Head)
}

// XAxis はボーンのX軸を返す。
func (b *Bone) XAxis() mmath.Vec3 {
	return VecRollToMat3(b.Tail.Subed(b.Head), b.Roll).Col(0)
}

// YAxis はボーンのY軸を返す。
func (b *Bone) YAxis() mmath.Vec3 {
	return VecRollToMat3(b.Tail.Subed(b.Head), b.Roll).Col(1)
}

// ZAxis はボーンのZ軸を返す。
func (b *Bone) ZAxis() mmath.Vec3 {
	return VecRollToMat3(b.Tail.Subed(b.Head), b.Roll).Col(2)
}

// IsInLayer は指定レイヤーへ所属しているか返す。範囲外は false。
func (b *Bone) IsInLayer(index int) bool {
	return b.Layers.Has(index)
}

// SetLayer は指定レイヤーへの所属を設定する。
func (b *Bone) SetLayer(index int, value bool) error {
	return b.Layers.Set(index, value)
}

// Has は指定レイヤーへ所属しているか返す。範囲外は false。
func (l BoneLayers) Has(index int) bool {
	if index < 0 || index >= BoneLayerCount {
		return false
	}
	return l[index]
}

// Set は指定レイヤーへの所属を設定する。
func (l *BoneLayers) Set(index int, value bool) error {
	if index < 0 || index >= BoneLayerCount {
		return fmt.Errorf("%w: %d", ErrLayerIndexOutOfRange, index)
	}
	l[index] = value
	return nil
}

// LayerIndexes は所属レイヤー番号一覧を返す。
func (l BoneLayers) LayerIndexes() []int {
	indexes := make([]int, 0, BoneLayerCount)
	for i, v := range l {
		if v {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// NewBoneLayers はレイヤー番号一覧からレイヤー所属を生成する。
func NewBoneLayers(indexes []int) (BoneLayers, error) {
	var layers BoneLayers
	for _, index := range indexes {
		if index < 0 || index >= BoneLayerCount {
			return layers, fmt.Errorf("%w: %d", ErrLayerIndexOutOfRange, index)
		}
		layers[index] = true
	}
	return layers, nil
}
