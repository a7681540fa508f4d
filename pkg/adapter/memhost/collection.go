// 指示: miu200521358
package memhost

import (
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/domain/armature"
	"golang.org/x/text/unicode/norm"
)

// nameKey は照合用にボーン名をNFC正規化する。
func nameKey(name string) string {
	return norm.NFC.String(name)
}

// orderedCollection は登録順を保持する名前付き一覧。
type orderedCollection[T any] struct {
	names  []string
	values map[string]T
}

func newOrderedCollection[T any]() *orderedCollection[T] {
	return &orderedCollection[T]{values: map[string]T{}}
}

func (c *orderedCollection[T]) get(name string) (T, bool) {
	value, ok := c.values[nameKey(name)]
	return value, ok
}

func (c *orderedCollection[T]) has(name string) bool {
	_, ok := c.values[nameKey(name)]
	return ok
}

func (c *orderedCollection[T]) put(name string, value T) {
	key := nameKey(name)
	if _, exists := c.values[key]; !exists {
		c.names = append(c.names, key)
	}
	c.values[key] = value
}

func (c *orderedCollection[T]) remove(name string) bool {
	key := nameKey(name)
	if _, exists := c.values[key]; !exists {
		return false
	}
	delete(c.values, key)
	for i, n := range c.names {
		if n == key {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return true
}

func (c *orderedCollection[T]) list() []T {
	values := make([]T, 0, len(c.names))
	for _, name := range c.names {
		values = append(values, c.values[name])
	}
	return values
}

func (c *orderedCollection[T]) keys() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// BoneCollection は確定ボーン一覧。
type BoneCollection struct {
	items *orderedCollection[*armature.Bone]
}

func newBoneCollection() *BoneCollection {
	return &BoneCollection{items: newOrderedCollection[*armature.Bone]()}
}

// Get は名前でボーンを返す。
func (c *BoneCollection) Get(name string) (*armature.Bone, bool) {
	return c.items.get(name)
}

// Names は登録順のボーン名一覧を返す。
func (c *BoneCollection) Names() []string {
	return c.items.keys()
}

// Len はボーン数を返す。
func (c *BoneCollection) Len() int {
	return len(c.items.names)
}

// Values は登録順のボーン一覧を返す。
func (c *BoneCollection) Values() []*armature.Bone {
	return c.items.list()
}

// EditBoneCollection は編集ボーン一覧。
type EditBoneCollection struct {
	items *orderedCollection[*armature.EditBone]
}

func newEditBoneCollection() *EditBoneCollection {
	return &EditBoneCollection{items: newOrderedCollection[*armature.EditBone]()}
}

// Get は名前で編集ボーンを返す。
func (c *EditBoneCollection) Get(name string) (*armature.EditBone, bool) {
	return c.items.get(name)
}

// New は編集ボーンを追加する。同名がある場合は "name.001" 形式の連番名にする。
func (c *EditBoneCollection) New(name string) *armature.EditBone {
	unique := nameKey(name)
	for i := 1; c.items.has(unique); i++ {
		unique = fmt.Sprintf("%s.%03d", nameKey(name), i)
	}
	bone := armature.NewEditBone(unique)
	c.items.put(unique, bone)
	return bone
}

// Remove は編集ボーンを削除し、子ボーンを削除したボーンの親へ付け替える。
func (c *EditBoneCollection) Remove(name string) bool {
	removed, ok := c.items.get(name)
	if !ok {
		return false
	}
	c.items.remove(name)
	for _, child := range c.items.list() {
		if nameKey(child.ParentName) != nameKey(removed.Name) {
			continue
		}
		child.ParentName = removed.ParentName
		child.UseConnect = false
	}
	return true
}

// Values は登録順の編集ボーン一覧を返す。
func (c *EditBoneCollection) Values() []*armature.EditBone {
	return c.items.list()
}

// PoseBoneCollection はポーズボーン一覧。
type PoseBoneCollection struct {
	items *orderedCollection[*armature.PoseBone]
}

func newPoseBoneCollection() *PoseBoneCollection {
	return &PoseBoneCollection{items: newOrderedCollection[*armature.PoseBone]()}
}

// Get は名前でポーズボーンを返す。
func (c *PoseBoneCollection) Get(name string) (*armature.PoseBone, bool) {
	return c.items.get(name)
}

// Values は登録順のポーズボーン一覧を返す。
func (c *PoseBoneCollection) Values() []*armature.PoseBone {
	return c.items.list()
}
