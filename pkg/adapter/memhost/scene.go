// 指示: miu200521358
// Package memhost はボーン操作用のホスト契約をメモリ上で実装する。
// モード切替は Blender の挙動に合わせ、編集モードを抜けた時点で編集ボーンを確定ボーンへ反映する。
// 同時に一つのゴルーチンから使うことを前提とする。
package memhost

import (
	"fmt"
	"sync"

	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
)

// Scene はオブジェクト一覧とモード状態を保持する。
type Scene struct {
	mu         sync.Mutex
	objects    *orderedCollection[*Object]
	activeName string
	mode       mhost.Mode
	enterCount int
	exitCount  int
}

// NewScene は空のシーンを生成する。
func NewScene() *Scene {
	return &Scene{
		objects: newOrderedCollection[*Object](),
		mode:    mhost.ModeObject,
	}
}

// AddArmature はアーマチュアオブジェクトを追加する。
func (s *Scene) AddArmature(name string) (*Object, error) {
	return s.addObject(name, model.ObjectTypeArmature)
}

// AddEmpty はエンプティオブジェクトを追加する。
func (s *Scene) AddEmpty(name string) (*Object, error) {
	return s.addObject(name, model.ObjectTypeEmpty)
}

func (s *Scene) addObject(name string, objectType model.ObjectType) (*Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects.has(name) {
		return nil, fmt.Errorf("オブジェクト名が重複しています: %s", name)
	}
	object := newObject(s, name, objectType)
	s.objects.put(name, object)
	if s.activeName == "" {
		s.activeName = name
	}
	return object, nil
}

// Object は名前でオブジェクトを返す。
func (s *Scene) Object(name string) (*Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects.get(name)
}

// Objects は登録順のオブジェクト一覧を返す。
func (s *Scene) Objects() []*Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects.list()
}

// CurrentMode は現在のモードを返す。
func (s *Scene) CurrentMode() mhost.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ActiveObjectName はアクティブオブジェクト名を返す。
func (s *Scene) ActiveObjectName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeName
}

// ModeSwitchCount はモード切替(進入, 復帰)の累計回数を返す。
func (s *Scene) ModeSwitchCount() (enter int, exit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterCount, s.exitCount
}

// EnterMode は対象オブジェクトをアクティブにしてモードへ入る。
func (s *Scene) EnterMode(objectName string, mode mhost.Mode) (mhost.ModeToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.IsValid() {
		return mhost.ModeToken{}, fmt.Errorf("%w: %s", mhost.ErrInvalidMode, mode)
	}
	object, ok := s.objects.get(objectName)
	if !ok {
		return mhost.ModeToken{}, fmt.Errorf("%w: %s", mhost.ErrObjectNotFound, objectName)
	}
	if mode != mhost.ModeObject && object.objectType != model.ObjectTypeArmature {
		return mhost.ModeToken{}, fmt.Errorf("%w: アーマチュア以外は %s モードに入れません: %s", mhost.ErrInvalidMode, mode, objectName)
	}

	token := mhost.ModeToken{ActiveObjectName: s.activeName, Mode: s.mode}
	s.switchTo(objectName, mode)
	s.enterCount++
	return token, nil
}

// ExitMode はトークンの状態へ戻す。
func (s *Scene) ExitMode(token mhost.ModeToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !token.Mode.IsValid() {
		return fmt.Errorf("%w: %s", mhost.ErrInvalidMode, token.Mode)
	}
	if token.ActiveObjectName != "" && !s.objects.has(token.ActiveObjectName) {
		// 復帰先が消えている場合はオブジェクトモードへ戻す。
		s.switchTo("", mhost.ModeObject)
		s.exitCount++
		return fmt.Errorf("%w: %s", mhost.ErrObjectNotFound, token.ActiveObjectName)
	}
	s.switchTo(token.ActiveObjectName, token.Mode)
	s.exitCount++
	return nil
}

// switchTo は現在のモードを抜けて指定状態へ移る。呼び出し側でロックを保持すること。
func (s *Scene) switchTo(objectName string, mode mhost.Mode) {
	if current, ok := s.objects.get(s.activeName); ok && s.mode == mhost.ModeEdit {
		current.commitEdit()
	}
	s.activeName = objectName
	s.mode = mode
	if objectName == "" {
		s.mode = mhost.ModeObject
		return
	}
	object, ok := s.objects.get(objectName)
	if !ok {
		return
	}
	switch mode {
	case mhost.ModeEdit:
		object.beginEdit()
	case mhost.ModePose:
		object.evaluatePose()
	}
}
