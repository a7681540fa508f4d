// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/moutput"
)

// LoadRig はリグ文書を読み込んで検証する。rep が nil の場合は既定の読み込みリポジトリを使う。
func (uc *BoneUsecase) LoadRig(rep moutput.IRigReader, path string) (*RigDocument, error) {
	repo := rep
	if repo == nil {
		repo = uc.rigReader
	}
	if repo == nil {
		return nil, fmt.Errorf("リグ読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("入力リグパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("読み込めないリグ形式です: %s", path)
	}
	doc, err := repo.Load(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("リグ文書が不正です: %s: %w", path, err)
	}
	logBoneInfo("リグ読み込み: path=%s objects=%d", path, len(doc.Objects))
	return doc, nil
}
