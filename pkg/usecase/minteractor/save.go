// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/moutput"
)

// SaveRig はリグ文書を保存する。rep が nil の場合は既定の保存リポジトリを使う。
func (uc *BoneUsecase) SaveRig(rep moutput.IRigWriter, path string, doc *RigDocument) error {
	writer := rep
	if writer == nil {
		writer = uc.rigWriter
	}
	if writer == nil {
		return fmt.Errorf("リグ保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if doc == nil {
		return fmt.Errorf("保存対象のリグ文書が未設定です")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("保存対象のリグ文書が不正です: %w", err)
	}
	if err := writer.Save(path, doc); err != nil {
		return err
	}
	logBoneInfo("リグ保存: path=%s", path)
	return nil
}
