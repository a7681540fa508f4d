// 指示: miu200521358
package rig

import (
	"errors"
	"fmt"
)

var (
	// ErrExtInvalid は拡張子がリグ文書でない場合のエラー。
	ErrExtInvalid = errors.New("リグ文書の拡張子ではありません")
	// ErrFileNotFound はファイルが存在しない場合のエラー。
	ErrFileNotFound = errors.New("ファイルが見つかりません")
	// ErrParseFailed は文書の解析に失敗した場合のエラー。
	ErrParseFailed = errors.New("リグ文書の解析に失敗しました")
)

// newParseFailed は解析失敗エラーを生成する。
func newParseFailed(format string, params ...any) error {
	return fmt.Errorf("%w: %s", ErrParseFailed, fmt.Sprintf(format, params...))
}
