// 指示: miu200521358
package moutput

import "github.com/miu200521358/mu_bonetools/pkg/domain/model"

// IRigReader はリグ文書の読み込み契約を表す。
type IRigReader interface {
	CanLoad(path string) bool
	Load(path string) (*model.RigDocument, error)
}

// IRigWriter はリグ文書の書き込み契約を表す。
type IRigWriter interface {
	Save(path string, doc *model.RigDocument) error
}
