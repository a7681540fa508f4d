// 指示: miu200521358
package armature

import "errors"

var (
	// ErrDegenerateAxis は軸合わせの目標方向がボーンのY軸と平行な場合のエラー。
	ErrDegenerateAxis = errors.New("目標X軸がボーンのY軸と平行なためロールを決定できません")
	// ErrLayerIndexOutOfRange はレイヤー番号が範囲外の場合のエラー。
	ErrLayerIndexOutOfRange = errors.New("レイヤー番号が範囲外です")
)
