// 指示: miu200521358
package model

const (
	// BoneWarningBoneNotFound は対象ボーン未検出警告。
	BoneWarningBoneNotFound = "BoneWarningBoneNotFound"
	// BoneWarningParentNotFound は親ボーン未検出警告。
	BoneWarningParentNotFound = "BoneWarningParentNotFound"
	// BoneWarningParentInvalid は自身または子孫を親に指定した警告。
	BoneWarningParentInvalid = "BoneWarningParentInvalid"
	// BoneWarningDegenerateAxis は軸合わせ不能警告。
	BoneWarningDegenerateAxis = "BoneWarningDegenerateAxis"
	// BoneWarningLayerOutOfRange はレイヤー番号範囲外警告。
	BoneWarningLayerOutOfRange = "BoneWarningLayerOutOfRange"
)
