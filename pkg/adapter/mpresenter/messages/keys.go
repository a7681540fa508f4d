// 指示: miu200521358
// Package messages はCLI表示に使うメッセージを提供する。
package messages

// メッセージ一覧。
const (
	AppName = "mu_bonetools"

	HelpRoot   = "アーマチュアのボーンをリグ文書上で編集する"
	HelpDump   = "ボーンのワールド空間ヘッド・テール・X軸を表示する"
	HelpShift  = "全ボーンを平行移動・回転する"
	HelpAlign  = "ボーンのX軸を指定方向へ合わせる"
	HelpRemove = "ボーンを削除する"
	HelpParent = "ボーンの親を設定する"
	HelpCreate = "ボーンを作成する(既にあれば何もしない)"
	HelpLayer  = "ボーンのレイヤー所属を切り替える"

	FlagConfig    = "設定ファイルパス (既定: ./mu_bonetools.yaml)"
	FlagLogLevel  = "ログレベル (DEBUG, INFO, WARN, ERROR)"
	FlagOut       = "出力リグファイルパス (既定: <入力名>_out.rig.yaml)"
	FlagObject    = "対象アーマチュア名 (既定: アクティブオブジェクト)"
	FlagBone      = "対象ボーン名"
	FlagBones     = "削除するボーン名 (複数指定可)"
	FlagPrefix    = "削除するボーン名の接頭辞"
	FlagParent    = "親ボーン名"
	FlagConnect   = "親のテールへ接続する"
	FlagTranslate = "移動量 x,y,z"
	FlagRotate    = "回転 x,y,z (度, XYZ順)"
	FlagXAxis     = "X軸を向ける方向 x,y,z (ワールド空間)"
	FlagHead      = "ヘッド位置 x,y,z (アーマチュア空間)"
	FlagTail      = "テール位置 x,y,z (アーマチュア空間)"
	FlagLayer     = "レイヤー番号 (0-31)"
	FlagLayerOff  = "レイヤーから外す"

	MessageLoadFailed           = "リグ読み込みに失敗しました"
	MessageSaveFailed           = "リグ保存に失敗しました"
	MessageConfigFailed         = "設定の読み込みに失敗しました"
	MessageObjectNotArmature    = "対象オブジェクトがアーマチュアではありません: %s"
	MessageObjectRequired       = "対象オブジェクトを特定できません。--object を指定してください"
	MessageBoneRequired         = "--bone を指定してください"
	MessageBoneNotFound         = "ボーンが見つかりません: %s"
	MessageRemoveTargetRequired = "--prefix または --bone のどちらか一方を指定してください"
	MessageVectorInvalid        = "--%s は x,y,z の3要素で指定してください"

	LogLoadStart   = "[mu_bonetools] 読み込み開始: %s"
	LogSaveSuccess = "[mu_bonetools] 保存完了: %s"
	LogDumpBone    = "%s\thead=%v\ttail=%v\tx=%v"
	LogRemoved     = "[mu_bonetools] 削除本数: %d"
	LogCreated     = "[mu_bonetools] 作成: %s"
	LogExists      = "[mu_bonetools] 既存: %s"
	LogLayer       = "%s\tlayer=%d\tvalue=%t"
)
