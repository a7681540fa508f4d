// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_bonetools/pkg/adapter/io_model/rig"
	"github.com/miu200521358/mu_bonetools/pkg/adapter/memhost"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/shared/logging"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/minteractor"
)

const (
	batchOutputDirMode = 0o755
)

// batchConfig はバッチ検証の実行設定を表す。
type batchConfig struct {
	InputRoot  string
	OutputRoot string
	DryRun     bool
	FailFast   bool
}

// verifyEntry は1リグ分の検証入力情報を表す。
type verifyEntry struct {
	Index      int
	SourcePath string
	RigName    string
	CaseDir    string
	OutputPath string
}

// verifyResult は1リグ分の検証結果を表す。
type verifyResult struct {
	Entry      verifyEntry
	Status     string
	Duration   time.Duration
	Err        error
	BoneCount  int
	Mismatches []string
}

// main はリグファイルを一括で往復変換し、ボーン値が保たれるか検証する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括検証を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	logging.SetDefaultLogger(logging.NewLogger(os.Stderr))

	inputPaths, err := collectRigPaths(config.InputRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "入力リグの列挙に失敗しました: %v\n", err)
		return 2
	}
	entries := buildVerifyEntries(config.OutputRoot, inputPaths)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "検証対象リグがありません")
		return 2
	}

	results := executeBatchVerify(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultInputRoot, defaultOutputRoot, err := resolveDefaultRoots()
	if err != nil {
		return batchConfig{}, err
	}
	inputRoot := flag.String("input-root", defaultInputRoot, "検証するリグファイルのディレクトリ")
	outputRoot := flag.String("output-root", defaultOutputRoot, "検証結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "実検証せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedInputRoot := strings.TrimSpace(*inputRoot)
	if trimmedInputRoot == "" {
		return batchConfig{}, errors.New("input-root が空です")
	}
	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		InputRoot:  normalizeInputPath(trimmedInputRoot),
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultRoots はスクリプト配置ディレクトリ基準の既定入出力先を返す。
func resolveDefaultRoots() (string, string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", "", errors.New("実行ファイル位置を取得できません")
	}
	currentDir := filepath.Dir(currentFilePath)
	return filepath.Join(currentDir, "testdata"), filepath.Join(currentDir, "output"), nil
}

// collectRigPaths はディレクトリ配下のリグファイルを名前順で返す。
func collectRigPaths(root string) ([]string, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if minteractor.IsRigPath(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// buildVerifyEntries は入力パス一覧から検証対象エントリを生成する。
func buildVerifyEntries(outputRoot string, inputPaths []string) []verifyEntry {
	entries := make([]verifyEntry, 0, len(inputPaths))
	for i, rawPath := range inputPaths {
		rigName := resolveRigName(rawPath)
		safeRigName := sanitizePathComponent(rigName)
		caseDir := filepath.Join(outputRoot, fmt.Sprintf("%03d_%s", i+1, safeRigName))
		entries = append(entries, verifyEntry{
			Index:      i + 1,
			SourcePath: normalizeInputPath(rawPath),
			RigName:    rigName,
			CaseDir:    caseDir,
			OutputPath: filepath.Join(caseDir, safeRigName+minteractor.RigFileExt),
		})
	}
	return entries
}

// executeBatchVerify は全リグの検証を順次実行する。
func executeBatchVerify(config batchConfig, entries []verifyEntry) []verifyResult {
	results := make([]verifyResult, 0, len(entries))
	repository := rig.NewRigRepository()

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 検証開始: rig=%s\n", entry.Index, total, entry.RigName)
		result := verifyRigEntry(repository, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 検証成功: rig=%s bones=%d output=%s elapsed=%s\n", entry.Index, total, entry.RigName, result.BoneCount, entry.OutputPath, result.Duration.Round(time.Millisecond))
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: rig=%s input=%s output=%s\n", entry.Index, total, entry.RigName, entry.SourcePath, entry.OutputPath)
		default:
			fmt.Printf("[%d/%d] 検証失敗: rig=%s reason=%v\n", entry.Index, total, entry.RigName, result.Err)
			for _, mismatch := range result.Mismatches {
				fmt.Printf("    不一致: %s\n", mismatch)
			}
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// verifyRigEntry は1リグ分を往復移動して保存し、元のボーン値と近似一致するか検証する。
func verifyRigEntry(repository *rig.RigRepository, config batchConfig, entry verifyEntry) verifyResult {
	result := verifyResult{
		Entry:  entry,
		Status: "failed",
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	loader := minteractor.NewBoneUsecase(minteractor.BoneUsecaseDeps{RigReader: repository, RigWriter: repository})
	doc, err := loader.LoadRig(nil, entry.SourcePath)
	if err != nil {
		result.Err = fmt.Errorf("LoadRigに失敗しました: %w", err)
		return result
	}
	expected, err := memhost.NewSceneFromDocument(doc)
	if err != nil {
		result.Err = fmt.Errorf("基準シーンの構築に失敗しました: %w", err)
		return result
	}
	actual, err := memhost.NewSceneFromDocument(doc)
	if err != nil {
		result.Err = fmt.Errorf("検証シーンの構築に失敗しました: %w", err)
		return result
	}

	usecase := minteractor.NewBoneUsecase(minteractor.BoneUsecaseDeps{Host: actual, RigReader: repository, RigWriter: repository})
	shift := mmath.NewMat4FromLocRotScale(mmath.NewVec3(0.5, -1.25, 2), mmath.NewQuaternionFromDegrees(15, 30, 45), mmath.ONE_VEC3)
	for _, object := range actual.Objects() {
		if object.Type() != model.ObjectTypeArmature {
			continue
		}
		if err := usecase.ShiftBones(object, shift); err != nil {
			result.Err = fmt.Errorf("ShiftBonesに失敗しました: object=%s: %w", object.Name(), err)
			return result
		}
		if err := usecase.ShiftBones(object, shift.Inverted()); err != nil {
			result.Err = fmt.Errorf("ShiftBonesに失敗しました: object=%s: %w", object.Name(), err)
			return result
		}
	}

	for _, object := range actual.Objects() {
		if object.Type() != model.ObjectTypeArmature {
			continue
		}
		expectedObject, _ := expected.Object(object.Name())
		for _, name := range object.Bones().Names() {
			result.BoneCount++
			near, found := usecase.AreBonesNearValues(object, name, expectedObject, name)
			if !found || !near {
				result.Mismatches = append(result.Mismatches, fmt.Sprintf("%s/%s", object.Name(), name))
			}
		}
	}
	if len(result.Mismatches) > 0 {
		result.Err = fmt.Errorf("往復移動後のボーン値が一致しません: count=%d", len(result.Mismatches))
		return result
	}

	saved, err := actual.ToDocument()
	if err != nil {
		result.Err = fmt.Errorf("ToDocumentに失敗しました: %w", err)
		return result
	}
	if err := usecase.SaveRig(nil, entry.OutputPath, saved); err != nil {
		result.Err = fmt.Errorf("SaveRigに失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	return result
}

// printBatchSummary は検証結果の集計を標準出力へ表示する。
func printBatchSummary(results []verifyResult) {
	succeeded := 0
	failed := 0
	dryRun := 0
	bones := 0
	for _, result := range results {
		bones += result.BoneCount
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ検証サマリ: total=%d succeeded=%d failed=%d dry_run=%d bones=%d\n",
		len(results),
		succeeded,
		failed,
		dryRun,
		bones,
	)
}

// resolveRigName は入力パスからリグ拡張子を除いた名前を返す。
func resolveRigName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	for _, ext := range []string{".rig.yaml", ".rig.yml", ".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	name := strings.TrimSpace(base)
	if name == "" {
		return "rig"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(trimmed))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	if runtime.GOOS != "linux" {
		return path
	}
	if len(path) < 2 || path[1] != ':' {
		return path
	}
	drive := strings.ToLower(path[:1])
	rest := strings.ReplaceAll(path[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ディレクトリ/ファイル名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "rig"
	}
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "rig"
	}
	return replaced
}
