// 指示: miu200521358
package minteractor

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// RigFileExt はリグ文書の既定拡張子。
	RigFileExt = ".rig.yaml"
	// DefaultOutputSuffix は出力パス未指定時に付ける既定の接尾辞。
	DefaultOutputSuffix = "_out"
)

// rigFileExts はリグ文書として扱う拡張子。長いものから判定する。
var rigFileExts = []string{".rig.yaml", ".rig.yml", ".yaml", ".yml"}

// BuildDefaultOutputPath は入力リグパスから既定の出力パス(<base><suffix>.rig.yaml)を生成する。
func BuildDefaultOutputPath(inputPath string, suffix string) string {
	if strings.TrimSpace(inputPath) == "" {
		return ""
	}
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	dir := filepath.Dir(inputPath)
	base := strings.TrimSpace(trimRigExt(filepath.Base(inputPath)))
	if base == "" {
		return ""
	}
	return filepath.Join(dir, base+suffix+RigFileExt)
}

// ResolveOutputPath は出力先パスを解決する。未指定なら既定パスを使い、拡張子を検証する。
func ResolveOutputPath(inputPath string, outputPath string, suffix string) (string, error) {
	resolved := strings.TrimSpace(outputPath)
	if resolved == "" {
		resolved = BuildDefaultOutputPath(inputPath, suffix)
	}
	if resolved == "" {
		return "", fmt.Errorf("保存先リグパスが未指定です")
	}
	if !IsRigPath(resolved) {
		return "", fmt.Errorf("保存先拡張子が .yaml ではありません: %s", resolved)
	}
	return resolved, nil
}

// IsRigPath はリグ文書の拡張子か判定する。
func IsRigPath(path string) bool {
	return trimRigExt(filepath.Base(path)) != filepath.Base(path)
}

// trimRigExt はリグ文書の拡張子を取り除く。大文字小文字は区別しない。
func trimRigExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range rigFileExts {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
