// 指示: miu200521358
package messages

import (
	"strings"
	"testing"
)

func TestFlagHelpTextsAreDefined(t *testing.T) {
	keys := []string{
		FlagConfig,
		FlagLogLevel,
		FlagOut,
		FlagObject,
		FlagBone,
		FlagBones,
		FlagPrefix,
		FlagParent,
		FlagConnect,
		FlagTranslate,
		FlagRotate,
		FlagXAxis,
		FlagHead,
		FlagTail,
		FlagLayer,
		FlagLayerOff,
	}

	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			t.Fatalf("key should not be empty")
		}
		if _, exists := seen[key]; exists {
			t.Fatalf("key should be unique: %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestLogFormatsHaveSinglePlaceholder(t *testing.T) {
	formats := []string{LogLoadStart, LogSaveSuccess, LogRemoved, LogCreated, LogExists}
	for _, format := range formats {
		if got := strings.Count(format, "%"); got != 1 {
			t.Fatalf("placeholder count mismatch: got=%d want=1 format=%s", got, format)
		}
	}
	if got := strings.Count(LogDumpBone, "%"); got != 4 {
		t.Fatalf("placeholder count mismatch: got=%d want=4 format=%s", got, LogDumpBone)
	}
	if got := strings.Count(LogLayer, "%"); got != 3 {
		t.Fatalf("placeholder count mismatch: got=%d want=3 format=%s", got, LogLayer)
	}
}
