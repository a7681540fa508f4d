// 指示: miu200521358
package minteractor

import (
	"path/filepath"
	"testing"
)

func TestBuildDefaultOutputPath(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{name: "rig yaml", input: filepath.Join("work", "body.rig.yaml"), suffix: "", want: filepath.Join("work", "body_out.rig.yaml")},
		{name: "plain yaml", input: filepath.Join("work", "body.yaml"), suffix: "_shift", want: filepath.Join("work", "body_shift.rig.yaml")},
		{name: "upper case", input: filepath.Join("work", "Body.RIG.YML"), suffix: "", want: filepath.Join("work", "Body_out.rig.yaml")},
		{name: "empty", input: "", suffix: "", want: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := BuildDefaultOutputPath(tc.input, tc.suffix)
			if got != tc.want {
				t.Fatalf("output path mismatch: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestResolveOutputPathRejectsNonYaml(t *testing.T) {
	if _, err := ResolveOutputPath("body.rig.yaml", "body.json", ""); err == nil {
		t.Fatalf("expected error")
	}
	got, err := ResolveOutputPath("body.rig.yaml", "", "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != "body_out.rig.yaml" {
		t.Fatalf("output path mismatch: got=%s want=body_out.rig.yaml", got)
	}
}
