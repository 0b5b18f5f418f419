package errors

import "testing"

func TestErrorCodeTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		phase    string
		category string
	}{
		{"FND001", FND001, "finder", "resolution"},
		{"FND003", FND003, "finder", "namespace"},
		{"VIS001", VIS001, "visitor", "syntax"},
		{"VIS003", VIS003, "visitor", "namespace"},
		{"EXP001", EXP001, "expression", "scope"},
		{"STB002", STB002, "stubs", "structure"},
		{"ALI002", ALI002, "alias", "dependency"},
		{"DOC002", DOC002, "docstring", "structure"},
		{"LOD001", LOD001, "loader", "resolution"},
		{"EXT001", EXT001, "extension", "hook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, exists := GetErrorInfo(tt.code)
			if !exists {
				t.Fatalf("error code %s not found in registry", tt.code)
			}
			if info.Code != tt.code {
				t.Errorf("Code mismatch: got %s, want %s", info.Code, tt.code)
			}
			if info.Phase != tt.phase {
				t.Errorf("Phase mismatch for %s: got %s, want %s", tt.code, info.Phase, tt.phase)
			}
			if info.Category != tt.category {
				t.Errorf("Category mismatch for %s: got %s, want %s", tt.code, info.Category, tt.category)
			}
		})
	}
}

func TestAllErrorCodesInRegistry(t *testing.T) {
	allCodes := []string{
		FND001, FND002, FND003,
		VIS001, VIS002, VIS003,
		EXP001,
		STB001, STB002,
		ALI001, ALI002, ALI003,
		DOC001, DOC002,
		LOD001,
		EXT001,
	}

	for _, code := range allCodes {
		t.Run(code, func(t *testing.T) {
			if _, exists := GetErrorInfo(code); !exists {
				t.Errorf("error code %s is defined but not in registry", code)
			}
		})
	}

	if len(ErrorRegistry) != len(allCodes) {
		t.Errorf("registry has %d codes, expected %d", len(ErrorRegistry), len(allCodes))
	}
}

func TestErrorInfoConsistency(t *testing.T) {
	validPhases := map[string]bool{
		"finder": true, "visitor": true, "expression": true,
		"stubs": true, "alias": true, "docstring": true,
		"loader": true, "extension": true,
	}

	for code, info := range ErrorRegistry {
		if info.Code != code {
			t.Errorf("code mismatch in registry: key=%s, info.Code=%s", code, info.Code)
		}
		if len(code) != 6 {
			t.Errorf("invalid code format: %s", code)
		}
		if !validPhases[info.Phase] {
			t.Errorf("invalid phase for %s: %s", code, info.Phase)
		}
		if info.Description == "" {
			t.Errorf("empty description for %s", code)
		}
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(LOD001) {
		t.Error("LOD001 should be fatal")
	}
	if IsFatal(FND001) {
		t.Error("FND001 should not be fatal")
	}
}
