package content

import "testing"

func TestBlockIsList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block Block
		want  bool
	}{
		{"paragraph", Block{Type: Paragraph}, false},
		{"list type", Block{Type: List, ListType: BulletList}, true},
		{"disguised list item", Block{Type: Paragraph, ListType: NumericList}, true},
		{"heading", Block{Type: Heading}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.block.IsList(); got != tt.want {
				t.Errorf("IsList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewIDUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestComponentFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		component  Component
		multi      bool
		smart      bool
		indentable bool
	}{
		{StyledHeading, false, false, false},
		{ModuleTitle, false, false, false},
		{InfoBox, true, false, false},
		{Tabs, true, true, false},
		{StylizedContentBox, true, true, false},
		{BulletListComp, true, false, true},
		{NumericListComp, true, false, true},
		{IconList, true, false, false},
		{Component("sparkleBox"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.component), func(t *testing.T) {
			t.Parallel()
			if got := tt.component.IsMultiBlock(); got != tt.multi {
				t.Errorf("IsMultiBlock() = %v, want %v", got, tt.multi)
			}
			if got := tt.component.IsSmart(); got != tt.smart {
				t.Errorf("IsSmart() = %v, want %v", got, tt.smart)
			}
			if got := tt.component.IsIndentable(); got != tt.indentable {
				t.Errorf("IsIndentable() = %v, want %v", got, tt.indentable)
			}
		})
	}
}

func TestCatalogueIDsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[Component]bool)
	for _, s := range Catalogue {
		if seen[s.ID] {
			t.Errorf("duplicate catalogue id %q", s.ID)
		}
		seen[s.ID] = true
		if !s.SingleBlock && !s.MultiBlock {
			t.Errorf("%q is neither single nor multi block", s.ID)
		}
	}
}
