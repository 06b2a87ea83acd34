package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-blockforge/internal/yamlutil"
)

type step struct {
	Component string `yaml:"component"`
	Blocks    []int  `yaml:"blocks"`
	AutoSplit bool   `yaml:"autoSplit"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
		want    []step
	}{
		{
			name: "layout list",
			data: "- component: tabs\n  blocks: [0, 2]\n  autoSplit: true\n- component: infoBox\n  blocks: [1]\n",
			want: []step{
				{Component: "tabs", Blocks: []int{0, 2}, AutoSplit: true},
				{Component: "infoBox", Blocks: []int{1}},
			},
		},
		{name: "unknown key", data: "- component: tabs\n  colour: red\n", wantErr: yamlutil.ErrSyntax},
		{name: "unclosed flow", data: "- blocks: [0, 1\n", wantErr: yamlutil.ErrSyntax},
		{name: "wrong type", data: "component: tabs\n", wantErr: yamlutil.ErrSyntax},
		{name: "blank", data: " \n\t\n", wantErr: yamlutil.ErrEmptyDocument},
		{name: "comments only", data: "# nothing here\n", wantErr: yamlutil.ErrEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []step
			err := yamlutil.UnmarshalStrict([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalStrict() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("decoded %d steps, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Component != tt.want[i].Component || got[i].AutoSplit != tt.want[i].AutoSplit ||
					len(got[i].Blocks) != len(tt.want[i].Blocks) {
					t.Errorf("step %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnmarshalStrict_Guards(t *testing.T) {
	t.Parallel()

	if err := yamlutil.UnmarshalStrict([]byte("a: 1"), nil); !errors.Is(err, yamlutil.ErrNilTarget) {
		t.Errorf("nil target error = %v, want ErrNilTarget", err)
	}

	big := []byte("x: \"" + strings.Repeat("a", yamlutil.MaxInputSize) + "\"\n")
	var m map[string]string
	if err := yamlutil.UnmarshalStrict(big, &m); !errors.Is(err, yamlutil.ErrTooLarge) {
		t.Errorf("oversized error = %v, want ErrTooLarge", err)
	}
}

func TestUnmarshalStrict_ErrorNamesLine(t *testing.T) {
	t.Parallel()

	var got []step
	err := yamlutil.UnmarshalStrict([]byte("- component: tabs\n- component: accordion\n  bogus: 1\n"), &got)
	if err == nil {
		t.Fatal("UnmarshalStrict() error = nil, want unknown field")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error = %q, want it to name the field", err)
	}
}

func TestMarshal_LiteralBlocks(t *testing.T) {
	t.Parallel()

	type block struct {
		ID      string `yaml:"id"`
		Content string `yaml:"content"`
	}
	out, err := yamlutil.Marshal([]block{{ID: "b-1", Content: "<p>one</p>\n<p>two</p>"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "content: |") {
		t.Errorf("multi-line content not written as a literal block:\n%s", s)
	}
	if !strings.Contains(s, "  id: b-1") && !strings.Contains(s, "- id: b-1") {
		t.Errorf("id missing:\n%s", s)
	}

	var back []block
	if err := yamlutil.UnmarshalStrict(out, &back); err != nil {
		t.Fatalf("decoding Marshal output: %v", err)
	}
	if len(back) != 1 || back[0].Content != "<p>one</p>\n<p>two</p>" {
		t.Errorf("decoded = %+v", back)
	}
}
