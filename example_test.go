package blockforge_test

import (
	"fmt"
	"strings"

	"github.com/alnah/go-blockforge"
)

// Example loads plain text and renders it untouched.
func Example() {
	d, err := blockforge.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	state := d.Load(blockforge.Payload{PlainText: "Cats sleep a lot.\n\nDogs bark at night."})
	fmt.Println(len(state.Blocks))
	fmt.Println(d.Render(state))
	// Output:
	// 2
	// <article role="article">
	// <p>Cats sleep a lot.</p>
	// <p>Dogs bark at night.</p>
	// </article>
}

// Example_applyComponent wraps two blocks in a titled summary box.
func Example_applyComponent() {
	d, err := blockforge.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	state := d.Parse("<h3>Key points</h3><p>Cats sleep a lot.</p>")
	state, err = state.ApplyComponent(blockforge.ApplyRequest{
		Component: "summaryBox",
		BlockIDs:  []string{state.Blocks[0].ID, state.Blocks[1].ID},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out := d.Render(state)
	fmt.Println(strings.Contains(out, "fa-list-check"), strings.Contains(out, "&nbsp; Key points"))
	// Output: true true
}

// Example_analyze reports readability statistics.
func Example_analyze() {
	d, err := blockforge.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	stats := d.Analyze(d.Parse("<p>The cat sat. The dog ran.</p>"))
	fmt.Println(stats.WordCount, stats.SentenceCount, stats.ReadingLevel)
	// Output: 6 2 Elementary
}
