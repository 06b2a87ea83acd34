// Package blockforge turns loosely structured pasted or typed rich text into
// semantically templated HTML fragments for e-learning content.
//
// # Quick Start
//
// Create a designer, load a payload, apply components and render:
//
//	d, err := blockforge.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	state := d.Load(blockforge.Payload{PlainText: "Key points\n\nCats sleep a lot."})
//	state, err = state.ApplyComponent(blockforge.ApplyRequest{
//	    Component: "summaryBox",
//	    BlockIDs:  []string{state.Blocks[0].ID, state.Blocks[1].ID},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(d.Render(state))
//
// # Pipeline
//
//  1. Normalization: clipboard HTML is rewritten to semantic tags and
//     filtered to the block allow-list; plain text becomes paragraphs
//  2. Parsing: canonical HTML is split into blocks, one per paragraph,
//     heading or list item, with headings and list markers detected
//  3. Classification: each block gets a suggested component
//  4. Grouping: multi-part layouts split their block run at headings or at
//     stored split points
//  5. Rendering: each block run is emitted through its component template
//
// # State
//
// A State is an explicit value: blocks plus a Store holding split points,
// indentation and icon-list customisation per component run. Every
// operation returns a new State. When an edit keeps fewer than half of the
// previous block ids, the store is cleared; otherwise entries referencing
// removed blocks are pruned.
//
// # Editing Surface
//
// EditorSurface renders block wrappers carrying data-block-id and
// data-block-type with component and suggestion badges. Feeding the edited
// markup back to Edit keeps block identity, components and list types.
//
// # Custom Templates
//
// Override component templates with WithTemplateDir. Files missing from the
// directory fall back to the built-in set:
//
//	templates/
//	└── components/
//	    ├── box.html
//	    └── tabs.html
package blockforge
