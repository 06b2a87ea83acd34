package content

// Component identifies a design/layout component assigned to blocks.
type Component string

// Components known to the renderer.
const (
	NoComponent        Component = ""
	ModuleTitle        Component = "moduleTitle"
	StyledHeading      Component = "heading"
	LearningObjectives Component = "learningObjectives"
	InfoBox            Component = "infoBox"
	SummaryBox         Component = "summaryBox"
	ExerciseBox        Component = "exerciseBox"
	ResourceBox        Component = "resourceBox"
	IconList           Component = "iconList"
	NumberedList       Component = "numberedList"
	BulletListComp     Component = "bulletList"
	AlphaListComp      Component = "alphaList"
	NumericListComp    Component = "numericList"
	Accordion          Component = "accordion"
	Carousel           Component = "carousel"
	Tabs               Component = "tabs"
	StylizedContentBox Component = "stylizedContentBox"
	TextColumns        Component = "textColumns"
)

// Spec describes a component in the catalogue.
type Spec struct {
	ID          Component `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	SingleBlock bool      `json:"singleBlock" yaml:"singleBlock"` // applicable to one selected block
	MultiBlock  bool      `json:"multiBlock" yaml:"multiBlock"`   // consumes runs of identical blocks
	Smart       bool      `json:"smartGrouping" yaml:"smartGrouping"`
}

// Catalogue lists every component in palette order.
var Catalogue = []Spec{
	{ID: ModuleTitle, Name: "Module Title", Description: "Large centred title for modules", SingleBlock: true},
	{ID: StyledHeading, Name: "Styled Heading", Description: "Formatted heading with proper styling", SingleBlock: true},
	{ID: LearningObjectives, Name: "Learning Outcomes", Description: "Numbered list of learning outcomes", MultiBlock: true},
	{ID: InfoBox, Name: "Info Box", Description: "Blue information callout box", SingleBlock: true, MultiBlock: true},
	{ID: SummaryBox, Name: "Summary Box", Description: "Grey summary callout box", SingleBlock: true, MultiBlock: true},
	{ID: ExerciseBox, Name: "Exercise Box", Description: "Purple exercise/question box", SingleBlock: true, MultiBlock: true},
	{ID: ResourceBox, Name: "Resource Box", Description: "Teal resource/link callout box", SingleBlock: true, MultiBlock: true},
	{ID: IconList, Name: "Icon List", Description: "List with font-awesome icon", MultiBlock: true},
	{ID: NumberedList, Name: "Numbered List", Description: "Styled numbered list with circles", MultiBlock: true},
	{ID: BulletListComp, Name: "Bullet List", Description: "Standard bullet list", MultiBlock: true},
	{ID: AlphaListComp, Name: "Alpha List", Description: "Alphabetical list (a, b, c...)", MultiBlock: true},
	{ID: NumericListComp, Name: "Numeric List", Description: "Standard numbered list (1, 2, 3...)", MultiBlock: true},
	{ID: Accordion, Name: "Accordion", Description: "Expandable sections (groups by headings)", MultiBlock: true, Smart: true},
	{ID: Carousel, Name: "Carousel", Description: "Slideshow (supports headings)", MultiBlock: true, Smart: true},
	{ID: Tabs, Name: "Tabs", Description: "Tabbed sections (groups by headings)", MultiBlock: true, Smart: true},
	{ID: StylizedContentBox, Name: "Stylised Content Box", Description: "Shaded flexible box layout (optional headings)", MultiBlock: true, Smart: true},
	{ID: TextColumns, Name: "Text Columns", Description: "Magazine-like accessible word-wrapping text columns", MultiBlock: true},
}

var catalogueIndex = func() map[Component]Spec {
	m := make(map[Component]Spec, len(Catalogue))
	for _, s := range Catalogue {
		m[s.ID] = s
	}
	return m
}()

// Lookup returns the catalogue entry for c.
func Lookup(c Component) (Spec, bool) {
	s, ok := catalogueIndex[c]
	return s, ok
}

// Known reports whether c is in the catalogue.
func (c Component) Known() bool {
	_, ok := catalogueIndex[c]
	return ok
}

// IsMultiBlock reports whether the renderer consumes a run of consecutive
// blocks sharing c instead of rendering each block alone.
func (c Component) IsMultiBlock() bool {
	return catalogueIndex[c].MultiBlock
}

// IsSmart reports whether applying c groups blocks by detected split points.
func (c Component) IsSmart() bool {
	return catalogueIndex[c].Smart
}

// IsIndentable reports whether c supports per-block indentation.
func (c Component) IsIndentable() bool {
	switch c {
	case BulletListComp, AlphaListComp, NumericListComp:
		return true
	}
	return false
}
