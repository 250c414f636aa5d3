package textproc

// fillerVocabulary pads keyword lists that fall short of the target count.
// Generic stock-marketplace terms, applied only after real content.
var fillerVocabulary = []string{
	"design",
	"background",
	"illustration",
	"art",
	"modern",
	"abstract",
	"creative",
	"graphic",
	"element",
	"decoration",
	"style",
	"concept",
	"symbol",
	"template",
	"texture",
	"pattern",
	"color",
	"colorful",
	"nature",
	"business",
	"digital",
	"icon",
	"banner",
	"poster",
	"minimal",
	"trendy",
	"decorative",
	"drawing",
	"shape",
	"collection",
	"object",
	"isolated",
	"simple",
	"flat",
	"cartoon",
	"vintage",
	"celebration",
	"holiday",
	"card",
	"wallpaper",
	"print",
	"beautiful",
	"bright",
	"elegant",
	"festive",
	"happy",
	"light",
	"artistic",
	"clean",
	"stylish",
}
