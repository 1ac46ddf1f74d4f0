package translit

// table holds the romanization rules for one source script.
// All keys are lower-case runes.
type table struct {
	// letters maps a Cyrillic letter to its Latin form.
	letters map[rune]string

	// initial overrides letters at the start of a word and after
	// any rune in afterInitial.
	initial      map[rune]string
	afterInitial map[rune]bool

	// separators lists letter pairs that get a middle dot between them
	// so the Latin form cannot be read as a different digraph.
	separators map[[2]rune]bool

	// apostrophe is emitted for ' ’ ʼ following a Cyrillic letter.
	// Empty means apostrophes pass through.
	apostrophe string
}

const middleDot = "·"

// ukrainianBGN follows the BGN/PCGN 1965 system for Ukrainian.
var ukrainianBGN = &table{
	letters: map[rune]string{
		'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g",
		'д': "d", 'е': "e", 'є': "ye", 'ж': "zh", 'з': "z",
		'и': "y", 'і': "i", 'ї': "yi", 'й': "y", 'к': "k",
		'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p",
		'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f",
		'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
		'ь': "ʹ", 'ю': "yu", 'я': "ya",
	},
	separators: map[[2]rune]bool{
		{'з', 'г'}: true,
		{'к', 'г'}: true,
		{'с', 'г'}: true,
		{'ц', 'г'}: true,
	},
	apostrophe: "”",
}

// russianBGN follows the BGN/PCGN 1947 system for Russian.
var russianBGN = &table{
	letters: map[rune]string{
		'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
		'е': "e", 'ё': "ë", 'ж': "zh", 'з': "z", 'и': "i",
		'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
		'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
		'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
		'ш': "sh", 'щ': "shch", 'ъ': "ˮ", 'ы': "y", 'ь': "ʹ",
		'э': "e", 'ю': "yu", 'я': "ya",
	},
	initial: map[rune]string{
		'е': "ye",
		'ё': "yë",
	},
	afterInitial: map[rune]bool{
		'а': true, 'е': true, 'ё': true, 'и': true, 'о': true,
		'у': true, 'ы': true, 'э': true, 'ю': true, 'я': true,
		'й': true, 'ъ': true, 'ь': true,
	},
	separators: map[[2]rune]bool{
		{'т', 'с'}: true,
		{'ш', 'ч'}: true,
	},
}
