package constants

// NamedEntities maps HTML5 named character reference names (without the
// leading ampersand or trailing semicolon) to their replacement text.
//
// This table covers the references that occur in real-world content: the
// XML five, the full Latin-1 supplement, general punctuation, currency,
// Greek letters, arrows, common math symbols, and letterlike symbols.
// Unknown references pass through the tokenizer literally.
var NamedEntities = map[string]string{
	// XML predefined
	"amp": "&", "lt": "<", "gt": ">", "quot": "\"", "apos": "'",

	// Latin-1 supplement (0x00A0-0x00FF)
	"nbsp": " ", "iexcl": "¡", "cent": "¢", "pound": "£",
	"curren": "¤", "yen": "¥", "brvbar": "¦", "sect": "§",
	"uml": "¨", "copy": "©", "ordf": "ª", "laquo": "«",
	"not": "¬", "shy": "­", "reg": "®", "macr": "¯",
	"deg": "°", "plusmn": "±", "sup2": "²", "sup3": "³",
	"acute": "´", "micro": "µ", "para": "¶", "middot": "·",
	"cedil": "¸", "sup1": "¹", "ordm": "º", "raquo": "»",
	"frac14": "¼", "frac12": "½", "frac34": "¾", "iquest": "¿",
	"Agrave": "À", "Aacute": "Á", "Acirc": "Â", "Atilde": "Ã",
	"Auml": "Ä", "Aring": "Å", "AElig": "Æ", "Ccedil": "Ç",
	"Egrave": "È", "Eacute": "É", "Ecirc": "Ê", "Euml": "Ë",
	"Igrave": "Ì", "Iacute": "Í", "Icirc": "Î", "Iuml": "Ï",
	"ETH": "Ð", "Ntilde": "Ñ", "Ograve": "Ò", "Oacute": "Ó",
	"Ocirc": "Ô", "Otilde": "Õ", "Ouml": "Ö", "times": "×",
	"Oslash": "Ø", "Ugrave": "Ù", "Uacute": "Ú", "Ucirc": "Û",
	"Uuml": "Ü", "Yacute": "Ý", "THORN": "Þ", "szlig": "ß",
	"agrave": "à", "aacute": "á", "acirc": "â", "atilde": "ã",
	"auml": "ä", "aring": "å", "aelig": "æ", "ccedil": "ç",
	"egrave": "è", "eacute": "é", "ecirc": "ê", "euml": "ë",
	"igrave": "ì", "iacute": "í", "icirc": "î", "iuml": "ï",
	"eth": "ð", "ntilde": "ñ", "ograve": "ò", "oacute": "ó",
	"ocirc": "ô", "otilde": "õ", "ouml": "ö", "divide": "÷",
	"oslash": "ø", "ugrave": "ù", "uacute": "ú", "ucirc": "û",
	"uuml": "ü", "yacute": "ý", "thorn": "þ", "yuml": "ÿ",

	// Latin extended
	"OElig": "Œ", "oelig": "œ", "Scaron": "Š", "scaron": "š",
	"Yuml": "Ÿ", "fnof": "ƒ",

	// Spacing modifiers
	"circ": "ˆ", "tilde": "˜",

	// Greek
	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ",
	"Epsilon": "Ε", "Zeta": "Ζ", "Eta": "Η", "Theta": "Θ",
	"Iota": "Ι", "Kappa": "Κ", "Lambda": "Λ", "Mu": "Μ",
	"Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο", "Pi": "Π",
	"Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ",
	"Phi": "Φ", "Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "omicron": "ο", "pi": "π",
	"rho": "ρ", "sigmaf": "ς", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "chi": "χ", "psi": "ψ",
	"omega": "ω", "thetasym": "ϑ", "upsih": "ϒ", "piv": "ϖ",

	// General punctuation
	"ensp": " ", "emsp": " ", "thinsp": " ",
	"zwnj": "‌", "zwj": "‍", "lrm": "‎", "rlm": "‏",
	"ndash": "–", "mdash": "—",
	"lsquo": "‘", "rsquo": "’", "sbquo": "‚",
	"ldquo": "“", "rdquo": "”", "bdquo": "„",
	"dagger": "†", "Dagger": "‡", "bull": "•",
	"hellip": "…", "permil": "‰", "prime": "′", "Prime": "″",
	"lsaquo": "‹", "rsaquo": "›", "oline": "‾", "frasl": "⁄",
	"euro": "€",

	// Letterlike symbols
	"image": "ℑ", "weierp": "℘", "real": "ℜ", "trade": "™",
	"alefsym": "ℵ",

	// Arrows
	"larr": "←", "uarr": "↑", "rarr": "→", "darr": "↓",
	"harr": "↔", "crarr": "↵",
	"lArr": "⇐", "uArr": "⇑", "rArr": "⇒", "dArr": "⇓",
	"hArr": "⇔",

	// Mathematical operators
	"forall": "∀", "part": "∂", "exist": "∃", "empty": "∅",
	"nabla": "∇", "isin": "∈", "notin": "∉", "ni": "∋",
	"prod": "∏", "sum": "∑", "minus": "−", "lowast": "∗",
	"radic": "√", "prop": "∝", "infin": "∞", "ang": "∠",
	"and": "∧", "or": "∨", "cap": "∩", "cup": "∪",
	"int": "∫", "there4": "∴", "sim": "∼", "cong": "≅",
	"asymp": "≈", "ne": "≠", "equiv": "≡", "le": "≤",
	"ge": "≥", "sub": "⊂", "sup": "⊃", "nsub": "⊄",
	"sube": "⊆", "supe": "⊇", "oplus": "⊕", "otimes": "⊗",
	"perp": "⊥", "sdot": "⋅",

	// Miscellaneous technical
	"lceil": "⌈", "rceil": "⌉", "lfloor": "⌊", "rfloor": "⌋",
	"lang": "⟨", "rang": "⟩",

	// Geometric shapes and misc symbols
	"loz": "◊", "spades": "♠", "clubs": "♣",
	"hearts": "♥", "diams": "♦",
}

// NumericReplacements maps invalid numeric character reference code points
// to their replacement characters, per the HTML5 tokenizer. These cover the
// Windows-1252 C1 control range that legacy content references numerically.
var NumericReplacements = map[int]rune{
	0x00: '�',
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ',
	0x8E: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›',
	0x9C: 'œ', 0x9E: 'ž', 0x9F: 'Ÿ',
}
