package borr

// Parser folds lines into a Language one at a time. It owns the state that
// spans lines: the current section and which fields were declared
// multi-line. A Parser must not be used from multiple goroutines.
type Parser struct {
	lang      *Language
	multiline map[string]map[string]bool
	section   string
}

// NewParser clears lang and returns a parser that fills it.
func NewParser(lang *Language) *Parser {
	lang.Clear()
	return &Parser{
		lang:      lang,
		multiline: make(map[string]map[string]bool),
	}
}

// CurrentSection returns the section subsequent fields are stored in.
func (p *Parser) CurrentSection() string { return p.section }

// ParseLine classifies a single line and applies it. Lines that are neither
// section headers nor translations are ignored.
func (p *Parser) ParseLine(line string) {
	if IsEmptyOrComment(line) {
		return
	}

	line = RemoveInlineComments(line)

	if ok, name := IsSection(line); ok {
		p.section = name
		return
	}

	ok, field, value := IsTranslation(line)
	if !ok {
		return
	}

	if p.section == GlobalSection {
		p.parseGlobal(field, value)
		return
	}

	p.store(field, value)
}

func (p *Parser) parseGlobal(field, value string) {
	switch field {
	case LangIDField:
		p.lang.id = value
	case LangDescField:
		p.lang.description = value
	case LangVerField:
		p.lang.version = ParseVersion(value)
	default:
		return
	}

	p.sect(GlobalSection)[field] = value
}

func (p *Parser) store(rawField, value string) {
	sect := p.sect(p.section)
	name := fieldName(rawField)
	multiline := IsMultilineField(rawField)

	markers := p.multiline[p.section]
	if markers == nil {
		markers = make(map[string]bool)
		p.multiline[p.section] = markers
	}

	if existing, ok := sect[name]; ok && multiline && markers[name] {
		sect[name] = existing + "\n" + value
		return
	}

	sect[name] = value
	markers[name] = multiline
}

func (p *Parser) sect(name string) Section {
	sect, ok := p.lang.table[name]
	if !ok {
		sect = make(Section)
		p.lang.table[name] = sect
	}
	return sect
}
