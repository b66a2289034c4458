package tei

// Record is one entry of an Index. HasText distinguishes an element without
// text from one whose text is empty.
type Record struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	HasText bool   `json:"has_text"`
}

// Index maps identifiers to element text. The first insertion of an
// identifier fixes its position; later insertions overwrite the value.
type Index struct {
	pos     map[string]int
	records []Record
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{pos: make(map[string]int)}
}

// Set stores text under id. Empty identifiers are ignored.
func (x *Index) Set(id, text string, hasText bool) {
	if id == "" {
		return
	}
	r := Record{ID: id, Text: text, HasText: hasText}
	if i, ok := x.pos[id]; ok {
		x.records[i] = r
		return
	}
	x.pos[id] = len(x.records)
	x.records = append(x.records, r)
}

// Get returns the record stored under id.
func (x *Index) Get(id string) (Record, bool) {
	i, ok := x.pos[id]
	if !ok {
		return Record{}, false
	}
	return x.records[i], true
}

// Len returns the number of identifiers.
func (x *Index) Len() int {
	return len(x.records)
}

// Records returns a copy of the records in insertion order.
func (x *Index) Records() []Record {
	return append([]Record(nil), x.records...)
}

// Texts returns identifier to text for records that have text.
func (x *Index) Texts() map[string]string {
	out := make(map[string]string, len(x.records))
	for _, r := range x.records {
		if r.HasText {
			out[r.ID] = r.Text
		}
	}
	return out
}

// Sentence is one entry of a SentenceIndex.
type Sentence struct {
	ID       string   `json:"id"`
	TokenIDs []string `json:"token_ids"`
}

// SentenceIndex maps sentence identifiers to their token references, with
// the same ordering rules as Index.
type SentenceIndex struct {
	pos       map[string]int
	sentences []Sentence
}

// NewSentenceIndex returns an empty sentence index.
func NewSentenceIndex() *SentenceIndex {
	return &SentenceIndex{pos: make(map[string]int)}
}

// Set stores tokenIDs under id. Empty identifiers are ignored.
func (x *SentenceIndex) Set(id string, tokenIDs []string) {
	if id == "" {
		return
	}
	if tokenIDs == nil {
		tokenIDs = []string{}
	}
	s := Sentence{ID: id, TokenIDs: tokenIDs}
	if i, ok := x.pos[id]; ok {
		x.sentences[i] = s
		return
	}
	x.pos[id] = len(x.sentences)
	x.sentences = append(x.sentences, s)
}

// Get returns the token references of sentence id.
func (x *SentenceIndex) Get(id string) ([]string, bool) {
	i, ok := x.pos[id]
	if !ok {
		return nil, false
	}
	return x.sentences[i].TokenIDs, true
}

// Len returns the number of sentences.
func (x *SentenceIndex) Len() int {
	return len(x.sentences)
}

// Sentences returns the sentences in insertion order.
func (x *SentenceIndex) Sentences() []Sentence {
	return append([]Sentence(nil), x.sentences...)
}
