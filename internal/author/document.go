package author

// Document is an author as returned by list, get and update.
type Document struct {
	Type       string        `json:"type"`
	ID         int64         `json:"id"`
	Attributes Attributes    `json:"attributes"`
	Books      BooksRelation `json:"books"`
}

type Attributes struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

type BooksRelation struct {
	Data []BookSummary `json:"data"`
}

// NewDocument renders an author with its book summaries.
func NewDocument(a Author) Document {
	books := a.Books
	if books == nil {
		books = []BookSummary{}
	}
	return Document{
		Type:       ResourceType,
		ID:         a.ID,
		Attributes: Attributes{Name: a.Name, Bio: a.Bio},
		Books:      BooksRelation{Data: books},
	}
}

// NewDocuments renders a list of authors.
func NewDocuments(authors []Author) []Document {
	out := make([]Document, 0, len(authors))
	for _, a := range authors {
		out = append(out, NewDocument(a))
	}
	return out
}
