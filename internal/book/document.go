package book

import "time"

// Document is a book as returned by list and get.
type Document struct {
	Type       string         `json:"type"`
	ID         int64          `json:"id"`
	Attributes Attributes     `json:"attributes"`
	Author     AuthorRelation `json:"author"`
}

type Attributes struct {
	Title           string    `json:"title"`
	PublishedDate   time.Time `json:"publishedDate"`
	ISBN            string    `json:"isbn"`
	Genre           string    `json:"genre"`
	AvailableCopies int64     `json:"availableCopies"`
}

// AuthorRelation holds a null Data when the book has no linked author.
type AuthorRelation struct {
	Data *AuthorData `json:"data"`
}

type AuthorData struct {
	ID         int64            `json:"id"`
	Attributes AuthorAttributes `json:"attributes"`
}

type AuthorAttributes struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

func NewDocument(b Book) Document {
	doc := Document{
		Type: ResourceType,
		ID:   b.ID,
		Attributes: Attributes{
			Title:           b.Title,
			PublishedDate:   b.PublishedDate,
			ISBN:            b.ISBN,
			Genre:           b.Genre,
			AvailableCopies: b.AvailableCopies,
		},
	}
	if b.Author != nil {
		doc.Author.Data = &AuthorData{
			ID:         b.Author.ID,
			Attributes: AuthorAttributes{Name: b.Author.Name, Bio: b.Author.Bio},
		}
	}
	return doc
}

// UpdateDocument is the shape returned by update. The author sits under
// relationships and names its resource type.
type UpdateDocument struct {
	Type          string        `json:"type"`
	ID            int64         `json:"id"`
	Attributes    Attributes    `json:"attributes"`
	Relationships Relationships `json:"relationships"`
}

type Relationships struct {
	Author RelatedAuthor `json:"author"`
}

type RelatedAuthor struct {
	Data *RelatedAuthorData `json:"data"`
}

type RelatedAuthorData struct {
	Type       string           `json:"type"`
	ID         int64            `json:"id"`
	Attributes AuthorAttributes `json:"attributes"`
}

func NewUpdateDocument(b Book) UpdateDocument {
	doc := NewDocument(b)
	out := UpdateDocument{Type: doc.Type, ID: doc.ID, Attributes: doc.Attributes}
	if doc.Author.Data != nil {
		out.Relationships.Author.Data = &RelatedAuthorData{
			Type:       "authors",
			ID:         doc.Author.Data.ID,
			Attributes: doc.Author.Data.Attributes,
		}
	}
	return out
}

func NewDocuments(books []Book) []Document {
	out := make([]Document, 0, len(books))
	for _, b := range books {
		out = append(out, NewDocument(b))
	}
	return out
}
