package borrowing

import "time"

type Document struct {
	Type       string           `json:"type"`
	ID         int64            `json:"id"`
	Attributes Attributes       `json:"attributes"`
	Book       BookRelation     `json:"book"`
	Borrower   BorrowerRelation `json:"borrower"`
}

type Attributes struct {
	BorrowDate time.Time  `json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     Status     `json:"status"`
}

type BookRelation struct {
	Data *BookData `json:"data"`
}

type BookData struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

type BorrowerRelation struct {
	Data *BorrowerData `json:"data"`
}

type BorrowerData struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

func NewDocument(rec Record) Document {
	doc := Document{
		Type: ResourceType,
		ID:   rec.ID,
		Attributes: Attributes{
			BorrowDate: rec.BorrowDate,
			ReturnDate: rec.ReturnDate,
			Status:     rec.Status,
		},
	}
	if rec.Book != nil {
		doc.Book.Data = &BookData{ID: rec.Book.ID, Type: "books", Title: rec.Book.Title}
	}
	if rec.Borrower != nil {
		doc.Borrower.Data = &BorrowerData{ID: rec.Borrower.ID, Type: "borrowers", Name: rec.Borrower.Name}
	}
	return doc
}

func NewDocuments(records []Record) []Document {
	out := make([]Document, 0, len(records))
	for _, rec := range records {
		out = append(out, NewDocument(rec))
	}
	return out
}
