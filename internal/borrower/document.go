package borrower

import "time"

type Document struct {
	Type             string          `json:"type"`
	ID               int64           `json:"id"`
	Attributes       Attributes      `json:"attributes"`
	BorrowingRecords RecordsRelation `json:"borrowingRecords"`
}

type Attributes struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	MembershipDate time.Time `json:"membershipDate"`
}

type RecordsRelation struct {
	Data []RecordData `json:"data"`
}

type RecordData struct {
	ID   int64     `json:"id"`
	Book *BookData `json:"book"`
}

type BookData struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func NewDocument(b Borrower) Document {
	records := make([]RecordData, 0, len(b.Records))
	for _, rec := range b.Records {
		data := RecordData{ID: rec.ID}
		if rec.Book != nil {
			data.Book = &BookData{ID: rec.Book.ID, Title: rec.Book.Title}
		}
		records = append(records, data)
	}
	return Document{
		Type: ResourceType,
		ID:   b.ID,
		Attributes: Attributes{
			Name:           b.Name,
			Email:          b.Email,
			MembershipDate: b.MembershipDate,
		},
		BorrowingRecords: RecordsRelation{Data: records},
	}
}

func NewDocuments(borrowers []Borrower) []Document {
	out := make([]Document, 0, len(borrowers))
	for _, b := range borrowers {
		out = append(out, NewDocument(b))
	}
	return out
}
