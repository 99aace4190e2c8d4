package models

// PasteRecord is the body of a paste bin as stored in JSONBin. The bin id is
// not part of the record; the store assigns it at creation time.
// UserID and Username are null for anonymous pastes. Username is a
// denormalized copy taken at creation time and is not kept in sync.
type PasteRecord struct {
	Content   string  `json:"content"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
	UserID    *string `json:"userId"`
	Username  *string `json:"username"`
}

// Paste is a paste record together with its bin id, as returned to clients.
type Paste struct {
	ID string `json:"id"`
	PasteRecord
}
