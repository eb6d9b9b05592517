package dto

// HotelRequest is the create/update payload for a hotel. The code is
// application-assigned, conventionally three digits, but the column accepts
// any short string so legacy codes keep working.
type HotelRequest struct {
	CodeHotel string `json:"codeHotel" validate:"required,min=1,max=10"`
	SubcroID  int    `json:"subcroId" validate:"required"`
}

// SubcroRequest is the create/update payload for a subcro. The id is never
// client-supplied; the storage layer assigns it. The optional fields are
// pointers so an omitted key is distinguishable from an explicit zero; on
// update, omitted fields keep their stored values.
type SubcroRequest struct {
	Maincro     string  `json:"maincro" validate:"required,min=1,max=10"`
	Subcro      string  `json:"subcro" validate:"required,min=1,max=10"`
	Label       *string `json:"label" validate:"omitempty,max=100"`
	Flagcro     *int    `json:"flagcro" validate:"omitempty,oneof=0 1"`
	Webcallback *int    `json:"webcallback" validate:"omitempty,oneof=0 1"`
}

// UserUpdateRequest deliberately has no password field; the hash set at
// registration is immutable through this path.
type UserUpdateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Maincro  string `json:"maincro" validate:"required,min=1,max=10"`
}

type QueryRequest struct {
	SQL string `json:"sql" validate:"required,min=1,max=10000"`
}

// BulkResult reports a batch import: shape errors reject the whole batch
// before any write, per-row errors land here without stopping the loop.
type BulkResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
