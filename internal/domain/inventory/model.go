package inventory

// Item is one material in the shared store, e.g. a wheelchair or a box of
// dressing kits. Count is the number currently on the shelf.
type Item struct {
	ID          int64   `db:"id" json:"id"`
	ItemName    string  `db:"item_name" json:"item_name"`
	Category    string  `db:"category" json:"category"`
	Count       int     `db:"count" json:"count"`
	Description *string `db:"description" json:"description"`
}

// Update is the allow-listed partial update for an item. AddStock, when
// present, wins over every other field.
type Update struct {
	ItemName    *string `json:"item_name"`
	Category    *string `json:"category"`
	Count       *int    `json:"count"`
	Description *string `json:"description"`
}

// Apply copies the set fields onto it.
func (u *Update) Apply(it *Item) {
	if u.ItemName != nil {
		it.ItemName = *u.ItemName
	}
	if u.Category != nil {
		it.Category = *u.Category
	}
	if u.Count != nil {
		it.Count = *u.Count
	}
	if u.Description != nil {
		it.Description = u.Description
	}
}

// AllocationRecord is one row of an item's movement history, joined with
// the receiving patient's name.
type AllocationRecord struct {
	ID             int64   `json:"id"`
	PatientID      int64   `json:"patient_id"`
	PatientName    string  `json:"patient_name"`
	MaterialName   string  `json:"material_name"`
	AllocationDate string  `json:"allocation_date"`
	IsReturnable   bool    `json:"is_returnable"`
	ReturnDate     *string `json:"return_date"`
	IsDamaged      bool    `json:"is_damaged"`
}

// Stats summarizes an item's movement history.
type Stats struct {
	TotalAllocated  int `json:"total_allocated"`
	ReturnedGood    int `json:"returned_good"`
	ReturnedDamaged int `json:"returned_damaged"`
	WithPatient     int `json:"with_patient"`
}
