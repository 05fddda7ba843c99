package allocation

// Allocation is one material handed to a patient. Rows created before
// inventory tracking have no inventory_item_id and are matched to items by
// material name only. Date fields are ISO-8601 strings (YYYY-MM-DD).
type Allocation struct {
	ID              int64   `db:"id" json:"id"`
	PatientID       int64   `db:"patient_id" json:"patient_id"`
	PatientName     string  `db:"-" json:"patient_name,omitempty"`
	MaterialName    string  `db:"material_name" json:"material_name"`
	InventoryItemID *int64  `db:"inventory_item_id" json:"inventory_item_id"`
	AllocationDate  string  `db:"allocation_date" json:"allocation_date"`
	IsReturnable    bool    `db:"is_returnable" json:"is_returnable"`
	ReturnDate      *string `db:"return_date" json:"return_date"`
	IsDamaged       bool    `db:"is_damaged" json:"is_damaged"`
}

// Returned reports whether the material has come back.
func (a *Allocation) Returned() bool {
	return a.ReturnDate != nil && *a.ReturnDate != ""
}

// Update is the allow-listed partial update for an allocation.
type Update struct {
	MaterialName    *string `json:"material_name"`
	InventoryItemID *int64  `json:"inventory_item_id"`
	AllocationDate  *string `json:"allocation_date"`
	IsReturnable    *bool   `json:"is_returnable"`
	ReturnDate      *string `json:"return_date"`
	IsDamaged       *bool   `json:"is_damaged"`
}

// Apply copies the set fields onto a. The return transition itself is
// handled by the service, which owns the restock rule.
func (u *Update) Apply(a *Allocation) {
	if u.MaterialName != nil {
		a.MaterialName = *u.MaterialName
	}
	if u.InventoryItemID != nil {
		a.InventoryItemID = u.InventoryItemID
	}
	if u.AllocationDate != nil {
		a.AllocationDate = *u.AllocationDate
	}
	if u.IsReturnable != nil {
		a.IsReturnable = *u.IsReturnable
	}
	if u.ReturnDate != nil {
		a.ReturnDate = u.ReturnDate
	}
	if u.IsDamaged != nil {
		a.IsDamaged = *u.IsDamaged
	}
}
