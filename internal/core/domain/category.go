package domain

// CategoryKind restricts a category to income or expense entries.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "INCOME"
	CategoryExpense CategoryKind = "EXPENSE"
)

// Well-known system category IDs, seeded by migration. System-generated
// entries (installment payments, statement settlements, settlement fees)
// always use these instead of ad-hoc identifiers. System categories are not
// owned by any user and cannot be edited or deleted.
const (
	SystemCategoryDebtPayment    = "11111111-0000-0000-0000-000000000001"
	SystemCategoryCardSettlement = "11111111-0000-0000-0000-000000000002"
	SystemCategorySettlementFee  = "11111111-0000-0000-0000-000000000003"
)

// Category labels entries for breakdown analytics.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"` // empty for system categories
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	IsSystem   bool         `json:"isSystem"`

	AuditFields
}
