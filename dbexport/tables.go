package dbexport

// DefaultTables is the fixed set of tables exported when no list is configured.
var DefaultTables = []string{
	"activity_logs",
	"bonus_products",
	"branches",
	"catalog_discount_codes",
	"catalog_products",
	"discount_codes",
	"flash_sale_settings",
	"master_products",
	"notifications",
	"opname_scanned_items",
	"opname_schedules",
	"opname_session_assignments",
	"opname_sessions",
	"opname_snapshot_items",
	"payment_methods",
	"stock_unit_logs",
	"stock_units",
	"suppliers",
	"transaction_items",
	"transactions",
	"user_branches",
	"user_profiles",
	"user_roles",
	"warranty_labels",
}

// ResolveTables returns tables, or a copy of DefaultTables when it is empty.
func ResolveTables(tables []string) []string {
	if len(tables) > 0 {
		return tables
	}
	return append([]string(nil), DefaultTables...)
}
