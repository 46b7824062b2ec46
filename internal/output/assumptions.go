package output

// DefaultAssumptions lists the calculation rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Purchase DIFAL: remote product price × (destination internal rate − origin interstate rate)",
	"Purchase freight is added to both totals but stays outside the DIFAL base",
	"Sale calculation base: product value + freight",
	"Sale DIFAL is owed to the destination only for non-taxpayer final consumers",
	"Imported goods use the 4% interstate rate from every origin",
	"Amounts are rounded half-up to cents",
}
