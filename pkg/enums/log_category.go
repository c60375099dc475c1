package enums

// LogCategory labels the origin of a work order log entry.
type LogCategory string

const (
	LogCategorySystem LogCategory = "SYSTEM"
	LogCategoryNote   LogCategory = "NOTE"
)

// String implements fmt.Stringer.
func (c LogCategory) String() string {
	return string(c)
}
