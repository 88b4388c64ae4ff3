package entity

// Category selects the outreach template for a lead.
type Category string

const (
	CategoryProbate        Category = "probate"
	CategoryPreForeclosure Category = "pre_foreclosure"
	CategoryTaxDelinquent  Category = "tax_delinquent"
	CategoryDivorce        Category = "divorce"
	CategoryAbsenteeOwner  Category = "absentee_owner"
	CategoryVacant         Category = "vacant"
	CategoryCodeViolation  Category = "code_violation"
	CategoryTiredLandlord  Category = "tired_landlord"
	CategoryGeneral        Category = "general"

	DefaultCategory = CategoryGeneral
)

var Categories = []Category{
	CategoryProbate,
	CategoryPreForeclosure,
	CategoryTaxDelinquent,
	CategoryDivorce,
	CategoryAbsenteeOwner,
	CategoryVacant,
	CategoryCodeViolation,
	CategoryTiredLandlord,
	CategoryGeneral,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryProbate, CategoryPreForeclosure, CategoryTaxDelinquent, CategoryDivorce,
		CategoryAbsenteeOwner, CategoryVacant, CategoryCodeViolation, CategoryTiredLandlord,
		CategoryGeneral:
		return true
	}
	return false
}
