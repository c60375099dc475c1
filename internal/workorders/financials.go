package workorders

import "github.com/shopspring/decimal"

// financialOverrides are the caller-supplied cost fields; nil means "use the
// fallback". Overrides are wholesale per field.
type financialOverrides struct {
	Labor    *decimal.Decimal
	Parts    *decimal.Decimal
	Taxes    *decimal.Decimal
	Discount *decimal.Decimal
	Parking  *decimal.Decimal
}

// financialBaseline supplies the per-field fallbacks: reconciled subtotals for
// labor/parts, stored values (or zero on create) for the rest.
type financialBaseline struct {
	Labor    decimal.Decimal
	Parts    decimal.Decimal
	Taxes    decimal.Decimal
	Discount decimal.Decimal
	Parking  decimal.Decimal
}

// financials is the resolved set of monetary fields, rounded to 2 decimals.
type financials struct {
	Labor    decimal.Decimal
	Parts    decimal.Decimal
	Taxes    decimal.Decimal
	Discount decimal.Decimal
	Parking  decimal.Decimal
	Total    decimal.Decimal
}

// aggregateFinancials resolves each field as override-or-baseline and derives
// total = labor + parts + taxes + parking - discount.
func aggregateFinancials(overrides financialOverrides, baseline financialBaseline) financials {
	pick := func(override *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
		if override != nil {
			return override.Round(2)
		}
		return fallback.Round(2)
	}

	out := financials{
		Labor:    pick(overrides.Labor, baseline.Labor),
		Parts:    pick(overrides.Parts, baseline.Parts),
		Taxes:    pick(overrides.Taxes, baseline.Taxes),
		Discount: pick(overrides.Discount, baseline.Discount),
		Parking:  pick(overrides.Parking, baseline.Parking),
	}
	out.Total = out.Labor.Add(out.Parts).Add(out.Taxes).Add(out.Parking).Sub(out.Discount).Round(2)
	return out
}
