package pricing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/pricing"
	"github.com/retailcore/backend/internal/domain/shared"
	csvimport "github.com/retailcore/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
)

// CSV column names for bracket item import
const (
	csvColPriceType   = "price_type"
	csvColMinQuantity = "min_quantity"
	csvColMaxQuantity = "max_quantity"
	csvColPrice       = "price"
)

var requiredImportHeaders = []string{csvColPriceType, csvColMinQuantity, csvColPrice}

// ImportBracketItemsFromCSV appends tier rows to a bracket from a CSV
// stream. Import is row-level: a bad row is reported and skipped, good rows
// land. Each row is checked against the full live item set, existing rows
// and rows accepted earlier in the same file included, so a file can never
// smuggle in an overlap.
func (s *PricingService) ImportBracketItemsFromCSV(ctx context.Context, bracketID uuid.UUID, r io.Reader) (*CSVImportResult, error) {
	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, shared.NewValidationError("INVALID_CSV", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewValidationError("INVALID_CSV", err.Error())
	}
	if missing := parser.ValidateHeaders(requiredImportHeaders); len(missing) > 0 {
		return nil, shared.NewValidationError("MISSING_COLUMNS",
			fmt.Sprintf("CSV is missing required columns: %s", strings.Join(missing, ", ")))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewValidationError("INVALID_CSV", err.Error())
	}

	result := &CSVImportResult{Rows: make([]CSVImportRowResult, 0, len(rows))}
	var bracket *pricing.PriceBracket

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		bracket, err = repos.Brackets().FindByID(ctx, bracketID)
		if err != nil {
			return err
		}

		live := bracket.ActiveItems()
		var accepted []pricing.BracketItem

		for _, row := range rows {
			result.TotalRows++

			item, rowErr := parseBracketItemRow(bracket.ID, row)
			if rowErr == nil {
				candidate := append(append([]*pricing.BracketItem{}, live...), item)
				if overlapErr := pricing.CheckNoOverlap(candidate); overlapErr != nil {
					rowErr = &csvimport.RowError{Row: row.LineNumber, Message: overlapErr.Error()}
				}
			}

			if rowErr != nil {
				result.ErrorRows++
				result.Rows = append(result.Rows, CSVImportRowResult{
					Line:  row.LineNumber,
					Error: rowErr.Error(),
				})
				continue
			}

			live = append(live, item)
			accepted = append(accepted, *item)
			result.ImportedRows++
			result.Rows = append(result.Rows, CSVImportRowResult{
				Line:   row.LineNumber,
				OK:     true,
				ItemID: &item.ID,
			})
		}

		if len(accepted) == 0 {
			return nil
		}

		final := append(append([]pricing.BracketItem{}, bracket.Items...), accepted...)
		if err := bracket.ReplaceItems(final); err != nil {
			return err
		}
		return repos.Brackets().ReplaceItems(ctx, bracket)
	})
	if err != nil {
		return nil, err
	}

	if result.ImportedRows > 0 {
		s.cache.InvalidateProduct(ctx, bracket.ProductID)
	}
	return result, nil
}

// parseBracketItemRow builds a candidate tier row from one CSV row
func parseBracketItemRow(bracketID uuid.UUID, row *csvimport.Row) (*pricing.BracketItem, *csvimport.RowError) {
	priceType := pricing.PriceType(strings.ToUpper(row.Get(csvColPriceType)))
	if !priceType.IsValid() {
		err := csvimport.NewRowError(row.LineNumber, csvColPriceType,
			fmt.Sprintf("unknown price type %q", row.Get(csvColPriceType)))
		return nil, &err
	}

	minQty, err := decimal.NewFromString(row.Get(csvColMinQuantity))
	if err != nil {
		rowErr := csvimport.NewRowError(row.LineNumber, csvColMinQuantity,
			fmt.Sprintf("invalid quantity %q", row.Get(csvColMinQuantity)))
		return nil, &rowErr
	}

	var maxQty *decimal.Decimal
	if raw := row.Get(csvColMaxQuantity); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			rowErr := csvimport.NewRowError(row.LineNumber, csvColMaxQuantity,
				fmt.Sprintf("invalid quantity %q", raw))
			return nil, &rowErr
		}
		maxQty = &parsed
	}

	price, err := decimal.NewFromString(row.Get(csvColPrice))
	if err != nil {
		rowErr := csvimport.NewRowError(row.LineNumber, csvColPrice,
			fmt.Sprintf("invalid price %q", row.Get(csvColPrice)))
		return nil, &rowErr
	}

	item, domainErr := pricing.NewBracketItem(bracketID, priceType, minQty, maxQty, price)
	if domainErr != nil {
		rowErr := csvimport.RowError{Row: row.LineNumber, Message: domainErr.Error()}
		return nil, &rowErr
	}
	return item, nil
}
