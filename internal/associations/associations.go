// Package associations links branch records to the headquarters of their
// institution through the shared 8 character prefix.
package associations

import (
	"context"
	"errors"
	"fmt"

	"github.com/zdziszkee/swift-codes-registry/internal/models"
	"github.com/zdziszkee/swift-codes-registry/internal/repositories"
)

// Lookup finds a record by exact code, soft-deleted records included. A miss
// is reported as repositories.ErrNotFound.
type Lookup interface {
	GetAnyByCode(ctx context.Context, code string) (*models.SwiftCode, error)
}

// Associate sets IsHeadquarter from the code suffix and, for a branch, points
// HeadquarterID at the record carrying prefix+XXX when one exists. A branch
// without a headquarters stays unlinked. Headquarters never adopt existing
// branches.
func Associate(ctx context.Context, lookup Lookup, record *models.SwiftCode) error {
	record.IsHeadquarter = models.IsHeadquarterCode(record.SwiftCode)
	record.HeadquarterID = nil
	if record.IsHeadquarter {
		return nil
	}

	hq, err := lookup.GetAnyByCode(ctx, models.HeadquarterCodeFor(record.SwiftCode))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup headquarter for %s: %w", record.SwiftCode, err)
	}
	if !hq.IsHeadquarter || hq.InstitutionPrefix() != record.InstitutionPrefix() {
		return nil
	}

	id := hq.ID
	record.HeadquarterID = &id
	return nil
}

// LinkBatch resolves headquarters links across an in-memory set of records in
// two passes: index headquarters by prefix, then point each branch at its
// headquarters. It returns the number of branches linked.
func LinkBatch(records []*models.SwiftCode) int {
	headquarters := make(map[string]*models.SwiftCode)
	for _, record := range records {
		record.IsHeadquarter = models.IsHeadquarterCode(record.SwiftCode)
		if record.IsHeadquarter {
			headquarters[record.InstitutionPrefix()] = record
		}
	}

	linked := 0
	for _, record := range records {
		record.HeadquarterID = nil
		if record.IsHeadquarter {
			continue
		}
		hq, ok := headquarters[record.InstitutionPrefix()]
		if !ok {
			continue
		}
		id := hq.ID
		record.HeadquarterID = &id
		linked++
	}
	return linked
}
