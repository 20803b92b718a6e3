package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/TrayLayout/internal/model"
)

const (
	maxRows           = 2
	maxControlColumns = 20
)

// PlanRowsColumns decides how many rows and columns a bundle is packed into.
// The result always satisfies rows <= columns and rows*columns >= len(cables).
// MV bundles are planned with the Power rules.
func PlanRowsColumns(usableHeight float64, cables []model.Cable, purpose model.Purpose) (rows, columns int, err error) {
	count := len(cables)
	if count == 0 {
		return 0, 0, fmt.Errorf("%w: cannot plan an empty bundle", model.ErrInvalidArgument)
	}
	if usableHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: usable height must be positive, got %g", model.ErrInvalidArgument, usableHeight)
	}
	maxD, err := maxDiameter(cables)
	if err != nil {
		return 0, 0, err
	}

	if count == 2 {
		return 1, 2, nil
	}

	rows = min(int(math.Floor(usableHeight/maxD)), maxRows)
	if rows > 0 {
		switch purpose {
		case model.PurposeControl:
			columns = min(int(math.Ceil(float64(count)/float64(rows))), maxControlColumns)
		default:
			columns = count / rows
		}
	}

	// Taller than wide, or a cable taller than the tray: square-ish fallback.
	if rows == 0 || rows > columns {
		side := int(math.Ceil(math.Sqrt(float64(count))))
		rows, columns = side, side
	}
	if rows*columns < count {
		columns = int(math.Ceil(float64(count) / float64(rows)))
	}
	return rows, columns, nil
}

func maxDiameter(cables []model.Cable) (float64, error) {
	var maxD float64
	for _, c := range cables {
		d, err := cableDiameter(c)
		if err != nil {
			return 0, err
		}
		maxD = max(maxD, d)
	}
	return maxD, nil
}

// cableDiameter reads a cable's diameter, rejecting unresolved or invalid types.
func cableDiameter(c model.Cable) (float64, error) {
	if c.Type == nil {
		return 0, &model.CableError{Tag: c.Tag, Err: fmt.Errorf("%w: cable type %q is not resolved", model.ErrDataInconsistency, c.TypeName)}
	}
	if c.Type.Diameter <= 0 || math.IsNaN(c.Type.Diameter) {
		return 0, &model.CableError{Tag: c.Tag, Err: fmt.Errorf("%w: diameter must be positive, got %g", model.ErrInvalidArgument, c.Type.Diameter)}
	}
	return c.Type.Diameter, nil
}
