package payroll

import (
	"encoding/json"
	"fmt"

	"cafeshift/backend/internal/entity"

	"github.com/pkg/errors"
)

// PeriodLabel renders a period as "Jan 2 - Jan 15, 2024".
func PeriodLabel(period entity.PayrollPeriod) string {
	return fmt.Sprintf("%s - %s", period.StartDate.Format("Jan 2"), period.EndDate.Format("Jan 2, 2006"))
}

// SlipMessage is the body of the notification an employee receives for a
// payroll slip.
func SlipMessage(period entity.PayrollPeriod, netPay float64, currency string) string {
	return fmt.Sprintf("Your payroll slip for %s is now available. Net Pay: %s%.2f", PeriodLabel(period), currency, netPay)
}

// SlipData is the notification payload pointing at an entry.
func SlipData(entry entity.PayrollEntry) (json.RawMessage, error) {
	data, err := json.Marshal(map[string]any{
		"entryId":  entry.ID,
		"periodId": entry.PayrollPeriodID,
		"netPay":   Money(entry.NetPay),
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding slip data")
	}
	return data, nil
}

// Money formats an amount with two decimals.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
