package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/pdf-order/internal/dateutils"
	"fjacquet/pdf-order/internal/fileutils"
	"fjacquet/pdf-order/internal/models"
)

// FileName returns the order file name O<customer>_<YYYY-MM-DD>_<sequence>.
func FileName(customerCode string, date time.Time, sequence string) string {
	return filePrefix(customerCode, date) + sequence
}

func filePrefix(customerCode string, date time.Time) string {
	return fmt.Sprintf("%s%s_%s_", models.OrderMarker, customerCode, dateutils.ToISODate(date))
}

// NextSequence returns the sequence following the highest numeric sequence
// already used in dir for the customer and date. Names with a non-numeric
// sequence are ignored. The first sequence of a day is "1".
func NextSequence(dir, customerCode string, date time.Time) (string, error) {
	prefix := filePrefix(customerCode, date)
	names, err := fileutils.ListFilesWithPrefix(dir, prefix)
	if err != nil {
		return "", err
	}

	highest := 0
	for _, name := range names {
		n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}
