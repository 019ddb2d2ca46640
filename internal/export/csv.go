// Package export serializes expenses to the standardized CSV document.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/expense-cli/internal/analytics"
	"fjacquet/expense-cli/internal/currencyutils"
	"fjacquet/expense-cli/internal/dateutils"
	"fjacquet/expense-cli/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrNothingToExport is returned when the (possibly month-filtered)
// expense list is empty. No file is written in that case.
var ErrNothingToExport = errors.New("nothing to export")

// Options configures an export run.
type Options struct {
	// Month filters to one month of the current year; 0 exports all
	// expenses.
	Month int
	// OutputPath is the CSV destination; empty selects a default name in
	// the working directory.
	OutputPath string
	// BaseCurrency and SecondaryCurrency label the two amount columns.
	BaseCurrency      string
	SecondaryCurrency string
	// Rate converts base amounts into the secondary currency.
	Rate decimal.Decimal
	// Delimiter for the output; zero selects comma.
	Delimiter rune
}

// row is the gocsv-tagged shape of one exported expense. Amount headers
// carry the currency code, so the header row is written separately.
type row struct {
	ID              int    `csv:"ID"`
	Date            string `csv:"Date"`
	Description     string `csv:"Description"`
	AmountBase      string `csv:"AmountBase"`
	AmountSecondary string `csv:"AmountSecondary"`
	Category        string `csv:"Category"`
	Tags            string `csv:"Tags"`
	Notes           string `csv:"Notes"`
}

// Header returns the CSV header row for the given currency pair.
func Header(base, secondary string) []string {
	return []string{
		"ID", "Date", "Description",
		fmt.Sprintf("Amount (%s)", base),
		fmt.Sprintf("Amount (%s)", secondary),
		"Category", "Tags", "Notes",
	}
}

// Expenses writes the (optionally month-filtered) expenses of the store
// snapshot to a CSV file and returns the path written.
// ErrNothingToExport is returned without touching the filesystem when the
// filtered list is empty.
func Expenses(store *models.Store, opts Options, now time.Time) (string, error) {
	expenses := store.Expenses
	if opts.Month != 0 {
		expenses = analytics.MonthExpenses(store, opts.Month, now)
	}
	if len(expenses) == 0 {
		return "", ErrNothingToExport
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(opts.Month, now)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("error creating export directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close export file")
		}
	}()

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = delimiter
	if err := csvWriter.Write(Header(opts.BaseCurrency, opts.SecondaryCurrency)); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	rows := make([]row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, toRow(e, opts.Rate))
	}

	if err := gocsv.MarshalCSVWithoutHeaders(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return "", fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  outputPath,
		"count": len(rows),
	}).Info("Exported expenses to CSV")
	return outputPath, nil
}

func toRow(e models.Expense, rate decimal.Decimal) row {
	tags := make([]string, 0, len(e.Tags))
	for _, tag := range e.Tags {
		tags = append(tags, Sanitize(tag))
	}
	return row{
		ID:              e.ID,
		Date:            dateutils.ToISODate(e.Date),
		Description:     Sanitize(e.Description),
		AmountBase:      currencyutils.FormatAmount(e.Amount),
		AmountSecondary: currencyutils.FormatAmount(currencyutils.Convert(e.Amount, rate)),
		Category:        Sanitize(e.Category),
		Tags:            strings.Join(tags, ";"),
		Notes:           Sanitize(e.Notes),
	}
}

// Sanitize neutralizes commas in free-text fields so a naive comma split
// of an exported line preserves column alignment.
func Sanitize(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

func defaultOutputPath(month int, now time.Time) string {
	if month == 0 {
		return "expenses-export.csv"
	}
	return fmt.Sprintf("expenses-%d-%02d.csv", now.Year(), month)
}
