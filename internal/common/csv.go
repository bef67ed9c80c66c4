// Package common provides file and CSV helpers shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the CSV field separator used when none is configured.
const DefaultDelimiter = ','

// WriteCSV marshals rows (a slice of csv-tagged structs) to w using delimiter.
func WriteCSV(w io.Writer, rows interface{}, delimiter rune) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsCSV writes transactions to w, one row per record, with
// amounts rounded to two decimal places.
func WriteTransactionsCSV(w io.Writer, transactions []models.TransactionRecord, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	rows := make([]models.TransactionRecord, len(transactions))
	for i, tx := range transactions {
		tx.Credit = tx.Credit.Round(2)
		tx.Debit = tx.Debit.Round(2)
		tx.Balance = tx.Balance.Round(2)
		rows[i] = tx
	}

	return WriteCSV(w, &rows, delimiter)
}

// ReadTransactionsCSV reads transactions previously written by WriteTransactionsCSV.
func ReadTransactionsCSV(filePath string, delimiter rune, logger logging.Logger) ([]models.TransactionRecord, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	logger.Info("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath) // #nosec G304 -- path comes from the command line
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []models.TransactionRecord
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}
