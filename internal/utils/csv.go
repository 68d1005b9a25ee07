package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seriesKernel/internal/domain"
)

var klineHeader = []string{"open_time", "close_time", "symbol", "interval", "open", "high", "low", "close", "volume"}

// Column is one named output series written next to the klines.
type Column struct {
	Name   string
	Values []float64
}

// WriteKlinesToCSV writes klines with a header row, creating parent directories.
func WriteKlinesToCSV(klines []*domain.Kline, filename string) error {
	file, err := create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(klineHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, k := range klines {
		err := writer.Write([]string{
			k.OpenTime.UTC().Format(time.RFC3339),
			k.CloseTime.UTC().Format(time.RFC3339),
			k.Symbol,
			k.Interval,
			FormatFloat(k.Open, -1),
			FormatFloat(k.High, -1),
			FormatFloat(k.Low, -1),
			FormatFloat(k.Close, -1),
			FormatFloat(k.Volume, -1),
		})
		if err != nil {
			return fmt.Errorf("writing kline %s: %w", k.OpenTime, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadKlinesFromCSV reads a file written by WriteKlinesToCSV. Prices are
// parsed as exact decimals.
func ReadKlinesFromCSV(filename string) ([]*domain.Kline, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(klineHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", filename)
		}
		return nil, fmt.Errorf("%s: reading header: %w", filename, err)
	}
	if !strings.EqualFold(header[0], klineHeader[0]) {
		return nil, fmt.Errorf("%s: unexpected header %v", filename, header)
	}

	var klines []*domain.Kline
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		k, err := parseKlineRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filename, line, err)
		}
		klines = append(klines, k)
	}
	return klines, nil
}

func parseKlineRecord(record []string) (*domain.Kline, error) {
	openTime, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return nil, fmt.Errorf("open_time: %w", err)
	}
	closeTime, err := time.Parse(time.RFC3339, record[1])
	if err != nil {
		return nil, fmt.Errorf("close_time: %w", err)
	}
	prices, err := ParseDecimals(klineHeader[4:], record[4:])
	if err != nil {
		return nil, err
	}
	return &domain.Kline{
		OpenTime:  openTime,
		CloseTime: closeTime,
		Symbol:    record[2],
		Interval:  record[3],
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    prices[4],
		IsFinal:   true,
	}, nil
}

// WriteSeriesToCSV writes one row per kline: its open time and close price
// followed by each column rounded to 8 decimals. Unavailable samples are
// left empty.
func WriteSeriesToCSV(filename string, klines []*domain.Kline, columns []Column) error {
	for _, c := range columns {
		if len(c.Values) != len(klines) {
			return fmt.Errorf("column %s has %d values for %d klines", c.Name, len(c.Values), len(klines))
		}
	}

	file, err := create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"open_time", "close"}
	for _, c := range columns {
		header = append(header, c.Name)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(header))
	for i, k := range klines {
		row[0] = k.OpenTime.UTC().Format(time.RFC3339)
		row[1] = FormatFloat(k.Close, -1)
		for j, c := range columns {
			row[j+2] = FormatFloat(c.Values[i], 8)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func create(filename string) (*os.File, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory '%s': %w", dir, err)
		}
	}
	return os.Create(filename)
}
