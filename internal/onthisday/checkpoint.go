package onthisday

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Checkpoint formats for the events artifact.
const (
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
)

var csvHeader = []string{"date", "month", "day", "event_year", "event"}

func ValidFormat(format string) error {
	if format != FormatJSONL && format != FormatCSV {
		return fmt.Errorf("unknown format %q (want jsonl or csv)", format)
	}
	return nil
}

// LoadDoneDates reads the date keys already written to the artifact, so an
// interrupted fetch resumes where it stopped. A missing or empty file means
// a fresh start. Lines corrupted by a crash mid-write are skipped, not
// fatal; losing one line only means refetching that day.
func LoadDoneDates(path, format string) (map[string]struct{}, error) {
	if err := ValidFormat(format); err != nil {
		return nil, err
	}
	done := make(map[string]struct{})
	info, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		return done, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat checkpoint %s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatJSONL {
		return loadDoneJSONL(f), nil
	}
	return loadDoneCSV(f)
}

func loadDoneJSONL(r io.Reader) map[string]struct{} {
	done := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec DayEvent
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if len(rec.Date) == 10 {
			done[rec.Date] = struct{}{}
		}
	}
	return done
}

func loadDoneCSV(r io.Reader) (map[string]struct{}, error) {
	done := make(map[string]struct{})
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return done, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	dateCol := -1
	for i, name := range header {
		if name == "date" {
			dateCol = i
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("csv checkpoint missing date column")
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return done, nil
		}
		if err != nil {
			// partial trailing row from a crash mid-write
			continue
		}
		if dateCol < len(row) && len(row[dateCol]) == 10 {
			done[row[dateCol]] = struct{}{}
		}
	}
}

// AppendRecords durably appends one day's records to the artifact: sorted
// within the batch, written, flushed and fsynced before the fetch moves on,
// so a crash never loses a completed unit of work.
func AppendRecords(path, format string, records []DayEvent) error {
	if len(records) == 0 {
		return nil
	}
	if err := ValidFormat(format); err != nil {
		return err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Event < records[j].Event
	})

	info, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr) || (statErr == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatJSONL {
		err = appendJSONL(f, records)
	} else {
		err = appendCSV(f, records, fresh)
	}
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync checkpoint %s: %w", path, err)
	}
	return nil
}

func appendJSONL(w io.Writer, records []DayEvent) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal day event: %w", err)
		}
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("append day event: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush checkpoint: %w", err)
	}
	return nil
}

func appendCSV(w io.Writer, records []DayEvent, writeHeader bool) error {
	cw := csv.NewWriter(w)
	if writeHeader {
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	for _, rec := range records {
		row := []string{
			rec.Date,
			fmt.Sprint(rec.Month),
			fmt.Sprint(rec.Day),
			fmt.Sprint(rec.EventYear),
			rec.Event,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadEvents loads a complete JSONL events artifact for merging. Unlike
// resume loading this is strict: a malformed line in a finished artifact is
// corrupt input, not an interrupted write.
func ReadEvents(path string) ([]DayEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events %s: %w", path, err)
	}
	defer f.Close()

	out := make([]DayEvent, 0, 1024)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec DayEvent
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan events %s: %w", path, err)
	}
	return out, nil
}
