package roster

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadFile reads an ordered roster from a .json array or a tab-separated
// .tsv/.txt file. Missing fields load as empty values.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(f)
	case ".tsv", ".txt":
		return DecodeTSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

type jsonRecord struct {
	Name         field `json:"Name"`
	Age          field `json:"Age"`
	Category     field `json:"Category"`
	Ph           field `json:"Ph"`
	PlayerType   field `json:"PlayerType"`
	SerialNumber field `json:"SerialNumber"`
	Valid        field `json:"Valid"`
	JerseyNumber field `json:"JerseyNumber"`
	JerseyName   field `json:"JerseyName"`
}

// field accepts a JSON string, number, bool, or null as text.
type field string

func (f *field) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = field(t)
	case float64:
		*f = field(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		if t {
			*f = "Y"
		} else {
			*f = "N"
		}
	default:
		*f = field(strings.TrimSpace(string(data)))
	}
	return nil
}

// DecodeJSON reads a JSON array of roster rows.
func DecodeJSON(r io.Reader) ([]Record, error) {
	var rows []jsonRecord
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode roster json: %w", err)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, newRecord([]string{
			string(row.Name), string(row.Age), string(row.Category), string(row.Ph),
			string(row.PlayerType), string(row.SerialNumber), string(row.Valid),
			string(row.JerseyNumber), string(row.JerseyName),
		}))
	}
	return records, nil
}

// DecodeTSV reads tab-separated rows: name, age, category, phone,
// player type, serial, valid (Y/N), jersey number, jersey name.
// A leading header row starting with "Name" is skipped.
func DecodeTSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records []Record
	for first := true; ; first = false {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode roster tsv: %w", err)
		}
		if first && len(cols) > 0 && strings.EqualFold(strings.TrimSpace(cols[0]), "name") {
			continue
		}
		if len(cols) == 1 && strings.TrimSpace(cols[0]) == "" {
			continue
		}
		records = append(records, newRecord(cols))
	}
	return records, nil
}

func newRecord(cols []string) Record {
	col := func(i int) string {
		if i < len(cols) {
			return strings.TrimSpace(cols[i])
		}
		return ""
	}
	return Record{
		DisplayName:  col(0),
		Age:          col(1),
		Category:     col(2),
		JoinKey:      col(3),
		PlayerType:   col(4),
		SerialNumber: atoi(col(5)),
		IsValid:      parseFlag(col(6)),
		JerseyNumber: atoi(col(7)),
		JerseyName:   col(8),
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFlag(s string) bool {
	switch strings.ToUpper(s) {
	case "Y", "YES", "TRUE", "1":
		return true
	}
	return false
}
