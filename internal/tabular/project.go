package tabular

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/docutab/docutab/internal/common"
)

// Project flattens every record and aligns them into a rectangular table.
// When explicitHeaders is non-empty it is used verbatim as the column order:
// missing keys yield empty cells and flattened keys outside the list are
// dropped. Otherwise the header set is the sorted union of all flattened
// keys. An empty record set is a no-data condition, not an empty file.
func Project(records []map[string]any, explicitHeaders []string) ([][]string, []string, error) {
	if len(records) == 0 {
		return nil, nil, common.ErrNoData
	}

	flattened := make([]map[string]any, len(records))
	for i, rec := range records {
		flattened[i] = Flatten(rec)
	}

	headers := explicitHeaders
	if len(headers) == 0 {
		seen := make(map[string]struct{})
		for _, flat := range flattened {
			for k := range flat {
				seen[k] = struct{}{}
			}
		}
		headers = make([]string, 0, len(seen))
		for k := range seen {
			headers = append(headers, k)
		}
		sort.Strings(headers)
	}

	table := make([][]string, len(flattened))
	for i, flat := range flattened {
		row := make([]string, len(headers))
		for j, h := range headers {
			if v, ok := flat[h]; ok {
				row[j] = RenderCell(v)
			}
		}
		table[i] = row
	}
	return table, headers, nil
}

// SortByField stably sorts records ascending by the string rendering of a
// designated field (dotted paths reach nested values). Records lacking the
// field compare as the empty string and therefore sort first. Applied before
// projection so the presentation order is deterministic regardless of
// completion order.
func SortByField(records []map[string]any, field string) {
	if field == "" || len(records) < 2 {
		return
	}
	// One flatten per record, not per comparison.
	keyed := make([]struct {
		key    string
		record map[string]any
	}, len(records))
	for i, rec := range records {
		keyed[i].key = fieldKey(rec, field)
		keyed[i].record = rec
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].key < keyed[j].key
	})
	for i := range keyed {
		records[i] = keyed[i].record
	}
}

func fieldKey(record map[string]any, field string) string {
	if v, ok := Flatten(record)[field]; ok {
		return RenderCell(v)
	}
	return ""
}

// RenderCell converts a JSON leaf value into its cell text. Numbers keep the
// shortest representation that round-trips; containers that survived
// flattening (arrays, objects under an explicit header) become compact JSON.
func RenderCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
