// Package report writes triage results to a spreadsheet and reads them back.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"complaint-triage-go/internal/types"
)

const Sheet = "Complaints"

var header = []string{"ID", "Audio", "Issue", "Urgency", "Location", "Department", "Priority", "Language", "Transcribed", "Action", "Transcript"}

// Write saves results as one row each under a header row.
func Write(path string, results ...types.ProcessResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(Sheet, "A1", &row); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.ID,
			r.AudioPath,
			r.Record.Issue,
			r.Record.Urgency,
			r.Record.Location,
			r.Action.Department,
			r.Action.Priority,
			r.Language,
			strconv.FormatBool(r.Transcribed),
			r.Action.Action,
			r.Record.RawText,
		}
		if err := f.SetSheetRow(Sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads a report back. Columns are found by header name, so reordered
// or hand-edited sheets still load. Timing and error fields are not stored
// and come back empty.
func Load(path string) ([]types.ProcessResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := func(r []string, name string) string {
		i, ok := idx[strings.ToLower(name)]
		if !ok || i >= len(r) {
			return ""
		}
		return r[i]
	}

	var out []types.ProcessResult
	for _, r := range rows[1:] {
		transcribed, _ := strconv.ParseBool(strings.TrimSpace(col(r, "Transcribed")))
		res := types.ProcessResult{
			ID:          col(r, "ID"),
			Transcribed: transcribed,
			AudioPath:   col(r, "Audio"),
			Language:    col(r, "Language"),
			Transcript:  col(r, "Transcript"),
			Record: types.ComplaintRecord{
				Issue:    col(r, "Issue"),
				Urgency:  col(r, "Urgency"),
				Location: col(r, "Location"),
				RawText:  col(r, "Transcript"),
			},
			Action: types.ActionCard{
				Department: col(r, "Department"),
				Priority:   col(r, "Priority"),
				Action:     col(r, "Action"),
			},
		}
		if res.ID == "" && res.Record.Issue == "" {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}
