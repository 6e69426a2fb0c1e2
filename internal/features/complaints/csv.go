package complaints

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "title", "category", "location", "status", "votes",
	"createdAt", "updatedAt", "comments_count", "has_image",
}

// WriteCSV serializes the full complaint list as UTF-8, comma-separated CSV
// with standard double-quote escaping. Zero timestamps render empty.
func WriteCSV(w io.Writer, list []Complaint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, c := range list {
		hasImage := "no"
		if c.HasImage() {
			hasImage = "yes"
		}

		record := []string{
			c.ID,
			c.Title,
			c.Category,
			c.Location,
			c.Status,
			strconv.FormatInt(c.Votes, 10),
			formatTimestamp(c.CreatedAt),
			formatTimestamp(c.UpdatedAt),
			strconv.Itoa(len(c.Comments)),
			hasImage,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename builds the download name reclamos_<ISO8601>.csv.
func ExportFilename(now time.Time) string {
	return "reclamos_" + now.UTC().Format("2006-01-02T15:04:05.000Z") + ".csv"
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
