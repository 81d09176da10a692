// package formatter provides key-offset display labels and collection
// export to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/uta/internal/models"
)

// KeyLabel maps a semitone offset to its display label.
//
// Zero means the original key and renders as 原曲; positive offsets carry
// an explicit plus sign.
func KeyLabel(key int) string {
	if key == 0 {
		return "原曲"
	}
	if key > 0 {
		return fmt.Sprintf("+%d", key)
	}
	return strconv.Itoa(key)
}

// ParseKey is the inverse of [KeyLabel].
func ParseKey(label string) (int, error) {
	if label == "原曲" {
		return 0, nil
	}
	key, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("invalid key label %q: %w", label, err)
	}
	return key, nil
}

func scoreColumn(s models.Song) string {
	if s.Score == nil {
		return ""
	}
	return strconv.Itoa(*s.Score)
}

func tagColumn(s models.Song) string {
	names := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		names[i] = t.Name
	}
	return strings.Join(names, ";")
}

// ExportToCSV converts a song collection to CSV with columns:
// ID, Title, Artist, Key, Score, Category, Machine, Favorite, Tags
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Key", "Score", "Category", "Machine", "Favorite", "Tags"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			strconv.FormatInt(song.ID, 10),
			song.Title,
			song.Artist,
			KeyLabel(song.Key),
			scoreColumn(song),
			song.Category,
			song.Machine,
			strconv.FormatBool(song.IsFavorite),
			tagColumn(song),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a song collection to a Markdown listing.
func ExportToMarkdown(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	buf.WriteString("## Repertoire\n\n")
	for i, song := range songs {
		fav := ""
		if song.IsFavorite {
			fav = " ★"
		}
		scorePart := ""
		if song.Score != nil {
			scorePart = fmt.Sprintf(" [%d点]", *song.Score)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)%s%s\n", i+1, song.Artist, song.Title, KeyLabel(song.Key), scorePart, fav))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a song collection to plain text.
func ExportToText(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))
	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Title))
	}

	return buf.Bytes(), nil
}

// WriteExport writes the collection to a file in the requested format
// (csv, md, or txt) and returns the path written.
func WriteExport(songs []models.Song, format, filepath string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(songs)
	case "md", "markdown":
		data, err = ExportToMarkdown("Song Repertoire", songs)
	case "txt", "text":
		data, err = ExportToText(songs)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	if filepath == "" {
		filepath = "repertoire." + format
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
