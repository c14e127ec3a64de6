// package formatter renders search results and receipt history to CSV, Markdown, and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/arf3lix/songorder/internal/models"
)

// SongsToCSV converts collected songs to CSV with columns: ID, Title, Artists, Album, Duration, Quality, Status
func SongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Album", "Duration", "Quality", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			strings.Join(song.ArtistNames, "; "),
			song.AlbumName,
			strconv.Itoa(song.Duration),
			song.Quality,
			song.DownloadStatus,
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

// SongsToMarkdown converts collected songs to a Markdown listing under the given title.
func SongsToMarkdown(title string, songs []models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs:** %d\n\n", len(songs)))
	buf.WriteString("| # | Title | Artists | Album | Duration |\n")
	buf.WriteString("|---|-------|---------|-------|----------|\n")

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1,
			escapePipes(song.Title),
			escapePipes(strings.Join(song.ArtistNames, ", ")),
			escapePipes(song.AlbumName),
			formatDuration(song.Duration),
		))
	}

	return buf.Bytes()
}

// SongsToText converts collected songs to a plain text listing.
func SongsToText(title string, songs []models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n%s\n\n", title, strings.Repeat("=", len(title))))

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%3d. %s - %s", i+1, strings.Join(song.ArtistNames, ", "), song.Title))
		if song.Duration > 0 {
			buf.WriteString(fmt.Sprintf(" [%s]", formatDuration(song.Duration)))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("\n%d songs\n", len(songs)))
	return buf.Bytes()
}

// ReceiptsToCSV converts receipt history to CSV with columns: Order, Phone, Delivery, Songs, Price, Created
func ReceiptsToCSV(receipts []*models.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Order", "Phone", "Delivery", "Songs", "Price", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, receipt := range receipts {
		record := []string{
			receipt.OrderTempID(),
			receipt.PhoneNumber(),
			string(receipt.Delivery()),
			strconv.Itoa(receipt.TotalSongs()),
			FormatPrice(receipt.PriceCents()),
			receipt.CreatedAt().Format("2006-01-02 15:04:05"),
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

// FormatPrice renders a price in cents as dollars, e.g. 1250 -> "$12.50".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// formatDuration renders seconds as m:ss.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
