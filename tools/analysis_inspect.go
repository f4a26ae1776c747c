package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sentify/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Dumps stored analyses, newest first, from a badger directory opened read only.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	limit := flag.Int("limit", 50, "Maximum number of analyses to print")
	sentiment := flag.String("sentiment", "", "Only print this sentiment")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "ID", "Lang", "Sentiment", "Conf", "Category", "Song", "Safeguard", "Text"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		prefix := []byte("analysis:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("analysis:\xff")); it.ValidForPrefix(prefix) && count < *limit; it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var a domain.MoodAnalysis
				if err := json.Unmarshal(v, &a); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}
				if *sentiment != "" && !strings.EqualFold(string(a.Result.Sentiment), *sentiment) {
					return nil
				}
				table.Append(toRow(a))
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d analyses\n", count)
}

func toRow(a domain.MoodAnalysis) []string {
	text := lo.Ternary(a.CensoredText != "", a.CensoredText, a.Text)
	if r := []rune(text); len(r) > 60 {
		text = string(r[:57]) + "..."
	}
	song := "-"
	if a.IncludeSong {
		song = a.Recommendation.Song.Title
	}
	safeguard := "-"
	if len(a.SafeguardHits) > 0 {
		safeguard = strings.Join(a.SafeguardHits, ",") + lo.Ternary(a.Overridden, " (override)", "")
	}
	return []string{
		a.At.Local().Format(time.DateTime),
		a.ID.String()[:8],
		string(a.Language),
		string(a.Result.Sentiment),
		fmt.Sprintf("%.2f", a.Result.Confidence),
		a.Recommendation.Category,
		song,
		safeguard,
		text,
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	return badger.Open(opts)
}
